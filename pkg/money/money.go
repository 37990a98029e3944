// Package money formatea montos en reales (BRL) con las convenciones de pt-BR.
package money

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL devuelve el monto como "R$ 1.234,50". Trabaja sobre el decimal, sin pasar por float.
func FormatBRL(amount decimal.Decimal) string {
	fixed := amount.Round(2)
	abs := fixed.Abs().StringFixed(2) // "1234.50"
	intPart, frac, _ := strings.Cut(abs, ".")

	sign := ""
	if fixed.IsNegative() {
		sign = "-"
	}
	return "R$ " + sign + groupThousands(intPart) + "," + frac
}

// groupThousands separa miles según pt-BR. Los enteros que caben en int64 pasan por
// el printer de x/text; los mayores se agrupan a mano con el mismo separador.
func groupThousands(digits string) string {
	d := decimal.RequireFromString(digits)
	if n := d.BigInt(); n.IsInt64() {
		return printer.Sprintf("%d", n.Int64())
	}
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	return b.String()
}
