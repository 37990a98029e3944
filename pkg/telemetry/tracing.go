// Package telemetry configura el TracerProvider global de OpenTelemetry.
package telemetry

import (
	"context"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Config opciones de trazas.
type Config struct {
	Stdout bool      // exportar spans como JSON
	Out    io.Writer // destino del exportador; por defecto os.Stdout
}

// Init registra el proveedor global y el propagador W3C. La función devuelta vacía y cierra el proveedor.
func Init(cfg Config) (shutdown func(context.Context) error, err error) {
	opts := []sdktrace.TracerProviderOption{}
	if cfg.Stdout {
		var w io.Writer = os.Stdout
		if cfg.Out != nil {
			w = cfg.Out
		}
		exp, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdktrace.WithBatcher(exp))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	return tp.Shutdown, nil
}
