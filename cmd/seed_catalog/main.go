// seed_catalog carga el catálogo (products y stock) desde un db.json del json-server.
//
// Uso:
//
//	go run ./cmd/seed_catalog [-charset latin1] [-sql salida.sql] db.json
//
// Sin -sql aplica los datos en la base configurada (DATABASE_URL / DB_*), en una sola transacción.
// Con -sql escribe el script INSERT ... ON CONFLICT en lugar de conectarse.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Carrito-api/internal/domain/entity"
	"github.com/jhoicas/Carrito-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Carrito-api/pkg/config"
	"github.com/jhoicas/Carrito-api/pkg/logger"
)

// dbFile formato del db.json del json-server.
type dbFile struct {
	Products []entity.Product `json:"products"`
	Stock    []entity.Stock   `json:"stock"`
}

func main() {
	charset := flag.String("charset", "utf-8", "codificación del archivo: utf-8 o latin1")
	sqlOut := flag.String("sql", "", "escribir script SQL en esta ruta en lugar de aplicar")
	flag.Parse()

	path := "db.json"
	if flag.NArg() > 0 {
		path = flag.Arg(0)
	}

	db, err := readDB(path, *charset)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer %s: %v\n", path, err)
		os.Exit(1)
	}

	if *sqlOut != "" {
		if err := writeSQL(*sqlOut, db); err != nil {
			fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Generado %s: %d productos, %d registros de stock\n", *sqlOut, len(db.Products), len(db.Stock))
		return
	}

	if err := apply(db); err != nil {
		fmt.Fprintf(os.Stderr, "Aplicar catálogo: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Catálogo aplicado: %d productos, %d registros de stock\n", len(db.Products), len(db.Stock))
}

func readDB(path, charset string) (*dbFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(charset) {
	case "latin1", "iso-8859-1", "iso8859-1":
		r = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	case "utf-8", "utf8", "":
	default:
		return nil, fmt.Errorf("charset no soportado: %s", charset)
	}

	var db dbFile
	if err := json.NewDecoder(r).Decode(&db); err != nil {
		return nil, err
	}
	sort.Slice(db.Products, func(i, j int) bool { return db.Products[i].ID < db.Products[j].ID })
	sort.Slice(db.Stock, func(i, j int) bool { return db.Stock[i].ProductID < db.Stock[j].ProductID })
	return &db, nil
}

func apply(db *dbFile) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed_catalog"})
	ctx := context.Background()

	if cfg.DB.RunMigrations {
		if err := postgres.RunMigrations(cfg.DB.ConnectionString(), log); err != nil {
			return err
		}
	}
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		return err
	}
	defer pool.Close()

	return postgres.NewTxRunner(pool).RunCatalog(ctx, func(products *postgres.ProductRepo, stock *postgres.StockRepo) error {
		for _, p := range db.Products {
			if err := products.Upsert(ctx, p); err != nil {
				return err
			}
		}
		for _, s := range db.Stock {
			if err := stock.Upsert(ctx, s); err != nil {
				return err
			}
		}
		return nil
	})
}

func writeSQL(path string, db *dbFile) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer out.Close()

	fmt.Fprintln(out, "-- Catálogo generado desde db.json (json-server)")
	fmt.Fprintln(out)
	for _, p := range db.Products {
		fmt.Fprintf(out, "INSERT INTO products (id, title, price, image) VALUES (%d, '%s', %s, '%s')\n",
			p.ID, escapeSQL(p.Title), p.Price.StringFixed(2), escapeSQL(p.Image))
		fmt.Fprintln(out, "ON CONFLICT (id) DO UPDATE SET title = EXCLUDED.title, price = EXCLUDED.price, image = EXCLUDED.image;")
	}
	fmt.Fprintln(out)
	for _, s := range db.Stock {
		fmt.Fprintf(out, "INSERT INTO stock (id, amount) VALUES (%d, %d)\n", s.ProductID, s.Amount)
		fmt.Fprintln(out, "ON CONFLICT (id) DO UPDATE SET amount = EXCLUDED.amount;")
	}
	return nil
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
