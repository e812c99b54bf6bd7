// import_residents carga residentes en el padrón desde un .xlsx (mismo formato
// que la exportación) o un .csv con la misma cabecera.
//
// Uso: go run ./cmd/import_residents ruta/padron.xlsx
//
//	go run ./cmd/import_residents ruta/padron.csv [latin1]
//
// Cada fila pasa por la misma validación que el formulario; las filas
// inválidas se reportan y se omiten. Con REDIS_URL los dashboards abiertos
// reciben los eventos de alta.
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/Residentes-api/internal/application/realtime"
	"github.com/jhoicas/Residentes-api/internal/application/residents"
	"github.com/jhoicas/Residentes-api/internal/domain/resident"
	infraexcel "github.com/jhoicas/Residentes-api/internal/infrastructure/excel"
	"github.com/jhoicas/Residentes-api/internal/infrastructure/memory"
	"github.com/jhoicas/Residentes-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Residentes-api/internal/infrastructure/redis"
	"github.com/jhoicas/Residentes-api/pkg/config"
	"github.com/jhoicas/Residentes-api/pkg/logger"
)

func main() {
	os.Exit(run())
}

// run devuelve el código de salida; los defer se ejecutan antes de os.Exit.
func run() int {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Uso: import_residents <archivo.xlsx|archivo.csv> [latin1]")
		return 2
	}
	path := os.Args[1]
	latin1 := len(os.Args) > 2 && strings.EqualFold(os.Args[2], "latin1")

	forms, err := readForms(path, latin1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer %s: %v\n", path, err)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		return 1
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		return 1
	}
	defer pool.Close()

	var broker realtime.Broker = memory.NewHub()
	if cfg.Redis.URL != "" {
		rdb, err := infraredis.New(ctx, cfg.Redis.URL)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Conexión a Redis: %v\n", err)
			return 1
		}
		defer rdb.Close()
		broker = rdb.NewBroker(log)
	}

	svc := residents.NewService(postgres.NewResidentRepository(pool), broker, residents.Config{
		Rules: resident.Rules{
			NameMaxLength:  cfg.Resident.NameMaxLength,
			SubRegions:     cfg.Resident.SubRegions,
			RequireContact: cfg.Resident.RequireContact,
			Documents:      resident.DefaultDocumentPolicy(cfg.Resident.DocumentMaxBytes),
		},
		PageSize: cfg.Resident.PageSize,
	}, nil, log)

	var saved, invalid, failed int
	for i, form := range forms {
		line := i + 2 // la fila 1 es la cabecera
		out, err := svc.Submit(ctx, residents.Submission{Form: form})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Fila %d: %v\n", line, err)
			failed++
			continue
		}
		switch out.State {
		case residents.StateSaved:
			saved++
		case residents.StateInvalid:
			invalid++
			for _, field := range out.Errors.Order {
				fmt.Fprintf(os.Stderr, "Fila %d: %s: %s\n", line, field, out.Errors.Fields[field])
			}
		default:
			failed++
			fmt.Fprintf(os.Stderr, "Fila %d: %s\n", line, out.Message)
		}
	}

	fmt.Printf("Importados %d de %d residentes (%d inválidos, %d con error)\n", saved, len(forms), invalid, failed)
	if failed > 0 {
		return 1
	}
	return 0
}

func readForms(path string, latin1 bool) ([]resident.Form, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return infraexcel.ReadRoster(f)
	}

	var in io.Reader = f
	if latin1 {
		in = transform.NewReader(f, charmap.ISO8859_1.NewDecoder())
	}
	r := csv.NewReader(in)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: %w", err)
	}
	return infraexcel.FormsFromRows(rows)
}
