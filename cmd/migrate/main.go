// migrate ejecuta las migraciones embebidas con goose.
//
// Uso: go run ./cmd/migrate [up|down|status|version|redo|reset] [args...]
// Sin argumentos aplica "up".
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/stdlib"

	"github.com/jhoicas/Residentes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Residentes-api/pkg/config"
	"github.com/jhoicas/Residentes-api/pkg/migrate"
)

func main() {
	os.Exit(run())
}

// run devuelve el código de salida; los defer se ejecutan antes de os.Exit.
func run() int {
	command := "up"
	var args []string
	if len(os.Args) > 1 {
		command = os.Args[1]
		args = os.Args[2:]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuración: %v\n", err)
		return 1
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Conexión a PostgreSQL: %v\n", err)
		return 1
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := migrate.Run(ctx, db, command, args...); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1
	}
	return 0
}
