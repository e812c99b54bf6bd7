// seed_admin crea (o promueve) una cuenta de administrador del padrón.
// El registro público solo crea cuentas user; este es el único camino a admin.
//
// Uso: go run ./cmd/seed_admin email password [apodo]
// Si el email ya existe solo se cambia su rol a admin; la contraseña no se toca.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jhoicas/Residentes-api/internal/application/auth"
	"github.com/jhoicas/Residentes-api/internal/application/dto"
	"github.com/jhoicas/Residentes-api/internal/domain/entity"
	"github.com/jhoicas/Residentes-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Residentes-api/pkg/config"
	"github.com/jhoicas/Residentes-api/pkg/logger"
)

func main() {
	os.Exit(run())
}

// run devuelve el código de salida; los defer se ejecutan antes de os.Exit.
func run() int {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "Uso: seed_admin <email> <password> [apodo]")
		return 2
	}
	email, password := os.Args[1], os.Args[2]
	nickname := "Admin"
	if len(os.Args) > 3 {
		nickname = os.Args[3]
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

	var (
		userID  string
		created bool
	)
	err = postgres.WithTx(ctx, pool, func(q postgres.Querier) error {
		users := postgres.NewUserRepository(q)
		existing, err := users.GetByEmail(ctx, email)
		if err != nil {
			return err
		}
		if existing != nil {
			userID = existing.ID
		} else {
			uc := auth.NewAuthUseCase(users, nil, nil, nil, auth.Config{Secret: cfg.JWT.Secret, Issuer: cfg.JWT.Issuer}, log)
			u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: email, Password: password, Nickname: nickname})
			if err != nil {
				return err
			}
			userID, created = u.ID, true
		}
		return users.SetRole(ctx, userID, entity.RoleAdmin)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear administrador: %v\n", err)
		return 1
	}

	if created {
		fmt.Printf("Administrador creado: %s (%s)\n", email, userID)
	} else {
		fmt.Printf("Cuenta existente promovida a admin: %s (%s)\n", email, userID)
	}
	return 0
}
