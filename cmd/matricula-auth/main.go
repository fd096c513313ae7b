package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"

	auth "github.com/edu-uce/matricula-auth"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-router"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

func main() {
	cfg, err := auth.LoadEnvConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.GetSigningKey() == "" {
		log.Fatal("AUTH_SIGNING_KEY is required")
	}

	ctx := context.Background()

	db, err := openDB(cfg.GetDSN())
	if err != nil {
		log.Fatal(err)
	}

	if err := setupSchema(ctx, db); err != nil {
		log.Fatal(err)
	}

	repo := auth.NewRepositoryManager(db)
	repo.MustValidate()

	signer := auth.NewHMACTokenSigner([]byte(cfg.GetSigningKey()))
	verifier := auth.NewCredentialVerifier(repo.Store())
	issuer := auth.NewTokenIssuer(signer, cfg)
	provisioner := auth.NewAccountProvisioner(repo.Store()).
		WithBcryptCost(cfg.GetBcryptCost())

	srv := router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			UnescapePath:  true,
			StrictRouting: false,
		}))
	})

	auth.RegisterAuthRoutes(srv.Router().Group("/"),
		func(ac *auth.AuthController) *auth.AuthController {
			ac.Verifier = verifier
			ac.Issuer = issuer
			ac.Provisioner = provisioner
			return ac
		})

	srv.Serve(cfg.GetHTTPAddr())

	waitExitSignal()
}

func openDB(dsn string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	db.RegisterModel((*auth.AccountRole)(nil))

	return db, nil
}

// setupSchema creates the tables this service owns and seeds the role
// reference data registrations depend on.
func setupSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*auth.Account)(nil),
		(*auth.Role)(nil),
		(*auth.AccountRole)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}

	for _, name := range []string{auth.DefaultRoleName, "admin"} {
		role := &auth.Role{ID: uuid.New(), Name: name}
		if _, err := db.NewInsert().
			Model(role).
			On("CONFLICT DO NOTHING").
			Exec(ctx); err != nil {
			return err
		}
	}

	return nil
}

func waitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
