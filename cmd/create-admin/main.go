// Command create-admin creates the first Admin account, or promotes an
// existing employee with the same email to Admin and resets their password.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sethvargo/go-envconfig"

	"github.com/werkbank/workshop-system/internal/core/ports"
	"github.com/werkbank/workshop-system/internal/core/service"
	"github.com/werkbank/workshop-system/internal/infrastructure/db/postgres"
	"github.com/werkbank/workshop-system/internal/pkg/config"
	"github.com/werkbank/workshop-system/pkg/logger"
)

type adminConfig struct {
	Email    string `env:"ADMIN_EMAIL,    required"`
	Name     string `env:"ADMIN_NAME,     default=Admin"`
	Password string `env:"ADMIN_PASSWORD, required"`
	OrgID    string `env:"ADMIN_ORG_ID"`
	OrgName  string `env:"ADMIN_ORG_NAME"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Init(logger.Options{Level: "info", Pretty: true, Service: "create-admin"})
	log := logger.Get()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	var admin adminConfig
	if err := envconfig.Process(ctx, &admin); err != nil {
		log.Fatal().Err(err).Msg("failed to load admin settings")
	}

	db, err := postgres.Connect(ctx, postgres.Config{URL: cfg.Postgres.URL, MaxOpenConns: 2})
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer db.Close()

	if err := postgres.EnsureSchema(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("schema setup failed")
	}

	auth := service.NewAuthService(
		postgres.NewEmployeeRepository(db),
		postgres.NewOrganizationRepository(db),
		service.NewPasswordHasher(cfg.BcryptCost),
		service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL, nil),
		log,
	)

	emp, created, err := auth.BootstrapAdmin(ctx, ports.BootstrapAdminInput{
		Email:    admin.Email,
		Name:     admin.Name,
		Password: admin.Password,
		OrgID:    admin.OrgID,
		OrgName:  admin.OrgName,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("create admin failed")
	}

	action := "promoted"
	if created {
		action = "created"
	}
	log.Info().
		Int64("employee_id", emp.ID).
		Str("org_id", emp.OrgID).
		Str("action", action).
		Msg("admin ready")
}
