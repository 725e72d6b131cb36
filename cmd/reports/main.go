package main

import (
	"context"
	"os"

	"finbook/internal/adapters/cli"
	"finbook/internal/app"
	"finbook/internal/core"
	"finbook/internal/db"
	"finbook/internal/logger"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	cfg := logger.DefaultConfig()
	cfg.Output = "stderr" // keep stdout clean for report tables
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		cfg.Level = lvl
	}
	if err := logger.Setup(cfg); err != nil {
		log.Fatal().Err(err).Msg("logger setup failed")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	vouchers := core.NewVoucherService(pool)
	masters := core.NewMastersService(pool)
	recon := core.NewReconciliationService(pool)
	reports := core.NewReportingService(masters, recon, logger.WithComponent("reporting"))

	svc := app.NewAppService(pool, vouchers, masters, reports, recon)
	cli.Execute(svc)
}
