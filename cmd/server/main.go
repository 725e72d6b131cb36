package main

import (
	"context"
	"net/http"
	"os"

	webAdapter "finbook/internal/adapters/web"
	"finbook/internal/app"
	"finbook/internal/core"
	"finbook/internal/db"
	"finbook/internal/logger"
	"finbook/internal/metrics"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	cfg := logger.DefaultConfig()
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		cfg.Level = lvl
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Format = format
	}
	if err := logger.Setup(cfg); err != nil {
		log.Fatal().Err(err).Msg("logger setup failed")
	}
	metrics.Init()

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

	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	handler := webAdapter.NewHandler(svc, allowedOrigins)

	log.Info().Str("port", port).Msg("server starting")
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
