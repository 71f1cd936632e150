package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/hamed0406/sitesmoke/internal/browser"
	"github.com/hamed0406/sitesmoke/internal/config"
	"github.com/hamed0406/sitesmoke/internal/domain"
	"github.com/hamed0406/sitesmoke/internal/httpapi"
	"github.com/hamed0406/sitesmoke/internal/logging"
	"github.com/hamed0406/sitesmoke/internal/repo"
	"github.com/hamed0406/sitesmoke/internal/repo/memory"
	"github.com/hamed0406/sitesmoke/internal/repo/postgres"
	"github.com/hamed0406/sitesmoke/internal/runner"
)

func main() {
	cfg := config.FromEnv()
	logger, err := logging.NewLogger(cfg.LogDir)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	ctx := context.Background()

	var store repo.RunStore = memory.New()
	if cfg.DatabaseURL != "" {
		pg, err := postgres.New(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			log.Fatal(err)
		}
		defer pg.Close()
		if err := pg.EnsureSchema(ctx); err != nil {
			log.Fatal(err)
		}
		store = pg
	}

	// POST /api/runs only works if the site list loads; a missing file just
	// means the server is read-only.
	var trigger func(ctx context.Context) domain.RunSummary
	if sites, err := config.LoadSites(cfg.SitesFile); err != nil {
		logger.Warn("sites_file_unavailable", zap.Error(err))
	} else {
		factory := browser.NewFactory(cfg.Browser, cfg.PageTimeout, logger)
		r := runner.New(factory, logger, cfg.Workers, cfg.SiteTimeout)
		trigger = func(ctx context.Context) domain.RunSummary {
			return r.Run(ctx, sites)
		}
	}

	api := httpapi.NewServer(logger, store, trigger)

	logger.Info("api_listen", zap.String("addr", cfg.Addr))
	if err := http.ListenAndServe(cfg.Addr, api.Router()); err != nil {
		log.Fatal(err)
	}
}
