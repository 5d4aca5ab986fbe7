package main

import (
	"context"
	"log/slog"
	"os"

	_ "modernc.org/sqlite"

	"github.com/jlin2026/campusmarket/internal/api"
	"github.com/jlin2026/campusmarket/internal/buildinfo"
	"github.com/jlin2026/campusmarket/internal/config"
	"github.com/jlin2026/campusmarket/internal/logging"
	"github.com/jlin2026/campusmarket/internal/session"
	"github.com/jlin2026/campusmarket/internal/store"
	"github.com/jlin2026/campusmarket/internal/textgen"
	"github.com/jlin2026/campusmarket/internal/ui"
)

func main() {
	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	log := logging.NewTextLogger(os.Stderr, slog.LevelInfo)

	sess, err := session.Open(ctx, cfg.SessionDSN)
	if err != nil {
		log.Error(ctx, "session database init failed", "err", err)
		os.Exit(1)
	}
	defer sess.Close()

	apiClient := api.NewHTTPClient(cfg.BaseURL, cfg.RequestTimeout, log)
	st := store.New(apiClient, sess, log, store.Options{
		BaseURL:      cfg.BaseURL,
		PageSize:     cfg.GoodsPageSize,
		ImageTimeout: cfg.ImageTimeout,
	})
	polisher := textgen.New(cfg.GeminiAPIKey, cfg.RequestTimeout, log)

	ui.NewApp(st, polisher).Run(ctx)
}
