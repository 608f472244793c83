package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/calder/viewdex/internal/viewdex"
)

func main() {
	var cfg viewdex.Config

	flag.StringVar(&cfg.BaseDir, "root", ".", "base directory exposed as the resource tree root")
	flag.StringVar(&cfg.ScanPaths, "scan-paths", "", "comma separated list of additional root paths to scan, each optionally suffixed with *.ext")
	flag.BoolVar(&cfg.Enabled, "scan-enabled", true, "master switch for the view scanning feature")
	flag.BoolVar(&cfg.ExtensionlessAlways, "extensionless-always", false, "redirect extension-bearing requests for scanned views to their extensionless form")
	flag.StringVar(&cfg.Listen, "listen", "", "address to serve views on, e.g. :8080 (empty disables the server)")
	flag.StringVar(&cfg.ManifestPath, "manifest", "", "path to a SQLite scan manifest (empty disables the manifest)")
	flag.BoolVar(&cfg.Watch, "watch", false, "rebuild the index when the resource tree changes")
	flag.Parse()

	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})
	logger := slog.New(handler)

	if !cfg.Enabled {
		logger.Info("View scanning disabled")
		return
	}

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	absBase, err := filepath.Abs(cfg.BaseDir)
	if err != nil {
		logger.Error("Failed to resolve base directory", "root", cfg.BaseDir, "error", err)
		os.Exit(1)
	}
	cfg.BaseDir = absBase

	ctx := context.Background()

	appCtx := viewdex.NewAppContext(viewdex.OSResourceTree{Base: cfg.BaseDir}, cfg, logger)
	collected := appCtx.ScanAndStoreViews()

	if cfg.ManifestPath != "" {
		db, err := viewdex.OpenManifest(ctx, cfg.ManifestPath)
		if err != nil {
			logger.Error("Failed to open manifest", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := viewdex.RecordScan(ctx, db, collected); err != nil {
			logger.Error("Failed to record scan", "error", err)
			os.Exit(1)
		}
		logger.Info("Recorded scan manifest", "path", cfg.ManifestPath, "views", len(collected.Views))
	}

	if cfg.Listen == "" {
		if cfg.Watch {
			logger.Info("Entering watch mode")
			if err := appCtx.WatchAndRescan(ctx, nil); err != nil {
				logger.Error("Watch mode terminated", "error", err)
				os.Exit(1)
			}
			return
		}
		fmt.Fprintln(os.Stdout, "scan complete")
		return
	}

	server := viewdex.NewViewServer(appCtx, logger)
	viewdex.RegisterExtensions(server, collected.Extensions, logger)

	if cfg.Watch {
		go func() {
			if err := appCtx.WatchAndRescan(ctx, server); err != nil {
				logger.Error("Watch mode terminated", "error", err)
			}
		}()
	}

	logger.Info("Serving views", "listen", cfg.Listen, "base", cfg.BaseDir)
	if err := http.ListenAndServe(cfg.Listen, server.Routes()); err != nil {
		logger.Error("Server terminated", "error", err)
		os.Exit(1)
	}
}
