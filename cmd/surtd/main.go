// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ManuGH/surtd/internal/api"
	"github.com/ManuGH/surtd/internal/config"
	"github.com/ManuGH/surtd/internal/index"
	xglog "github.com/ManuGH/surtd/internal/log"
	"github.com/ManuGH/surtd/internal/version"
)

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	noIndex := flag.Bool("no-index", false, "run without the key index store")
	exportPath := flag.String("export", "", "export the index to the given file and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		os.Exit(0)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "surtd: %v\n", err)
		os.Exit(1)
	}

	xglog.Configure(xglog.Config{
		Level:   cfg.LogLevel,
		Service: "surtd",
	})
	logger := xglog.WithComponent("daemon")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var store *index.Store
	if !*noIndex && !cfg.IndexDisabled {
		store, err = index.Open(filepath.Join(cfg.DataDir, "index"), cfg.TransformOptions())
		if err != nil {
			logger.Error().Err(err).Msg("open index")
			os.Exit(1)
		}
		defer func() {
			if err := store.Close(); err != nil {
				logger.Error().Err(err).Msg("close index")
			}
		}()
	}

	if *exportPath != "" {
		if store == nil {
			fmt.Fprintln(os.Stderr, "surtd: -export requires the index store")
			os.Exit(1)
		}
		n, err := store.Export(ctx, *exportPath)
		if err != nil {
			logger.Error().Err(err).Msg("export index")
			os.Exit(1)
		}
		logger.Info().Int(xglog.FieldCount, n).Msg("export complete")
		return
	}

	logger.Info().
		Str(xglog.FieldProfile, cfg.Profile).
		Str("version", version.Version).
		Msg("starting")

	if err := api.NewServer(cfg, store).Run(ctx); err != nil {
		logger.Error().Err(err).Msg("server failed")
		os.Exit(1)
	}
}
