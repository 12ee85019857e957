// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/petar-djukic/decomper/pkg/decomper"
)

// runDecomper processes the source file named by the single argument.
func runDecomper(cmd *cobra.Command, args []string) error {
	cfg := configFromViper()
	cfg.Logger = logger
	cfg.Report = cmd.OutOrStdout()

	d, err := decomper.New(cfg)
	if err != nil {
		return fmt.Errorf("initialization failed: %w", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	result, err := d.Run(ctx, args[0])
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}

	if logger != nil {
		logger.Debug("run complete",
			zap.Int("found", len(result.Found)),
			zap.Int("missing", len(result.Missing)),
			zap.Int("decompiled", result.Decompiled),
			zap.Int("failed", result.Failed),
			zap.Int("not_found", result.NotFound))
	}
	return nil
}

// configFromViper reads flags, environment, and config file into a Config.
func configFromViper() decomper.Config {
	return decomper.Config{
		WorkDir:          viper.GetString("workdir"),
		M2CPath:          viper.GetString("m2c-path"),
		M2CPython:        viper.GetString("m2c-python-bin"),
		M2CtxPath:        viper.GetString("m2ctx-path"),
		M2CtxPython:      viper.GetString("m2ctx-python-bin"),
		ContextFile:      viper.GetString("context-file"),
		SrcDir:           viper.GetString("src-dir"),
		IncludeDir:       viper.GetString("include-dir"),
		Target:           viper.GetString("target"),
		CatalogParser:    viper.GetString("catalog-parser"),
		RespectGitignore: viper.GetBool("respect-gitignore"),
		Workers:          viper.GetInt("workers"),
		Timeout:          viper.GetDuration("timeout"),
		NoGit:            viper.GetBool("no-git"),
	}
}
