// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Command decomper decompiles the GLOBAL_ASM fragments of a source file with
// m2c and writes a .decomp variant holding NONMATCHING blocks.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const version = "0.1.0"

var logger *zap.Logger

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd builds the command tree and binds its flags to viper.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "decomper <source.c>",
		Short: "Fill GLOBAL_ASM placeholders with m2c output",
		Long: `decomper reads a C source file, finds its GLOBAL_ASM placeholders, resolves
the functions each assembly fragment calls against the project's headers,
adds the matching #include lines to the file's paired header, regenerates
the m2c context, and writes <source>.decomp.c with every placeholder wrapped
in an #ifndef NONMATCHING block holding m2c's output.`,
		Args:              cobra.ExactArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(); err != nil {
				return err
			}
			return initLogger(cmd, args)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: runDecomper,
	}

	// Command surface.
	rootCmd.Flags().String("m2c-path", "", "Path to the m2c.py script (required)")
	rootCmd.Flags().String("m2c-python-bin", "python3", "Python interpreter to use for m2c")

	// Project layout and tuning.
	pf := rootCmd.PersistentFlags()
	pf.String("workdir", ".", "Project root; all relative paths are resolved against it")
	pf.String("src-dir", "src", "Sources root, relative to the project root")
	pf.String("include-dir", "include", "Headers root, relative to the project root")
	pf.String("context-file", "ctx.c", "Context file passed to m2c")
	pf.String("m2ctx-path", "tools/m2ctx.py", "Path to the m2ctx.py script")
	pf.String("m2ctx-python-bin", "python3", "Python interpreter to use for m2ctx")
	pf.String("target", "mips-ido", "m2c target architecture")
	pf.String("catalog-parser", "regex", "Header prototype parser: regex or treesitter")
	pf.Bool("respect-gitignore", false, "Skip headers ignored by the include root's .gitignore")
	pf.Int("workers", 4, "Maximum concurrent m2c invocations")
	pf.Duration("timeout", 0, "Per-invocation timeout for m2c and m2ctx (0 = 2m)")
	pf.Bool("no-git", false, "Do not check headers for uncommitted changes")
	pf.BoolP("verbose", "v", false, "Enable debug logging")

	for _, name := range []string{"m2c-path", "m2c-python-bin"} {
		viper.BindPFlag(name, rootCmd.Flags().Lookup(name))
	}
	for _, name := range []string{
		"workdir", "src-dir", "include-dir", "context-file", "m2ctx-path",
		"m2ctx-python-bin", "target", "catalog-parser", "respect-gitignore",
		"workers", "timeout", "no-git", "verbose",
	} {
		viper.BindPFlag(name, pf.Lookup(name))
	}

	// Env vars: DECOMPER_M2C_PATH, DECOMPER_WORKERS, etc.
	viper.SetEnvPrefix("DECOMPER")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// loadConfig reads the optional .decomper.yaml from the project root. It runs
// after flag parsing so --workdir selects the file; workdir itself cannot be
// set from the file.
func loadConfig() error {
	viper.SetConfigName(".decomper")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(viper.GetString("workdir"))
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

// initLogger builds the process logger; debug level with --verbose.
func initLogger(cmd *cobra.Command, args []string) error {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true
	if viper.GetBool("verbose") {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}

	var err error
	logger, err = config.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// newVersionCmd creates the "version" command.
func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print decomper version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "decomper %s\n", version)
		},
	}
}
