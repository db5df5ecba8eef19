// Package main provides the CLI entry point for chainfmt.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"chainfmt/internal/config"
	"chainfmt/internal/logging"
	"chainfmt/pkg/chain"
	"chainfmt/pkg/chain/server"
)

var (
	configDir  string
	debug      bool
	outputPath string
	sheetName  string
	serveAddr  string
)

func main() {
	var (
		cfg *config.Config
		log zerolog.Logger
	)

	rootCmd := &cobra.Command{
		Use:   "chainfmt",
		Short: "Format option-chain exports",
		Long: `chainfmt reads an option-chain spreadsheet export, computes the MONEY
and BEP columns for both sides, and writes a styled workbook for review.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configDir)
			if err != nil {
				return err
			}
			log = logging.New(logging.Config{
				Level:      cfg.Log.Level,
				Console:    cfg.Log.Console,
				File:       cfg.Log.File,
				FilePath:   cfg.Log.FilePath,
				MaxSize:    cfg.Log.MaxSize,
				MaxBackups: cfg.Log.MaxBackups,
				MaxAge:     cfg.Log.MaxAge,
			})
			if debug {
				logging.SetDebugLevel()
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default: ~/.config/chainfmt)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	convertCmd := &cobra.Command{
		Use:   "convert [input.xlsx]",
		Short: "Convert one export into a styled workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cfg, log, args[0])
		},
	}
	convertCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (default: <input>_processed.xlsx)")
	convertCmd.Flags().StringVar(&sheetName, "sheet", "", "input sheet to read (default: first sheet)")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the upload/preview web surface",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cfg, log)
		},
	}
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default: config server.addr)")

	rootCmd.AddCommand(convertCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runConvert(cfg *config.Config, log zerolog.Logger, inputPath string) error {
	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	renderOpts, err := cfg.RenderOptions()
	if err != nil {
		return err
	}

	wb, err := chain.Convert(inputPath, chain.Options{Sheet: sheetName}, renderOpts)
	if err != nil {
		return err
	}
	defer wb.Close()

	out := outputPath
	if out == "" {
		base := strings.TrimSuffix(inputPath, filepath.Ext(inputPath))
		out = base + "_processed.xlsx"
	}

	if err := wb.SaveAs(out); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}

	log.Info().Str("input", inputPath).Str("output", out).Msg("converted")
	fmt.Println("Saved", out)
	return nil
}

func runServe(cfg *config.Config, log zerolog.Logger) error {
	renderOpts, err := cfg.RenderOptions()
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = cfg.Server.Addr
	}

	srv := server.New(log, chain.Options{Sheet: sheetName}, renderOpts)
	return srv.ListenAndServe(addr)
}
