// Package main implements surgdb, the colorectal cancer audit records tool.
// It manages treatment episodes, tumour pathology, and treatments in a local
// SQLite database, and classifies TNM codes into AJCC stage groups. Stage
// groups are always computed from the stored codes at read time; they are
// never persisted.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pdsykes2512/surg-db-sub000/internal/config"
	"github.com/pdsykes2512/surg-db-sub000/internal/store"
)

var (
	// Global flags
	cfgPath string
	dbPath  string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "surgdb",
	Short: "surgdb - colorectal cancer audit records",
	Long: `surgdb manages a colorectal cancer audit database: treatment
episodes, tumour pathology with TNM staging, and treatments.

TNM codes are classified into AJCC anatomic stage groups (7th or 8th
edition) on every read. The database stores raw codes only, so a corrected
staging table immediately applies to every historical record.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(resolveConfigPath())
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.Database.Path = dbPath
		}

		logger, err = buildLogger()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func resolveConfigPath() string {
	if cfgPath != "" {
		return cfgPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "surgdb.yaml"
	}
	return filepath.Join(home, ".surgdb", "config.yaml")
}

func buildLogger() (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	if !cfg.Logging.JSON {
		zcfg = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(cfg.Logging.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}

// openStore opens the configured database. Callers own the Close.
func openStore() (*store.Store, error) {
	st, err := store.Open(cfg.Database.Path, store.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.Database.Path, err)
	}
	return st, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default ~/.surgdb/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(stageCmd)
	rootCmd.AddCommand(episodeCmd)
	rootCmd.AddCommand(tumourCmd)
	rootCmd.AddCommand(treatmentCmd)
	rootCmd.AddCommand(importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
