package cmd

import (
	"fmt"
	"os"

	"zotcurator/core/config"
	"zotcurator/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags overriding resolved configuration
	flagLibraryID   string
	flagAPIKey      string
	flagLibraryType string
	flagBBTDB       string
	flagLogLevel    string
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "zotc",
	Short: "Zotero collection curation utility",
	Long: `zotc extracts citation keys from documents, resolves them against a
Better BibTeX database, and reconciles Zotero collections with the result.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		// Use the application's standard logger for error reporting
		// We default to console format to match user expectations (CLI tool)
		cfg := &logger.Config{
			Level:  "debug",
			Format: "console",
		}

		l, logErr := logger.New(cfg)
		if logErr == nil {
			l.Error("command failed", zap.Error(err))
			_ = l.Sync()
		} else {
			// Absolute fallback if logger creation fails (rare)
			fmt.Println(err)
		}
		os.Exit(1)
	}
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&flagLibraryID, "library-id", "i", "", "Zotero library ID (or $ZOTERO_LIBRARY_ID)")
	RootCmd.PersistentFlags().StringVarP(&flagAPIKey, "api-key", "k", "", "Zotero API key (or $ZOTERO_API_KEY)")
	RootCmd.PersistentFlags().StringVar(&flagLibraryType, "library-type", "", "Library type: user or group (or $ZOTERO_LIBRARY_TYPE)")
	RootCmd.PersistentFlags().StringVarP(&flagBBTDB, "bbt-db", "b", "", "Path to the Better BibTeX SQLite database (or $BBT_DB_PATH)")
	RootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

// loadConfig resolves configuration and applies flag overrides on top.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if flagLibraryID != "" {
		cfg.Zotero.LibraryID = flagLibraryID
	}
	if flagAPIKey != "" {
		cfg.Zotero.APIKey = flagAPIKey
	}
	if flagLibraryType != "" {
		cfg.Zotero.LibraryType = flagLibraryType
	}
	if flagBBTDB != "" {
		cfg.BBT.DBPath = flagBBTDB
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	return cfg, nil
}

// newLogger builds the run-scoped logger from configuration.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.WithRunID(l), nil
}
