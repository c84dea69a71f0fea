// Package main provides the stackbuddy CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/stake-plus/stackbuddy/src/config"
	"github.com/stake-plus/stackbuddy/src/data"
	"github.com/stake-plus/stackbuddy/src/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

var envFile string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stackbuddy",
	Short: "Discord bot for StackUp users",
	Long: `stackbuddy answers "!" commands in Discord with StackUp profile,
balance, progress and featured content.

Configuration comes from the environment (optionally a .env file) and,
when MYSQL_DSN is set, from the settings table.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "Path to a .env file (ignored when missing)")
	rootCmd.Version = Version
}

// loadConfig reads the env file, opens MySQL when configured and loads the
// resulting configuration. The returned db is nil without MYSQL_DSN.
func loadConfig(withDB bool) (config.Config, *gorm.DB, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return config.Config{}, nil, err
	}

	var db *gorm.DB
	if dsn := data.GetMySQLDSN(); withDB && dsn != "" {
		conn, err := data.ConnectMySQL(dsn)
		if err != nil {
			return config.Config{}, nil, err
		}
		db = conn
	}

	cfg, err := config.Load(db)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, db, nil
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return logging.New(cfg.LogLevel, cfg.LogFormat)
}
