package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/stake-plus/stackbuddy/src/actions"
)

// shutdownTimeout bounds how long running commands may take to finish.
const shutdownTimeout = 15 * time.Second

func init() {
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Connect to Discord and answer commands until interrupted",
	Args:  cobra.NoArgs,
	RunE:  runBot,
}

func runBot(cmd *cobra.Command, _ []string) error {
	cfg, db, err := loadConfig(true)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rt, err := actions.StartAll(ctx, cfg, db, log)
	if err != nil {
		return err
	}

	<-ctx.Done()
	log.Info("stackbuddy: shutting down")
	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	rt.Stop(shutCtx)
	return nil
}

