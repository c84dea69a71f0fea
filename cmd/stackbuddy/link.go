package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stake-plus/stackbuddy/src/data"
)

func init() {
	rootCmd.AddCommand(linkCmd)
}

var linkCmd = &cobra.Command{
	Use:   "link <discord-user-id> <stackup-user-id>",
	Short: "Map a Discord account to a StackUp user (requires MYSQL_DSN)",
	Args:  cobra.ExactArgs(2),
	RunE:  runLink,
}

func runLink(cmd *cobra.Command, args []string) error {
	stackUpID, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("stackup user id %q: %w", args[1], err)
	}

	cfg, db, err := loadConfig(true)
	if err != nil {
		return err
	}
	if db == nil {
		return errors.New("link: MYSQL_DSN is not set")
	}

	links := data.NewIdentityLinks(db, cfg.DefaultUserID)
	if err := links.Link(cmd.Context(), args[0], stackUpID); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "linked %s -> %d\n", args[0], stackUpID)
	return nil
}
