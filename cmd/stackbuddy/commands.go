package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/stake-plus/stackbuddy/src/actions/commands"
)

func init() {
	rootCmd.AddCommand(commandsCmd)
}

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List the chat commands the bot answers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return printCommands(cmd.OutOrStdout())
	},
}

func printCommands(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TOKEN\tANIMATED\tCOLOR")
	for _, c := range commands.All() {
		fmt.Fprintf(tw, "%s\t%t\t#%06X\n", c.Token, c.Animate, c.Color)
	}
	return tw.Flush()
}
