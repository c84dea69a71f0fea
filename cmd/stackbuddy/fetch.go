package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stake-plus/stackbuddy/src/actions"
	"github.com/stake-plus/stackbuddy/src/actions/commands"
	"github.com/stake-plus/stackbuddy/src/render"
)

var fetchUser int

var fetchKinds = []string{"username", "balance", "profile", "campaigns", "pathways", "hackathons"}

func init() {
	fetchCmd.Flags().IntVar(&fetchUser, "user", 0, "StackUp user id (default DEFAULT_USER_ID)")
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <" + strings.Join(fetchKinds, "|") + ">",
	Short: "Fetch one StackUp resource and print the text the bot would post",
	Long: `Fetch one StackUp resource and print the rendered text.

Example:
  stackbuddy fetch balance --user 42`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: fetchKinds,
	RunE:      runFetch,
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, _, err := loadConfig(false)
	if err != nil {
		return err
	}
	userID := cfg.DefaultUserID
	if fetchUser > 0 {
		userID = fetchUser
	}

	text, err := fetchText(cmd.Context(), actions.NewStackUpClient(cfg), args[0], userID)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), text)
	return nil
}

func fetchText(ctx context.Context, src commands.Source, kind string, userID int) (string, error) {
	switch kind {
	case "username":
		u, err := src.GetUser(ctx, userID)
		if err != nil {
			return "", err
		}
		return render.User(u), nil
	case "balance":
		b, err := src.GetUserBalance(ctx, userID)
		if err != nil {
			return "", err
		}
		return render.Balance(b), nil
	case "profile":
		p, err := src.GetUserProgress(ctx, userID)
		if err != nil {
			return "", err
		}
		return render.Progress(p), nil
	case "campaigns":
		items, err := src.FeaturedCampaigns(ctx)
		if err != nil {
			return "", err
		}
		return render.Campaigns(items), nil
	case "pathways":
		items, err := src.FeaturedPathways(ctx)
		if err != nil {
			return "", err
		}
		return render.Pathways(items), nil
	case "hackathons":
		items, err := src.FeaturedHackathons(ctx)
		if err != nil {
			return "", err
		}
		return render.Hackathons(items), nil
	default:
		return "", fmt.Errorf("unknown resource %q (want one of %s)", kind, strings.Join(fetchKinds, ", "))
	}
}
