package commands

import (
	"context"
	"fmt"
	"os"

	"skillsync-backend/lib/configutil"
	"skillsync-backend/lib/telemetry"
	"skillsync-backend/services/leaderboard"

	"dario.cat/mergo"
	"github.com/spf13/cobra"
)

var verbose *bool

var rootCmd = &cobra.Command{
	Use:   "skillsync-cli",
	Short: "skillsync-cli syncs the skills.sh leaderboards into local CSV/JSON snapshots.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(*verbose)
	},
	// errors are reported by main after telemetry shutdown
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging.")
}

func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// loads skillsync.json5 (with .local overrides), filling anything
// unset from the built-in defaults; a missing file is just an
// all-defaults run.
func loadConfig() (leaderboard.Config, error) {
	cfg, err := configutil.ReadConfig[leaderboard.Config]("skillsync.json5")
	if os.IsNotExist(err) {
		return leaderboard.DefaultConfig(), nil
	}
	if err != nil {
		return leaderboard.Config{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := mergo.Merge(&cfg, leaderboard.DefaultConfig()); err != nil {
		return leaderboard.Config{}, fmt.Errorf("failed to apply config defaults: %w", err)
	}
	return cfg, nil
}
