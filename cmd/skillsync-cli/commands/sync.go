package commands

import (
	"fmt"
	"log/slog"

	"skillsync-backend/lib/scrapers/skillssh"
	"skillsync-backend/services/leaderboard"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(syncCmd)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetches every leaderboard category and writes its CSV/JSON snapshot.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		client, err := skillssh.NewClient(skillssh.ClientOptions{
			UserAgent: cfg.UserAgent,
			Timeout:   cfg.Timeout(),
		})
		if err != nil {
			return fmt.Errorf("failed to initialize client: %w", err)
		}

		service := leaderboard.NewService(client, cfg)
		outcomes := service.SyncAll(ctx)

		failed := 0
		for _, outcome := range outcomes {
			if outcome.Err != nil {
				failed++
			}
		}
		slog.Info("done", "categories", len(outcomes), "failed", failed)

		// partial failure still exits zero, only a run where
		// nothing synced is reported as a failure
		if failed == len(outcomes) {
			return fmt.Errorf("all %d categories failed to sync", failed)
		}
		return nil
	},
}
