package commands

import (
	"fmt"
	"os"

	"skillsync-backend/services/leaderboard"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <category>",
	Short: "Pretty-prints a previously synced snapshot.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		snapshot, err := leaderboard.ReadSnapshot(cfg.OutputDir, args[0])
		if err != nil {
			return fmt.Errorf("failed to read snapshot: %w", err)
		}

		t := table.NewWriter()
		t.SetStyle(table.StyleRounded)
		t.SetOutputMirror(os.Stdout)
		// no rank column, rank is always absent in snapshots
		t.AppendHeader(table.Row{"skill", "owner/repo", "installs", "url"})
		for _, row := range snapshot.Rows {
			t.AppendRow(table.Row{row.SkillName, row.OwnerRepo, row.Installs, row.PageURL})
		}
		t.Render()

		fmt.Printf("%d rows as of %s\n", snapshot.Count, snapshot.Timestamp)
		return nil
	},
}
