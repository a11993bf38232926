package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	choreQueries "github.com/felixgeelhaar/rota/internal/chores/application/queries"
	rosterQueries "github.com/felixgeelhaar/rota/internal/roster/application/queries"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current cycle and the points standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireContainer(); err != nil {
			return err
		}
		ctx := cmd.Context()

		chores, err := container.StatusHandler.Handle(ctx, choreQueries.StatusQuery{})
		if err != nil {
			return err
		}
		fmt.Println("Chores:")
		if len(chores) == 0 {
			fmt.Println("  (none)")
		}
		for _, row := range chores {
			state := "open"
			if row.Completed {
				state = "done"
			}
			who := "unassigned"
			if row.Assigned {
				who = row.AssigneeName
			}
			fmt.Printf("  %-20s %-6s %-6s %s\n", row.Name, row.Difficulty, state, who)
		}

		standings, err := container.LeaderboardHandler.Handle(ctx, rosterQueries.LeaderboardQuery{})
		if err != nil {
			return err
		}
		fmt.Println("Points:")
		if len(standings) == 0 {
			fmt.Println("  (empty roster)")
		}
		for _, row := range standings {
			fmt.Printf("  %-20s %d\n", row.Name, row.Points)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
