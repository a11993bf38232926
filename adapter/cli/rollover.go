package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	choreCommands "github.com/felixgeelhaar/rota/internal/chores/application/commands"
	rosterCommands "github.com/felixgeelhaar/rota/internal/roster/application/commands"
)

var rolloverCmd = &cobra.Command{
	Use:   "rollover",
	Short: "Close the cycle: penalize unfinished chores and clear assignments",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireContainer(); err != nil {
			return err
		}

		result, err := container.RolloverHandler.Handle(cmd.Context(), choreCommands.RolloverCycleCommand{})
		if err != nil {
			return err
		}
		if len(result.Penalized) == 0 {
			fmt.Println("Cycle closed with no penalties.")
			return nil
		}
		fmt.Printf("Cycle closed. Penalized: %s\n", strings.Join(result.Penalized, ", "))
		return nil
	},
}

var resetPointsCmd = &cobra.Command{
	Use:   "reset-points",
	Short: "Zero every member's points (monthly reset)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireContainer(); err != nil {
			return err
		}

		result, err := container.ResetPointsHandler.Handle(cmd.Context(), rosterCommands.ResetPointsCommand{})
		if err != nil {
			return err
		}
		fmt.Printf("Reset points for %d members.\n", result.MembersReset)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rolloverCmd)
	rootCmd.AddCommand(resetPointsCmd)
}
