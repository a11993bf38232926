package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	choreCommands "github.com/felixgeelhaar/rota/internal/chores/application/commands"
)

var assignCmd = &cobra.Command{
	Use:   "assign",
	Short: "Draw a new chore assignment for the current roster",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireContainer(); err != nil {
			return err
		}

		result, err := container.RunAssignmentHandler.Handle(cmd.Context(), choreCommands.RunAssignmentCommand{})
		if err != nil {
			return err
		}
		if result.Empty() {
			fmt.Println("Nothing to assign: the roster or the chore pool is empty.")
			return nil
		}
		for _, pick := range result.Picks {
			if pick.Assigned {
				fmt.Printf("%s -> %s\n", pick.MemberName, pick.ChoreName)
			} else {
				fmt.Printf("%s -> (no chore)\n", pick.MemberName)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(assignCmd)
}
