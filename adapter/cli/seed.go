package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	choreCommands "github.com/felixgeelhaar/rota/internal/chores/application/commands"
	"github.com/felixgeelhaar/rota/internal/chores/domain/chore"
	pantryCommands "github.com/felixgeelhaar/rota/internal/pantry/application/commands"
)

var (
	seedChores string
	seedItems  string
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed chores and tracked items",
	Long: `Seed chores and tracked items without going through the chat.

Chores are "name:difficulty" pairs, items plain names, both comma-separated:

  rota seed --chores "dishes:easy,bathroom:hard" --items "sponges,trash bags"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := requireContainer(); err != nil {
			return err
		}
		ctx := cmd.Context()

		for _, entry := range splitList(seedChores) {
			name, diffStr, ok := strings.Cut(entry, ":")
			if !ok {
				return fmt.Errorf("invalid chore %q, want name:difficulty", entry)
			}
			difficulty, err := chore.ParseDifficulty(strings.TrimSpace(diffStr))
			if err != nil {
				return fmt.Errorf("chore %q: %w", entry, err)
			}
			err = container.CreateChoreHandler.Handle(ctx, choreCommands.CreateChoreCommand{
				Name:       strings.TrimSpace(name),
				Difficulty: difficulty,
			})
			if err != nil {
				return fmt.Errorf("chore %q: %w", entry, err)
			}
			fmt.Printf("chore: %s (%s)\n", strings.TrimSpace(name), difficulty)
		}

		for _, name := range splitList(seedItems) {
			err := container.TrackItemHandler.Handle(ctx, pantryCommands.TrackItemCommand{Name: name})
			if err != nil {
				return fmt.Errorf("item %q: %w", name, err)
			}
			fmt.Printf("item: %s\n", name)
		}
		return nil
	},
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func init() {
	seedCmd.Flags().StringVar(&seedChores, "chores", "", "comma-separated name:difficulty pairs")
	seedCmd.Flags().StringVar(&seedItems, "items", "", "comma-separated item names")
	rootCmd.AddCommand(seedCmd)
}
