// Package cli is the cobra command surface for running and operating the bot.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/rota/internal/app"
)

var (
	verbose   bool
	logger    *slog.Logger
	container *app.Container
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rota",
	Short: "Rota - group chore coordination bot",
	Long: `Rota keeps a shared household running: it rotates chores across the
group every cycle, scores completions and misses, and tracks who buys
what when supplies run out.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// ExecuteContext runs the root command under the given context so long-running
// subcommands stop on shutdown signals.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetLogger injects the process logger.
func SetLogger(l *slog.Logger) {
	logger = l
}

// SetContainer injects the dependency container.
func SetContainer(c *app.Container) {
	container = c
}

func requireContainer() error {
	if container == nil {
		return fmt.Errorf("not connected: check DATABASE_URL and related settings")
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
