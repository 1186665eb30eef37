// showcase is a terminal browser for the showcase site backend.
//
// Usage:
//
//	showcase [games|news]            - Browse the site (home page by default)
//	showcase list <games|news>       - Print items from a paginated listing
//	showcase show <games|news> <id>  - Print one item
//	showcase logs                    - Show the application log
//
// Global flags:
//
//	--config <path>  - Config file (default: ~/.config/showcase/config.toml)
//	--api <url>      - Override the backend API base URL
//	--debug          - Log at debug level
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/showcase/internal/app"
	"github.com/five82/showcase/internal/site"
)

var (
	// Global flags
	flagConfig string
	flagAPI    string
	flagDebug  bool
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "showcase: %v\n", err)
		return 1
	}
	return 0
}

var rootCmd = &cobra.Command{
	Use:   "showcase [games|news]",
	Short: "Browse the showcase site in your terminal",
	Long: `showcase renders the site's home page, game and news listings and
item pages in the terminal.

Examples:
  showcase
  showcase games
  showcase list news --pages 2 --format yaml
  showcase show games 42
  showcase logs --level warn`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBrowse,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", "", "Backend API base URL (overrides api_url)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(logsCmd)
}

func appOptions() app.Options {
	return app.Options{
		ConfigPath: flagConfig,
		APIURL:     flagAPI,
		Debug:      flagDebug,
	}
}

func runBrowse(cmd *cobra.Command, args []string) error {
	opts := appOptions()
	if len(args) == 1 {
		resource, err := site.ParseResource(args[0])
		if err != nil {
			return err
		}
		opts.Start = resource
	}
	return app.Run(cmd.Context(), opts)
}
