package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/five82/showcase/internal/app"
	"github.com/five82/showcase/internal/site"
	"github.com/five82/showcase/internal/ui"
)

var (
	flagShowStyle string
	flagShowWidth int
)

var showCmd = &cobra.Command{
	Use:   "show <games|news> <id>",
	Short: "Print one game or news item",
	Long: `Fetches a single item, through the detail cache, and renders it as
markdown.

Examples:
  showcase show games 42
  showcase show news 7 --style notty`,
	Args: cobra.ExactArgs(2),
	RunE: runShow,
}

func init() {
	showCmd.Flags().StringVar(&flagShowStyle, "style", "auto", "Markdown style: auto, light, dark or notty")
	showCmd.Flags().IntVar(&flagShowWidth, "width", 80, "Wrap width")
}

func runShow(cmd *cobra.Command, args []string) error {
	resource, err := site.ParseResource(args[0])
	if err != nil {
		return err
	}
	id, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid id %q", args[1])
	}

	env, err := app.Setup(appOptions(), os.Stderr)
	if err != nil {
		return err
	}
	defer env.Close()

	item, err := env.Details.FetchDetail(cmd.Context(), resource, id)
	if err != nil {
		return fmt.Errorf("fetch %s %d: %w", resource, id, err)
	}
	out, err := ui.RenderItem(item, flagShowStyle, flagShowWidth)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
