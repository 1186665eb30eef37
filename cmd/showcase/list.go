package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/five82/showcase/internal/app"
	"github.com/five82/showcase/internal/pagination"
	"github.com/five82/showcase/internal/site"
)

var (
	flagListPages  int
	flagListFormat string
)

var listCmd = &cobra.Command{
	Use:   "list <games|news>",
	Short: "Print items from a paginated listing",
	Long: `Fetches pages of games or news the same way the list pages do,
dropping items already seen, and prints the merged result.

Examples:
  showcase list games
  showcase list news --pages 0 --format json`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVar(&flagListPages, "pages", 1, "Number of pages to fetch (0 = all)")
	listCmd.Flags().StringVar(&flagListFormat, "format", "text", "Output format: text, json or yaml")
}

type listOutput struct {
	Resource site.Resource   `json:"resource" yaml:"resource"`
	Pages    int             `json:"pages" yaml:"pages"`
	HasMore  bool            `json:"hasMore" yaml:"has_more"`
	Items    []site.CardItem `json:"items" yaml:"items"`
}

func runList(cmd *cobra.Command, args []string) error {
	resource, err := site.ParseResource(args[0])
	if err != nil {
		return err
	}
	switch flagListFormat {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown format %q (want text, json or yaml)", flagListFormat)
	}

	env, err := app.Setup(appOptions(), os.Stderr)
	if err != nil {
		return err
	}
	defer env.Close()

	out, err := fetchPages(cmd.Context(), env.Client, resource, env.Config.PageSize, flagListPages, env.Logger)
	if err != nil {
		return err
	}
	return writeList(cmd.OutOrStdout(), flagListFormat, out)
}

// fetchPages loads up to limit pages of resource, or every page when limit
// is 0, stopping early once the listing is exhausted.
func fetchPages(ctx context.Context, pages site.PageFetcher, resource site.Resource, pageSize, limit int, logger *log.Logger) (listOutput, error) {
	engine := pagination.New(pages, resource, pageSize)
	defer engine.Close()
	for fetched := 0; limit <= 0 || fetched < limit; fetched++ {
		snap := engine.Snapshot()
		if !snap.HasMore {
			break
		}
		if err := engine.LoadNext(ctx); err != nil {
			logger.Warn("page load failed", "resource", resource, "page", snap.Page, "error", err)
			return listOutput{}, fmt.Errorf("fetch %s page %d: %w", resource, snap.Page, err)
		}
		logger.Debug("page loaded", "resource", resource, "page", snap.Page)
	}

	snap := engine.Snapshot()
	return listOutput{
		Resource: resource,
		Pages:    snap.Page - 1,
		HasMore:  snap.HasMore,
		Items:    snap.Items,
	}, nil
}

func writeList(w io.Writer, format string, out listOutput) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	}

	if len(out.Items) == 0 {
		fmt.Fprintln(w, "Nothing to show yet.")
		return nil
	}
	fmt.Fprintf(w, "  %-6s  %-10s  %s\n", "ID", "Published", "Title")
	fmt.Fprintf(w, "  %-6s  %-10s  %s\n", "--", "---------", "-----")
	for _, item := range out.Items {
		fmt.Fprintf(w, "  %-6d  %-10s  %s\n", item.ID, item.Published, item.Title)
	}
	fmt.Fprintln(w)
	if out.HasMore {
		fmt.Fprintf(w, "%d items from %d pages; more available.\n", len(out.Items), out.Pages)
	} else {
		fmt.Fprintf(w, "All %s loaded.\n", out.Resource)
	}
	return nil
}
