package main

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/five82/showcase/internal/config"
	"github.com/five82/showcase/internal/logtail"
)

var (
	flagLogLines int
	flagLogLevel string
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the application log",
	Long: `Prints the tail of the showcase log file, colourised by level.

Examples:
  showcase logs
  showcase logs --lines 0 --level warn`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().IntVar(&flagLogLines, "lines", 200, "Number of trailing lines (0 = all)")
	logsCmd.Flags().StringVar(&flagLogLevel, "level", "debug", "Minimum level: debug, info, warn or error")
}

func runLogs(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return err
	}
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	path := cfg.LogPath()
	lines, err := logtail.Read(path, flagLogLines)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No log entries at %s\n", path)
		return nil
	}
	for _, entry := range logtail.Filter(lines, level) {
		fmt.Fprintln(cmd.OutOrStdout(), entry.Format())
	}
	return nil
}
