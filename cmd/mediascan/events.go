package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show recent scan events",
	RunE:  runEventsCmd,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.Flags().IntP("limit", "n", 20, "Number of events to show")
	eventsCmd.Flags().String("path", "", "Only show events for this file")
}

func runEventsCmd(cmd *cobra.Command, _ []string) error {
	limit, _ := cmd.Flags().GetInt("limit")
	path, _ := cmd.Flags().GetString("path")

	client := NewClient(serverURL)
	events, err := client.Events(limit, path)
	if err != nil {
		return fmt.Errorf("failed to fetch events: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, events)
	}

	if len(events.Items) == 0 {
		_, _ = fmt.Fprintln(out, "No events")
		return nil
	}

	_, _ = fmt.Fprintf(out, "Recent Events (%d):\n\n", events.Total)
	_, _ = fmt.Fprintf(out, "  %-12s %-16s %s\n", "TIME", "TYPE", "PATH")
	_, _ = fmt.Fprintln(out, "  "+strings.Repeat("-", 55))

	for _, e := range events.Items {
		t, _ := time.Parse(time.RFC3339, e.OccurredAt)
		_, _ = fmt.Fprintf(out, "  %-12s %-16s %s\n", formatTimeAgo(t), e.EventType, e.Path)
	}

	return nil
}
