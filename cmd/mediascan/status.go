package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show server status",
	Args:  cobra.NoArgs,
	RunE:  runStatusCmd,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatusCmd(cmd *cobra.Command, _ []string) error {
	client := NewClient(serverURL)
	status, err := client.Status()
	if err != nil {
		return fmt.Errorf("status check failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, status)
	}

	printStatus(out, serverURL, status)
	return nil
}

func printStatus(w io.Writer, server string, s *StatusResponse) {
	_, _ = fmt.Fprintf(w, "mediascand v%s | Server: %s | Status: %s\n\n", s.Version, server, s.Status)

	backends := "none"
	if len(s.Backends) > 0 {
		backends = strings.Join(s.Backends, ", ")
	}
	_, _ = fmt.Fprintf(w, "  Channel:   %s\n", s.Channel)
	_, _ = fmt.Fprintf(w, "  Backends:  %s\n", backends)
	_, _ = fmt.Fprintf(w, "  Pending:   %d\n", s.Pending)
	if s.IndexedFiles != nil {
		_, _ = fmt.Fprintf(w, "  Indexed:   %d files\n", *s.IndexedFiles)
	}

	if s.Plex != nil {
		if s.Plex.Connected {
			_, _ = fmt.Fprintf(w, "  Plex:      connected (%s v%s)\n", s.Plex.Name, s.Plex.Version)
		} else {
			_, _ = fmt.Fprintf(w, "  Plex:      FAIL %s\n", s.Plex.Error)
		}
	}
}
