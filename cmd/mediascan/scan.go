package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediascan/internal/events"
)

var scanCmd = &cobra.Command{
	Use:   "scan <path>...",
	Short: "Request a media rescan of one or more files",
	Long: `Send a scanFile call for each path. Relative paths are made absolute
unless --raw is given. The server queues the rescan and returns at once;
with --wait the command blocks until every backend has finished.

Examples:
  mediascan scan ~/Music/song.mp3
  mediascan scan --wait --timeout 1m ~/Music/*.flac
  mediascan scan --raw /sdcard/DCIM/a.jpg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScanCmd,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().Bool("raw", false, "Send paths exactly as given")
	scanCmd.Flags().Bool("wait", false, "Wait for each scan to finish")
	scanCmd.Flags().Duration("timeout", 30*time.Second, "Maximum time to wait per path")
}

func runScanCmd(cmd *cobra.Command, args []string) error {
	raw, _ := cmd.Flags().GetBool("raw")
	wait, _ := cmd.Flags().GetBool("wait")
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if wait && timeout <= 0 {
		return fmt.Errorf("--timeout must be positive")
	}
	client := NewClient(serverURL)
	out := cmd.OutOrStdout()

	var errs []error
	for _, p := range args {
		path := p
		if !raw {
			abs, err := filepath.Abs(p)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", p, err))
				continue
			}
			path = abs
		}

		// Server and client clocks are assumed close; a second of slack covers drift.
		since := time.Now().Add(-time.Second)
		resp, err := client.ScanFile(channelName, path)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}

		if jsonOutput {
			result := map[string]any{"path": path, "response": resp}
			if wait && resp.Err() == nil && !resp.IsNotImplemented() {
				waited, err := client.Wait(path, since, timeout)
				if err != nil {
					errs = append(errs, fmt.Errorf("%s: %w", path, err))
					continue
				}
				result["wait"] = waited
			}
			if err := printJSON(out, result); err != nil {
				return err
			}
			continue
		}
		if err := resp.Err(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		if resp.IsNotImplemented() {
			errs = append(errs, fmt.Errorf("%s: server does not implement scanFile", path))
			continue
		}
		if !wait {
			_, _ = fmt.Fprintf(out, "queued %s\n", path)
			continue
		}

		waited, err := client.Wait(path, since, timeout)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", path, err))
			continue
		}
		if err := printWaitResult(out, path, waited, timeout); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// printWaitResult reports how a scan ended and returns an error unless it completed.
func printWaitResult(out io.Writer, path string, w *WaitResponse, timeout time.Duration) error {
	if !w.Done || w.Event == nil {
		return fmt.Errorf("%s: no result within %s", path, timeout)
	}

	switch w.Event.Type {
	case events.EventScanCompleted:
		_, _ = fmt.Fprintf(out, "indexed %s (%dms)\n", path, w.Event.DurationMS)
		return nil
	case events.EventScanFailed:
		return fmt.Errorf("%s: scan failed: %s", path, w.Event.Reason)
	case events.EventScanDropped:
		return fmt.Errorf("%s: scan dropped: %s", path, w.Event.Reason)
	default:
		return fmt.Errorf("%s: unexpected event %q", path, w.Event.Type)
	}
}
