package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediascan/internal/channel"
)

var callCmd = &cobra.Command{
	Use:   "call <method> [key=value...]",
	Short: "Send a raw method call over the channel",
	Long: `Send an arbitrary method call and print the response envelope.

Arguments are key=value pairs and are sent as strings. Use key:=json to
send a raw JSON value (number, null, object).

Examples:
  mediascan call scanFile path=/sdcard/DCIM/a.jpg
  mediascan call scanFile path:=null
  mediascan call rescan`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCallCmd,
}

func init() {
	rootCmd.AddCommand(callCmd)
}

func runCallCmd(cmd *cobra.Command, args []string) error {
	arguments, err := parseCallArgs(args[1:])
	if err != nil {
		return err
	}

	client := NewClient(serverURL)
	resp, err := client.Call(channelName, channel.Request{Method: args[0], Arguments: arguments})
	if err != nil {
		return fmt.Errorf("call failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, resp)
	}
	printCallResponse(out, args[0], resp)
	return nil
}

// parseCallArgs turns key=value and key:=json pairs into call arguments.
func parseCallArgs(pairs []string) (map[string]any, error) {
	arguments := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		if key, raw, ok := strings.Cut(pair, ":="); ok && !strings.Contains(key, "=") {
			var v any
			if err := json.Unmarshal([]byte(raw), &v); err != nil {
				return nil, fmt.Errorf("argument %s: invalid JSON: %w", key, err)
			}
			arguments[key] = v
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid argument %q (expected key=value)", pair)
		}
		arguments[key] = value
	}
	return arguments, nil
}

func printCallResponse(w io.Writer, method string, resp *channel.Response) {
	switch resp.Status {
	case channel.StatusSuccess:
		if resp.Result != nil {
			_, _ = fmt.Fprintf(w, "success: %v\n", resp.Result)
		} else {
			_, _ = fmt.Fprintln(w, "success")
		}
	case channel.StatusError:
		if resp.Error != nil {
			_, _ = fmt.Fprintf(w, "error: %s (%s)\n", resp.Error.Message, resp.Error.Code)
		} else {
			_, _ = fmt.Fprintln(w, "error")
		}
	case channel.StatusNotImplemented:
		_, _ = fmt.Fprintf(w, "not implemented: %s\n", method)
		if hint := channel.Suggest(method); hint != "" {
			_, _ = fmt.Fprintf(w, "did you mean %q?\n", hint)
		}
	default:
		_, _ = fmt.Fprintf(w, "unknown response status %q\n", resp.Status)
	}
}
