package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediascan/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configTestCmd = &cobra.Command{
	Use:   "test [path]",
	Short: "Validate configuration file",
	Long:  "Validates config.toml syntax, required fields, and environment variable substitution without starting the server.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigTest,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configTestCmd)
}

func runConfigTest(cmd *cobra.Command, args []string) error {
	var path string
	if len(args) > 0 {
		path = args[0]
	} else {
		var err error
		if path, err = config.Discover(); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "Validating %s...\n\n", path)

	cfg, err := config.Load(path)
	if err != nil {
		var configErr *config.ConfigError
		if errors.As(err, &configErr) {
			printConfigErrors(out, configErr)
			return errors.New("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	printConfigSummary(out, cfg)
	_, _ = fmt.Fprintln(out, "\nConfiguration valid!")
	return nil
}

func printConfigErrors(w io.Writer, e *config.ConfigError) {
	if len(e.Missing) > 0 {
		_, _ = fmt.Fprintln(w, "Missing environment variables:")
		for _, m := range e.Missing {
			_, _ = fmt.Fprintf(w, "  - %s\n", m)
		}
		_, _ = fmt.Fprintln(w)
	}
	if len(e.Errors) > 0 {
		_, _ = fmt.Fprintln(w, "Validation errors:")
		for _, msg := range e.Errors {
			_, _ = fmt.Fprintf(w, "  - %s\n", msg)
		}
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	_, _ = fmt.Fprintf(w, "Server:   %s:%d (log %s)\n", cfg.Server.Host, cfg.Server.Port, cfg.Server.LogLevel)
	_, _ = fmt.Fprintf(w, "Database: %s\n", cfg.Database.Path)
	_, _ = fmt.Fprintf(w, "Channel:  %s\n", cfg.Channel.Name)
	_, _ = fmt.Fprintf(w, "Scanner:  %d workers, queue %d, timeout %s\n", cfg.Scanner.Workers, cfg.Scanner.QueueSize, cfg.Scanner.Timeout)
	if cfg.Scanner.Local.Enabled {
		_, _ = fmt.Fprintf(w, "Local:    enabled, %d roots\n", len(cfg.Scanner.Local.Roots))
	} else {
		_, _ = fmt.Fprintln(w, "Local:    disabled")
	}
	if cfg.Plex != nil {
		_, _ = fmt.Fprintf(w, "Plex:     %s\n", cfg.Plex.URL)
	} else {
		_, _ = fmt.Fprintln(w, "Plex:     not configured")
	}
}
