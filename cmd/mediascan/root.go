package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/mediascan/internal/channel"
)

var version = "dev"

var (
	serverURL   string
	jsonOutput  bool
	channelName string
)

var rootCmd = &cobra.Command{
	Use:   "mediascan",
	Short: "CLI client for the mediascan daemon",
	Long: `mediascan - CLI client for the mediascan daemon

Sends scanFile requests over the pixai.media_scanner channel and
inspects the local media index and scan events.

Run 'mediascand' to start the server daemon.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8585", "Server URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&channelName, "channel", channel.Name, "Method channel name")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("mediascan {{.Version}}\n")
}
