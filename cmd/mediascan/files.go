package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var filesCmd = &cobra.Command{
	Use:   "files [path]",
	Short: "List the local media index",
	Long: `List indexed files, or show one file when a path is given.

Examples:
  mediascan files                   # First 50 indexed files
  mediascan files --mime audio/     # Audio only
  mediascan files /music/a.mp3      # One file`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFilesCmd,
}

func init() {
	rootCmd.AddCommand(filesCmd)
	filesCmd.Flags().String("mime", "", "Filter by MIME type prefix (e.g. audio/)")
	filesCmd.Flags().IntP("limit", "n", 50, "Number of files to show")
	filesCmd.Flags().Int("offset", 0, "Number of files to skip")
}

func runFilesCmd(cmd *cobra.Command, args []string) error {
	client := NewClient(serverURL)
	out := cmd.OutOrStdout()

	if len(args) == 1 {
		f, err := client.Lookup(args[0])
		if err != nil {
			return fmt.Errorf("lookup failed: %w", err)
		}
		if jsonOutput {
			return printJSON(out, f)
		}
		printFile(out, f)
		return nil
	}

	mime, _ := cmd.Flags().GetString("mime")
	limit, _ := cmd.Flags().GetInt("limit")
	offset, _ := cmd.Flags().GetInt("offset")

	files, err := client.Files(mime, limit, offset)
	if err != nil {
		return fmt.Errorf("failed to fetch files: %w", err)
	}

	if jsonOutput {
		return printJSON(out, files)
	}

	if len(files.Items) == 0 {
		_, _ = fmt.Fprintln(out, "No indexed files")
		return nil
	}

	_, _ = fmt.Fprintf(out, "Indexed Files (%d-%d of %d):\n\n", files.Offset+1, files.Offset+len(files.Items), files.Total)
	_, _ = fmt.Fprintf(out, "  %-12s %-10s %-10s %s\n", "TYPE", "SIZE", "INDEXED", "PATH")
	_, _ = fmt.Fprintln(out, "  "+strings.Repeat("-", 60))
	for i := range files.Items {
		f := &files.Items[i]
		_, _ = fmt.Fprintf(out, "  %-12s %-10s %-10s %s\n", f.MimeType, formatSize(f.SizeBytes), formatTimeAgo(f.IndexedAt), f.Path)
	}
	return nil
}

func printFile(w io.Writer, f *FileResponse) {
	_, _ = fmt.Fprintf(w, "Path:     %s\n", f.Path)
	_, _ = fmt.Fprintf(w, "Type:     %s\n", f.MimeType)
	_, _ = fmt.Fprintf(w, "Size:     %s\n", formatSize(f.SizeBytes))
	if f.Title != "" {
		_, _ = fmt.Fprintf(w, "Title:    %s\n", f.Title)
	}
	if f.Artist != "" {
		_, _ = fmt.Fprintf(w, "Artist:   %s\n", f.Artist)
	}
	if f.Album != "" {
		_, _ = fmt.Fprintf(w, "Album:    %s\n", f.Album)
	}
	if f.Year != 0 {
		_, _ = fmt.Fprintf(w, "Year:     %d\n", f.Year)
	}
	_, _ = fmt.Fprintf(w, "Modified: %s\n", f.ModifiedAt.Format("2006-01-02 15:04"))
	_, _ = fmt.Fprintf(w, "Indexed:  %s\n", formatTimeAgo(f.IndexedAt))
}
