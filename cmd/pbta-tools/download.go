package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Cancer hotspots reference defaults.
const (
	defaultHotspotsURL = "https://www.cancerhotspots.org/files/hotspots_v2.tsv"
	hotspotsFileName   = "hotspots_v2.tsv"
)

func newDownloadCmd() *cobra.Command {
	var outputDir string

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download the cancer-hotspots reference table",
		Long: `Fetch the curated cancer-hotspots TSV into the tool's data directory.
The classify command reads it from there automatically.`,
		Example: `  pbta-tools download
  pbta-tools download --output /data/references`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDownload(outputDir)
		},
	}

	cmd.Flags().StringVar(&outputDir, "output", "", "Output directory (default: data_dir from config)")

	return cmd
}

func runDownload(outputDir string) error {
	if outputDir == "" {
		outputDir = viper.GetString("data_dir")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("cannot create directory %s: %w", outputDir, err)
	}

	url := viper.GetString("hotspots.url")
	dest := filepath.Join(outputDir, hotspotsFileName)

	fmt.Fprintf(os.Stderr, "Downloading %s\n", url)
	fmt.Fprintf(os.Stderr, "  to %s\n", dest)

	if err := downloadFile(url, dest); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Done.\n")
	return nil
}

// downloadFile fetches url into dest atomically (temp file + rename).
func downloadFile(url, dest string) error {
	client := &http.Client{Timeout: 10 * time.Minute}
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("download: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("move into place: %w", err)
	}

	fmt.Fprintf(os.Stderr, "  %d bytes\n", n)
	return nil
}
