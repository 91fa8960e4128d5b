package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/picstash/picstash/client"
)

var downloadOutput string

var downloadCmd = &cobra.Command{
	Use:   "download <id>",
	Short: "Download an image",
	Long: `Download an image by id.

Examples:
  picstash-cli download 1700000000000-photo.png
  picstash-cli download -o ./local.png 1700000000000-photo.png
  picstash-cli download -o - 1700000000000-photo.png > photo.png`,
	Args: cobra.ExactArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "", "output file (default: derived from id, \"-\" for stdout)")
}

func runDownload(_ *cobra.Command, args []string) error {
	c, err := getClient()
	if err != nil {
		return err
	}

	result, body, err := c.Download(context.Background(), client.DownloadOptions{
		ID:        args[0],
		LocalPath: downloadOutput,
	})
	if err != nil {
		_ = getFormatter().FormatError(os.Stderr, err)
		return err
	}

	if body != nil {
		_, copyErr := io.Copy(os.Stdout, body)
		_ = body.Close()
		if copyErr != nil {
			return copyErr
		}
		return getFormatter().FormatDownload(os.Stderr, result)
	}

	return getFormatter().FormatDownload(os.Stdout, result)
}
