package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/picstash/picstash/client"
)

var (
	uploadContentType string
	uploadFilename    string
	uploadMetadata    map[string]string
)

var uploadCmd = &cobra.Command{
	Use:   "upload <local-path>",
	Short: "Upload an image to the gateway",
	Long: `Upload an image to the gateway.

The stored key is derived server-side from the upload time and the
filename, so repeated uploads of the same file create distinct objects.

Examples:
  picstash-cli upload ./photo.png
  picstash-cli upload --filename holiday.png ./photo.png
  picstash-cli upload --meta album=summer --meta camera=x100 ./photo.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadContentType, "content-type", "t", "", "override content-type")
	uploadCmd.Flags().StringVarP(&uploadFilename, "filename", "f", "", "override stored filename")
	uploadCmd.Flags().StringToStringVar(&uploadMetadata, "meta", nil, "user metadata key=value pairs")
}

func runUpload(_ *cobra.Command, args []string) error {
	c, err := getClient()
	if err != nil {
		return err
	}

	opts := client.UploadOptions{
		LocalPath:   args[0],
		Filename:    uploadFilename,
		ContentType: uploadContentType,
		Metadata:    uploadMetadata,
	}

	result, err := c.Upload(context.Background(), opts)
	if err != nil {
		_ = getFormatter().FormatError(os.Stderr, err)
		return err
	}

	return getFormatter().FormatUpload(os.Stdout, result)
}
