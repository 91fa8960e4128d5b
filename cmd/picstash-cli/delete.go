package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/picstash/picstash/client"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete images by id",
	Long: `Delete images by id.

Deletion is idempotent on the server: removing an id that does not exist
still succeeds.

Examples:
  picstash-cli delete 1700000000000-photo.png
  picstash-cli delete 1700000000000-a.png 1700000000001-b.jpg`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

func runDelete(_ *cobra.Command, args []string) error {
	c, err := getClient()
	if err != nil {
		return err
	}

	results, err := c.Delete(context.Background(), client.DeleteOptions{IDs: args})
	if err != nil {
		_ = getFormatter().FormatError(os.Stderr, err)
		return err
	}

	if err := getFormatter().FormatDelete(os.Stdout, results); err != nil {
		return err
	}

	for i := range results {
		if results[i].Err != nil {
			return results[i].Err
		}
	}
	return nil
}
