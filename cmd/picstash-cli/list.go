package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/picstash/picstash/client"
)

var (
	listLimit  int
	listAll    bool
	listCursor string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List images in the gallery",
	Long: `List images in the gallery.

Examples:
  picstash-cli list
  picstash-cli list --limit 10
  picstash-cli list --all
  picstash-cli list --cursor "1700000000000-photo.png"`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "l", 0, "maximum images per page (0 = server default)")
	listCmd.Flags().BoolVar(&listAll, "all", false, "paginate through all results")
	listCmd.Flags().StringVar(&listCursor, "cursor", "", "continuation cursor from a previous page")
}

func runList(_ *cobra.Command, args []string) error {
	c, err := getClient()
	if err != nil {
		return err
	}

	result, err := c.List(context.Background(), client.ListOptions{
		Limit:  listLimit,
		Cursor: listCursor,
		All:    listAll,
	})
	if err != nil {
		_ = getFormatter().FormatError(os.Stderr, err)
		return err
	}

	return getFormatter().FormatList(os.Stdout, result)
}
