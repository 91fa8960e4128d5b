package main

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/picstash/picstash/config"
)

var version = "dev"

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "picstash",
	Short:   "Image hosting gateway backed by object storage",
	Long: `Picstash serves a small image-hosting application: a multipart
upload API, image fetch with immutable caching, gallery listing, and
deletion, all backed by a pluggable object store (filesystem, S3, or
in-memory). Non-API paths serve the bundled web client.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Optional local development overrides.
		if err := godotenv.Load(); err == nil {
			slog.Debug("loaded .env file")
		}

		var files []string
		if cfgFile != "" {
			files = append(files, cfgFile)
		}

		loaded, err := config.Load(files, cmd.Flags())
		if err != nil {
			return err
		}
		cfg = loaded

		setupLogging(cfg.Log.Level)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("storage-driver", "", "object store driver: fs, s3, memory (env: PICSTASH_STORAGE_DRIVER)")
	rootCmd.PersistentFlags().String("storage-path", "", "fs driver storage directory (env: PICSTASH_STORAGE_PATH)")
	rootCmd.PersistentFlags().String("web-root", "", "directory holding the web client build (env: PICSTASH_SERVER_WEB_ROOT)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
