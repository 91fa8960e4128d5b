package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/picstash/picstash/client"
)

var (
	version = "dev"

	cfgFile    string
	server     string
	jsonOutput bool
	quiet      bool
)

var rootCmd = &cobra.Command{
	Use:     "picstash-cli",
	Version: version,
	Short:   "Client for the picstash image gateway",
	Long: `Picstash CLI - client for the picstash image hosting gateway.

Upload, list, download, and delete images over the gateway's HTTP API.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: ~/.picstash/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&server, "server", "s", "", "server URL (default: http://localhost:8787, env: PICSTASH_SERVER)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")

	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(configureCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// buildConfig merges config from file, env vars, and flags (flags take precedence).
func buildConfig() (*client.Config, error) {
	var configs []*client.Config

	configPath := cfgFile
	if configPath == "" {
		configPath = client.DefaultConfigPath()
	}

	if configPath != "" {
		fileCfg, err := client.LoadConfigFromFile(configPath)
		if err != nil {
			// Only error if user explicitly specified a config file.
			if cfgFile != "" {
				return nil, err
			}
		} else {
			configs = append(configs, fileCfg)
		}
	}

	configs = append(configs, client.ConfigFromEnv())
	configs = append(configs, &client.Config{Endpoint: server})

	return client.MergeConfig(configs...), nil
}

// getFormatter returns the appropriate formatter based on flags.
func getFormatter() client.Formatter {
	return client.NewFormatter(jsonOutput, quiet)
}

// getClient creates and returns a configured client.
func getClient() (*client.Client, error) {
	cfg, err := buildConfig()
	if err != nil {
		return nil, err
	}

	return client.New(cfg)
}
