package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/picstash/picstash/client"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Configure the gateway connection",
	Long: `Configure the gateway connection interactively.

You will be prompted for the gateway URL; the connection is tested
before saving. Configuration is stored in ~/.picstash/config.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfigure,
}

func runConfigure(_ *cobra.Command, args []string) error {
	endpointPrompt := promptui.Prompt{
		Label:   "Gateway URL",
		Default: client.DefaultEndpoint,
		Validate: func(input string) error {
			u, err := url.Parse(strings.TrimSpace(input))
			if err != nil || u.Scheme == "" || u.Host == "" {
				return errors.New("enter a full URL, e.g. http://localhost:8787")
			}
			return nil
		},
	}

	endpoint, err := endpointPrompt.Run()
	if err != nil {
		return err
	}
	endpoint = strings.TrimSuffix(strings.TrimSpace(endpoint), "/")

	if err := testConnection(endpoint); err != nil {
		confirm := promptui.Prompt{
			Label:     fmt.Sprintf("Connection test failed (%v), save anyway", err),
			IsConfirm: true,
		}
		if _, confirmErr := confirm.Run(); confirmErr != nil {
			return errors.New("configuration aborted")
		}
	}

	configPath := cfgFile
	if configPath == "" {
		configPath = client.DefaultConfigPath()
	}
	if configPath == "" {
		return errors.New("could not determine config file location")
	}

	if err := client.SaveConfigFile(configPath, &client.Config{Endpoint: endpoint}); err != nil {
		return err
	}

	fmt.Printf("Saved %s\n", configPath)
	return nil
}

func testConnection(endpoint string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"/api/images?limit=1", http.NoBody)
	if err != nil {
		return err
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}
	return nil
}
