// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the knowledge-update CLI: it uploads
// local files into a Dify knowledge-base dataset and searches documents in
// it, keeping an append-only ledger so re-runs never re-upload.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/knowledge-tools/internal/dify"
	"github.com/pdiddy/knowledge-tools/internal/secrets"
	"github.com/pdiddy/knowledge-tools/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the knowledge-update CLI.
var rootCmd = &cobra.Command{
	Use:   "knowledge-update",
	Short: "Manage documents in a Dify knowledge base",
	Long: `knowledge-update is a command-line tool for managing knowledge. It resolves
datasets by name, uploads qualifying files into them, and searches their
documents through the Dify REST API.

Uploads are idempotent: every successfully uploaded path is appended to a
plain-text ledger file, and later runs skip paths already recorded there.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./knowledge-update.yaml or ~/.config/knowledge-update/config.yaml)")
	rootCmd.PersistentFlags().String("api-key", "", "Dify API key (env DIFY_API_KEY)")
	rootCmd.PersistentFlags().String("base-url", "", "Dify base URL (env DIFY_BASE_URL, default "+dify.DefaultBaseURL+")")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("knowledge-update")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "knowledge-update"))
		}
	}

	viper.SetEnvPrefix("KNOWLEDGE_UPDATE")
	viper.AutomaticEnv()

	// The documented environment variables carry no prefix.
	viper.BindEnv("api_key", "DIFY_API_KEY")
	viper.BindEnv("base_url", "DIFY_BASE_URL")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newClient builds the API gateway from the resolution chain: flags win over
// environment/config, which win over .secrets/dify-api-key. The API key is
// required; the base URL falls back to the playground default.
func newClient(cmd *cobra.Command) (*dify.Client, error) {
	apiKey, _ := cmd.Flags().GetString("api-key")
	if apiKey == "" {
		apiKey = viper.GetString("api_key")
	}
	if apiKey == "" {
		apiKey = loadedSecrets["dify-api-key"]
	}
	if apiKey == "" {
		return nil, fmt.Errorf("Dify API key required: set --api-key, DIFY_API_KEY, or .secrets/dify-api-key")
	}

	baseURL, _ := cmd.Flags().GetString("base-url")
	if baseURL == "" {
		baseURL = viper.GetString("base_url")
	}

	cfg := types.GatewayConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   viper.GetDuration("timeout"),
			UserAgent: "knowledge-update/" + version,
		},
		BaseURL:  baseURL,
		PageSize: viper.GetInt("page_size"),
	}
	return dify.NewClient(apiKey, cfg), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
