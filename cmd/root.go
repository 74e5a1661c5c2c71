package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/nyaya-legal/nyaya/internal/assistant"
	"github.com/nyaya-legal/nyaya/internal/config"
	"github.com/nyaya-legal/nyaya/internal/prompts"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "nyaya",
	Short: "IPC legal assistant backed by hosted AI services.",
	Long: `Nyaya forwards legal questions, voice notes and case-law searches to a hosted
chat-completion model, a speech-to-text API and the Indian Kanoon database.

Run "nyaya serve" for the HTTP API, or use ask, cases, search and transcribe
from the terminal.`,
	SilenceUsage: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ~/.nyaya/config.yaml)")
}

func initConfig() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	config.SetDefaults(viper.GetViper())

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "warning: could not determine home directory:", err)
			return
		}
		viper.AddConfigPath(filepath.Join(home, ".nyaya"))
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintln(os.Stderr, "warning: could not read config file:", err)
	}
}

// loadAssistant builds the service shared by the CLI commands.
func loadAssistant() (*config.Config, *assistant.Service, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	catalog, err := prompts.Load(cfg.PromptsFile)
	if err != nil {
		return nil, nil, err
	}
	svc, err := assistant.FromConfig(cfg, catalog)
	if err != nil {
		return nil, nil, err
	}
	return cfg, svc, nil
}
