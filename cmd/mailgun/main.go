package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mailgun "github.com/courierkit/mailgun-go"
	"github.com/courierkit/mailgun-go/internal/config"
	"github.com/courierkit/mailgun-go/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "mailgun",
	Short: "Command-line client for the Mailgun API",
}

func init() {
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(domainsCmd)
	rootCmd.AddCommand(listsCmd)
	rootCmd.AddCommand(webhookCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// getClient loads configuration and builds the API client plus a logger.
func getClient() (*mailgun.Client, *logger.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	clientCfg := cfg.Client()
	clientCfg.Logger = &log.Logger

	client, err := mailgun.New(clientCfg)
	if err != nil {
		return nil, nil, err
	}
	return client, log, nil
}
