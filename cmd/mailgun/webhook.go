package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Work with webhook notifications",
}

var webhookVerifyCmd = &cobra.Command{
	Use:   "verify [timestamp] [token] [signature]",
	Short: "Verify a webhook signature against the configured API key",
	Args:  cobra.ExactArgs(3),
	RunE:  runWebhookVerify,
}

var webhookListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the webhooks configured for the domain",
	RunE:  runWebhookList,
}

func init() {
	webhookCmd.AddCommand(webhookVerifyCmd)
	webhookCmd.AddCommand(webhookListCmd)
}

func runWebhookVerify(cmd *cobra.Command, args []string) error {
	client, _, err := getClient()
	if err != nil {
		return err
	}

	if !client.ValidateWebhook(args[0], args[1], args[2]) {
		return errors.New("signature is not valid")
	}

	fmt.Println("signature is valid")
	return nil
}

func runWebhookList(cmd *cobra.Command, args []string) error {
	client, _, err := getClient()
	if err != nil {
		return err
	}

	hooks, err := client.Webhooks().List(cmd.Context())
	if err != nil {
		return err
	}

	for name, hook := range hooks {
		fmt.Printf("%s\t%s\n", name, hook.URL)
	}
	return nil
}
