package main

import (
	"fmt"

	"github.com/spf13/cobra"

	mailgun "github.com/courierkit/mailgun-go"
)

var domainsCmd = &cobra.Command{
	Use:   "domains",
	Short: "Manage sending domains",
}

var domainsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the account's domains",
	RunE:  runDomainsList,
}

var domainsInfoCmd = &cobra.Command{
	Use:   "info [name]",
	Short: "Show a domain and its DNS records",
	Args:  cobra.ExactArgs(1),
	RunE:  runDomainsInfo,
}

var domainsCreateCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Register a new sending domain",
	Args:  cobra.ExactArgs(1),
	RunE:  runDomainsCreate,
}

var domainsDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Remove a domain from the account",
	Args:  cobra.ExactArgs(1),
	RunE:  runDomainsDelete,
}

func init() {
	domainsCmd.AddCommand(domainsListCmd)
	domainsCmd.AddCommand(domainsInfoCmd)
	domainsCmd.AddCommand(domainsCreateCmd)
	domainsCmd.AddCommand(domainsDeleteCmd)
}

func runDomainsList(cmd *cobra.Command, args []string) error {
	client, _, err := getClient()
	if err != nil {
		return err
	}

	domains, err := client.Domains().List(cmd.Context())
	if err != nil {
		return err
	}

	for _, d := range domains {
		fmt.Printf("%s\t%s\t%s\n", d.Name, d.State, d.CreatedAt)
	}
	return nil
}

func runDomainsInfo(cmd *cobra.Command, args []string) error {
	client, _, err := getClient()
	if err != nil {
		return err
	}

	info, err := client.Domain(args[0]).Info(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Name:        %s\n", info.Domain.Name)
	fmt.Printf("State:       %s\n", info.Domain.State)
	fmt.Printf("Spam action: %s\n", info.Domain.SpamAction)
	for _, rec := range info.SendingRecords {
		fmt.Printf("DNS (%s): %s %s -> %s\n", rec.Valid, rec.RecordType, rec.Name, rec.Value)
	}
	return nil
}

func runDomainsCreate(cmd *cobra.Command, args []string) error {
	client, log, err := getClient()
	if err != nil {
		return err
	}

	domain, err := client.Domains().Create(cmd.Context(), mailgun.CreateDomainRequest{
		Name: args[0],
	})
	if err != nil {
		return err
	}

	log.Info().Str("domain", domain.Name).Str("state", domain.State).Msg("domain created")
	return nil
}

func runDomainsDelete(cmd *cobra.Command, args []string) error {
	client, log, err := getClient()
	if err != nil {
		return err
	}

	if err := client.Domain(args[0]).Delete(cmd.Context()); err != nil {
		return err
	}

	log.Info().Str("domain", args[0]).Msg("domain deleted")
	return nil
}
