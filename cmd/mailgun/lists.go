package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listsCmd = &cobra.Command{
	Use:   "lists",
	Short: "Manage mailing lists",
}

var listsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the account's mailing lists",
	RunE:  runListsList,
}

var listsInfoCmd = &cobra.Command{
	Use:   "info [address]",
	Short: "Show a mailing list and its members",
	Args:  cobra.ExactArgs(1),
	RunE:  runListsInfo,
}

func init() {
	listsCmd.AddCommand(listsListCmd)
	listsCmd.AddCommand(listsInfoCmd)
}

func runListsList(cmd *cobra.Command, args []string) error {
	client, _, err := getClient()
	if err != nil {
		return err
	}

	lists, err := client.Lists().List(cmd.Context())
	if err != nil {
		return err
	}

	for _, l := range lists {
		fmt.Printf("%s\t%s\t%d members\n", l.Address, l.Name, l.MembersCount)
	}
	return nil
}

func runListsInfo(cmd *cobra.Command, args []string) error {
	client, _, err := getClient()
	if err != nil {
		return err
	}

	handle := client.List(args[0])
	list, err := handle.Info(cmd.Context())
	if err != nil {
		return err
	}

	fmt.Printf("Address:     %s\n", list.Address)
	fmt.Printf("Name:        %s\n", list.Name)
	fmt.Printf("Description: %s\n", list.Description)
	fmt.Printf("Access:      %s\n", list.AccessLevel)

	members, err := handle.Members().List(cmd.Context())
	if err != nil {
		return err
	}
	for _, m := range members {
		sub := "unsubscribed"
		if m.Subscribed {
			sub = "subscribed"
		}
		fmt.Printf("  %s\t%s\t%s\n", m.Address, m.Name, sub)
	}
	return nil
}
