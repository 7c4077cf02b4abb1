package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "Manage the client list",
}

var clientsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cmd, "clients list")
		if err != nil {
			return err
		}
		defer a.Close()

		clients, err := a.ListClients()
		if err != nil {
			return err
		}
		if len(clients) == 0 {
			fmt.Println("No clients yet. Add one with `sbp clients add NAME`.")
			return nil
		}
		printClients(os.Stdout, clients)
		return nil
	},
}

var clientsAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a client",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		notes, _ := cmd.Flags().GetString("notes")

		a, err := newApp(cmd.Context(), cmd, "clients add")
		if err != nil {
			return err
		}
		defer a.Close()

		client, err := a.AddClient(args[0], notes)
		if err != nil {
			return err
		}
		fmt.Println(successStyle.Render("Added client " + client.Name))
		return nil
	},
}

var clientsNotesCmd = &cobra.Command{
	Use:   "notes NAME NOTES",
	Short: "Replace a client's notes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cmd, "clients notes")
		if err != nil {
			return err
		}
		defer a.Close()

		client, err := a.UpdateClientNotes(args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Println(successStyle.Render("Updated notes for " + client.Name))
		return nil
	},
}

var clientsRemoveCmd = &cobra.Command{
	Use:     "remove NAME",
	Aliases: []string{"rm"},
	Short:   "Remove a client",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cmd, "clients remove")
		if err != nil {
			return err
		}
		defer a.Close()

		if err := a.RemoveClient(args[0]); err != nil {
			return err
		}
		fmt.Println(successStyle.Render("Removed client " + strings.TrimSpace(args[0])))
		return nil
	},
}

var clientsShowCmd = &cobra.Command{
	Use:   "show NAME",
	Short: "Show a client and its projects",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cmd, "clients show")
		if err != nil {
			return err
		}
		defer a.Close()

		client, err := a.GetClient(args[0])
		if err != nil {
			return err
		}
		printClient(os.Stdout, client)
		return nil
	},
}

var clientsSearchCmd = &cobra.Command{
	Use:   "search QUERY",
	Short: "Find clients whose name contains QUERY",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd.Context(), cmd, "clients search")
		if err != nil {
			return err
		}
		defer a.Close()

		query := ""
		if len(args) > 0 {
			query = args[0]
		}
		clients, err := a.SearchClients(query)
		if err != nil {
			return err
		}
		if len(clients) == 0 {
			fmt.Printf("No clients match %q.\n", query)
			return nil
		}
		printClients(os.Stdout, clients)
		return nil
	},
}

var clientsSuggestCmd = &cobra.Command{
	Use:    "suggest PREFIX",
	Short:  "Print client names starting with PREFIX, one per line",
	Args:   cobra.MaximumNArgs(1),
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp(cmd.Context(), cmd, "clients suggest")
		if err != nil {
			return err
		}
		defer a.Close()

		prefix := ""
		if len(args) > 0 {
			prefix = args[0]
		}
		names, err := a.SuggestClients(prefix, limit)
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Println(n)
		}
		return nil
	},
}

// completeClientNames offers stored client names for --client.
func completeClientNames(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	a, err := newApp(cmd.Context(), cmd, "clients suggest")
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	defer a.Close()

	names, err := a.SuggestClients(toComplete, 20)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}

func init() {
	clientsCmd.AddCommand(clientsListCmd)
	clientsCmd.AddCommand(clientsAddCmd)
	clientsAddCmd.Flags().String("notes", "", "Free-form notes about the client")
	clientsCmd.AddCommand(clientsNotesCmd)
	clientsCmd.AddCommand(clientsRemoveCmd)
	clientsCmd.AddCommand(clientsShowCmd)
	clientsCmd.AddCommand(clientsSearchCmd)
	clientsCmd.AddCommand(clientsSuggestCmd)
	clientsSuggestCmd.Flags().IntP("limit", "n", 10, "Maximum number of names to print")
}
