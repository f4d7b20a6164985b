package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	rxn4chemistry "github.com/rxn4chemistry/rxn4chemistry-go"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "Manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the projects visible to the API key",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		payload, err := client.ListProjects(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(json.RawMessage(payload))
	},
}

var (
	projectInvitations []string
	projectKeepCurrent bool
)

var projectsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new project",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		project, err := client.CreateProject(cmd.Context(), args[0], &rxn4chemistry.CreateProjectOptions{
			Invitations:        projectInvitations,
			KeepCurrentProject: projectKeepCurrent,
		})
		if err != nil {
			return err
		}
		return printJSON(project)
	},
}

var projectsAttemptsCmd = &cobra.Command{
	Use:   "attempts",
	Short: "List the attempts recorded in the active project",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		payload, err := client.ListAttempts(cmd.Context(), nil)
		if err != nil {
			return err
		}
		return printJSON(json.RawMessage(payload))
	},
}

func init() {
	projectsCreateCmd.Flags().StringSliceVar(&projectInvitations, "invite", nil, "emails to invite")
	projectsCreateCmd.Flags().BoolVar(&projectKeepCurrent, "keep-current", false, "do not adopt the new project as active")

	projectsCmd.AddCommand(projectsListCmd, projectsCreateCmd, projectsAttemptsCmd)
	rootCmd.AddCommand(projectsCmd)
}
