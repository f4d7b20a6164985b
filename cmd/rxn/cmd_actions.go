package main

import (
	"github.com/spf13/cobra"
)

var actionsCmd = &cobra.Command{
	Use:   "actions <paragraph>",
	Short: "Extract synthesis actions from a recipe paragraph",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		result, err := client.ParagraphToActions(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(result.Actions)
	},
}

func init() {
	rootCmd.AddCommand(actionsCmd)
}
