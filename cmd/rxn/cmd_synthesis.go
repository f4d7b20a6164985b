package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var synthesisCmd = &cobra.Command{
	Use:   "synthesis",
	Short: "Create, start and inspect syntheses",
}

var synthesisCreateCmd = &cobra.Command{
	Use:   "create <sequence-id>",
	Short: "Create a synthesis from a retrosynthesis sequence",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		submission, err := client.CreateSynthesisFromSequence(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(map[string]string{"synthesis_id": submission.SynthesisID})
	},
}

var synthesisStatusCmd = &cobra.Command{
	Use:   "status <synthesis-id>",
	Short: "Show the status of a synthesis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		status, err := client.GetSynthesisStatus(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(map[string]string{"status": status.Status})
	},
}

var synthesisStartCmd = &cobra.Command{
	Use:   "start <synthesis-id>",
	Short: "Start a synthesis on the robot or simulator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		status, err := client.StartSynthesis(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(map[string]string{"status": status.Status})
	},
}

var synthesisPlanCmd = &cobra.Command{
	Use:   "plan <synthesis-id>",
	Short: "Show the flattened action plan of a synthesis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		plan, err := client.GetSynthesisPlan(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		type step struct {
			Name               string `json:"name"`
			HasSpectrometerPDF bool   `json:"has_spectrometer_pdf,omitempty"`
		}
		steps := make([]step, 0, len(plan.Actions))
		for _, action := range plan.Actions {
			steps = append(steps, step{Name: action.Name, HasSpectrometerPDF: action.HasSpectrometerPDF})
		}
		return printJSON(steps)
	},
}

var reportsDir string

var synthesisReportsCmd = &cobra.Command{
	Use:   "reports <synthesis-id>",
	Short: "Download all spectrometer reports of a synthesis",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		reports, err := client.DownloadSpectrometerReports(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if err := os.MkdirAll(reportsDir, 0o755); err != nil {
			return err
		}

		for _, report := range reports {
			name := filepath.Join(reportsDir, fmt.Sprintf("%s-%s-%d.pdf",
				report.Ref.SynthesisID, report.Ref.NodeID, report.Ref.ActionIndex))
			if err := os.WriteFile(name, report.Content, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", name, err)
			}
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	synthesisReportsCmd.Flags().StringVar(&reportsDir, "dir", ".", "directory for the downloaded reports")

	synthesisCmd.AddCommand(synthesisCreateCmd, synthesisStatusCmd, synthesisStartCmd,
		synthesisPlanCmd, synthesisReportsCmd)
	rootCmd.AddCommand(synthesisCmd)
}
