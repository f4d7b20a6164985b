package main

import (
	"encoding/json"
	"time"

	"github.com/spf13/cobra"
)

var predictCmd = &cobra.Command{
	Use:   "predict",
	Short: "Forward reaction prediction",
}

var (
	predictWait     bool
	predictInterval time.Duration
)

var predictReactionCmd = &cobra.Command{
	Use:   "reaction <precursors-smiles>",
	Short: "Predict the product of a reaction given precursor SMILES",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		submission, err := client.PredictReaction(cmd.Context(), args[0], nil)
		if err != nil {
			return err
		}
		if !predictWait {
			return printJSON(map[string]string{"prediction_id": submission.PredictionID})
		}

		payload, err := client.WaitForPrediction(cmd.Context(), submission.PredictionID, predictInterval)
		if err != nil {
			return err
		}
		return printJSON(json.RawMessage(payload))
	},
}

var predictResultsCmd = &cobra.Command{
	Use:   "results <prediction-id>",
	Short: "Fetch the results of a reaction prediction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		payload, err := client.PredictReactionResults(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printJSON(json.RawMessage(payload))
	},
}

var predictBatchCmd = &cobra.Command{
	Use:   "batch <precursors-smiles>...",
	Short: "Predict a batch of reactions in one task",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		task, err := client.PredictReactionBatch(cmd.Context(), args)
		if err != nil {
			return err
		}
		return printJSON(map[string]string{"task_id": task.TaskID, "status": task.Status})
	},
}

var predictBatchResultsCmd = &cobra.Command{
	Use:   "batch-results <task-id>",
	Short: "Fetch the results of a batch prediction task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		results, err := client.PredictReactionBatchResults(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if results.Done() {
			return printJSON(json.RawMessage(results.Result))
		}
		return printJSON(map[string]string{
			"task_id": results.TaskID,
			"status":  results.Status,
			"message": results.Message,
		})
	},
}

func init() {
	predictReactionCmd.Flags().BoolVar(&predictWait, "wait", false, "poll until the prediction finishes")
	predictReactionCmd.Flags().DurationVar(&predictInterval, "interval", defaultPollInterval, "poll interval with --wait")

	predictCmd.AddCommand(predictReactionCmd, predictResultsCmd, predictBatchCmd, predictBatchResultsCmd)
	rootCmd.AddCommand(predictCmd)
}
