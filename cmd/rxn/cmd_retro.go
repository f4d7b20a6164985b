package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	rxn4chemistry "github.com/rxn4chemistry/rxn4chemistry-go"
	"github.com/rxn4chemistry/rxn4chemistry-go/tree"
)

var retroCmd = &cobra.Command{
	Use:   "retro",
	Short: "Automatic retrosynthesis planning",
}

var (
	retroWait           bool
	retroInterval       time.Duration
	retroMaxSteps       int
	retroNBeams         int
	retroPruningSteps   int
	retroFAP            float64
	retroPriceThreshold int
	retroAvailable      string
	retroExclude        string
	retroExcludeSubstr  string
	retroIncludeTarget  bool
)

var retroSubmitCmd = &cobra.Command{
	Use:   "submit <product-smiles>",
	Short: "Launch an automatic retrosynthesis for a product",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}

		opts := &rxn4chemistry.RetrosynthesisOptions{
			AvailabilityPricingThreshold: retroPriceThreshold,
			AvailableSMILES:              retroAvailable,
			ExcludeSMILES:                retroExclude,
			ExcludeSubstructures:         retroExcludeSubstr,
			IncludeTargetMolecule:        retroIncludeTarget,
			FAP:                          retroFAP,
			MaxSteps:                     retroMaxSteps,
			NBeams:                       retroNBeams,
			PruningSteps:                 retroPruningSteps,
		}
		submission, err := client.PredictAutomaticRetrosynthesis(cmd.Context(), args[0], opts)
		if err != nil {
			return err
		}
		if !retroWait {
			return printJSON(map[string]string{"prediction_id": submission.PredictionID})
		}

		results, err := client.WaitForRetrosynthesis(cmd.Context(), submission.PredictionID, retroInterval)
		if err != nil {
			return err
		}
		return printRetroResults(results)
	},
}

var retroResultsCmd = &cobra.Command{
	Use:   "results <prediction-id>",
	Short: "Fetch the retrosynthetic paths of a prediction",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		results, err := client.AutomaticRetrosynthesisResults(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return printRetroResults(results)
	},
}

var retroPDFCmd = &cobra.Command{
	Use:   "pdf <prediction-id> <sequence-id>",
	Short: "Download the PDF report of a retrosynthesis sequence",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		content, err := client.RetrosynthesisSequencePDF(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}

		name := fmt.Sprintf("retrosynthesis-%s-%s.pdf", args[0], args[1])
		if err := os.WriteFile(name, content, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		fmt.Println(name)
		return nil
	},
}

// printRetroResults summarizes the paths with their material availability.
func printRetroResults(results *rxn4chemistry.RetrosynthesisResults) error {
	type pathSummary struct {
		SequenceID         string `json:"sequence_id"`
		Steps              int    `json:"steps"`
		MaterialsAvailable bool   `json:"materials_available"`
	}
	summary := struct {
		Status string        `json:"status"`
		Paths  []pathSummary `json:"paths"`
	}{Status: results.Status}

	for _, path := range results.Paths {
		summary.Paths = append(summary.Paths, pathSummary{
			SequenceID:         path.SequenceID,
			Steps:              len(tree.PostOrder(path)),
			MaterialsAvailable: tree.StartingMaterialsAvailable(path),
		})
	}
	return printJSON(summary)
}

func init() {
	retroSubmitCmd.Flags().BoolVar(&retroWait, "wait", false, "poll until the prediction finishes")
	retroSubmitCmd.Flags().DurationVar(&retroInterval, "interval", 30*time.Second, "poll interval with --wait")
	retroSubmitCmd.Flags().IntVar(&retroMaxSteps, "max-steps", 3, "maximum retrosynthetic steps")
	retroSubmitCmd.Flags().IntVar(&retroNBeams, "nbeams", 10, "beams exploring the hyper-tree")
	retroSubmitCmd.Flags().IntVar(&retroPruningSteps, "pruning-steps", 2, "pruning interval in steps")
	retroSubmitCmd.Flags().Float64Var(&retroFAP, "fap", 0.6, "forward acceptance probability")
	retroSubmitCmd.Flags().IntVar(&retroPriceThreshold, "price-threshold", 0, "max precursor price in USD per mg/ml, 0 for none")
	retroSubmitCmd.Flags().StringVar(&retroAvailable, "available", "", "SMILES of available precursors, '.'-separated")
	retroSubmitCmd.Flags().StringVar(&retroExclude, "exclude", "", "SMILES excluded from precursors, '.'-separated")
	retroSubmitCmd.Flags().StringVar(&retroExcludeSubstr, "exclude-substructures", "", "substructures excluded from precursors")
	retroSubmitCmd.Flags().BoolVar(&retroIncludeTarget, "include-target", false, "allow the product among the precursors")

	retroCmd.AddCommand(retroSubmitCmd, retroResultsCmd, retroPDFCmd)
	rootCmd.AddCommand(retroCmd)
}
