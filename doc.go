// Package rxn4chemistry is a Go client for the IBM RXN for Chemistry REST
// API: forward reaction prediction, automatic retrosynthesis planning,
// synthesis creation and execution, batch prediction, paragraph-to-actions
// extraction and model listing.
//
// A client needs an API key; most prediction endpoints also need an active
// project:
//
//	client, err := rxn4chemistry.New(apiKey)
//	if err != nil { ... }
//	_, err = client.CreateProject(ctx, "test", nil)
//	submission, err := client.PredictReaction(ctx, "BrBr.c1ccc2cc3ccccc3cc2c1", nil)
//	results, err := client.WaitForPrediction(ctx, submission.PredictionID, 0)
//
// Every request passes a client-side rate governor (see the ratelimit
// package) before it is sent, mirroring the limits enforced by the platform.
// SMILES strings are treated as opaque identifiers throughout.
package rxn4chemistry
