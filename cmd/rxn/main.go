// Command rxn is a command line client for the IBM RXN for Chemistry
// platform: reaction prediction, retrosynthesis planning and synthesis
// execution from the terminal.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	rxn4chemistry "github.com/rxn4chemistry/rxn4chemistry-go"
	"github.com/rxn4chemistry/rxn4chemistry-go/internal/config"
	"github.com/rxn4chemistry/rxn4chemistry-go/ratelimit"
)

var (
	// Global flags
	configPath string
	apiKey     string
	projectID  string
	verbose    bool

	// Resolved at startup
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rxn",
	Short: "Client for the IBM RXN for Chemistry platform",
	Long: `rxn talks to the IBM RXN for Chemistry REST API.

An API key is required; provide it via --api-key, the RXN4CHEMISTRY_API_KEY
environment variable, or the config file (default: ~/.rxn4chemistry/config.yaml).
Prediction and synthesis commands additionally need a project id.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zapCfg := zap.NewProductionConfig()
		if verbose {
			zapCfg = zap.NewDevelopmentConfig()
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		if logger, err = zapCfg.Build(); err != nil {
			return fmt.Errorf("initialize logger: %w", err)
		}

		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
		if apiKey != "" {
			cfg.APIKey = apiKey
		}
		if projectID != "" {
			cfg.ProjectID = projectID
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// newClient builds the API client from the resolved configuration.
func newClient() (*rxn4chemistry.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	minInterval, err := cfg.MinIntervalDuration()
	if err != nil {
		return nil, err
	}

	var governor ratelimit.Governor
	if cfg.RateLimit.Wait {
		governor = ratelimit.NewWaiting(cfg.RateLimit.MaxPerMinute)
	} else {
		governor = ratelimit.NewWindow(cfg.RateLimit.MaxPerMinute, minInterval)
	}

	return rxn4chemistry.NewWithConfig(rxn4chemistry.Config{
		APIKey:    cfg.APIKey,
		BaseURL:   cfg.BaseURL,
		ProjectID: cfg.ProjectID,
		Timeout:   timeout,
		Governor:  governor,
		Logger:    logger,
	})
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// pollInterval is shared by the --wait flags.
const defaultPollInterval = 10 * time.Second

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "config file")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key (overrides config)")
	rootCmd.PersistentFlags().StringVar(&projectID, "project", "", "project id (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
