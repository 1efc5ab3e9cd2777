// =============================================================================
// Trade Documents - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (tradedocs)
//   ├── generateCmd    (tradedocs generate)
//   ├── calcCmd        (tradedocs calc, tradedocs calc total)
//   ├── consolidateCmd (tradedocs consolidate naver|coupang)
//   ├── labelsCmd      (tradedocs labels)
//   ├── wordsCmd       (tradedocs words)
//   ├── schemaCmd      (tradedocs schema config|order)
//   └── versionCmd     (tradedocs version)
//
// CONFIGURATION:
//   Before any command runs, the root command:
//   1. Loads .env from the working directory (marketplace passwords)
//   2. Loads config.yaml, or the built-in defaults when it does not exist
//   3. Sets up logging with a per-run id
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hobbybrown/tradedocs/internal/config"
	"github.com/hobbybrown/tradedocs/internal/logging"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the main configuration file.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// Set by PersistentPreRunE.
var (
	appConfig *config.MainConfig
	logger    logging.Logger
	runID     string
)

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "tradedocs",
	Short: "Trade documents and marketplace label tool",
	Long: `tradedocs fills quotation, delivery note and statement templates from an
order file, and merges marketplace shipping exports into one label per
shipment.

Example Usage:
  tradedocs generate --order order.yaml            # all three documents
  tradedocs generate --order order.yaml --quote    # quotation only
  tradedocs calc total --amount 220000 --qty 8     # split a VAT-inclusive total
  tradedocs consolidate naver --file export.xlsx   # label + dispatch sheets
  tradedocs labels --file labels.xlsx              # list merged item texts`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the main configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)
}

// setup loads the environment, the configuration and the logger.
//
// A missing config.yaml is only an error when --config was given explicitly.
func setup(cmd *cobra.Command) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	var err error
	if _, statErr := os.Stat(cfgFile); statErr != nil && !cmd.Flags().Changed("config") {
		appConfig, err = config.Default()
	} else {
		appConfig, err = config.LoadMainConfig(cfgFile)
	}
	if err != nil {
		return err
	}

	level := appConfig.LogLevel
	if verbose {
		level = "debug"
	}
	runID = uuid.NewString()
	logger = logging.New(os.Stderr, level, runID)
	return nil
}
