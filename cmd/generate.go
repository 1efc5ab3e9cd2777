// =============================================================================
// Trade Documents - Generate Command
// =============================================================================
//
// This file defines the 'generate' command, which fills the document
// templates for one order.
//
// COMMAND USAGE:
//   tradedocs generate --order order.yaml [flags]
//
// FLAGS:
//   --quote, --delivery, --statement : Generate only the selected documents
//                                      (default: all three)
//   --customer, --date, --vat        : Override the order file
//
// PROCESSING PIPELINE:
//   1. Load the order file and apply overrides
//   2. Validate the order
//   3. Compute the line items and fill each template
//   4. Print the results and write the run summary log
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hobbybrown/tradedocs/internal/config"
	"github.com/hobbybrown/tradedocs/internal/docgen"
	"github.com/hobbybrown/tradedocs/internal/types"
	"github.com/hobbybrown/tradedocs/internal/validation"
	"github.com/hobbybrown/tradedocs/pkg/utils"
)

// =============================================================================
// COMMAND FLAGS
// =============================================================================

var (
	orderFile string

	onlyQuote     bool
	onlyDelivery  bool
	onlyStatement bool

	customerOverride string
	dateOverride     string
	vatOverride      float64
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Fill the quotation, delivery note and statement templates",
	Long: `The generate command reads an order file, validates it, computes VAT and
discounts for every line item and fills the configured templates.

Documents are written to <output_dir>/<supply date>_<customer>/. A document
whose template is missing or has no item table is reported and skipped;
the other documents are still generated.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd)
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVar(&orderFile, "order", "", "Order file (YAML)")
	generateCmd.MarkFlagRequired("order")

	generateCmd.Flags().BoolVar(&onlyQuote, "quote", false, "Generate the quotation")
	generateCmd.Flags().BoolVar(&onlyDelivery, "delivery", false, "Generate the delivery note")
	generateCmd.Flags().BoolVar(&onlyStatement, "statement", false, "Generate the statement of transaction")

	generateCmd.Flags().StringVar(&customerOverride, "customer", "", "Customer name (overrides the order file)")
	generateCmd.Flags().StringVar(&dateOverride, "date", "", "Supply date YYYY-MM-DD (overrides the order file)")
	generateCmd.Flags().Float64Var(&vatOverride, "vat", 0, "VAT rate in percent (overrides the order file)")
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

func runGenerate(cmd *cobra.Command) error {
	startTime := time.Now()
	out := cmd.OutOrStdout()

	// =========================================================================
	// STEP 1: LOAD THE ORDER
	// =========================================================================
	order, err := config.LoadOrder(orderFile, appConfig)
	if err != nil {
		return err
	}
	applyOrderOverrides(cmd, order)

	// =========================================================================
	// STEP 2: VALIDATE
	// =========================================================================
	if err := validation.ValidateOrder(order.Trade, order.Items); err != nil {
		return reportInvalid(cmd, err)
	}

	// =========================================================================
	// STEP 3: GENERATE
	// =========================================================================
	if err := ensureOutputDirs(); err != nil {
		return err
	}
	kinds := selectedKinds()
	fmt.Fprintf(out, "=== Generating %d document(s) for %s ===\n", len(kinds), order.Trade.CustomerName)

	batch := docgen.New(appConfig, logger).Generate(order.Trade, order.Items, kinds)

	// =========================================================================
	// STEP 4: PRINT SUMMARY
	// =========================================================================
	summary := utils.RunSummary{RunID: runID, Command: "generate " + orderFile, StartTime: startTime}
	for _, r := range batch.Results {
		if r.Success {
			fmt.Fprintf(out, "  ✓ %-9s -> %s\n", r.Kind, r.OutputFile)
			summary.Succeeded = append(summary.Succeeded, r.OutputFile)
		} else {
			fmt.Fprintf(out, "  ✗ %-9s: %v\n", r.Kind, r.Error)
			summary.Failed = append(summary.Failed, utils.FailedArtifact{Name: string(r.Kind), Error: r.Error.Error()})
		}
	}

	fmt.Fprintln(out, "\n=== Totals ===")
	fmt.Fprintf(out, "Items:   %d\n", len(batch.Items))
	fmt.Fprintf(out, "Supply:  %s\n", humanize.Comma(batch.Totals.Supply))
	fmt.Fprintf(out, "VAT:     %s\n", humanize.Comma(batch.Totals.VAT))
	fmt.Fprintf(out, "Gross:   %s\n", humanize.Comma(batch.Totals.Gross))
	fmt.Fprintf(out, "Time:    %s\n", time.Since(startTime).Round(time.Millisecond))

	summary.EndTime = time.Now()
	writeRunSummary(summary)

	if n := batch.Failed(); n > 0 {
		return fmt.Errorf("%d of %d document(s) failed", n, len(batch.Results))
	}
	return nil
}

// applyOrderOverrides applies --customer, --date and --vat when given.
func applyOrderOverrides(cmd *cobra.Command, order *config.OrderFile) {
	flags := cmd.Flags()
	if flags.Changed("customer") {
		order.Trade.CustomerName = customerOverride
	}
	if flags.Changed("date") {
		order.Trade.SupplyDate = dateOverride
	}
	if flags.Changed("vat") {
		order.Trade.VATRate = vatOverride
	}
	order.ApplyDefaults(appConfig)
}

// selectedKinds returns the documents chosen by flags, or all of them.
func selectedKinds() []types.DocumentKind {
	var kinds []types.DocumentKind
	if onlyQuote {
		kinds = append(kinds, types.DocumentQuote)
	}
	if onlyDelivery {
		kinds = append(kinds, types.DocumentDelivery)
	}
	if onlyStatement {
		kinds = append(kinds, types.DocumentStatement)
	}
	if len(kinds) == 0 {
		return types.AllDocumentKinds
	}
	return kinds
}

// ensureOutputDirs creates output_dir and result_dir.
func ensureOutputDirs() error {
	return utils.NewFileManager(appConfig.OutputDir, appConfig.ResultDir).EnsureDirectories()
}

// writeRunSummary writes the summary log under <output_dir>/logs. A failure
// is logged and does not fail the command.
func writeRunSummary(summary utils.RunSummary) {
	path, err := utils.WriteSummaryLog(summary, filepath.Join(appConfig.OutputDir, "logs"))
	if err != nil {
		logger.Warn("Could not write run summary: %v", err)
		return
	}
	logger.Debug("Run summary written to %s", path)
}
