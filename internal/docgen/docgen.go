// =============================================================================
// Trade Documents - Document Generation Module
// =============================================================================
//
// This module runs one export request: it computes the line items once and
// fills every requested template into the request's output folder.
//
// GENERATION PIPELINE:
//   1. Compute the line items with the trade's VAT rate
//   2. Create <output_dir>/<supply date>_<customer>/
//   3. For each requested document: resolve the template, fill it, save it
//
// FAILURE SEMANTICS:
//   Every document gets its own Result. A missing template, a template
//   without an item header or an unwritable output fails that document only;
//   the remaining documents are still generated.
//
// The caller validates the order before calling Generate.
//
// =============================================================================

package docgen

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/hobbybrown/tradedocs/internal/calculator"
	"github.com/hobbybrown/tradedocs/internal/config"
	"github.com/hobbybrown/tradedocs/internal/filler"
	"github.com/hobbybrown/tradedocs/internal/logging"
	"github.com/hobbybrown/tradedocs/internal/types"
	"github.com/hobbybrown/tradedocs/pkg/utils"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of generating a single document.
type Result struct {
	// Kind is the document type.
	Kind types.DocumentKind

	// TemplatePath is the template the document was filled from.
	TemplatePath string

	// OutputFile is the path to the generated workbook.
	// This is empty if generation failed.
	OutputFile string

	// Success indicates whether the document was written.
	Success bool

	// Error contains the error if generation failed.
	Error error

	// ProcessingTime is the time taken to fill and save the document.
	ProcessingTime time.Duration
}

// Batch is the outcome of one export request.
type Batch struct {
	// OutputDir is the request's folder.
	OutputDir string

	// Items are the computed line items written into every document.
	Items []types.LineItemComputed

	// Totals are the sums over Items.
	Totals types.Totals

	// Results holds one entry per requested document, in request order.
	Results []Result
}

// Failed returns the number of documents that could not be generated.
func (b *Batch) Failed() int {
	n := 0
	for _, r := range b.Results {
		if !r.Success {
			n++
		}
	}
	return n
}

// =============================================================================
// GENERATOR STRUCTURE
// =============================================================================

// Generator produces trade documents from templates.
type Generator struct {
	config *config.MainConfig
	files  *utils.FileManager
	filler *filler.Filler
	logger logging.Logger
}

// New creates a Generator.
//
// PARAMETERS:
//   - cfg: The main configuration (templates, output names, template rules).
//   - logger: Receives progress messages. Nil discards them.
func New(cfg *config.MainConfig, logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Generator{
		config: cfg,
		files:  utils.NewFileManager(cfg.OutputDir, cfg.ResultDir),
		filler: filler.New(cfg),
		logger: logger,
	}
}

// WithFiller replaces the template filler, e.g. one with a fixed clock.
func (g *Generator) WithFiller(fl *filler.Filler) *Generator {
	g.filler = fl
	return g
}

// =============================================================================
// MAIN PROCESSING FUNCTION
// =============================================================================

// Generate fills the requested documents for one trade.
//
// PARAMETERS:
//   - info: The trade party; its VAT rate drives the computation.
//   - items: The validated line items.
//   - kinds: The documents to generate. Empty means all three.
//
// RETURNS:
//   - The batch with one Result per document.
func (g *Generator) Generate(info types.TradeInfo, items []types.LineItemInput, kinds []types.DocumentKind) *Batch {
	if len(kinds) == 0 {
		kinds = types.AllDocumentKinds
	}

	// =========================================================================
	// STEP 1: COMPUTE LINE ITEMS
	// =========================================================================

	computed := calculator.Compute(items, info.VATRate)
	batch := &Batch{
		Items:  computed,
		Totals: calculator.Sum(computed),
	}
	g.logger.Debug("Computed %d items: supply=%d vat=%d gross=%d",
		len(computed), batch.Totals.Supply, batch.Totals.VAT, batch.Totals.Gross)

	// =========================================================================
	// STEP 2: CREATE OUTPUT FOLDER
	// =========================================================================

	dir, dirErr := g.files.DocumentDir(info.SupplyDate, info.CustomerName)
	batch.OutputDir = dir
	if dirErr != nil {
		g.logger.Error("Cannot create output folder: %v", dirErr)
	}

	// =========================================================================
	// STEP 3: FILL EACH DOCUMENT
	// =========================================================================

	for _, kind := range kinds {
		if dirErr != nil {
			batch.Results = append(batch.Results, Result{Kind: kind, Error: dirErr})
			continue
		}
		batch.Results = append(batch.Results, g.generateOne(kind, dir, info, computed))
	}
	return batch
}

func (g *Generator) generateOne(kind types.DocumentKind, dir string, info types.TradeInfo, items []types.LineItemComputed) Result {
	startTime := time.Now()
	result := Result{Kind: kind, TemplatePath: g.config.TemplateFor(string(kind))}

	if result.TemplatePath == "" {
		result.Error = fmt.Errorf("no template configured for %s", kind)
		return result
	}
	if !utils.FileExists(result.TemplatePath) {
		result.Error = fmt.Errorf("template not found: %s", result.TemplatePath)
		g.logger.Warn("Skipping %s: %v", kind, result.Error)
		return result
	}

	outputPath := filepath.Join(dir, g.config.OutputNameFor(string(kind)))
	g.logger.Info("Filling %s from %s", kind, result.TemplatePath)

	if err := g.filler.FillFile(kind, result.TemplatePath, outputPath, info, items); err != nil {
		result.Error = err
		g.logger.Error("Failed to generate %s: %v", kind, err)
		return result
	}

	result.OutputFile = outputPath
	result.Success = true
	result.ProcessingTime = time.Since(startTime)
	g.logger.Info("Wrote %s", outputPath)
	return result
}
