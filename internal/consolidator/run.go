package consolidator

import (
	"fmt"
	"time"

	"github.com/hobbybrown/tradedocs/internal/config"
	"github.com/hobbybrown/tradedocs/internal/exportreader"
	"github.com/hobbybrown/tradedocs/internal/logging"
	"github.com/hobbybrown/tradedocs/internal/sheetwriter"
	"github.com/hobbybrown/tradedocs/pkg/utils"
)

// SheetResult reports one written output sheet.
type SheetResult struct {
	Name       string
	OutputFile string
	Success    bool
	Error      error
}

// RunResult is the outcome of one consolidation run.
type RunResult struct {
	Profile    string
	SourceFile string

	// InputRows is the number of non-empty export rows.
	InputRows int

	Output  *Output
	Results []SheetResult
}

// Failed returns the sheets that could not be written.
func (r *RunResult) Failed() []SheetResult {
	var failed []SheetResult
	for _, res := range r.Results {
		if !res.Success {
			failed = append(failed, res)
		}
	}
	return failed
}

// Runner reads an export, consolidates it and writes both output sheets
// under the configured result directory.
type Runner struct {
	config *config.MainConfig
	files  *utils.FileManager
	logger logging.Logger
	now    func() time.Time
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(cfg *config.MainConfig, logger logging.Logger) *Runner {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Runner{
		config: cfg,
		files:  utils.NewFileManager(cfg.OutputDir, cfg.ResultDir),
		logger: logger,
		now:    time.Now,
	}
}

// WithClock replaces the clock used for output paths.
func (r *Runner) WithClock(now func() time.Time) *Runner {
	r.now = now
	return r
}

// Run consolidates the export at path with the named profile.
//
// RETURNS:
//   - The run result. A sheet that cannot be written is reported in
//     Results and does not stop the other sheet.
//   - An error if the profile is unknown or invalid, or the export cannot be
//     read or merged.
func (r *Runner) Run(profileKey, path string) (*RunResult, error) {
	profile, err := r.config.Profile(profileKey)
	if err != nil {
		return nil, err
	}

	c, err := New(profile, r.logger)
	if err != nil {
		return nil, fmt.Errorf("marketplaces.%s: %w", profileKey, err)
	}

	r.logger.Info("Reading %s export: %s", profile.DisplayName, path)
	export, err := exportreader.Read(path, c.ReadOptions())
	if err != nil {
		return nil, err
	}

	r.logger.Debug("%d rows, %d shipments", len(export.Rows), len(export.UniqueValues(profile.GroupColumn)))

	out, err := c.Consolidate(export.Rows)
	if err != nil {
		return nil, err
	}
	r.logger.Info("Merged %d rows into %d labels", len(export.Rows)-out.Skipped, len(out.Records))

	result := &RunResult{
		Profile:    profileKey,
		SourceFile: path,
		InputRows:  len(export.Rows),
		Output:     out,
	}

	at := r.now()
	result.Results = append(result.Results,
		r.writeSheet(profile.LabelFile, out.Labels, at),
		r.writeSheet(profile.DispatchFile, out.Dispatch, at),
	)
	return result, nil
}

func (r *Runner) writeSheet(name string, table sheetwriter.Table, at time.Time) SheetResult {
	res := SheetResult{Name: name}

	path, err := r.files.ConsolidationPath(name, at)
	if err != nil {
		res.Error = err
		return res
	}
	res.OutputFile = path

	if err := sheetwriter.Write(path, table); err != nil {
		res.Error = err
		r.logger.Error("Failed to write %s: %v", name, err)
		return res
	}

	res.Success = true
	r.logger.Info("Wrote %s (%d rows)", path, len(table.Rows))
	return res
}
