// =============================================================================
// Trade Documents - File Manager Utility
// =============================================================================
//
// This module provides file management utilities, including:
//   - Directory management
//   - Output folder and file naming for generated documents
//   - Dated output paths for marketplace consolidation results
//   - Run summary logs
//
// OUTPUT LAYOUT:
//   <output_dir>/<supply date>_<customer>/견적서_자동생성.xlsx
//   <result_dir>/<YYYY>/<MM>/<DD>d_<HH>h<MM>m네이버_송장발부.xlsx
//   <output_dir>/logs/run_<YYYYMMDD_HHMMSS>_<run id>.log
//
// =============================================================================

package utils

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// =============================================================================
// FILE MANAGER
// =============================================================================

// FileManager resolves and creates output locations.
type FileManager struct {
	// OutputDir is the root for generated documents.
	OutputDir string

	// ResultDir is the root for consolidation outputs.
	ResultDir string
}

// NewFileManager creates a new FileManager with the specified directories.
func NewFileManager(outputDir, resultDir string) *FileManager {
	return &FileManager{
		OutputDir: outputDir,
		ResultDir: resultDir,
	}
}

// =============================================================================
// DIRECTORY MANAGEMENT
// =============================================================================

// EnsureDirectories creates all required directories if they don't exist.
func (fm *FileManager) EnsureDirectories() error {
	for _, dir := range []string{fm.OutputDir, fm.ResultDir} {
		if err := EnsureDir(dir); err != nil {
			return err
		}
	}
	return nil
}

// EnsureDir creates dir and its parents.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// =============================================================================
// DOCUMENT OUTPUT
// =============================================================================

// DocumentDir returns (and creates) the folder for one export run:
// <OutputDir>/<supplyDate>_<sanitized customer>.
func (fm *FileManager) DocumentDir(supplyDate, customer string) (string, error) {
	dir := filepath.Join(fm.OutputDir, DocumentFolderName(supplyDate, customer))
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	return dir, nil
}

// DocumentFolderName joins the supply date and the sanitized customer name.
func DocumentFolderName(supplyDate, customer string) string {
	return supplyDate + "_" + SanitizeName(customer)
}

// invalidNameChars are the characters Windows rejects in file names.
var invalidNameChars = regexp.MustCompile(`[\\/:*?"<>|]`)

// SanitizeName replaces characters that are not allowed in file names with
// underscores.
func SanitizeName(name string) string {
	return invalidNameChars.ReplaceAllString(strings.TrimSpace(name), "_")
}

// =============================================================================
// CONSOLIDATION OUTPUT
// =============================================================================

// ConsolidationPath returns (and creates the parent of) a dated result path:
// <ResultDir>/<YYYY>/<MM>/<DD>d_<HH>h<MM>m<name>.
func (fm *FileManager) ConsolidationPath(name string, at time.Time) (string, error) {
	dir := filepath.Join(fm.ResultDir, at.Format("2006"), at.Format("01"))
	if err := EnsureDir(dir); err != nil {
		return "", err
	}
	return filepath.Join(dir, TimestampPrefix(at)+name), nil
}

// TimestampPrefix formats the day/hour/minute prefix used for result files.
func TimestampPrefix(at time.Time) string {
	return at.Format("02") + "d_" + at.Format("15") + "h" + at.Format("04") + "m"
}

// =============================================================================
// SUMMARY LOG GENERATION
// =============================================================================

// RunSummary describes one CLI run for the summary log.
type RunSummary struct {
	RunID     string
	Command   string
	StartTime time.Time
	EndTime   time.Time
	Succeeded []string
	Failed    []FailedArtifact
}

// FailedArtifact names an output that could not be produced.
type FailedArtifact struct {
	Name  string
	Error string
}

// WriteSummaryLog writes a human-readable run summary.
//
// RETURNS:
//   - The path to the log file.
//   - An error if the file cannot be written.
func WriteSummaryLog(summary RunSummary, logDir string) (string, error) {
	if err := EnsureDir(logDir); err != nil {
		return "", err
	}

	name := fmt.Sprintf("run_%s_%s.log", summary.StartTime.Format("20060102_150405"), summary.RunID)
	path := filepath.Join(logDir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create summary log: %w", err)
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "Run:        %s\n", summary.RunID)
	fmt.Fprintf(w, "Command:    %s\n", summary.Command)
	fmt.Fprintf(w, "Started:    %s\n", summary.StartTime.Format(time.RFC3339))
	fmt.Fprintf(w, "Finished:   %s\n", summary.EndTime.Format(time.RFC3339))
	fmt.Fprintf(w, "Succeeded:  %d\n", len(summary.Succeeded))
	fmt.Fprintf(w, "Failed:     %d\n", len(summary.Failed))

	if len(summary.Succeeded) > 0 {
		fmt.Fprintln(w, "\nOutputs:")
		for _, s := range summary.Succeeded {
			fmt.Fprintf(w, "  ✓ %s\n", s)
		}
	}
	if len(summary.Failed) > 0 {
		fmt.Fprintln(w, "\nFailures:")
		for _, f := range summary.Failed {
			fmt.Fprintf(w, "  ✗ %s: %s\n", f.Name, f.Error)
		}
	}

	if err := w.Flush(); err != nil {
		return "", fmt.Errorf("failed to write summary log: %w", err)
	}
	return path, nil
}

// =============================================================================
// UTILITY FUNCTIONS
// =============================================================================

// FileExists checks if a regular file exists.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
