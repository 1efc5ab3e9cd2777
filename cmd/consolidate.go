// =============================================================================
// Trade Documents - Consolidate Command
// =============================================================================
//
// COMMAND USAGE:
//   tradedocs consolidate naver --file export.xlsx
//   tradedocs consolidate coupang --file export.xlsx
//
// OUTPUT:
//   <result_dir>/<YYYY>/<MM>/<DD>d_<HH>h<MM>m<marketplace>_송장발부.xlsx
//   <result_dir>/<YYYY>/<MM>/<DD>d_<HH>h<MM>m<marketplace>_발송처리.xlsx
//
// The naver export is decrypted with the profile password (config.yaml or
// TRADEDOCS_NAVER_PASSWORD).
//
// =============================================================================

package cmd

import (
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hobbybrown/tradedocs/internal/consolidator"
	"github.com/hobbybrown/tradedocs/pkg/utils"
)

var exportFile string

var consolidateCmd = &cobra.Command{
	Use:   "consolidate <marketplace>",
	Short: "Merge a marketplace export into label and dispatch sheets",
	Long: `The consolidate command merges export rows that share a fulfillment
number into one shipping label, and writes a dispatch sheet with one row
per exported item.

Marketplaces are the profiles under 'marketplaces' in config.yaml; naver
and coupang are built in.`,

	Args: cobra.ExactArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"naver", "coupang"}, cobra.ShellCompDirectiveNoFileComp
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		return runConsolidate(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(consolidateCmd)

	consolidateCmd.Flags().StringVar(&exportFile, "file", "", "Marketplace export workbook")
	consolidateCmd.MarkFlagRequired("file")
}

func runConsolidate(cmd *cobra.Command, marketplace string) error {
	startTime := time.Now()
	out := cmd.OutOrStdout()

	if _, err := appConfig.Profile(marketplace); err != nil {
		return fmt.Errorf("%w (configured: %v)", err, profileNames())
	}

	if err := ensureOutputDirs(); err != nil {
		return err
	}

	result, err := consolidator.NewRunner(appConfig, logger).Run(marketplace, exportFile)
	if err != nil {
		return err
	}

	o := result.Output
	fmt.Fprintf(out, "=== %s ===\n", marketplace)
	fmt.Fprintf(out, "Rows:    %s\n", humanize.Comma(int64(result.InputRows)))
	if o.Skipped > 0 {
		fmt.Fprintf(out, "Skipped: %s\n", humanize.Comma(int64(o.Skipped)))
	}
	fmt.Fprintf(out, "Labels:  %s\n", humanize.Comma(int64(len(o.Records))))

	summary := utils.RunSummary{RunID: runID, Command: "consolidate " + marketplace, StartTime: startTime}
	for _, r := range result.Results {
		if r.Success {
			fmt.Fprintf(out, "  ✓ %s\n", r.OutputFile)
			summary.Succeeded = append(summary.Succeeded, r.OutputFile)
		} else {
			fmt.Fprintf(out, "  ✗ %s: %v\n", r.Name, r.Error)
			summary.Failed = append(summary.Failed, utils.FailedArtifact{Name: r.Name, Error: r.Error.Error()})
		}
	}

	summary.EndTime = time.Now()
	writeRunSummary(summary)

	if failed := result.Failed(); len(failed) > 0 {
		return fmt.Errorf("%d of %d sheet(s) failed", len(failed), len(result.Results))
	}
	return nil
}

func profileNames() []string {
	names := make([]string, 0, len(appConfig.Marketplaces))
	for k := range appConfig.Marketplaces {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
