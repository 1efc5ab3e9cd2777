// =============================================================================
// Trade Documents - Labels Command
// =============================================================================
//
// COMMAND USAGE:
//   tradedocs labels --file labels.xlsx [--source naver|coupang]
//                    [--column 각인] [--row N] [--flat]
//
// Lists the item texts merged into each label of a consolidated label
// sheet, one per line. --flat prints the items only, without row headings.
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hobbybrown/tradedocs/internal/labeltext"
)

var (
	labelFile   string
	labelSource string
	labelColumn string
	labelRow    int
	labelFlat   bool
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List the item texts of a consolidated label sheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runLabels(cmd)
	},
}

func init() {
	rootCmd.AddCommand(labelsCmd)

	labelsCmd.Flags().StringVar(&labelFile, "file", "", "Label sheet written by 'consolidate'")
	labelsCmd.Flags().StringVar(&labelSource, "source", "naver", "Marketplace the sheet came from (naver|coupang)")
	labelsCmd.Flags().StringVar(&labelColumn, "column", "각인", "Column holding the merged text")
	labelsCmd.Flags().IntVar(&labelRow, "row", 0, "Only this sheet row (0 = all)")
	labelsCmd.Flags().BoolVar(&labelFlat, "flat", false, "Print item texts only")
	labelsCmd.MarkFlagRequired("file")
}

func runLabels(cmd *cobra.Command) error {
	source, err := labeltext.ParseSource(labelSource)
	if err != nil {
		return err
	}

	result, err := labeltext.ParseSheet(labelFile, labelColumn, source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if result.Empty() {
		fmt.Fprintln(out, "nothing parsed")
		return nil
	}

	if labelFlat && labelRow == 0 {
		for _, item := range result.Items() {
			fmt.Fprintln(out, item)
		}
		return nil
	}

	printed := 0
	for _, e := range result.Entries {
		if labelRow > 0 && e.Row != labelRow {
			continue
		}
		if !labelFlat {
			fmt.Fprintf(out, "row %d:\n", e.Row)
		}
		for _, item := range e.Items {
			if labelFlat {
				fmt.Fprintln(out, item)
			} else {
				fmt.Fprintf(out, "  %s\n", item)
			}
		}
		printed++
	}

	if printed == 0 {
		fmt.Fprintln(out, "nothing parsed")
	}
	return nil
}
