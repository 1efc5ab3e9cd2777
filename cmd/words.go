package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hobbybrown/tradedocs/internal/numwords"
)

// wordsCmd prints the Korean reading of an amount, as written on quotations.
var wordsCmd = &cobra.Command{
	Use:     "words <amount>",
	Short:   "Spell an amount in Korean numerals",
	Example: "  tradedocs words 220,000    # 이십이만",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.ParseInt(strings.ReplaceAll(strings.TrimSpace(args[0]), ",", ""), 10, 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), numwords.Korean(n))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(wordsCmd)
}
