package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hobbybrown/tradedocs/internal/config"
)

// schemaCmd prints the JSON schema of config.yaml or of an order file, for
// editor completion.
var schemaCmd = &cobra.Command{
	Use:       "schema config|order",
	Short:     "Print the JSON schema of the config or order file",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"config", "order"},
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			raw []byte
			err error
		)
		switch args[0] {
		case "config":
			raw, err = config.ConfigSchema()
		case "order":
			raw, err = config.OrderSchema()
		}
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(raw))
		return err
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
