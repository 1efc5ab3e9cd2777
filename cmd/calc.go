// =============================================================================
// Trade Documents - Calc Commands
// =============================================================================
//
// COMMAND USAGE:
//   tradedocs calc --order order.yaml
//       Print every computed line item and the totals.
//
//   tradedocs calc total --amount 220000 --qty 8 [--vat 10]
//       Split a VAT-inclusive total into per-unit and total supply/VAT.
//
// =============================================================================

package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/hobbybrown/tradedocs/internal/calculator"
	"github.com/hobbybrown/tradedocs/internal/config"
	"github.com/hobbybrown/tradedocs/internal/validation"
)

var (
	quickAmount int64
	quickQty    int64
	quickVAT    float64
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Preview the line-item calculation of an order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalc(cmd)
	},
}

var calcTotalCmd = &cobra.Command{
	Use:   "total",
	Short: "Split a VAT-inclusive total into supply and VAT",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCalcTotal(cmd)
	},
}

func init() {
	rootCmd.AddCommand(calcCmd)
	calcCmd.AddCommand(calcTotalCmd)

	calcCmd.Flags().StringVar(&orderFile, "order", "", "Order file (YAML)")
	calcCmd.MarkFlagRequired("order")

	calcTotalCmd.Flags().Int64Var(&quickAmount, "amount", 0, "VAT-inclusive total")
	calcTotalCmd.Flags().Int64Var(&quickQty, "qty", 0, "Quantity")
	calcTotalCmd.Flags().Float64Var(&quickVAT, "vat", 0, "VAT rate in percent (default from config)")
	calcTotalCmd.MarkFlagRequired("amount")
	calcTotalCmd.MarkFlagRequired("qty")
}

func runCalc(cmd *cobra.Command) error {
	order, err := config.LoadOrder(orderFile, appConfig)
	if err != nil {
		return err
	}
	if err := validation.ValidateOrder(order.Trade, order.Items); err != nil {
		return reportInvalid(cmd, err)
	}

	items := calculator.Compute(order.Items, order.Trade.VATRate)
	totals := calculator.Sum(items)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "#\t품명\t수량\t단가\t할인단가\t공급가\t부가세\t공급가액\t세액\t합계\t")
	for i, it := range items {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			i+1, it.Name, it.Quantity,
			humanize.Comma(it.UnitGross),
			humanize.Comma(it.UnitDiscountedGross),
			humanize.Comma(it.UnitSupplyDiscounted),
			humanize.Comma(it.UnitVAT),
			humanize.Comma(it.SupplyTotal),
			humanize.Comma(it.VATTotal),
			humanize.Comma(it.GrossTotal),
		)
	}
	fmt.Fprintf(w, "\t합계\t\t\t\t\t\t%s\t%s\t%s\t\n",
		humanize.Comma(totals.Supply), humanize.Comma(totals.VAT), humanize.Comma(totals.Gross))
	return w.Flush()
}

func runCalcTotal(cmd *cobra.Command) error {
	in := validation.QuickCalcInput{Total: quickAmount, Qty: quickQty, VATRate: quickVAT}
	if !cmd.Flags().Changed("vat") {
		in.VATRate = appConfig.DefaultVATRate
	}
	if err := validation.ValidateQuickCalc(in); err != nil {
		return reportInvalid(cmd, err)
	}

	b := calculator.FromTotal(in.Total, in.Qty, in.VATRate)

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Gross per unit:  %s\n", humanize.Comma(b.GrossPerUnit))
	fmt.Fprintf(out, "Supply per unit: %s\n", humanize.Comma(b.SupplyPerUnit))
	fmt.Fprintf(out, "VAT per unit:    %s\n", humanize.Comma(b.VATPerUnit))
	fmt.Fprintf(out, "Supply total:    %s\n", humanize.Comma(b.SupplyTotal))
	fmt.Fprintf(out, "VAT total:       %s\n", humanize.Comma(b.VATTotal))
	return nil
}

// reportInvalid prints validation errors and returns a short error.
func reportInvalid(cmd *cobra.Command, err error) error {
	var errs validation.Errors
	if errors.As(err, &errs) {
		fmt.Fprintln(cmd.OutOrStdout(), validation.FormatErrors(errs))
		return errors.New("invalid input")
	}
	return err
}
