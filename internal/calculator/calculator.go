// =============================================================================
// Trade Documents - Tax/Discount Calculator
// =============================================================================
//
// This module splits VAT-inclusive prices into supply and VAT amounts and
// applies per-item discounts. It is a pure function of its inputs: no I/O,
// no hidden state, and no errors for well-formed input.
//
// ROUNDING:
//   Every division is evaluated on exact decimal values and rounded
//   half-to-even to a whole currency unit. Unit-level and aggregate-level
//   amounts are rounded independently and are never reconciled.
//
// =============================================================================

package calculator

import (
	"github.com/hobbybrown/tradedocs/internal/types"
	"github.com/shopspring/decimal"
)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// =============================================================================
// LINE ITEMS
// =============================================================================

// Compute derives every monetary field for each item.
//
// PARAMETERS:
//   - items: The operator's line items, in display order.
//   - vatRate: The VAT percentage (e.g. 10).
//
// RETURNS:
//   - One LineItemComputed per input, in the same order.
//
// Callers must reject non-positive quantities before calling.
func Compute(items []types.LineItemInput, vatRate float64) []types.LineItemComputed {
	divisor := one.Add(decimal.NewFromFloat(vatRate).Div(hundred))

	computed := make([]types.LineItemComputed, len(items))
	for i, it := range items {
		computed[i] = computeItem(it, divisor)
	}
	return computed
}

func computeItem(it types.LineItemInput, divisor decimal.Decimal) types.LineItemComputed {
	gross := decimal.NewFromInt(it.UnitGross)
	keep := one.Sub(decimal.NewFromFloat(it.DiscountRate).Div(hundred))

	unitSupplyOriginal := roundUnit(gross.Div(divisor))
	unitDiscountedGross := roundUnit(gross.Mul(keep))
	unitSupplyDiscounted := roundUnit(decimal.NewFromInt(unitDiscountedGross).Div(divisor))

	grossTotal := unitDiscountedGross * it.Quantity
	supplyTotal := roundUnit(decimal.NewFromInt(grossTotal).Div(divisor))

	return types.LineItemComputed{
		LineItemInput:        it,
		UnitSupplyOriginal:   unitSupplyOriginal,
		UnitDiscountedGross:  unitDiscountedGross,
		UnitSupplyDiscounted: unitSupplyDiscounted,
		UnitVAT:              unitDiscountedGross - unitSupplyDiscounted,
		SupplyTotal:          supplyTotal,
		VATTotal:             grossTotal - supplyTotal,
		GrossTotal:           grossTotal,
	}
}

// Sum adds up the aggregate amounts of the given items.
func Sum(items []types.LineItemComputed) types.Totals {
	var t types.Totals
	for _, it := range items {
		t.Supply += it.SupplyTotal
		t.VAT += it.VATTotal
		t.Gross += it.GrossTotal
	}
	return t
}

// =============================================================================
// TOTAL-BASED QUICK CALCULATION
// =============================================================================

// TotalBreakdown is the result of splitting a known gross total across a
// quantity.
type TotalBreakdown struct {
	// GrossPerUnit is total/qty rounded to a whole unit.
	GrossPerUnit int64

	// SupplyPerUnit and VATPerUnit split GrossPerUnit.
	SupplyPerUnit int64
	VATPerUnit    int64

	// SupplyTotal is SupplyPerUnit * qty; VATTotal absorbs the remainder so
	// that SupplyTotal + VATTotal equals the original total.
	SupplyTotal int64
	VATTotal    int64
}

// FromTotal works backwards from a VAT-inclusive total and a quantity.
//
// PARAMETERS:
//   - total: The gross amount for all units.
//   - qty: The number of units (must be positive; validated by the caller).
//   - vatRate: The VAT percentage.
func FromTotal(total, qty int64, vatRate float64) TotalBreakdown {
	divisor := one.Add(decimal.NewFromFloat(vatRate).Div(hundred))

	grossPer := decimal.NewFromInt(total).Div(decimal.NewFromInt(qty))
	grossPerRounded := roundUnit(grossPer)
	supplyPer := roundUnit(grossPer.Div(divisor))
	supplyTotal := supplyPer * qty

	return TotalBreakdown{
		GrossPerUnit:  grossPerRounded,
		SupplyPerUnit: supplyPer,
		VATPerUnit:    grossPerRounded - supplyPer,
		SupplyTotal:   supplyTotal,
		VATTotal:      total - supplyTotal,
	}
}

// roundUnit rounds half-to-even to a whole currency unit.
func roundUnit(d decimal.Decimal) int64 {
	return d.RoundBank(0).IntPart()
}
