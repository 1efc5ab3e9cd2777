// =============================================================================
// Trade Documents - Validation Engine
// =============================================================================
//
// This module validates operator input before any calculation or template
// fill takes place. Nothing is computed for an order that fails validation.
//
// RULES:
//   - Customer name is required (after the configured default is applied)
//   - Supply date must be an ISO calendar date (YYYY-MM-DD)
//   - VAT rate must be greater than 0 and at most 100
//   - At least one line item is required
//   - Each line item needs a name, a quantity of at least 1, a non-negative
//     unit gross price and a discount rate in [0, 100]
//
// ERROR HANDLING:
//   - All problems are collected, not just the first one
//   - Each error names the line (1-based) and the field that failed
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hobbybrown/tradedocs/internal/types"
)

// DateLayout is the only accepted supply-date format.
const DateLayout = "2006-01-02"

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// ValidationError is a single field-level problem.
type ValidationError struct {
	// Line is the 1-based line item number, or 0 for order-level fields.
	Line int

	// Field is the input field name (e.g. "qty", "supply_date").
	Field string

	// Message is a human-readable description of the problem.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d, %s: %s", e.Line, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors is the collected result of a failed validation.
type Errors []*ValidationError

// Error implements the error interface.
func (e Errors) Error() string {
	return FormatErrors(e)
}

// =============================================================================
// ORDER VALIDATION
// =============================================================================

// ValidateOrder checks trade information and line items together.
//
// RETURNS:
//   - nil if the order is valid.
//   - An Errors value listing every problem otherwise.
func ValidateOrder(info types.TradeInfo, items []types.LineItemInput) error {
	var all Errors

	all = append(all, collect(0, ValidateTradeInfo(info))...)

	if len(items) == 0 {
		all = append(all, &ValidationError{Field: "items", Message: "at least one line item is required"})
	}
	for i, it := range items {
		all = append(all, collect(i+1, ValidateLineItem(it))...)
	}

	if len(all) == 0 {
		return nil
	}
	return all
}

// ValidateTradeInfo checks the order-level fields.
func ValidateTradeInfo(info types.TradeInfo) error {
	return validation.ValidateStruct(&info,
		validation.Field(&info.CustomerName, validation.Required),
		validation.Field(&info.SupplyDate,
			validation.Required,
			validation.Date(DateLayout).Error("must be a date in YYYY-MM-DD form"),
		),
		validation.Field(&info.VATRate,
			validation.Required.Error("must be greater than 0"),
			validation.Min(0.0).Exclusive(),
			validation.Max(100.0),
		),
	)
}

// ValidateLineItem checks a single line item.
func ValidateLineItem(it types.LineItemInput) error {
	return validation.ValidateStruct(&it,
		validation.Field(&it.Name, validation.Required),
		validation.Field(&it.Quantity,
			validation.Required.Error("must be a positive number"),
			validation.Min(int64(1)).Error("must be a positive number"),
		),
		validation.Field(&it.UnitGross, validation.Min(int64(0))),
		validation.Field(&it.DiscountRate,
			validation.Min(0.0),
			validation.Max(100.0),
		),
	)
}

// =============================================================================
// QUICK CALCULATION VALIDATION
// =============================================================================

// QuickCalcInput is the input of the total-based quick calculation.
type QuickCalcInput struct {
	Total   int64   `json:"total"`
	Qty     int64   `json:"qty"`
	VATRate float64 `json:"vat_rate"`
}

// ValidateQuickCalc checks the input of the total-based quick calculation.
func ValidateQuickCalc(in QuickCalcInput) error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.Total, validation.Min(int64(0))),
		validation.Field(&in.Qty,
			validation.Required.Error("must be a positive number"),
			validation.Min(int64(1)).Error("must be a positive number"),
		),
		validation.Field(&in.VATRate,
			validation.Required.Error("must be greater than 0"),
			validation.Min(0.0).Exclusive(),
			validation.Max(100.0),
		),
	)
	if errs := collect(0, err); len(errs) > 0 {
		return errs
	}
	return nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// collect flattens an ozzo-validation result into ValidationErrors sorted by
// field name. Non-validation errors are reported under the "input" field.
func collect(line int, err error) Errors {
	if err == nil {
		return nil
	}

	var fieldErrs validation.Errors
	if !errors.As(err, &fieldErrs) {
		return Errors{{Line: line, Field: "input", Message: err.Error()}}
	}

	fields := make([]string, 0, len(fieldErrs))
	for field := range fieldErrs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	out := make(Errors, 0, len(fields))
	for _, field := range fields {
		out = append(out, &ValidationError{
			Line:    line,
			Field:   field,
			Message: fieldErrs[field].Error(),
		})
	}
	return out
}

// FormatErrors formats validation errors for display or logging.
func FormatErrors(errs []*ValidationError) string {
	if len(errs) == 0 {
		return "no validation errors"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "validation failed with %d error(s):", len(errs))
	for _, e := range errs {
		b.WriteString("\n  - ")
		b.WriteString(e.Error())
	}
	return b.String()
}
