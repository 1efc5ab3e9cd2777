package validation

import (
	"errors"
	"testing"

	"github.com/hobbybrown/tradedocs/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInfo() types.TradeInfo {
	return types.TradeInfo{CustomerName: "하비브라운", SupplyDate: "2024-08-20", VATRate: 10}
}

func TestValidateOrder_Valid(t *testing.T) {
	err := ValidateOrder(validInfo(), []types.LineItemInput{
		{Name: "머그컵", Quantity: 8, UnitGross: 27500},
		{Name: "무료 샘플", Quantity: 1, UnitGross: 0, DiscountRate: 100},
	})
	assert.NoError(t, err)
}

func TestValidateOrder_NoItems(t *testing.T) {
	err := ValidateOrder(validInfo(), nil)
	require.Error(t, err)

	var errs Errors
	require.True(t, errors.As(err, &errs))
	require.Len(t, errs, 1)
	assert.Equal(t, "items", errs[0].Field)
}

func TestValidateOrder_FieldSpecificMessages(t *testing.T) {
	info := validInfo()
	info.SupplyDate = "2024/08/20"
	info.VATRate = 0

	err := ValidateOrder(info, []types.LineItemInput{
		{Name: "ok", Quantity: 1, UnitGross: 1000},
		{Name: "", Quantity: 0, UnitGross: -1, DiscountRate: 120},
	})
	require.Error(t, err)

	var errs Errors
	require.True(t, errors.As(err, &errs))

	got := map[string]int{}
	for _, e := range errs {
		got[e.Field] = e.Line
	}
	assert.Equal(t, map[string]int{
		"supply_date":   0,
		"vat_rate":      0,
		"name":          2,
		"qty":           2,
		"unit_gross":    2,
		"discount_rate": 2,
	}, got)

	assert.Contains(t, err.Error(), "line 2, qty: must be a positive number")
	assert.Contains(t, err.Error(), "supply_date: must be a date in YYYY-MM-DD form")
}

func TestValidateOrder_NegativeQuantity(t *testing.T) {
	err := ValidateOrder(validInfo(), []types.LineItemInput{{Name: "a", Quantity: -3, UnitGross: 10}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 1, qty")
}

func TestValidateOrder_MissingCustomer(t *testing.T) {
	info := validInfo()
	info.CustomerName = ""

	err := ValidateOrder(info, []types.LineItemInput{{Name: "a", Quantity: 1, UnitGross: 10}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customer_name")
}

func TestValidateQuickCalc(t *testing.T) {
	assert.NoError(t, ValidateQuickCalc(QuickCalcInput{Total: 100000, Qty: 3, VATRate: 10}))

	err := ValidateQuickCalc(QuickCalcInput{Total: 100000, Qty: 0, VATRate: 10})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "qty: must be a positive number")

	err = ValidateQuickCalc(QuickCalcInput{Total: -1, Qty: 2, VATRate: 101})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "total")
	assert.Contains(t, err.Error(), "vat_rate")
}

func TestFormatErrors(t *testing.T) {
	assert.Equal(t, "no validation errors", FormatErrors(nil))

	got := FormatErrors([]*ValidationError{
		{Field: "vat_rate", Message: "must be greater than 0"},
		{Line: 3, Field: "qty", Message: "must be a positive number"},
	})
	assert.Equal(t, "validation failed with 2 error(s):\n  - vat_rate: must be greater than 0\n  - line 3, qty: must be a positive number", got)
}
