// =============================================================================
// Trade Documents - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - calculator
//   - validation
//   - filler
//   - docgen
//
// MONEY:
//   Every monetary amount is an int64 in the smallest currency unit (KRW has
//   no minor unit, so one unit is one won).
//
// =============================================================================

package types

// =============================================================================
// TRADE PARTY
// =============================================================================

// TradeInfo describes the customer side of one export request.
// It is created once per request and never persisted.
type TradeInfo struct {
	// CustomerName replaces the customer placeholder in every template.
	CustomerName string `yaml:"customer_name" json:"customer_name"`

	// SupplyDate is an ISO calendar date (YYYY-MM-DD).
	SupplyDate string `yaml:"supply_date" json:"supply_date"`

	// BusinessNumber is the customer's business registration number.
	BusinessNumber string `yaml:"business_number,omitempty" json:"business_number,omitempty"`

	// Contact is a free-form phone or e-mail.
	Contact string `yaml:"contact,omitempty" json:"contact,omitempty"`

	// VATRate is a percentage, e.g. 10 for 10%.
	VATRate float64 `yaml:"vat_rate" json:"vat_rate"`
}

// =============================================================================
// LINE ITEMS
// =============================================================================

// LineItemInput is one priced row as entered by the operator.
type LineItemInput struct {
	Name string `yaml:"name" json:"name"`

	// Spec is the free-text 규격 column (size, capacity).
	Spec string `yaml:"spec,omitempty" json:"spec,omitempty"`

	// Quantity must be positive.
	Quantity int64 `yaml:"qty" json:"qty"`

	// UnitGross is the VAT-inclusive unit price.
	UnitGross int64 `yaml:"unit_gross" json:"unit_gross"`

	// DiscountRate is a percentage in [0, 100].
	DiscountRate float64 `yaml:"discount_rate,omitempty" json:"discount_rate,omitempty"`
}

// LineItemComputed extends LineItemInput with the derived amounts.
//
// INVARIANTS:
//   - UnitVAT    = UnitDiscountedGross - UnitSupplyDiscounted
//   - GrossTotal = UnitDiscountedGross * Quantity
//   - VATTotal   = GrossTotal - SupplyTotal
//
// Unit-level and aggregate-level amounts are rounded independently and may
// differ by up to Quantity units.
type LineItemComputed struct {
	LineItemInput

	// UnitSupplyOriginal is the unit supply price before discount.
	UnitSupplyOriginal int64

	// UnitDiscountedGross is the unit gross price after discount.
	UnitDiscountedGross int64

	// UnitSupplyDiscounted is the unit supply price after discount.
	UnitSupplyDiscounted int64

	// UnitVAT is the unit VAT after discount.
	UnitVAT int64

	SupplyTotal int64
	VATTotal    int64
	GrossTotal  int64
}

// Totals is the aggregate of a set of computed line items.
type Totals struct {
	Supply int64
	VAT    int64
	Gross  int64
}

// =============================================================================
// DOCUMENT KINDS
// =============================================================================

// DocumentKind identifies one of the three generated documents.
type DocumentKind string

const (
	// DocumentQuote is the quotation (견적서).
	DocumentQuote DocumentKind = "quote"

	// DocumentDelivery is the delivery note (납품서).
	DocumentDelivery DocumentKind = "delivery"

	// DocumentStatement is the statement of transaction (거래명세표).
	DocumentStatement DocumentKind = "statement"
)

// AllDocumentKinds lists the documents in generation order.
var AllDocumentKinds = []DocumentKind{DocumentQuote, DocumentDelivery, DocumentStatement}
