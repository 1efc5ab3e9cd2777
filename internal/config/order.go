package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hobbybrown/tradedocs/internal/types"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// ORDER FILE
// =============================================================================

// OrderFile is one export request: who the documents are for and what was
// sold. It is the CLI's stand-in for the operator's input form.
//
// EXAMPLE:
//
//	trade:
//	  customer_name: 하비브라운
//	  supply_date: 2024-08-20
//	  vat_rate: 10
//	items:
//	  - name: 머그컵
//	    spec: 350ml
//	    qty: 8
//	    unit_gross: 27500
type OrderFile struct {
	Trade types.TradeInfo       `yaml:"trade" json:"trade"`
	Items []types.LineItemInput `yaml:"items" json:"items"`
}

// LoadOrder reads an order file and applies the configured defaults for the
// customer name and VAT rate. It does not validate the order.
func LoadOrder(path string, cfg *MainConfig) (*OrderFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read order file: %w", err)
	}

	var order OrderFile
	if err := yaml.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("failed to parse order file: %w", err)
	}

	order.ApplyDefaults(cfg)
	return &order, nil
}

// ApplyDefaults fills the customer name and VAT rate from cfg when unset.
func (o *OrderFile) ApplyDefaults(cfg *MainConfig) {
	o.Trade.CustomerName = strings.TrimSpace(o.Trade.CustomerName)
	if o.Trade.CustomerName == "" {
		o.Trade.CustomerName = cfg.DefaultCustomer
	}
	if o.Trade.VATRate == 0 {
		o.Trade.VATRate = cfg.DefaultVATRate
	}
	o.Trade.SupplyDate = strings.TrimSpace(o.Trade.SupplyDate)
}
