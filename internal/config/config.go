// =============================================================================
// Trade Documents - Configuration Module
// =============================================================================
//
// This module is responsible for loading and managing configuration. It
// handles the main application configuration, the template vocabulary used to
// discover cells in loosely structured templates, and the marketplace
// consolidation profiles.
//
// CONFIGURATION FILES:
//   1. Main Config (config.yaml): Global application settings
//   2. Order files (order.yaml): Trade information and line items (order.go)
//   3. .env (optional): Marketplace passwords, e.g. TRADEDOCS_NAVER_PASSWORD
//
// DEFAULTS:
//   Every section has built-in defaults matching the stock templates and the
//   Naver / Coupang export layouts, so a config file only needs to name what
//   differs.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// MAIN CONFIGURATION STRUCTURE
// =============================================================================

// MainConfig holds the global application configuration.
// This is loaded from the main config.yaml file.
type MainConfig struct {
	// =========================================================================
	// DIRECTORY SETTINGS
	// =========================================================================

	// OutputDir is the root for generated documents. Each export run gets a
	// <supply date>_<customer> folder below it.
	// Default: "./out"
	OutputDir string `yaml:"output_dir"`

	// ResultDir is the root for marketplace consolidation outputs, laid out
	// as <YYYY>/<MM>/<DD>d_<HH>h<MM>m<file>.
	// Default: "./excel_result"
	ResultDir string `yaml:"result_dir"`

	// =========================================================================
	// LOGGING SETTINGS
	// =========================================================================

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// =========================================================================
	// DOCUMENT SETTINGS
	// =========================================================================

	// Templates are the workbook templates, one per document type.
	Templates TemplatePaths `yaml:"templates"`

	// OutputNames are the fixed output file names per document type.
	OutputNames OutputNames `yaml:"output_names"`

	// DefaultVATRate is used when an order does not specify one.
	// Default: 10
	DefaultVATRate float64 `yaml:"default_vat_rate"`

	// DefaultCustomer is used when an order has no customer name.
	// Default: "미정"
	DefaultCustomer string `yaml:"default_customer"`

	// LeadTimeNote is written next to the quote's 납기일자 label.
	// Default: "시안 확정 후 영업일 기준 10일 내외"
	LeadTimeNote string `yaml:"lead_time_note"`

	// TemplateRules is the vocabulary used to discover template cells.
	TemplateRules TemplateRules `yaml:"template_rules"`

	// =========================================================================
	// CONSOLIDATION SETTINGS
	// =========================================================================

	// Marketplaces holds the consolidation profiles keyed by source name
	// ("naver", "coupang"). Missing profiles and missing fields fall back to
	// the built-in defaults.
	Marketplaces map[string]*MarketplaceProfile `yaml:"marketplaces"`
}

// TemplatePaths holds one template workbook path per document type.
type TemplatePaths struct {
	Quote     string `yaml:"quote"`
	Delivery  string `yaml:"delivery"`
	Statement string `yaml:"statement"`
}

// OutputNames holds one output file name per document type.
type OutputNames struct {
	Quote     string `yaml:"quote"`
	Delivery  string `yaml:"delivery"`
	Statement string `yaml:"statement"`
}

// =============================================================================
// TEMPLATE RULES STRUCTURE
// =============================================================================

// TemplateRules describes how cells are discovered in a template.
type TemplateRules struct {
	// HeaderKeywords identify the item-table header row: the first row with a
	// cell containing any of these is the header.
	HeaderKeywords []string `yaml:"header_keywords"`

	// Columns are the ordered column-role rules. For each header cell the
	// first matching rule wins; a later cell matching the same role replaces
	// the earlier column.
	Columns []ColumnRule `yaml:"columns"`

	// FooterKeywords end the body region: the first row below the header
	// with one of these in its first FooterProbeColumns cells is the footer.
	FooterKeywords []string `yaml:"footer_keywords"`

	// BodyRowLimit is the last row the body clear may touch.
	// Default: 500
	BodyRowLimit int `yaml:"body_row_limit"`

	// ClearColumns is the number of columns blanked per body row.
	// Default: 29
	ClearColumns int `yaml:"clear_columns"`

	// FooterProbeColumns is the number of columns checked for a footer label.
	// Default: 15
	FooterProbeColumns int `yaml:"footer_probe_columns"`

	// CustomerPlaceholder is replaced by the customer name wherever a cell
	// holds exactly this text.
	// Default: "거래처명"
	CustomerPlaceholder string `yaml:"customer_placeholder"`

	// DateLabels are the labels whose right-hand cell receives the supply
	// date, checked in order with substring matching.
	DateLabels []DateLabel `yaml:"date_labels"`

	// KoreanDateRows bounds the statement's search for "2024년 8월 20일"
	// style date cells.
	// Default: 10
	KoreanDateRows int `yaml:"korean_date_rows"`

	// SubtotalLabels, VATLabels and GrossLabels locate the footer totals.
	SubtotalLabels []string `yaml:"subtotal_labels"`
	VATLabels      []string `yaml:"vat_labels"`
	GrossLabels    []string `yaml:"gross_labels"`

	// SumRowKeywords identify the delivery note's sum row, searched in the
	// first SumRowProbeColumns columns below the header.
	SumRowKeywords     []string `yaml:"sum_row_keywords"`
	SumRowProbeColumns int      `yaml:"sum_row_probe_columns"`

	// QuoteAmountLabel marks the row carrying the quotation amount.
	// Default: "견적금액"
	QuoteAmountLabel string `yaml:"quote_amount_label"`

	// QuoteLabelRows bounds the search for QuoteAmountLabel.
	// Default: 30
	QuoteLabelRows int `yaml:"quote_label_rows"`

	// QuoteAmountColumn and QuoteWordsColumn are the fallback columns for the
	// amount and its words when no placeholder cell is recognized.
	// Defaults: "H" and "M"
	QuoteAmountColumn string `yaml:"quote_amount_column"`
	QuoteWordsColumn  string `yaml:"quote_words_column"`
}

// DateLabel is a date label and the format written next to it.
type DateLabel struct {
	Label string `yaml:"label"`

	// Format is "iso" (2024-08-20) or "korean" (2024년 8월 20일).
	Format string `yaml:"format"`
}

// ColumnRule maps header text to a column role.
type ColumnRule struct {
	// Role is one of: seq, name, spec, unit, qty, unit_price, supply, vat, gross.
	Role string `yaml:"role"`

	// Exact, Contains and Prefix are matched against normalized header text
	// (whitespace removed, lower-cased).
	Exact    []string `yaml:"exact,omitempty"`
	Contains []string `yaml:"contains,omitempty"`
	Prefix   []string `yaml:"prefix,omitempty"`

	// Fallback rules only apply when no other cell claimed the role.
	Fallback bool `yaml:"fallback,omitempty"`
}

// =============================================================================
// MARKETPLACE PROFILE STRUCTURE
// =============================================================================

// MarketplaceProfile describes one marketplace export format and how its rows
// are consolidated into label and dispatch sheets.
type MarketplaceProfile struct {
	// DisplayName prefixes output file names (e.g. "네이버").
	DisplayName string `yaml:"display_name"`

	// Password decrypts the export workbook. Empty means not encrypted.
	// Can be set with TRADEDOCS_<KEY>_PASSWORD.
	Password string `yaml:"password,omitempty"`

	// HeaderRow is the 1-based row holding the export's column headers.
	HeaderRow int `yaml:"header_row"`

	// Rename maps export headers to canonical label-sheet headers.
	Rename map[string]string `yaml:"rename"`

	// Constants are columns added to every row with a fixed value.
	Constants map[string]string `yaml:"constants"`

	// Canonical column names used by the merge.
	GroupColumn      string `yaml:"group_column"`
	NameColumn       string `yaml:"name_column"`
	QuantityColumn   string `yaml:"quantity_column"`
	NoteColumn       string `yaml:"note_column"`
	OptionColumn     string `yaml:"option_column,omitempty"`
	OrderCountColumn string `yaml:"order_count_column,omitempty"`
	EngravingColumn  string `yaml:"engraving_column"`

	// NoteCleanup is applied to every note before it is merged.
	NoteCleanup []TransformationAction `yaml:"note_cleanup"`

	// SkipIf is an expression over `row` (column → value). Rows for which
	// it is true are left out of both output sheets.
	//
	// EXAMPLE: row["주문상태"] in ["취소", "반품"]
	SkipIf string `yaml:"skip_if,omitempty"`

	// Brand appears in the summary line: "[<brand>] total => N ea".
	Brand string `yaml:"brand"`

	// DedupeNotes skips a row whose cleaned note was already merged into the
	// same group.
	DedupeNotes bool `yaml:"dedupe_notes"`

	// Truncation of the display field.
	MaxLines       int    `yaml:"max_lines"`
	KeepLines      int    `yaml:"keep_lines"`
	TruncateMark   string `yaml:"truncate_mark"`
	TruncateFiller string `yaml:"truncate_filler"`

	// LabelColumns is the label sheet's column order.
	LabelColumns []string `yaml:"label_columns"`

	// DispatchColumns is the dispatch sheet's column order.
	DispatchColumns []OutputColumn `yaml:"dispatch_columns"`

	// Output naming.
	LabelFile     string `yaml:"label_file"`
	DispatchFile  string `yaml:"dispatch_file"`
	DispatchSheet string `yaml:"dispatch_sheet"`
}

// OutputColumn is a projected output column. An empty Source writes blanks.
type OutputColumn struct {
	Header string `yaml:"header"`
	Source string `yaml:"source,omitempty"`
}

// TransformationAction defines a single text transformation.
type TransformationAction struct {
	// Type is the type of transformation to apply.
	// Supported types:
	//   - "replace"        : Replace Find with Value
	//   - "regex_replace"  : Replace the Find pattern with Value
	//   - "trim"           : Remove leading and trailing whitespace
	//   - "trim_prefix"    : Remove Value from the start
	//   - "trim_suffix"    : Remove Value from the end
	//   - "collapse_space" : Collapse runs of whitespace to one space
	//   - "prepend_string" : Add Value to the beginning
	//   - "append_string"  : Add Value to the end
	//   - "lookup"         : Replace the whole value using LookupTable
	Type string `yaml:"type"`

	Value string `yaml:"value,omitempty"`
	Find  string `yaml:"find,omitempty"`

	LookupTable map[string]string `yaml:"lookup_table,omitempty"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// LoadMainConfig loads the main configuration from a YAML file.
//
// PARAMETERS:
//   - configPath: The path to the main configuration file.
//
// RETURNS:
//   - A pointer to the MainConfig struct.
//   - An error if the file cannot be read, parsed or validated.
func LoadMainConfig(configPath string) (*MainConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config MainConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return finish(&config)
}

// Default returns the built-in configuration, as if an empty config file had
// been loaded.
func Default() (*MainConfig, error) {
	return finish(&MainConfig{})
}

func finish(config *MainConfig) (*MainConfig, error) {
	applyMainConfigDefaults(config)
	applyEnvOverrides(config)

	if err := validateMainConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// applyMainConfigDefaults sets default values for any unset configuration options.
func applyMainConfigDefaults(config *MainConfig) {
	if config.OutputDir == "" {
		config.OutputDir = "./out"
	}
	if config.ResultDir == "" {
		config.ResultDir = "./excel_result"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.Templates.Quote == "" {
		config.Templates.Quote = "ex/견적서.xlsx"
	}
	if config.Templates.Delivery == "" {
		config.Templates.Delivery = "ex/납품서.xlsx"
	}
	if config.Templates.Statement == "" {
		config.Templates.Statement = "ex/거래명세표.xlsx"
	}
	if config.OutputNames.Quote == "" {
		config.OutputNames.Quote = "견적서_자동생성.xlsx"
	}
	if config.OutputNames.Delivery == "" {
		config.OutputNames.Delivery = "납품서_자동생성.xlsx"
	}
	if config.OutputNames.Statement == "" {
		config.OutputNames.Statement = "거래명세표_자동생성.xlsx"
	}
	if config.DefaultVATRate == 0 {
		config.DefaultVATRate = 10
	}
	if config.DefaultCustomer == "" {
		config.DefaultCustomer = "미정"
	}
	if config.LeadTimeNote == "" {
		config.LeadTimeNote = "시안 확정 후 영업일 기준 10일 내외"
	}

	applyTemplateRuleDefaults(&config.TemplateRules)

	if config.Marketplaces == nil {
		config.Marketplaces = make(map[string]*MarketplaceProfile)
	}
	for key, def := range DefaultMarketplaces() {
		profile, ok := config.Marketplaces[key]
		if !ok || profile == nil {
			config.Marketplaces[key] = def
			continue
		}
		applyProfileDefaults(profile, def)
	}
	for _, profile := range config.Marketplaces {
		applyProfileDefaults(profile, genericProfile())
	}
}

// applyTemplateRuleDefaults fills unset template rules from DefaultTemplateRules.
func applyTemplateRuleDefaults(rules *TemplateRules) {
	def := DefaultTemplateRules()

	if len(rules.HeaderKeywords) == 0 {
		rules.HeaderKeywords = def.HeaderKeywords
	}
	if len(rules.Columns) == 0 {
		rules.Columns = def.Columns
	}
	if len(rules.FooterKeywords) == 0 {
		rules.FooterKeywords = def.FooterKeywords
	}
	if rules.BodyRowLimit == 0 {
		rules.BodyRowLimit = def.BodyRowLimit
	}
	if rules.ClearColumns == 0 {
		rules.ClearColumns = def.ClearColumns
	}
	if rules.FooterProbeColumns == 0 {
		rules.FooterProbeColumns = def.FooterProbeColumns
	}
	if rules.CustomerPlaceholder == "" {
		rules.CustomerPlaceholder = def.CustomerPlaceholder
	}
	if len(rules.DateLabels) == 0 {
		rules.DateLabels = def.DateLabels
	}
	if rules.KoreanDateRows == 0 {
		rules.KoreanDateRows = def.KoreanDateRows
	}
	if len(rules.SubtotalLabels) == 0 {
		rules.SubtotalLabels = def.SubtotalLabels
	}
	if len(rules.VATLabels) == 0 {
		rules.VATLabels = def.VATLabels
	}
	if len(rules.GrossLabels) == 0 {
		rules.GrossLabels = def.GrossLabels
	}
	if len(rules.SumRowKeywords) == 0 {
		rules.SumRowKeywords = def.SumRowKeywords
	}
	if rules.SumRowProbeColumns == 0 {
		rules.SumRowProbeColumns = def.SumRowProbeColumns
	}
	if rules.QuoteAmountLabel == "" {
		rules.QuoteAmountLabel = def.QuoteAmountLabel
	}
	if rules.QuoteLabelRows == 0 {
		rules.QuoteLabelRows = def.QuoteLabelRows
	}
	if rules.QuoteAmountColumn == "" {
		rules.QuoteAmountColumn = def.QuoteAmountColumn
	}
	if rules.QuoteWordsColumn == "" {
		rules.QuoteWordsColumn = def.QuoteWordsColumn
	}
}

// applyProfileDefaults fills unset profile fields from def.
func applyProfileDefaults(p, def *MarketplaceProfile) {
	if p.DisplayName == "" {
		p.DisplayName = def.DisplayName
	}
	if p.Password == "" {
		p.Password = def.Password
	}
	if p.HeaderRow == 0 {
		p.HeaderRow = def.HeaderRow
	}
	if p.Rename == nil {
		p.Rename = def.Rename
	}
	if p.Constants == nil {
		p.Constants = def.Constants
	}
	if p.GroupColumn == "" {
		p.GroupColumn = def.GroupColumn
	}
	if p.NameColumn == "" {
		p.NameColumn = def.NameColumn
	}
	if p.QuantityColumn == "" {
		p.QuantityColumn = def.QuantityColumn
	}
	if p.NoteColumn == "" {
		p.NoteColumn = def.NoteColumn
	}
	if p.OptionColumn == "" {
		p.OptionColumn = def.OptionColumn
	}
	if p.OrderCountColumn == "" {
		p.OrderCountColumn = def.OrderCountColumn
	}
	if p.EngravingColumn == "" {
		p.EngravingColumn = def.EngravingColumn
	}
	if p.NoteCleanup == nil {
		p.NoteCleanup = def.NoteCleanup
	}
	if p.Brand == "" {
		p.Brand = def.Brand
	}
	if p.MaxLines == 0 {
		p.MaxLines = def.MaxLines
	}
	if p.KeepLines == 0 {
		p.KeepLines = def.KeepLines
	}
	if p.TruncateMark == "" {
		p.TruncateMark = def.TruncateMark
	}
	if p.TruncateFiller == "" {
		p.TruncateFiller = def.TruncateFiller
	}
	if len(p.LabelColumns) == 0 {
		p.LabelColumns = def.LabelColumns
	}
	if len(p.DispatchColumns) == 0 {
		p.DispatchColumns = def.DispatchColumns
	}
	if p.LabelFile == "" {
		p.LabelFile = def.LabelFile
	}
	if p.DispatchFile == "" {
		p.DispatchFile = def.DispatchFile
	}
	if p.DispatchSheet == "" {
		p.DispatchSheet = def.DispatchSheet
	}
}

// applyEnvOverrides reads TRADEDOCS_<KEY>_PASSWORD for every profile.
func applyEnvOverrides(config *MainConfig) {
	for key, profile := range config.Marketplaces {
		name := "TRADEDOCS_" + strings.ToUpper(key) + "_PASSWORD"
		if v, ok := os.LookupEnv(name); ok {
			profile.Password = v
		}
	}
}

// validateMainConfig validates the main configuration.
func validateMainConfig(config *MainConfig) error {
	err := validation.ValidateStruct(config,
		validation.Field(&config.LogLevel, validation.In("debug", "info", "warn", "error")),
		validation.Field(&config.DefaultVATRate, validation.Min(0.0).Exclusive(), validation.Max(100.0)),
	)
	if err != nil {
		return err
	}

	rules := config.TemplateRules
	for _, rule := range rules.Columns {
		if !validRoles[rule.Role] {
			return fmt.Errorf("template_rules: unknown column role %q", rule.Role)
		}
	}
	if rules.FooterProbeColumns > rules.ClearColumns {
		return errors.New("template_rules: footer_probe_columns must not exceed clear_columns")
	}
	for _, dl := range rules.DateLabels {
		if dl.Format != "iso" && dl.Format != "korean" {
			return fmt.Errorf("template_rules: date label %q has unknown format %q", dl.Label, dl.Format)
		}
	}

	for key, p := range config.Marketplaces {
		if err := validateProfile(p); err != nil {
			return fmt.Errorf("marketplaces.%s: %w", key, err)
		}
	}
	return nil
}

func validateProfile(p *MarketplaceProfile) error {
	if p.KeepLines >= p.MaxLines {
		return fmt.Errorf("keep_lines (%d) must be less than max_lines (%d)", p.KeepLines, p.MaxLines)
	}
	return validation.ValidateStruct(p,
		validation.Field(&p.HeaderRow, validation.Min(1)),
		validation.Field(&p.GroupColumn, validation.Required),
		validation.Field(&p.NameColumn, validation.Required),
		validation.Field(&p.QuantityColumn, validation.Required),
		validation.Field(&p.EngravingColumn, validation.Required),
		validation.Field(&p.LabelColumns, validation.Required),
		validation.Field(&p.LabelFile, validation.Required),
		validation.Field(&p.DispatchFile, validation.Required),
	)
}

// validRoles are the column roles a template rule may name.
var validRoles = map[string]bool{
	"seq": true, "name": true, "spec": true, "unit": true, "qty": true,
	"unit_price": true, "supply": true, "vat": true, "gross": true,
}

// TemplateFor returns the template path for a document kind name.
func (c *MainConfig) TemplateFor(kind string) string {
	switch kind {
	case "quote":
		return c.Templates.Quote
	case "delivery":
		return c.Templates.Delivery
	case "statement":
		return c.Templates.Statement
	}
	return ""
}

// OutputNameFor returns the output file name for a document kind name.
func (c *MainConfig) OutputNameFor(kind string) string {
	switch kind {
	case "quote":
		return c.OutputNames.Quote
	case "delivery":
		return c.OutputNames.Delivery
	case "statement":
		return c.OutputNames.Statement
	}
	return ""
}

// Profile returns the marketplace profile for key.
func (c *MainConfig) Profile(key string) (*MarketplaceProfile, error) {
	p, ok := c.Marketplaces[key]
	if !ok {
		return nil, fmt.Errorf("unknown marketplace %q", key)
	}
	return p, nil
}
