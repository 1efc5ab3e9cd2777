package config

// =============================================================================
// TEMPLATE VOCABULARY
// =============================================================================

// DefaultTemplateRules returns the built-in template vocabulary.
//
// Terms are compared against normalized cell text (whitespace removed,
// lower-cased), so "단 가" matches "단가" and "Unit Price" matches "unitprice".
func DefaultTemplateRules() TemplateRules {
	return TemplateRules{
		HeaderKeywords: []string{"품목", "품명", "item", "product"},
		Columns: []ColumnRule{
			{Role: "seq", Exact: []string{"no", "no.", "순번", "번호"}},
			{Role: "name", Contains: []string{"품목", "품명", "item", "product"}},
			{Role: "spec", Contains: []string{"규격", "spec"}},
			{Role: "unit", Contains: []string{"단위"}, Exact: []string{"unit"}},
			{Role: "qty", Contains: []string{"수량", "qty", "quantity"}},
			{Role: "unit_price", Prefix: []string{"단가", "unitprice", "price"}},
			{Role: "supply", Exact: []string{"금액", "공급가액", "공급가", "amount", "supply"}},
			{Role: "vat", Exact: []string{"세액", "부가세", "vat", "tax"}},
			{Role: "gross", Exact: []string{"합계", "총액", "합계금액", "total", "gross"}},
			{Role: "gross", Contains: []string{"비고", "remarks"}, Fallback: true},
		},
		FooterKeywords:      []string{"총합계금액", "소계", "부가세", "합계", "subtotal", "total", "vat"},
		BodyRowLimit:        500,
		ClearColumns:        29,
		FooterProbeColumns:  15,
		CustomerPlaceholder: "거래처명",
		DateLabels: []DateLabel{
			{Label: "견적일자", Format: "iso"},
			{Label: "공급일자", Format: "iso"},
			{Label: "공급일", Format: "iso"},
			{Label: "납품일", Format: "korean"},
		},
		KoreanDateRows:     10,
		SubtotalLabels:     []string{"소계", "subtotal"},
		VATLabels:          []string{"부가세", "vat"},
		GrossLabels:        []string{"총합계금액", "합계금액", "total"},
		SumRowKeywords:     []string{"합계", "총계", "total"},
		SumRowProbeColumns: 9,
		QuoteAmountLabel:   "견적금액",
		QuoteLabelRows:     30,
		QuoteAmountColumn:  "H",
		QuoteWordsColumn:   "M",
	}
}

// =============================================================================
// MARKETPLACE PROFILES
// =============================================================================

// Canonical label-sheet headers shared by both marketplaces.
const (
	colRecipient      = "받으시는 분"
	colRecipientPhone = "받으시는 분 전화"
	colRecipientCell  = "받는분핸드폰"
	colItemName       = "품목명"
	colQuantity       = "수량"
	colDeliveryNote   = "특기사항"
	colOrderCount     = "1년 주문건수"
	colMemo           = "메모1"
	colAddress        = "기본배송지"
	colAddressDetail  = "상세배송지"
	colPostcode       = "받는분우편번호"
	colBuyer          = "구매자명"
	colBuyerPhone     = "구매자연락처"
	colShipmentID     = "출고번호"
	colProductOrderID = "상품주문번호"
	colFreightType    = "운임Type"
	colPaymentTerms   = "지불조건"
	colEngraving      = "각인"
	colOrderedAt      = "주문일시"
	colOption         = "상품옵션명"
	colShippingMethod = "배송방법"
	colCarrier        = "택배사"
	colInvoiceNo      = "송장번호"
)

// defaultNoteCleanup strips the order-form placeholders buyers leave behind.
func defaultNoteCleanup() []TransformationAction {
	return []TransformationAction{
		{Type: "replace", Find: "여기에 문구:", Value: ""},
		{Type: "replace", Find: "여기에 각인 문구:", Value: ""},
		{Type: "trim"},
	}
}

// defaultDispatchColumns is the carrier upload layout. The recipient is
// written back under the export's own header.
func defaultDispatchColumns(recipientHeader string) []OutputColumn {
	return []OutputColumn{
		{Header: colProductOrderID, Source: colProductOrderID},
		{Header: colShippingMethod, Source: colShippingMethod},
		{Header: colCarrier, Source: colCarrier},
		{Header: colInvoiceNo, Source: colInvoiceNo},
		{Header: recipientHeader, Source: colRecipient},
		{Header: "비고"},
		{Header: colShipmentID, Source: colShipmentID},
		{Header: "출고번호넣기"},
		{Header: "운송장번호"},
	}
}

// genericProfile carries the settings every profile shares.
func genericProfile() *MarketplaceProfile {
	return &MarketplaceProfile{
		HeaderRow:       1,
		GroupColumn:     colShipmentID,
		NameColumn:      colItemName,
		QuantityColumn:  colQuantity,
		NoteColumn:      colMemo,
		EngravingColumn: colEngraving,
		NoteCleanup:     defaultNoteCleanup(),
		Brand:           "hobby brown",
		MaxLines:        11,
		KeepLines:       8,
		TruncateMark:    "^_~",
		TruncateFiller:  ".",
		DispatchSheet:   "발송처리",
	}
}

// DefaultMarketplaces returns the built-in Naver and Coupang profiles.
func DefaultMarketplaces() map[string]*MarketplaceProfile {
	naver := genericProfile()
	naver.DisplayName = "네이버"
	naver.Password = "1111"
	naver.HeaderRow = 2
	naver.Rename = map[string]string{
		"수취인명":    colRecipient,
		"수취인연락처1": colRecipientPhone,
		"수취인연락처2": colRecipientCell,
		"상품명":     colItemName,
		"배송메세지":   colDeliveryNote,
		"옵션정보":    colMemo,
		"우편번호":    colPostcode,
		"주문번호":    colShipmentID,
	}
	naver.Constants = map[string]string{
		colFreightType:  "s",
		colPaymentTerms: "신용",
		colCarrier:      "한진택배",
	}
	naver.OrderCountColumn = colOrderCount
	naver.LabelColumns = []string{
		colRecipient, colRecipientPhone, colRecipientCell, colItemName, colQuantity,
		colDeliveryNote, colOrderCount, colAddress, colAddressDetail, colPostcode,
		colBuyer, colBuyerPhone, colShipmentID, colProductOrderID, colFreightType,
		colPaymentTerms, colEngraving, colOrderedAt,
	}
	naver.DispatchColumns = defaultDispatchColumns("수취인명")
	naver.LabelFile = "네이버_송장발부.xlsx"
	naver.DispatchFile = "네이버_발송처리.xlsx"

	coupang := genericProfile()
	coupang.DisplayName = "쿠팡"
	coupang.Rename = map[string]string{
		"수취인이름":         colRecipient,
		"수취인전화번호":       colRecipientCell,
		"등록옵션명":         colItemName,
		"구매수(수량)":       colQuantity,
		"배송메세지":         colDeliveryNote,
		"수취인 주소":        colAddress,
		"주문자 추가메시지":     colMemo,
		"우편번호":          colPostcode,
		"구매자":           colBuyer,
		"구매자전화번호":       colBuyerPhone,
		"묶음배송번호":        colShipmentID,
		"주문번호":          colProductOrderID,
		"최초등록등록상품명/옵션명": colOption,
	}
	coupang.Constants = map[string]string{
		colFreightType:  "s",
		colPaymentTerms: "신용",
	}
	coupang.OptionColumn = colOption
	coupang.LabelColumns = []string{
		colRecipient, colRecipientPhone, colRecipientCell, colItemName, colQuantity,
		colDeliveryNote, colOrderCount, colAddress, colAddressDetail, colPostcode,
		colBuyer, colBuyerPhone, colShipmentID, colProductOrderID, colFreightType,
		colPaymentTerms, colEngraving,
	}
	coupang.DispatchColumns = defaultDispatchColumns("수취인이름")
	coupang.LabelFile = "쿠팡_송장발부.xlsx"
	coupang.DispatchFile = "쿠팡_발송처리.xlsx"

	return map[string]*MarketplaceProfile{
		"naver":   naver,
		"coupang": coupang,
	}
}
