package entity

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/musika/salescore/constants"
)

// ParsedLineItem is what a parsing strategy extracted from one segment of the
// sale message. It carries no catalog knowledge; the resolver consumes and
// discards it.
type ParsedLineItem struct {
	Name        string
	Quantity    int
	UnitPrice   *decimal.Decimal // nil when no price was dictated
	PriceSource constants.PriceSource
	RawText     string
}

// NewParsedLineItem validates quantity and price at construction.
func NewParsedLineItem(name string, quantity int, unitPrice *decimal.Decimal, source constants.PriceSource, rawText string) (ParsedLineItem, error) {
	if quantity <= 0 {
		return ParsedLineItem{}, fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	if unitPrice != nil && unitPrice.IsNegative() {
		return ParsedLineItem{}, fmt.Errorf("unit price must not be negative, got %s", unitPrice)
	}
	return ParsedLineItem{
		Name:        name,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		PriceSource: source,
		RawText:     rawText,
	}, nil
}

// ResolvedLineItem is a line item after catalog resolution and price
// reconciliation, ready for the receipt.
type ResolvedLineItem struct {
	ProductID   string                `json:"product_id,omitempty"` // empty for off-catalog items accepted with a provided price
	Name        string                `json:"name"`
	Quantity    int                   `json:"quantity"`
	UnitPrice   decimal.Decimal       `json:"unit_price"`
	LineTotal   decimal.Decimal       `json:"line_total"`
	Category    string                `json:"category"`
	PriceSource constants.PriceSource `json:"price_source"`
}

// NewResolvedLineItem computes the line total and validates the invariants.
func NewResolvedLineItem(productID, name string, quantity int, unitPrice decimal.Decimal, category string, source constants.PriceSource) (ResolvedLineItem, error) {
	if quantity <= 0 {
		return ResolvedLineItem{}, fmt.Errorf("quantity must be positive, got %d", quantity)
	}
	if unitPrice.IsNegative() {
		return ResolvedLineItem{}, fmt.Errorf("unit price must not be negative, got %s", unitPrice)
	}
	return ResolvedLineItem{
		ProductID:   productID,
		Name:        name,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
		Category:    category,
		PriceSource: source,
	}, nil
}
