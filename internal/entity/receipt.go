package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/musika/salescore/constants"
)

// Receipt is a priced sale awaiting (or past) confirmation. It is built once
// by the receipt builder and mutated only by the lifecycle manager.
type Receipt struct {
	TransactionID string             `json:"transaction_id"`
	UserID        string             `json:"user_id"`
	StoreID       string             `json:"store_id"`
	CustomerName  string             `json:"customer_name,omitempty"`
	Items         []ResolvedLineItem `json:"items"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	TaxRate       decimal.Decimal    `json:"tax_rate"`
	TaxAmount     decimal.Decimal    `json:"tax_amount"`
	Total         decimal.Decimal    `json:"total"`
	Status        constants.TxStatus `json:"status"`
	CreatedAt     time.Time          `json:"created_at"`
	ConfirmedAt   *time.Time         `json:"confirmed_at,omitempty"`
}

// NewReceipt totals the accepted items, applies tax and assigns a fresh
// transaction id. Subtotal is the exact sum of line totals; tax and grand
// total are rounded to cents.
func NewReceipt(userID, storeID, customerName string, items []ResolvedLineItem, taxRate decimal.Decimal) (*Receipt, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("receipt requires at least one item")
	}
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.LineTotal)
	}
	taxAmount := subtotal.Mul(taxRate).Round(2)
	total := subtotal.Add(taxAmount).Round(2)

	now := time.Now().UTC()
	return &Receipt{
		TransactionID: NewTransactionID(userID, now),
		UserID:        userID,
		StoreID:       storeID,
		CustomerName:  customerName,
		Items:         items,
		Subtotal:      subtotal,
		TaxRate:       taxRate,
		TaxAmount:     taxAmount,
		Total:         total,
		Status:        constants.TxStatusPending,
		CreatedAt:     now,
	}, nil
}

// NewTransactionID keeps the legacy TXN_<user>_<unix> shape the chat flow
// surfaces to sellers, with a uuid suffix so two sales in the same second
// cannot collide.
func NewTransactionID(userID string, at time.Time) string {
	return fmt.Sprintf("TXN_%s_%d_%s", userID, at.Unix(), uuid.NewString()[:8])
}

// OwnedBy reports whether the receipt belongs to the given user and store.
func (r *Receipt) OwnedBy(userID, storeID string) bool {
	return r.UserID == userID && r.StoreID == storeID
}
