package entity

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/musika/salescore/constants"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func mustLine(t *testing.T, productID, name string, qty int, price string) ResolvedLineItem {
	t.Helper()
	line, err := NewResolvedLineItem(productID, name, qty, dec(price), "Grocery", constants.PriceSourceDatabase)
	if err != nil {
		t.Fatal(err)
	}
	return line
}

func TestNewResolvedLineItemTotal(t *testing.T) {
	line := mustLine(t, "p1", "Bread", 3, "1.50")
	if !line.LineTotal.Equal(dec("4.50")) {
		t.Errorf("line total = %s, want 4.50", line.LineTotal)
	}
}

func TestNewResolvedLineItemRejectsBadInput(t *testing.T) {
	if _, err := NewResolvedLineItem("p1", "Bread", 0, dec("1.00"), "", constants.PriceSourceDatabase); err == nil {
		t.Error("zero quantity accepted, want error")
	}
	if _, err := NewResolvedLineItem("p1", "Bread", 1, dec("-1.00"), "", constants.PriceSourceDatabase); err == nil {
		t.Error("negative price accepted, want error")
	}
}

func TestNewReceiptTotals(t *testing.T) {
	taxRate := dec("0.05")
	tests := []struct {
		name         string
		items        []ResolvedLineItem
		wantSubtotal string
		wantTax      string
		wantTotal    string
	}{
		{
			name: "two items",
			items: []ResolvedLineItem{
				mustLine(t, "p1", "Bread", 2, "1.00"),
				mustLine(t, "p2", "Milk", 1, "0.80"),
			},
			wantSubtotal: "2.80",
			wantTax:      "0.14",
			wantTotal:    "2.94",
		},
		{
			name:         "tax rounds to cents",
			items:        []ResolvedLineItem{mustLine(t, "p1", "Bread", 1, "1.11")},
			wantSubtotal: "1.11",
			wantTax:      "0.06",
			wantTotal:    "1.17",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			receipt, err := NewReceipt("user_1", "store_1", "", tt.items, taxRate)
			if err != nil {
				t.Fatal(err)
			}
			if !receipt.Subtotal.Equal(dec(tt.wantSubtotal)) {
				t.Errorf("subtotal = %s, want %s", receipt.Subtotal, tt.wantSubtotal)
			}
			if !receipt.TaxAmount.Equal(dec(tt.wantTax)) {
				t.Errorf("tax = %s, want %s", receipt.TaxAmount, tt.wantTax)
			}
			if !receipt.Total.Equal(dec(tt.wantTotal)) {
				t.Errorf("total = %s, want %s", receipt.Total, tt.wantTotal)
			}
			if receipt.Status != constants.TxStatusPending {
				t.Errorf("status = %q, want pending", receipt.Status)
			}
		})
	}
}

func TestNewReceiptRequiresItems(t *testing.T) {
	if _, err := NewReceipt("user_1", "store_1", "", nil, dec("0.05")); err == nil {
		t.Error("empty receipt accepted, want error")
	}
}

func TestNewTransactionID(t *testing.T) {
	at := time.Unix(1700000000, 0)
	id := NewTransactionID("user_1", at)
	if !strings.HasPrefix(id, "TXN_user_1_1700000000_") {
		t.Errorf("id = %q, want TXN_user_1_1700000000_ prefix", id)
	}
	if other := NewTransactionID("user_1", at); other == id {
		t.Error("two ids from the same instant collided")
	}
}

func TestReceiptOwnedBy(t *testing.T) {
	r := &Receipt{UserID: "user_1", StoreID: "store_1"}
	if !r.OwnedBy("user_1", "store_1") {
		t.Error("owner rejected")
	}
	if r.OwnedBy("user_2", "store_1") || r.OwnedBy("user_1", "store_2") {
		t.Error("non-owner accepted")
	}
}
