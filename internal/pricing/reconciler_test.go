package pricing

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/musika/salescore/constants"
	"github.com/musika/salescore/internal/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestReconcile(t *testing.T) {
	product := &entity.Product{ID: "p1", Name: "Bread", UnitPrice: dec("1.00")}
	r := NewReconciler(dec("0.01"))

	tests := []struct {
		name        string
		provided    *decimal.Decimal
		wantPrice   string
		wantSource  constants.PriceSource
		wantWarning bool
	}{
		{
			name:       "no dictated price uses catalog",
			provided:   nil,
			wantPrice:  "1.00",
			wantSource: constants.PriceSourceDatabase,
		},
		{
			name:       "exact agreement keeps dictated price",
			provided:   ptr(dec("1.00")),
			wantPrice:  "1.00",
			wantSource: constants.PriceSourceProvided,
		},
		{
			name:       "difference within tolerance keeps dictated price",
			provided:   ptr(dec("0.99")),
			wantPrice:  "0.99",
			wantSource: constants.PriceSourceProvided,
		},
		{
			name:        "difference beyond tolerance corrected to catalog",
			provided:    ptr(dec("1.50")),
			wantPrice:   "1.00",
			wantSource:  constants.PriceSourceCorrected,
			wantWarning: true,
		},
		{
			name:        "undercharge corrected to catalog",
			provided:    ptr(dec("0.50")),
			wantPrice:   "1.00",
			wantSource:  constants.PriceSourceCorrected,
			wantWarning: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := entity.ParsedLineItem{Name: "bread", Quantity: 1, UnitPrice: tt.provided}
			price, source, warning := r.Reconcile(product, item)
			if !price.Equal(dec(tt.wantPrice)) {
				t.Errorf("price = %s, want %s", price, tt.wantPrice)
			}
			if source != tt.wantSource {
				t.Errorf("source = %q, want %q", source, tt.wantSource)
			}
			if (warning != "") != tt.wantWarning {
				t.Errorf("warning = %q, wantWarning = %v", warning, tt.wantWarning)
			}
		})
	}
}

func TestReconcileWarningDetail(t *testing.T) {
	product := &entity.Product{ID: "p1", Name: "Bread", UnitPrice: dec("1.00")}
	r := NewReconciler(decimal.Zero) // falls back to the default tolerance
	item := entity.ParsedLineItem{Name: "bread", Quantity: 2, UnitPrice: ptr(dec("1.50"))}

	_, _, warning := r.Reconcile(product, item)
	for _, fragment := range []string{"provided $1.50", "catalog $1.00", "50% off"} {
		if !strings.Contains(warning, fragment) {
			t.Errorf("warning %q missing %q", warning, fragment)
		}
	}
}

func TestPercentDiffZeroCatalogPrice(t *testing.T) {
	got := percentDiff(dec("2.00"), decimal.Zero)
	if !got.Equal(decimal.NewFromInt(100)) {
		t.Errorf("percentDiff against zero catalog = %s, want 100", got)
	}
}

func ptr(d decimal.Decimal) *decimal.Decimal { return &d }
