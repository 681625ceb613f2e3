// Package pricing decides the final unit price when a seller dictates one
// that may disagree with the catalog.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/musika/salescore/constants"
	"github.com/musika/salescore/internal/entity"
)

// DefaultTolerance is the absolute price difference treated as agreement.
var DefaultTolerance = decimal.NewFromFloat(0.01)

// Reconciler applies the catalog-wins policy on price conflicts.
type Reconciler struct {
	tolerance decimal.Decimal
}

func NewReconciler(tolerance decimal.Decimal) *Reconciler {
	if tolerance.LessThanOrEqual(decimal.Zero) {
		tolerance = DefaultTolerance
	}
	return &Reconciler{tolerance: tolerance}
}

// Reconcile picks the final unit price for a resolved product. It returns the
// price, its source, and a non-empty warning when the dictated price was
// overridden by the catalog.
func (r *Reconciler) Reconcile(product *entity.Product, item entity.ParsedLineItem) (decimal.Decimal, constants.PriceSource, string) {
	if item.UnitPrice == nil {
		return product.UnitPrice, constants.PriceSourceDatabase, ""
	}
	provided := *item.UnitPrice
	diff := product.UnitPrice.Sub(provided).Abs()
	if diff.LessThanOrEqual(r.tolerance) {
		return provided, constants.PriceSourceProvided, ""
	}

	warning := fmt.Sprintf(
		"Price difference for %s: provided $%s, catalog $%s (%s%% off) - using catalog price",
		product.Name,
		provided.StringFixed(2),
		product.UnitPrice.StringFixed(2),
		percentDiff(provided, product.UnitPrice).StringFixed(0),
	)
	return product.UnitPrice, constants.PriceSourceCorrected, warning
}

// percentDiff is |provided-catalog| relative to the catalog price.
func percentDiff(provided, catalog decimal.Decimal) decimal.Decimal {
	if catalog.IsZero() {
		return decimal.NewFromInt(100)
	}
	return provided.Sub(catalog).Abs().Div(catalog).Mul(decimal.NewFromInt(100))
}
