// Package checkout carries a parsed sale through catalog resolution, price
// reconciliation and receipt construction, and exposes the sale-side
// operations of the core.
package checkout

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/musika/salescore/constants"
	"github.com/musika/salescore/internal/entity"
	"github.com/musika/salescore/internal/match"
	"github.com/musika/salescore/internal/parse"
	"github.com/musika/salescore/internal/pricing"
)

// maxNameSuggestions caps the "did you mean" list per unresolved item.
const maxNameSuggestions = 3

// maxSampleProducts caps the catalog sample shown when a whole sale fails.
const maxSampleProducts = 5

// BuildResult is the outcome of pricing one parsed sale. Success means the
// error list is empty; a receipt with accepted items may accompany errors for
// operator review.
type BuildResult struct {
	Success  bool
	Receipt  *entity.Receipt
	Errors   []string
	Warnings []string
	// Suggestions carries reformat hints and alternative product names when
	// something went wrong.
	Suggestions []string
}

// Builder validates parsed items against the catalog and assembles the
// pending receipt.
type Builder struct {
	resolver   *match.Resolver
	reconciler *pricing.Reconciler
	taxRate    decimal.Decimal
	logger     *slog.Logger
}

func NewBuilder(resolver *match.Resolver, reconciler *pricing.Reconciler, taxRate decimal.Decimal, logger *slog.Logger) *Builder {
	return &Builder{
		resolver:   resolver,
		reconciler: reconciler,
		taxRate:    taxRate,
		logger:     logger,
	}
}

// Build resolves every parsed item against the product list and prices the
// accepted ones. Per-item problems (unknown name without a price, short
// stock) are collected, never fatal to the other items; the whole build fails
// only when nothing was accepted.
func (b *Builder) Build(userID, storeID, customerName string, parsed []entity.ParsedLineItem, products []entity.Product) BuildResult {
	var (
		accepted    []entity.ResolvedLineItem
		errs        []string
		warnings    []string
		suggestions []string
	)

	for _, item := range parsed {
		product, _ := b.resolver.Resolve(item.Name, products)
		if product == nil {
			if item.UnitPrice == nil {
				errs = append(errs, fmt.Sprintf(
					"Product '%s' not found in inventory. Provide a price using: %d %s @price",
					item.Name, item.Quantity, item.Name))
				suggestions = append(suggestions, b.resolver.Suggest(item.Name, products, maxNameSuggestions)...)
				continue
			}
			// Off-catalog item with a dictated price is accepted as-is.
			warnings = append(warnings, fmt.Sprintf(
				"Product '%s' not found in inventory - using provided price $%s",
				item.Name, item.UnitPrice.StringFixed(2)))
			line, err := entity.NewResolvedLineItem("", item.Name, item.Quantity, *item.UnitPrice, "Unknown", constants.PriceSourceProvided)
			if err != nil {
				errs = append(errs, err.Error())
				continue
			}
			accepted = append(accepted, line)
			continue
		}

		if product.StockQuantity < item.Quantity {
			errs = append(errs, fmt.Sprintf(
				"Insufficient stock for %s: requested %d, available %d",
				product.Name, item.Quantity, product.StockQuantity))
			continue
		}

		price, source, warning := b.reconciler.Reconcile(product, item)
		if warning != "" {
			warnings = append(warnings, warning)
		}
		line, err := entity.NewResolvedLineItem(product.ID, product.Name, item.Quantity, price, product.Category, source)
		if err != nil {
			errs = append(errs, err.Error())
			continue
		}
		accepted = append(accepted, line)
	}

	if len(accepted) == 0 {
		errs = append(errs, "no items could be accepted from this sale")
		suggestions = append(suggestions, parse.FormatHints()...)
		for i, p := range products {
			if i == maxSampleProducts {
				break
			}
			suggestions = append(suggestions, "Available: "+p.Name)
		}
		return BuildResult{Errors: errs, Warnings: warnings, Suggestions: suggestions}
	}

	receipt, err := entity.NewReceipt(userID, storeID, customerName, accepted, b.taxRate)
	if err != nil {
		errs = append(errs, err.Error())
		return BuildResult{Errors: errs, Warnings: warnings, Suggestions: suggestions}
	}
	b.logger.Info("receipt built",
		"transaction_id", receipt.TransactionID,
		"items", len(receipt.Items),
		"total", receipt.Total.StringFixed(2),
		"errors", len(errs))
	return BuildResult{
		Success:     len(errs) == 0,
		Receipt:     receipt,
		Errors:      errs,
		Warnings:    warnings,
		Suggestions: suggestions,
	}
}
