package checkout

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/musika/salescore/internal/common"
	"github.com/musika/salescore/internal/entity"
	"github.com/musika/salescore/internal/lifecycle"
	"github.com/musika/salescore/internal/match"
	"github.com/musika/salescore/internal/parse"
	"github.com/musika/salescore/internal/pricing"
	"github.com/musika/salescore/internal/repository"
)

// SaleResult is the outward shape of ParseAndPrice.
type SaleResult struct {
	Success              bool            `json:"success"`
	Receipt              *entity.Receipt `json:"receipt,omitempty"`
	PendingTransactionID string          `json:"pending_transaction_id,omitempty"`
	Errors               []string        `json:"errors,omitempty"`
	Warnings             []string        `json:"warnings,omitempty"`
	Suggestions          []string        `json:"suggestions,omitempty"`
}

// Service wires the parse → resolve → reconcile → build pipeline against a
// catalog and hands successful receipts to the lifecycle manager.
type Service struct {
	catalog   repository.Catalog
	lifecycle *lifecycle.Manager
	parser    *parse.Parser
	builder   *Builder
	resolver  *match.Resolver
	logger    *slog.Logger
}

func NewService(catalog repository.Catalog, lc *lifecycle.Manager, cfg common.SalesConfig, logger *slog.Logger) *Service {
	resolver := match.NewResolver(cfg.MatchThreshold, logger)
	reconciler := pricing.NewReconciler(decimal.NewFromFloat(cfg.PriceTolerance))
	taxRate := decimal.NewFromFloat(cfg.TaxRate)
	return &Service{
		catalog:   catalog,
		lifecycle: lc,
		parser:    parse.NewParser(logger),
		builder:   NewBuilder(resolver, reconciler, taxRate, logger),
		resolver:  resolver,
		logger:    logger,
	}
}

// ParseAndPrice turns a dictated sale message into a priced pending receipt.
// Parse and resolution problems come back inside the result; the returned
// error is reserved for catalog/store failures.
func (s *Service) ParseAndPrice(ctx context.Context, rawText, userID, storeID, customerName string) (*SaleResult, error) {
	parsed, err := s.parser.Parse(rawText)
	if err != nil {
		return &SaleResult{
			Errors:      []string{common.ErrParseFailure.Error()},
			Suggestions: parse.FormatHints(),
		}, nil
	}

	products, err := s.catalog.ListProducts(ctx, storeID)
	if err != nil {
		return nil, common.WrapError(err, "fetch catalog")
	}

	built := s.builder.Build(userID, storeID, customerName, parsed.Items, products)
	result := &SaleResult{
		Success:     built.Success,
		Receipt:     built.Receipt,
		Errors:      built.Errors,
		Warnings:    built.Warnings,
		Suggestions: built.Suggestions,
	}
	if !built.Success {
		return result, nil
	}

	if err := s.lifecycle.SavePending(ctx, built.Receipt); err != nil {
		return nil, common.WrapError(err, "save pending transaction")
	}
	result.PendingTransactionID = built.Receipt.TransactionID
	s.logger.Info("sale pending confirmation",
		"transaction_id", built.Receipt.TransactionID,
		"user_id", userID,
		"store_id", storeID)
	return result, nil
}
