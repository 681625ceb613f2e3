// Package lifecycle owns the pending → completed/cancelled transaction state
// machine that gates stock mutation.
package lifecycle

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/musika/salescore/constants"
	"github.com/musika/salescore/internal/common"
	"github.com/musika/salescore/internal/entity"
	"github.com/musika/salescore/internal/repository"
)

// Action is the caller's decision on a pending transaction.
type Action string

const (
	ActionConfirm Action = "confirm"
	ActionCancel  Action = "cancel"
)

// Manager persists pending receipts and transitions them out of pending
// exactly once.
type Manager struct {
	catalog repository.Catalog
	store   repository.TransactionStore
	logger  *slog.Logger
}

func NewManager(catalog repository.Catalog, store repository.TransactionStore, logger *slog.Logger) *Manager {
	return &Manager{catalog: catalog, store: store, logger: logger}
}

// SavePending writes a freshly built receipt to the pending partition. The
// builder already validated it; no further checks here.
func (m *Manager) SavePending(ctx context.Context, receipt *entity.Receipt) error {
	return m.store.Put(ctx, constants.PartitionPending, receipt.TransactionID, receipt)
}

// ConfirmOrCancel dispatches on the caller's action string.
func (m *Manager) ConfirmOrCancel(ctx context.Context, txID, userID, storeID string, action Action) (*entity.Receipt, error) {
	switch Action(strings.ToLower(string(action))) {
	case ActionConfirm:
		return m.Confirm(ctx, txID, userID, storeID)
	case ActionCancel:
		return m.Cancel(ctx, txID, userID, storeID)
	default:
		return nil, common.ErrInvalidInput
	}
}

// Confirm transitions a pending transaction to completed: ownership check,
// claim of the pending record, per-item stock decrement and the confirmed
// write. The pending delete doubles as the claim - losing the race to another
// confirm or cancel reads as TransactionNotFound.
func (m *Manager) Confirm(ctx context.Context, txID, userID, storeID string) (*entity.Receipt, error) {
	receipt, err := m.store.Get(ctx, constants.PartitionPending, txID)
	if err != nil {
		return nil, err
	}
	if !receipt.OwnedBy(userID, storeID) {
		m.logger.Warn("confirm rejected: ownership mismatch", "tx_id", txID, "user_id", userID, "store_id", storeID)
		return nil, common.ErrUnauthorized
	}

	claimed, err := m.store.Delete(ctx, constants.PartitionPending, txID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, common.ErrTransactionNotFound
	}

	m.decrementStock(ctx, receipt)

	now := time.Now().UTC()
	receipt.Status = constants.TxStatusCompleted
	receipt.ConfirmedAt = &now
	if err := m.store.Put(ctx, constants.PartitionConfirmed, txID, receipt); err != nil {
		return nil, err
	}
	m.logger.Info("transaction confirmed", "tx_id", txID, "total", receipt.Total.StringFixed(2))
	return receipt, nil
}

// Cancel removes a pending transaction. No stock effect, no confirmed write.
func (m *Manager) Cancel(ctx context.Context, txID, userID, storeID string) (*entity.Receipt, error) {
	receipt, err := m.store.Get(ctx, constants.PartitionPending, txID)
	if err != nil {
		return nil, err
	}
	if !receipt.OwnedBy(userID, storeID) {
		m.logger.Warn("cancel rejected: ownership mismatch", "tx_id", txID, "user_id", userID, "store_id", storeID)
		return nil, common.ErrUnauthorized
	}

	claimed, err := m.store.Delete(ctx, constants.PartitionPending, txID)
	if err != nil {
		return nil, err
	}
	if !claimed {
		return nil, common.ErrTransactionNotFound
	}

	receipt.Status = constants.TxStatusCancelled
	m.logger.Info("transaction cancelled", "tx_id", txID)
	return receipt, nil
}

// decrementStock lowers stock for every resolved item, floored at zero.
// Updates are per-product with no rollback: a failure partway leaves earlier
// decrements in place, matching the store's eventual-consistency posture.
func (m *Manager) decrementStock(ctx context.Context, receipt *entity.Receipt) {
	products, err := m.catalog.ListProducts(ctx, receipt.StoreID)
	if err != nil {
		m.logger.Error("stock decrement skipped: catalog unavailable", "tx_id", receipt.TransactionID, "error", err)
		return
	}
	stock := make(map[string]int, len(products))
	for _, p := range products {
		stock[p.ID] = p.StockQuantity
	}

	for _, item := range receipt.Items {
		if item.ProductID == "" {
			continue // off-catalog item accepted with a dictated price
		}
		current, ok := stock[item.ProductID]
		if !ok {
			m.logger.Warn("stock decrement skipped: product missing", "product_id", item.ProductID)
			continue
		}
		next := current - item.Quantity
		if next < 0 {
			next = 0
		}
		if err := m.catalog.SetStock(ctx, item.ProductID, next); err != nil {
			m.logger.Error("stock decrement failed", "product_id", item.ProductID, "error", err)
			continue
		}
		stock[item.ProductID] = next
	}
}
