// Package repository holds the persistence boundary of the sales core: the
// catalog read/write contract and the partitioned transaction store.
package repository

import (
	"context"

	"github.com/musika/salescore/constants"
	"github.com/musika/salescore/internal/entity"
)

// Catalog is the read/stock-write contract over the store's product list.
type Catalog interface {
	// ListProducts returns every product of the store, in stable listing order.
	ListProducts(ctx context.Context, storeID string) ([]entity.Product, error)
	// SetStock overwrites a product's stock quantity.
	SetStock(ctx context.Context, productID string, quantity int) error
}

// TransactionStore is a key-value store over the pending/confirmed/cancelled
// partitions. Get returns common.ErrTransactionNotFound for a missing record.
// Delete reports whether a record was actually removed, so a caller losing a
// confirm/cancel race observes the same thing as a missing record.
type TransactionStore interface {
	Put(ctx context.Context, partition constants.Partition, txID string, receipt *entity.Receipt) error
	Get(ctx context.Context, partition constants.Partition, txID string) (*entity.Receipt, error)
	Delete(ctx context.Context, partition constants.Partition, txID string) (bool, error)
}
