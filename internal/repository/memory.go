package repository

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/musika/salescore/constants"
	"github.com/musika/salescore/internal/common"
	"github.com/musika/salescore/internal/entity"
)

// MemoryCatalog is an in-memory Catalog for tests and demo mode. Products
// keep their insertion order, matching the stable listing order of the
// durable catalogs.
type MemoryCatalog struct {
	mu       sync.RWMutex
	products []entity.Product
}

func NewMemoryCatalog(products []entity.Product) *MemoryCatalog {
	c := &MemoryCatalog{}
	c.products = append(c.products, products...)
	return c
}

func (c *MemoryCatalog) ListProducts(_ context.Context, storeID string) ([]entity.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]entity.Product, 0, len(c.products))
	for _, p := range c.products {
		if p.StoreID == storeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (c *MemoryCatalog) SetStock(_ context.Context, productID string, quantity int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.products {
		if c.products[i].ID == productID {
			c.products[i].StockQuantity = quantity
			return nil
		}
	}
	return common.ErrProductNotFound
}

// Stock returns the current stock of a product, for assertions in tests.
func (c *MemoryCatalog) Stock(productID string) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.products {
		if p.ID == productID {
			return p.StockQuantity, true
		}
	}
	return 0, false
}

// MemoryTransactionStore is an in-memory TransactionStore. Records round-trip
// through JSON so callers get copies, the same as the durable stores.
type MemoryTransactionStore struct {
	mu         sync.RWMutex
	partitions map[constants.Partition]map[string][]byte
}

func NewMemoryTransactionStore() *MemoryTransactionStore {
	return &MemoryTransactionStore{
		partitions: make(map[constants.Partition]map[string][]byte),
	}
}

func (s *MemoryTransactionStore) Put(_ context.Context, partition constants.Partition, txID string, receipt *entity.Receipt) error {
	payload, err := json.Marshal(receipt)
	if err != nil {
		return common.WrapError(err, "marshal receipt")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.partitions[partition] == nil {
		s.partitions[partition] = make(map[string][]byte)
	}
	s.partitions[partition][txID] = payload
	return nil
}

func (s *MemoryTransactionStore) Get(_ context.Context, partition constants.Partition, txID string) (*entity.Receipt, error) {
	s.mu.RLock()
	payload, ok := s.partitions[partition][txID]
	s.mu.RUnlock()
	if !ok {
		return nil, common.ErrTransactionNotFound
	}
	var receipt entity.Receipt
	if err := json.Unmarshal(payload, &receipt); err != nil {
		return nil, common.WrapError(err, "unmarshal receipt")
	}
	return &receipt, nil
}

func (s *MemoryTransactionStore) Delete(_ context.Context, partition constants.Partition, txID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.partitions[partition][txID]; !ok {
		return false, nil
	}
	delete(s.partitions[partition], txID)
	return true, nil
}
