package repository

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/musika/salescore/constants"
	"github.com/musika/salescore/internal/common"
	"github.com/musika/salescore/internal/entity"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS products (
	id             TEXT PRIMARY KEY,
	store_id       TEXT NOT NULL,
	name           TEXT NOT NULL,
	unit_price     NUMERIC(12,2) NOT NULL,
	stock_quantity INTEGER NOT NULL DEFAULT 0,
	category       TEXT NOT NULL DEFAULT 'General',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_products_store ON products(store_id);

CREATE TABLE IF NOT EXISTS transactions (
	partition  TEXT NOT NULL,
	tx_id      TEXT NOT NULL,
	store_id   TEXT NOT NULL,
	user_id    TEXT NOT NULL,
	payload    JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (partition, tx_id)
);
`

// EnsureSchema creates the tables if they do not exist yet.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		logger.Error("failed to ensure schema", "error", err)
		return common.WrapError(err, "ensure schema")
	}
	return nil
}

type pgCatalog struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresCatalog returns a Catalog over the products table.
func NewPostgresCatalog(pool *pgxpool.Pool, logger *slog.Logger) Catalog {
	return &pgCatalog{pool: pool, logger: logger}
}

func (c *pgCatalog) ListProducts(ctx context.Context, storeID string) ([]entity.Product, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT id, store_id, name, unit_price::text, stock_quantity, category
		FROM products
		WHERE store_id = $1
		ORDER BY created_at, id`, storeID)
	if err != nil {
		c.logger.Error("failed to list products", "store_id", storeID, "error", err)
		return nil, common.WrapError(err, "list products")
	}
	defer rows.Close()

	var products []entity.Product
	for rows.Next() {
		var (
			p     entity.Product
			price string
		)
		if err := rows.Scan(&p.ID, &p.StoreID, &p.Name, &price, &p.StockQuantity, &p.Category); err != nil {
			return nil, common.WrapError(err, "scan product")
		}
		if p.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, common.WrapError(err, "parse unit price")
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (c *pgCatalog) SetStock(ctx context.Context, productID string, quantity int) error {
	tag, err := c.pool.Exec(ctx,
		`UPDATE products SET stock_quantity = $2 WHERE id = $1`, productID, quantity)
	if err != nil {
		c.logger.Error("failed to set stock", "product_id", productID, "error", err)
		return common.WrapError(err, "set stock")
	}
	if tag.RowsAffected() == 0 {
		return common.ErrProductNotFound
	}
	return nil
}

type pgTransactionStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

// NewPostgresTransactionStore returns a TransactionStore over the
// transactions table, keyed by (partition, transaction id) with the receipt
// held as a JSONB payload.
func NewPostgresTransactionStore(pool *pgxpool.Pool, logger *slog.Logger) TransactionStore {
	return &pgTransactionStore{pool: pool, logger: logger}
}

func (s *pgTransactionStore) Put(ctx context.Context, partition constants.Partition, txID string, receipt *entity.Receipt) error {
	payload, err := json.Marshal(receipt)
	if err != nil {
		return common.WrapError(err, "marshal receipt")
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO transactions (partition, tx_id, store_id, user_id, payload)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (partition, tx_id) DO UPDATE SET payload = EXCLUDED.payload`,
		string(partition), txID, receipt.StoreID, receipt.UserID, payload)
	if err != nil {
		s.logger.Error("failed to put transaction", "partition", partition, "tx_id", txID, "error", err)
		return common.WrapError(err, "put transaction")
	}
	return nil
}

func (s *pgTransactionStore) Get(ctx context.Context, partition constants.Partition, txID string) (*entity.Receipt, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM transactions WHERE partition = $1 AND tx_id = $2`,
		string(partition), txID).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, common.ErrTransactionNotFound
	}
	if err != nil {
		s.logger.Error("failed to get transaction", "partition", partition, "tx_id", txID, "error", err)
		return nil, common.WrapError(err, "get transaction")
	}
	var receipt entity.Receipt
	if err := json.Unmarshal(payload, &receipt); err != nil {
		return nil, common.WrapError(err, "unmarshal receipt")
	}
	return &receipt, nil
}

func (s *pgTransactionStore) Delete(ctx context.Context, partition constants.Partition, txID string) (bool, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM transactions WHERE partition = $1 AND tx_id = $2`,
		string(partition), txID)
	if err != nil {
		s.logger.Error("failed to delete transaction", "partition", partition, "tx_id", txID, "error", err)
		return false, common.WrapError(err, "delete transaction")
	}
	return tag.RowsAffected() > 0, nil
}
