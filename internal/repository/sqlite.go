package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/musika/salescore/constants"
	"github.com/musika/salescore/internal/common"
	"github.com/musika/salescore/internal/entity"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS products (
	id             TEXT PRIMARY KEY,
	store_id       TEXT NOT NULL,
	name           TEXT NOT NULL,
	unit_price     TEXT NOT NULL,
	stock_quantity INTEGER NOT NULL DEFAULT 0,
	category       TEXT NOT NULL DEFAULT 'General',
	created_at     TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_products_store ON products(store_id);

CREATE TABLE IF NOT EXISTS transactions (
	partition  TEXT NOT NULL,
	tx_id      TEXT NOT NULL,
	store_id   TEXT NOT NULL,
	user_id    TEXT NOT NULL,
	payload    TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (partition, tx_id)
);
`

// OpenSQLite opens (and if needed bootstraps) a local sqlite database. Used
// for the embedded/local mode and by the CLI.
func OpenSQLite(path string, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		logger.Error("failed to open sqlite database", "path", path, "error", err)
		return nil, err
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, common.WrapError(err, "bootstrap sqlite schema")
	}
	logger.Info("sqlite database ready", "path", path)
	return db, nil
}

type SQLiteCatalog struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteCatalog returns a catalog over a local sqlite database. The
// concrete type is exposed because the CLI also imports fixtures through it.
func NewSQLiteCatalog(db *sql.DB, logger *slog.Logger) *SQLiteCatalog {
	return &SQLiteCatalog{db: db, logger: logger}
}

// UpsertProduct writes a product row; the CLI uses this to import catalog
// fixtures.
func (c *SQLiteCatalog) UpsertProduct(ctx context.Context, p entity.Product) error {
	_, err := c.db.ExecContext(ctx, `
		INSERT INTO products (id, store_id, name, unit_price, stock_quantity, category)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			unit_price = excluded.unit_price,
			stock_quantity = excluded.stock_quantity,
			category = excluded.category`,
		p.ID, p.StoreID, p.Name, p.UnitPrice.String(), p.StockQuantity, p.Category)
	if err != nil {
		c.logger.Error("failed to upsert product", "product_id", p.ID, "error", err)
		return common.WrapError(err, "upsert product")
	}
	return nil
}

func (c *SQLiteCatalog) ListProducts(ctx context.Context, storeID string) ([]entity.Product, error) {
	rows, err := c.db.QueryContext(ctx, `
		SELECT id, store_id, name, unit_price, stock_quantity, category
		FROM products
		WHERE store_id = ?
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

func (c *SQLiteCatalog) SetStock(ctx context.Context, productID string, quantity int) error {
	res, err := c.db.ExecContext(ctx,
		`UPDATE products SET stock_quantity = ? WHERE id = ?`, quantity, productID)
	if err != nil {
		c.logger.Error("failed to set stock", "product_id", productID, "error", err)
		return common.WrapError(err, "set stock")
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrProductNotFound
	}
	return nil
}

type sqliteTransactionStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewSQLiteTransactionStore returns a TransactionStore over a local sqlite
// database.
func NewSQLiteTransactionStore(db *sql.DB, logger *slog.Logger) TransactionStore {
	return &sqliteTransactionStore{db: db, logger: logger}
}

func (s *sqliteTransactionStore) Put(ctx context.Context, partition constants.Partition, txID string, receipt *entity.Receipt) error {
	payload, err := json.Marshal(receipt)
	if err != nil {
		return common.WrapError(err, "marshal receipt")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO transactions (partition, tx_id, store_id, user_id, payload)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(partition, tx_id) DO UPDATE SET payload = excluded.payload`,
		string(partition), txID, receipt.StoreID, receipt.UserID, string(payload))
	if err != nil {
		s.logger.Error("failed to put transaction", "partition", partition, "tx_id", txID, "error", err)
		return common.WrapError(err, "put transaction")
	}
	return nil
}

func (s *sqliteTransactionStore) Get(ctx context.Context, partition constants.Partition, txID string) (*entity.Receipt, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM transactions WHERE partition = ? AND tx_id = ?`,
		string(partition), txID).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrTransactionNotFound
	}
	if err != nil {
		s.logger.Error("failed to get transaction", "partition", partition, "tx_id", txID, "error", err)
		return nil, common.WrapError(err, "get transaction")
	}
	var receipt entity.Receipt
	if err := json.Unmarshal([]byte(payload), &receipt); err != nil {
		return nil, common.WrapError(err, "unmarshal receipt")
	}
	return &receipt, nil
}

func (s *sqliteTransactionStore) Delete(ctx context.Context, partition constants.Partition, txID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE partition = ? AND tx_id = ?`,
		string(partition), txID)
	if err != nil {
		s.logger.Error("failed to delete transaction", "partition", partition, "tx_id", txID, "error", err)
		return false, common.WrapError(err, "delete transaction")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, common.WrapError(err, "delete transaction")
	}
	return n > 0, nil
}
