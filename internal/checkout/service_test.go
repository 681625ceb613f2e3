package checkout

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/musika/salescore/constants"
	"github.com/musika/salescore/internal/common"
	"github.com/musika/salescore/internal/entity"
	"github.com/musika/salescore/internal/lifecycle"
	"github.com/musika/salescore/internal/repository"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func testService(t *testing.T) (*Service, *lifecycle.Manager, *repository.MemoryCatalog, *repository.MemoryTransactionStore) {
	t.Helper()
	catalog := repository.NewMemoryCatalog([]entity.Product{
		{ID: "p1", StoreID: "store_1", Name: "Bread", UnitPrice: dec("1.00"), StockQuantity: 10, Category: "Bakery"},
		{ID: "p2", StoreID: "store_1", Name: "Milk", UnitPrice: dec("0.80"), StockQuantity: 5, Category: "Dairy"},
	})
	store := repository.NewMemoryTransactionStore()
	mgr := lifecycle.NewManager(catalog, store, testLogger())
	cfg := common.SalesConfig{TaxRate: 0.05, MatchThreshold: 0.3, PriceTolerance: 0.01}
	return NewService(catalog, mgr, cfg, testLogger()), mgr, catalog, store
}

func TestParseAndPriceHappyPath(t *testing.T) {
	svc, _, _, store := testService(t)
	ctx := context.Background()

	result, err := svc.ParseAndPrice(ctx, "2 bread, 1 milk", "user_1", "store_1", "")
	if err != nil {
		t.Fatalf("ParseAndPrice: %v", err)
	}
	if !result.Success {
		t.Fatalf("not successful: errors=%v", result.Errors)
	}
	r := result.Receipt
	if len(r.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(r.Items))
	}
	if !r.Subtotal.Equal(dec("2.80")) {
		t.Errorf("subtotal = %s, want 2.80", r.Subtotal)
	}
	if !r.TaxAmount.Equal(dec("0.14")) {
		t.Errorf("tax = %s, want 0.14", r.TaxAmount)
	}
	if !r.Total.Equal(dec("2.94")) {
		t.Errorf("total = %s, want 2.94", r.Total)
	}
	if r.Status != constants.TxStatusPending {
		t.Errorf("status = %q, want pending", r.Status)
	}
	for _, item := range r.Items {
		if item.PriceSource != constants.PriceSourceDatabase {
			t.Errorf("item %s source = %q, want database", item.Name, item.PriceSource)
		}
	}
	if result.PendingTransactionID == "" || !strings.HasPrefix(result.PendingTransactionID, "TXN_") {
		t.Errorf("pending id = %q, want TXN_ prefix", result.PendingTransactionID)
	}
	if _, err := store.Get(ctx, constants.PartitionPending, result.PendingTransactionID); err != nil {
		t.Errorf("pending record not saved: %v", err)
	}
}

func TestParseAndPriceCorrectsDictatedPrice(t *testing.T) {
	svc, _, _, _ := testService(t)

	result, err := svc.ParseAndPrice(context.Background(), "2 bread @1.50, 1 milk", "user_1", "store_1", "")
	if err != nil {
		t.Fatalf("ParseAndPrice: %v", err)
	}
	if !result.Success {
		t.Fatalf("not successful: errors=%v", result.Errors)
	}
	bread := result.Receipt.Items[0]
	if !bread.UnitPrice.Equal(dec("1.00")) {
		t.Errorf("bread price = %s, want catalog 1.00", bread.UnitPrice)
	}
	if bread.PriceSource != constants.PriceSourceCorrected {
		t.Errorf("bread source = %q, want database_corrected", bread.PriceSource)
	}
	if len(result.Warnings) != 1 || !strings.Contains(result.Warnings[0], "50% off") {
		t.Errorf("warnings = %v, want one 50%% price difference warning", result.Warnings)
	}
	if !result.Receipt.Subtotal.Equal(dec("2.80")) {
		t.Errorf("subtotal = %s, want 2.80", result.Receipt.Subtotal)
	}
}

func TestParseAndPriceUnknownProduct(t *testing.T) {
	svc, _, _, _ := testService(t)

	result, err := svc.ParseAndPrice(context.Background(), "2 giraffe", "user_1", "store_1", "")
	if err != nil {
		t.Fatalf("ParseAndPrice: %v", err)
	}
	if result.Success {
		t.Fatal("unknown product accepted")
	}
	if result.PendingTransactionID != "" {
		t.Errorf("pending id = %q, want empty", result.PendingTransactionID)
	}
	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, "not found") {
			found = true
		}
	}
	if !found {
		t.Errorf("errors = %v, want a not-found message", result.Errors)
	}
	if len(result.Suggestions) == 0 {
		t.Error("no suggestions offered")
	}
}

func TestParseAndPriceOffCatalogWithPrice(t *testing.T) {
	svc, mgr, catalog, _ := testService(t)
	ctx := context.Background()

	result, err := svc.ParseAndPrice(ctx, "3 firewood @0.50", "user_1", "store_1", "")
	if err != nil {
		t.Fatalf("ParseAndPrice: %v", err)
	}
	if !result.Success {
		t.Fatalf("not successful: errors=%v", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Error("expected an off-catalog warning")
	}
	item := result.Receipt.Items[0]
	if item.ProductID != "" || item.Category != "Unknown" {
		t.Errorf("item = %+v, want off-catalog with Unknown category", item)
	}
	if !result.Receipt.Subtotal.Equal(dec("1.50")) {
		t.Errorf("subtotal = %s, want 1.50", result.Receipt.Subtotal)
	}

	// Confirming an off-catalog sale must not touch tracked stock.
	if _, err := mgr.Confirm(ctx, result.PendingTransactionID, "user_1", "store_1"); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if stock, _ := catalog.Stock("p1"); stock != 10 {
		t.Errorf("bread stock = %d, want 10", stock)
	}
}

func TestParseAndPriceInsufficientStock(t *testing.T) {
	svc, _, _, _ := testService(t)

	result, err := svc.ParseAndPrice(context.Background(), "7 milk, 2 bread", "user_1", "store_1", "")
	if err != nil {
		t.Fatalf("ParseAndPrice: %v", err)
	}
	if result.Success {
		t.Fatal("stock-short sale reported success")
	}
	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, "Insufficient stock for Milk") {
			found = true
		}
	}
	if !found {
		t.Errorf("errors = %v, want insufficient stock for Milk", result.Errors)
	}
	// The in-stock item is still priced for operator review.
	if result.Receipt == nil || len(result.Receipt.Items) != 1 || result.Receipt.Items[0].Name != "Bread" {
		t.Errorf("receipt = %+v, want the bread line only", result.Receipt)
	}
	if result.PendingTransactionID != "" {
		t.Error("partially failed sale must not be saved as pending")
	}
}

func TestParseAndPriceParseFailure(t *testing.T) {
	svc, _, _, _ := testService(t)

	result, err := svc.ParseAndPrice(context.Background(), "hello there", "user_1", "store_1", "")
	if err != nil {
		t.Fatalf("ParseAndPrice: %v", err)
	}
	if result.Success {
		t.Fatal("unparseable message reported success")
	}
	if len(result.Errors) == 0 || len(result.Suggestions) == 0 {
		t.Errorf("errors = %v, suggestions = %v, want both populated", result.Errors, result.Suggestions)
	}
}

func TestSaleConfirmFlow(t *testing.T) {
	svc, mgr, catalog, store := testService(t)
	ctx := context.Background()

	result, err := svc.ParseAndPrice(ctx, "2 bread, 1 milk", "user_1", "store_1", "")
	if err != nil || !result.Success {
		t.Fatalf("ParseAndPrice: err=%v errors=%v", err, result.Errors)
	}

	confirmed, err := mgr.Confirm(ctx, result.PendingTransactionID, "user_1", "store_1")
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if confirmed.Status != constants.TxStatusCompleted {
		t.Errorf("status = %q, want completed", confirmed.Status)
	}
	if stock, _ := catalog.Stock("p1"); stock != 8 {
		t.Errorf("bread stock = %d, want 8", stock)
	}
	if stock, _ := catalog.Stock("p2"); stock != 4 {
		t.Errorf("milk stock = %d, want 4", stock)
	}
	if _, err := store.Get(ctx, constants.PartitionConfirmed, result.PendingTransactionID); err != nil {
		t.Errorf("confirmed record missing: %v", err)
	}
}

func TestPriceInquiry(t *testing.T) {
	svc, _, _, _ := testService(t)
	ctx := context.Background()

	info, suggestions, err := svc.PriceInquiry(ctx, "how much is bread?", "store_1")
	if err != nil {
		t.Fatalf("PriceInquiry: %v", err)
	}
	if len(suggestions) != 0 {
		t.Errorf("suggestions = %v, want none", suggestions)
	}
	if info.ProductName != "Bread" || !info.UnitPrice.Equal(dec("1.00")) || info.Stock != 10 {
		t.Errorf("info = %+v, want Bread at 1.00 with stock 10", info)
	}
}

func TestPriceInquiryMiss(t *testing.T) {
	svc, _, _, _ := testService(t)

	_, suggestions, err := svc.PriceInquiry(context.Background(), "price of giraffe", "store_1")
	if err != common.ErrProductNotFound {
		t.Fatalf("err = %v, want ErrProductNotFound", err)
	}
	if len(suggestions) == 0 {
		t.Error("no suggestions on a miss")
	}
}

func TestPriceInquiryNotAQuestion(t *testing.T) {
	svc, _, _, _ := testService(t)

	if _, _, err := svc.PriceInquiry(context.Background(), "random text", "store_1"); err != common.ErrInvalidInput {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
}

func TestExtractInquiryProduct(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"what's the price of bread?", "bread"},
		{"price for milk", "milk"},
		{"how much is maheu", "maheu"},
		{"cost of 2kg sugar?", "2kg sugar"},
		{"2 bread, 1 milk", ""},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			if got := ExtractInquiryProduct(tt.query); got != tt.want {
				t.Errorf("ExtractInquiryProduct(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}
