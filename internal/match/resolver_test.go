package match

import (
	"io"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/musika/salescore/internal/entity"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testCatalog() []entity.Product {
	return []entity.Product{
		{ID: "p1", StoreID: "store_1", Name: "Bread", UnitPrice: decimal.RequireFromString("1.00"), StockQuantity: 10, Category: "Bakery"},
		{ID: "p2", StoreID: "store_1", Name: "Milk", UnitPrice: decimal.RequireFromString("0.80"), StockQuantity: 5, Category: "Dairy"},
		{ID: "p3", StoreID: "store_1", Name: "Mazoe Orange Crush (2L)", UnitPrice: decimal.RequireFromString("3.50"), StockQuantity: 8, Category: "Drinks"},
		{ID: "p4", StoreID: "store_1", Name: "Maheu", UnitPrice: decimal.RequireFromString("0.75"), StockQuantity: 12, Category: "Drinks"},
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"lowercase and trim", "  Bread ", "bread"},
		{"bracketed size stripped", "Mazoe Orange Crush (2L)", "mazoe orange crush"},
		{"pack count stripped", "Coca Cola 6 pack", "coca cola"},
		{"size token stripped", "2kg Sugar", "sugar"},
		{"plural folded", "Apples", "apple"},
		{"plain name unchanged", "maheu", "maheu"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestResolveExactMatch(t *testing.T) {
	r := NewResolver(DefaultThreshold, testLogger())
	product, score := r.Resolve("bread", testCatalog())
	if product == nil || product.ID != "p1" {
		t.Fatalf("Resolve(bread) = %v, want product p1", product)
	}
	if score != 1.0 {
		t.Errorf("score = %v, want 1.0", score)
	}
}

func TestResolveNormalizedEquality(t *testing.T) {
	// The catalog carries a size annotation the dictated name never has.
	r := NewResolver(DefaultThreshold, testLogger())
	product, score := r.Resolve("Mazoe Orange Crush", testCatalog())
	if product == nil || product.ID != "p3" {
		t.Fatalf("Resolve = %v, want product p3", product)
	}
	if score != 1.0 {
		t.Errorf("score = %v, want 1.0", score)
	}
}

func TestResolveVariation(t *testing.T) {
	r := NewResolver(DefaultThreshold, testLogger())
	product, score := r.Resolve("mahewu drink", testCatalog())
	if product == nil || product.ID != "p4" {
		t.Fatalf("Resolve(mahewu drink) = %v, want product p4", product)
	}
	if score <= DefaultThreshold {
		t.Errorf("score = %v, want above threshold", score)
	}
}

func TestResolveUnrelatedName(t *testing.T) {
	r := NewResolver(DefaultThreshold, testLogger())
	product, score := r.Resolve("giraffe", testCatalog())
	if product != nil {
		t.Fatalf("Resolve(giraffe) = %v, want nil", product)
	}
	if score > DefaultThreshold {
		t.Errorf("score = %v, want at most %v", score, DefaultThreshold)
	}
}

func TestResolveTieKeepsCatalogOrder(t *testing.T) {
	r := NewResolver(DefaultThreshold, testLogger())
	products := []entity.Product{
		{ID: "a", Name: "Bread"},
		{ID: "b", Name: "Bread"},
	}
	product, _ := r.Resolve("bread", products)
	if product == nil || product.ID != "a" {
		t.Errorf("tie broke to %v, want first product", product)
	}
}

func TestSuggest(t *testing.T) {
	r := NewResolver(DefaultThreshold, testLogger())
	got := r.Suggest("bred", testCatalog(), 2)
	if len(got) == 0 || len(got) > 2 {
		t.Fatalf("Suggest returned %d names, want 1-2", len(got))
	}
	if got[0] != "Bread" {
		t.Errorf("top suggestion = %q, want Bread", got[0])
	}
}

func TestScorers(t *testing.T) {
	tests := []struct {
		name      string
		scorer    func(string, string) float64
		input     string
		candidate string
		want      float64
	}{
		{"containment ratio", scoreContainment, "maheu", "maheu drink", 5.0 / 11.0},
		{"containment miss", scoreContainment, "giraffe", "bread", 0},
		{"word overlap full", scoreWordOverlap, "orange crush", "mazoe orange crush", wordOverlapBonus},
		{"word overlap partial", scoreWordOverlap, "orange cordial juice", "orange crush", 1.0 / 3.0},
		{"variation forward", scoreVariation, "coke", "coca cola", variationScore},
		{"variation reverse", scoreVariation, "mahewu", "maheu", variationScore},
		{"no variation", scoreVariation, "bread", "milk", 0},
		{"lone brand word never scores", scoreBrandCoOccurrence, "mazoe", "mazoe orange crush", 0},
		{"brand plus product word scores", scoreBrandCoOccurrence, "mazoe orange", "mazoe orange crush", brandScore},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scorer(tt.input, tt.candidate); got != tt.want {
				t.Errorf("%s(%q, %q) = %v, want %v", tt.name, tt.input, tt.candidate, got, tt.want)
			}
		})
	}
}

func TestScorePrimaryKeyword(t *testing.T) {
	// "bred" shares the 3-char run "bre" with "bread".
	got := scorePrimaryKeyword("bred", "bread")
	want := 3.0 / 5.0 * primaryKeywordWeight
	if got != want {
		t.Errorf("scorePrimaryKeyword = %v, want %v", got, want)
	}
	if s := scorePrimaryKeyword("oil", "milk"); s != 0 {
		t.Errorf("short overlap scored %v, want 0", s)
	}
}

func TestLongestCommonSubstring(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"bread", "bred", 3},
		{"raspberry", "ruspburry", 3},
		{"", "bread", 0},
		{"milk", "milk", 4},
	}
	for _, tt := range tests {
		if got := longestCommonSubstring(tt.a, tt.b); got != tt.want {
			t.Errorf("longestCommonSubstring(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
