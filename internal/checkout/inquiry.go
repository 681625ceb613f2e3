package checkout

import (
	"context"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/musika/salescore/internal/common"
)

// PriceInfo answers a "how much is X" question.
type PriceInfo struct {
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Stock       int             `json:"stock"`
	Category    string          `json:"category"`
}

var inquiryPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)what'?s?\s+(?:the\s+)?price\s+(?:of\s+|for\s+)?(.+?)\s*(?:\?|$)`),
	regexp.MustCompile(`(?i)^price\s+(?:of\s+|for\s+)?(.+?)\s*(?:\?|$)`),
	regexp.MustCompile(`(?i)how\s+much\s+(?:is\s+|are\s+|for\s+)?(.+?)\s*(?:\?|$)`),
	regexp.MustCompile(`(?i)cost\s+(?:of\s+)?(.+?)\s*(?:\?|$)`),
}

// ExtractInquiryProduct pulls the product name out of a price question.
// Returns "" when the text is not a recognizable inquiry.
func ExtractInquiryProduct(query string) string {
	q := strings.TrimSpace(query)
	for _, re := range inquiryPatterns {
		if m := re.FindStringSubmatch(q); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// PriceInquiry resolves a price question against the store catalog. A miss
// returns ErrProductNotFound together with alternative name suggestions.
func (s *Service) PriceInquiry(ctx context.Context, query, storeID string) (*PriceInfo, []string, error) {
	name := ExtractInquiryProduct(query)
	if name == "" {
		return nil, nil, common.ErrInvalidInput
	}

	products, err := s.catalog.ListProducts(ctx, storeID)
	if err != nil {
		return nil, nil, common.WrapError(err, "fetch catalog")
	}

	product, _ := s.resolver.Resolve(name, products)
	if product == nil {
		return nil, s.resolver.Suggest(name, products, maxNameSuggestions), common.ErrProductNotFound
	}
	return &PriceInfo{
		ProductName: product.Name,
		UnitPrice:   product.UnitPrice,
		Stock:       product.StockQuantity,
		Category:    product.Category,
	}, nil, nil
}
