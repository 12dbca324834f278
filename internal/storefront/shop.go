package storefront

import (
	"slices"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"shagun/internal/domain"
)

// AnyValue в фильтре означает «без ограничения»
const AnyValue = "All"

// DefaultMaxPrice начальное положение ползунка цены в каталоге
var DefaultMaxPrice = decimal.NewFromInt(20000)

type SortOrder string

const (
	SortNewest    SortOrder = "newest"
	SortPriceLow  SortOrder = "price-low"
	SortPriceHigh SortOrder = "price-high"
)

// Filter условия витрины. Пустые значения и "All" не ограничивают выборку,
// нулевая MaxPrice снимает ограничение по цене.
type Filter struct {
	Search   string
	Fabric   string
	Occasion string
	Category domain.Category
	MaxPrice decimal.Decimal
}

func anyValue(v string) bool { return v == "" || v == AnyValue }

func (f Filter) Match(p domain.Product) bool {
	if f.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.Search)) {
		return false
	}
	if !anyValue(f.Fabric) && p.Fabric != f.Fabric {
		return false
	}
	if !anyValue(f.Occasion) && p.Occasion != f.Occasion {
		return false
	}
	if !anyValue(string(f.Category)) && p.Category != f.Category {
		return false
	}
	if !f.MaxPrice.IsZero() && p.Price.GreaterThan(f.MaxPrice) {
		return false
	}
	return true
}

// Browse filters the catalog and sorts the result; the input is not modified.
// Unknown sort orders keep the catalog order.
func Browse(products []domain.Product, f Filter, order SortOrder) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if f.Match(p) {
			out = append(out, p)
		}
	}
	switch order {
	case SortPriceLow:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.LessThan(out[j].Price) })
	case SortPriceHigh:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price.GreaterThan(out[j].Price) })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}
	return out
}

// Fabrics lists distinct non-empty fabrics in first-seen order.
func Fabrics(products []domain.Product) []string {
	return distinct(products, func(p domain.Product) string { return p.Fabric })
}

func Occasions(products []domain.Product) []string {
	return distinct(products, func(p domain.Product) string { return p.Occasion })
}

func distinct(products []domain.Product, field func(domain.Product) string) []string {
	var out []string
	for _, p := range products {
		v := field(p)
		if v != "" && !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
