package pipeline

import (
	"sort"
	"strconv"
	"strings"

	"storefront/internal/models"
)

// SortKey identifica el criterio de ordenamiento del listado
type SortKey string

const (
	SortRelevance SortKey = "relevance"
	SortPriceLow  SortKey = "price-low"
	SortPriceHigh SortKey = "price-high"
	SortRating    SortKey = "rating"
	SortNewest    SortKey = "newest"
	SortDiscount  SortKey = "discount"
)

// Query son los parámetros de filtrado y ordenamiento activos.
// Una selección vacía desactiva su predicado por completo.
type Query struct {
	Search   string
	Category string
	PriceMin int64
	PriceMax int64
	Brands   []string
	Sort     SortKey
}

// Apply deriva el listado visible: filtra con predicados en AND y aplica
// un orden estable según la clave. Es una función pura sin efectos.
func Apply(products []models.Product, q Query) []models.Product {
	filtered := make([]models.Product, 0, len(products))

	search := strings.ToLower(strings.TrimSpace(q.Search))
	brandSet := make(map[string]bool, len(q.Brands))
	for _, b := range q.Brands {
		brandSet[b] = true
	}

	for _, p := range products {
		if search != "" && !matchesSearch(p, search) {
			continue
		}
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if p.Price < q.PriceMin || p.Price > q.PriceMax {
			continue
		}
		if len(brandSet) > 0 && !brandSet[p.Brand] {
			continue
		}
		filtered = append(filtered, p)
	}

	sortProducts(filtered, q.Sort)
	return filtered
}

// matchesSearch busca la subcadena en nombre, descripción, marca o categoría
func matchesSearch(p models.Product, search string) bool {
	return strings.Contains(strings.ToLower(p.Name), search) ||
		strings.Contains(strings.ToLower(p.Description), search) ||
		strings.Contains(strings.ToLower(p.Brand), search) ||
		strings.Contains(strings.ToLower(p.Category), search)
}

func sortProducts(products []models.Product, key SortKey) {
	switch key {
	case SortPriceLow:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price < products[j].Price
		})
	case SortPriceHigh:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price > products[j].Price
		})
	case SortRating:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Rating > products[j].Rating
		})
	case SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return newerID(products[i].ID, products[j].ID)
		})
	case SortDiscount:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Discount > products[j].Discount
		})
	default:
		// relevance: conserva el orden de filtrado
	}
}

// newerID ordena ids numéricos en forma descendente; los ids no numéricos
// quedan después de los numéricos, conservando su orden original
func newerID(a, b string) bool {
	na, aerr := strconv.ParseInt(a, 10, 64)
	nb, berr := strconv.ParseInt(b, 10, 64)
	switch {
	case aerr == nil && berr == nil:
		return na > nb
	case aerr == nil:
		return true
	default:
		return false
	}
}
