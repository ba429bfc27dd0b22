package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"storefront/internal/models"
)

//go:embed products.json
var seedData []byte

// MaxPrice es la cota superior del rango de precios del storefront
const MaxPrice int64 = 200000

// Categories es el conjunto fijo de categorías del catálogo
var Categories = []string{"Electronics", "Fashion", "Home & Kitchen", "Books", "Sports", "Beauty"}

// Catalog es la lista inmutable de productos más sus índices derivados
type Catalog struct {
	products []models.Product
	byID     map[string]models.Product
	brands   []string
}

// Load carga y valida el catálogo embebido; se ejecuta una vez al arranque
func Load() (*Catalog, error) {
	var products []models.Product
	if err := json.Unmarshal(seedData, &products); err != nil {
		return nil, fmt.Errorf("invalid catalog seed: %w", err)
	}

	valid := validator.New()
	allowed := make(map[string]bool, len(Categories))
	for _, c := range Categories {
		allowed[c] = true
	}

	byID := make(map[string]models.Product, len(products))
	brandSet := make(map[string]bool)
	for _, p := range products {
		if err := valid.Struct(p); err != nil {
			return nil, fmt.Errorf("invalid product %q: %w", p.ID, err)
		}
		if !allowed[p.Category] {
			return nil, fmt.Errorf("product %q: unknown category %q", p.ID, p.Category)
		}
		if _, dup := byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		byID[p.ID] = p
		brandSet[p.Brand] = true
	}

	brands := make([]string, 0, len(brandSet))
	for b := range brandSet {
		brands = append(brands, b)
	}
	sort.Strings(brands)

	return &Catalog{products: products, byID: byID, brands: brands}, nil
}

// Products devuelve una copia de los productos en orden de catálogo
func (c *Catalog) Products() []models.Product {
	out := make([]models.Product, len(c.products))
	copy(out, c.products)
	return out
}

// ByID busca un producto por su id
func (c *Catalog) ByID(id string) (models.Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// Brands devuelve las marcas únicas del catálogo, ordenadas
func (c *Catalog) Brands() []string {
	out := make([]string, len(c.brands))
	copy(out, c.brands)
	return out
}

// Featured devuelve los primeros n productos, para la página de inicio
func (c *Catalog) Featured(n int) []models.Product {
	if n > len(c.products) {
		n = len(c.products)
	}
	out := make([]models.Product, n)
	copy(out, c.products[:n])
	return out
}

// Len devuelve el tamaño del catálogo
func (c *Catalog) Len() int {
	return len(c.products)
}
