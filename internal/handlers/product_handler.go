package handlers

import (
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/montanaflynn/stats"

	"storefront/internal/cache"
	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/pipeline"
	"storefront/internal/pricing"
	"storefront/internal/store"
)

type ProductHandler struct {
	catalog *catalog.Catalog
	store   *store.Store
	cache   *cache.Cache
}

func NewProductHandler(cat *catalog.Catalog, st *store.Store, ch *cache.Cache) *ProductHandler {
	return &ProductHandler{
		catalog: cat,
		store:   st,
		cache:   ch,
	}
}

// listQuery usa punteros para distinguir "parámetro ausente" de "vacío":
// un parámetro presente reemplaza el filtro correspondiente del store
type listQuery struct {
	Q        *string `form:"q"`
	Category *string `form:"category"`
	MinPrice *int64  `form:"min_price" binding:"omitempty,gte=0"`
	MaxPrice *int64  `form:"max_price" binding:"omitempty,gte=0"`
	Brands   *string `form:"brands"`
	Sort     string  `form:"sort" binding:"omitempty,oneof=relevance price-low price-high rating newest discount"`
}

// ListProducts aplica los filtros recibidos al store y deriva el listado
// visible con el pipeline (con caché)
func (h *ProductHandler) ListProducts(c *gin.Context) {
	var lq listQuery
	if err := c.ShouldBindQuery(&lq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if lq.Q != nil {
		h.store.SetSearchQuery(*lq.Q)
	}
	if lq.Category != nil {
		h.store.SetSelectedCategory(*lq.Category)
	}
	if lq.MinPrice != nil || lq.MaxPrice != nil {
		fs := h.store.Filters()
		low, high := fs.PriceRange[0], fs.PriceRange[1]
		if lq.MinPrice != nil {
			low = *lq.MinPrice
		}
		if lq.MaxPrice != nil {
			high = *lq.MaxPrice
		}
		h.store.SetPriceRange(low, high)
	}
	if lq.Brands != nil {
		h.store.SetSelectedBrands(splitBrands(*lq.Brands))
	}

	sortKey := pipeline.SortRelevance
	if lq.Sort != "" {
		sortKey = pipeline.SortKey(lq.Sort)
	}

	fs := h.store.Filters()
	cacheKey := fmt.Sprintf(
		"products:list:q:%s_cat:%s_price:%d-%d_brands:%s_sort:%s",
		fs.SearchQuery, fs.SelectedCategory,
		fs.PriceRange[0], fs.PriceRange[1],
		strings.Join(fs.SelectedBrands, ","), sortKey,
	)

	if cached, found := h.cache.GetValue(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	visible := pipeline.Apply(h.catalog.Products(), pipeline.Query{
		Search:   fs.SearchQuery,
		Category: fs.SelectedCategory,
		PriceMin: fs.PriceRange[0],
		PriceMax: fs.PriceRange[1],
		Brands:   fs.SelectedBrands,
		Sort:     sortKey,
	})

	response := gin.H{
		"data":  visible,
		"total": len(visible),
		"sort":  string(sortKey),
		"applied": gin.H{
			"query":       fs.SearchQuery,
			"category":    fs.SelectedCategory,
			"price_range": fs.PriceRange,
			"brands":      fs.SelectedBrands,
		},
	}

	h.cache.Set(cacheKey, response, 2*time.Minute)
	c.JSON(http.StatusOK, response)
}

// GetProduct obtiene el detalle de un producto por id (con caché)
func (h *ProductHandler) GetProduct(c *gin.Context) {
	productID := c.Param("id")
	cacheKey := fmt.Sprintf("product:%s", productID)

	if cached, found := h.cache.GetValue(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	product, ok := h.catalog.ByID(productID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	response := gin.H{
		"data":             product,
		"price_display":    pricing.FormatPrice(product.Price),
		"discount_percent": pricing.DiscountPercentage(product.OriginalPrice, product.Price),
	}

	h.cache.Set(cacheKey, response, 5*time.Minute)
	c.JSON(http.StatusOK, response)
}

// GetFeatured devuelve los productos destacados de la página de inicio
func (h *ProductHandler) GetFeatured(c *gin.Context) {
	featured := h.catalog.Featured(4)
	c.JSON(http.StatusOK, gin.H{
		"data":  featured,
		"total": len(featured),
	})
}

// GetFilters devuelve la metadata de filtros del catálogo (con caché)
func (h *ProductHandler) GetFilters(c *gin.Context) {
	const cacheKey = "filters:metadata"

	if cached, found := h.cache.GetValue(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	products := h.catalog.Products()
	prices := make([]float64, 0, len(products))
	ratings := make([]float64, 0, len(products))
	availability := models.AvailabilityData{}

	for _, p := range products {
		prices = append(prices, float64(p.Price))
		ratings = append(ratings, p.Rating)
		if p.InStock {
			availability.InStock++
		} else {
			availability.OutOfStock++
		}
	}

	metadata := models.FilterMetadata{
		Availability: availability,
		Categories:   catalog.Categories,
		Brands:       h.catalog.Brands(),
	}
	if len(products) > 0 {
		minPrice, _ := stats.Min(prices)
		maxPrice, _ := stats.Max(prices)
		meanRating, _ := stats.Mean(ratings)
		metadata.PriceRange = models.PriceRangeData{
			Min: int64(minPrice),
			Max: int64(maxPrice),
		}
		metadata.AverageRating = math.Round(meanRating*100) / 100
	}

	h.cache.Set(cacheKey, metadata, 10*time.Minute)
	c.JSON(http.StatusOK, metadata)
}

// splitBrands parsea la lista separada por comas del query param
func splitBrands(raw string) []string {
	parts := strings.Split(raw, ",")
	brands := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			brands = append(brands, trimmed)
		}
	}
	return brands
}
