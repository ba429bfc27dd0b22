package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/catalog"
	"storefront/internal/models"
	"storefront/internal/pricing"
	"storefront/internal/store"
)

type CartHandler struct {
	catalog *catalog.Catalog
	store   *store.Store
}

func NewCartHandler(cat *catalog.Catalog, st *store.Store) *CartHandler {
	return &CartHandler{
		catalog: cat,
		store:   st,
	}
}

// GetCart devuelve los items y los totales derivados
func (h *CartHandler) GetCart(c *gin.Context) {
	items := h.store.Cart()
	c.JSON(http.StatusOK, cartResponse(items))
}

// AddItem agrega un producto del catálogo; si ya está, incrementa su cantidad
func (h *CartHandler) AddItem(c *gin.Context) {
	var req models.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	product, ok := h.catalog.ByID(req.ProductID)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	h.store.AddToCart(product)
	c.JSON(http.StatusCreated, cartResponse(h.store.Cart()))
}

// UpdateItem fija la cantidad exacta de un item; <= 0 lo elimina
func (h *CartHandler) UpdateItem(c *gin.Context) {
	var req models.UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.store.UpdateQuantity(c.Param("id"), *req.Quantity)
	c.JSON(http.StatusOK, cartResponse(h.store.Cart()))
}

// RemoveItem elimina un item; un id ausente también responde 204
func (h *CartHandler) RemoveItem(c *gin.Context) {
	h.store.RemoveFromCart(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// Clear vacía el carrito
func (h *CartHandler) Clear(c *gin.Context) {
	h.store.ClearCart()
	c.Status(http.StatusNoContent)
}

func cartResponse(items []models.CartItem) gin.H {
	totals := pricing.CartTotals(items)

	var count int64
	for _, item := range items {
		count += item.Quantity
	}

	shipping := pricing.FormatAmount(totals.Shipping)
	if totals.Shipping.IsZero() {
		shipping = "FREE"
	}

	return gin.H{
		"items":      items,
		"item_count": count,
		"totals":     totals,
		"formatted": gin.H{
			"subtotal": pricing.FormatAmount(totals.Subtotal),
			"shipping": shipping,
			"tax":      pricing.FormatAmount(totals.Tax),
			"total":    pricing.FormatAmount(totals.Total),
		},
	}
}
