package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/cache"
	"storefront/internal/models"
	"storefront/internal/speech"
	"storefront/internal/store"
)

type SearchHandler struct {
	store      *store.Store
	recognizer speech.Recognizer
	cache      *cache.Cache
}

func NewSearchHandler(st *store.Store, rec speech.Recognizer, ch *cache.Cache) *SearchHandler {
	return &SearchHandler{
		store:      st,
		recognizer: rec,
		cache:      ch,
	}
}

// UpdateSearch reemplaza el texto de búsqueda del store
func (h *SearchHandler) UpdateSearch(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.store.SetSearchQuery(req.Query)
	h.cache.DeleteByPrefix("products:list:")
	c.JSON(http.StatusOK, gin.H{"query": req.Query})
}

// VoiceSearch alimenta la búsqueda con la frase reconocida; si la
// capacidad no existe, degrada a un aviso visible
func (h *SearchHandler) VoiceSearch(c *gin.Context) {
	phrase, err := h.recognizer.Recognize(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	}

	h.store.SetSearchQuery(phrase)
	h.cache.DeleteByPrefix("products:list:")
	c.JSON(http.StatusOK, gin.H{"query": phrase})
}
