package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"storefront/internal/models"
	"storefront/internal/store"
)

type AuthHandler struct {
	store *store.Store
}

func NewAuthHandler(st *store.Store) *AuthHandler {
	return &AuthHandler{store: st}
}

// Login resuelve la autenticación simulada; credenciales vacías son un
// fallo suave (401), no un error de validación
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.store.Login(c.Request.Context(), req.Email, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	user, _ := h.store.User()
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// Register sigue el contrato de Login con los tres campos requeridos
func (h *AuthHandler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !h.store.Register(c.Request.Context(), req.Name, req.Email, req.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid registration details"})
		return
	}

	user, _ := h.store.User()
	c.JSON(http.StatusCreated, gin.H{"user": user})
}

// Logout limpia la sesión; siempre responde 204
func (h *AuthHandler) Logout(c *gin.Context) {
	h.store.Logout()
	c.Status(http.StatusNoContent)
}

// Me devuelve el usuario autenticado actual
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := h.store.User()
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
