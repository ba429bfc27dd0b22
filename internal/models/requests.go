package models

// AddItemRequest agrega un producto del catálogo al carrito
type AddItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// UpdateQuantityRequest fija la cantidad exacta de un item (<= 0 lo elimina)
type UpdateQuantityRequest struct {
	Quantity *int64 `json:"quantity" binding:"required"`
}

// LoginRequest no usa binding required: credenciales vacías son un fallo
// suave (401), no un error de validación
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SearchRequest struct {
	Query string `json:"query"`
}
