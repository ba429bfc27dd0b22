package models

// Product representa un producto del catálogo estático
type Product struct {
	ID            string   `json:"id" bson:"id" validate:"required"`
	Name          string   `json:"name" bson:"name" validate:"required"`
	Brand         string   `json:"brand" bson:"brand" validate:"required"`
	Category      string   `json:"category" bson:"category" validate:"required"`
	Price         int64    `json:"price" bson:"price" validate:"gte=0"`
	OriginalPrice int64    `json:"originalPrice,omitempty" bson:"originalPrice,omitempty" validate:"gte=0"`
	Rating        float64  `json:"rating" bson:"rating" validate:"gte=0,lte=5"`
	Reviews       int      `json:"reviews" bson:"reviews" validate:"gte=0"`
	Description   string   `json:"description" bson:"description"`
	Features      []string `json:"features" bson:"features"`
	Image         string   `json:"image" bson:"image"`
	InStock       bool     `json:"inStock" bson:"inStock"`
	Discount      int      `json:"discount,omitempty" bson:"discount,omitempty" validate:"gte=0,lte=100"`
}

// CartItem es el snapshot del producto tomado al agregarlo al carrito, más la cantidad
type CartItem struct {
	Product  `bson:",inline"`
	Quantity int64 `json:"quantity" bson:"quantity"`
}

// User representa la sesión simulada de autenticación
type User struct {
	ID      string `json:"id" bson:"id"`
	Name    string `json:"name" bson:"name"`
	Email   string `json:"email" bson:"email"`
	Avatar  string `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Phone   string `json:"phone,omitempty" bson:"phone,omitempty"`
	Address string `json:"address,omitempty" bson:"address,omitempty"`
}

// DurableState es el subconjunto del store que sobrevive entre sesiones
type DurableState struct {
	Cart            []CartItem `json:"cart" bson:"cart"`
	User            *User      `json:"user" bson:"user"`
	IsAuthenticated bool       `json:"isAuthenticated" bson:"isAuthenticated"`
}
