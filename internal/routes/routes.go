package routes

import (
	"github.com/gin-gonic/gin"

	"storefront/internal/cache"
	"storefront/internal/catalog"
	"storefront/internal/handlers"
	"storefront/internal/speech"
	"storefront/internal/store"
)

func RegisterRoutes(router *gin.Engine, cat *catalog.Catalog, st *store.Store, rec speech.Recognizer, ch *cache.Cache) {
	products := handlers.NewProductHandler(cat, st, ch)
	cart := handlers.NewCartHandler(cat, st)
	auth := handlers.NewAuthHandler(st)
	search := handlers.NewSearchHandler(st, rec, ch)

	v1 := router.Group("/v1")
	{
		v1.GET("/products", products.ListProducts)
		v1.GET("/products/:id", products.GetProduct)
		v1.GET("/featured", products.GetFeatured)
		v1.GET("/filters", products.GetFilters)

		v1.GET("/cart", cart.GetCart)
		v1.POST("/cart/items", cart.AddItem)
		v1.PATCH("/cart/items/:id", cart.UpdateItem)
		v1.DELETE("/cart/items/:id", cart.RemoveItem)
		v1.DELETE("/cart", cart.Clear)

		v1.POST("/auth/login", auth.Login)
		v1.POST("/auth/register", auth.Register)
		v1.POST("/auth/logout", auth.Logout)
		v1.GET("/auth/me", auth.Me)

		v1.PUT("/search", search.UpdateSearch)
		v1.POST("/search/voice", search.VoiceSearch)
	}
}
