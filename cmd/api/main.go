package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"

	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/catalog"
	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/routes"
	"storefront/internal/speech"
	"storefront/internal/store"
)

func main() {
	cfg := config.LoadConfig()

	cat, err := catalog.Load()
	if err != nil {
		log.Fatal("❌ Error loading catalog:", err)
	}
	log.Println("✅ Catalog loaded:", cat.Len(), "products")

	var persister store.Persister
	if cfg.MongoURI != "" {
		client := database.Connect(cfg.MongoURI)
		db := client.Database(cfg.MongoDB)
		persister = store.NewMongoPersister(db.Collection("session_state"))
	} else {
		persister = store.NewFilePersister(cfg.StateFile)
		log.Println("🌐 MONGO_URI not set, persisting state to", cfg.StateFile)
	}

	st := store.New(auth.NewMock(cfg.AuthDelay), persister)
	if err := st.Hydrate(context.Background()); err != nil {
		log.Println("⚠️ Error restoring durable state:", err)
	}

	router := gin.Default()
	// el servidor no tiene capacidad de voz; el endpoint degrada a un aviso
	routes.RegisterRoutes(router, cat, st, speech.Unavailable{}, cache.New(cfg.CacheTTL))

	log.Println("🚀 Server running on port", cfg.Port)
	router.Run(":" + cfg.Port)
}
