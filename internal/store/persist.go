package store

import (
	"context"

	"storefront/internal/models"
)

// Persister guarda y recupera el blob durable {cart, user, isAuthenticated}.
// Load devuelve (nil, nil) cuando todavía no existe ningún blob.
type Persister interface {
	Load(ctx context.Context) (*models.DurableState, error)
	Save(ctx context.Context, state models.DurableState) error
}
