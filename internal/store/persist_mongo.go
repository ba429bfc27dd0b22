package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"storefront/internal/models"
)

// stateDocID identifica el único documento de estado de la sesión
const stateDocID = "storefront-state"

// MongoPersister guarda el blob durable como un único documento upsert
// en la colección de estado
type MongoPersister struct {
	collection *mongo.Collection
}

func NewMongoPersister(collection *mongo.Collection) *MongoPersister {
	return &MongoPersister{collection: collection}
}

type stateDocument struct {
	ID                  string `bson:"_id"`
	models.DurableState `bson:",inline"`
}

// Load lee el documento de estado; si no existe devuelve (nil, nil)
func (m *MongoPersister) Load(ctx context.Context) (*models.DurableState, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var doc stateDocument
	err := m.collection.FindOne(ctx, bson.M{"_id": stateDocID}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &doc.DurableState, nil
}

// Save reemplaza el documento completo en cada mutación
func (m *MongoPersister) Save(ctx context.Context, state models.DurableState) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	doc := stateDocument{ID: stateDocID, DurableState: state}
	opts := options.Replace().SetUpsert(true)

	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": stateDocID}, doc, opts)
	return err
}
