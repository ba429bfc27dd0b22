package store

import (
	"context"
	"encoding/json"
	"os"
	"sync"

	"storefront/internal/models"
)

// FilePersister guarda el blob durable como JSON en disco. Es el backend
// local cuando no hay MongoDB configurado.
type FilePersister struct {
	path string
	mu   sync.Mutex
}

func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// Load lee el blob si existe; un archivo ausente no es un error
func (f *FilePersister) Load(_ context.Context) (*models.DurableState, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var state models.DurableState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

// Save reescribe el blob completo en cada mutación
func (f *FilePersister) Save(_ context.Context, state models.DurableState) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0644)
}
