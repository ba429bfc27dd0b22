package auth

import (
	"context"
	"strconv"
	"sync"
	"time"

	"storefront/internal/models"
)

// Authenticator es la frontera de autenticación inyectada al store.
// Un resultado false es un fallo suave, nunca una excepción.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*models.User, bool)
	Register(ctx context.Context, name, email, password string) (*models.User, bool)
}

const mockAvatar = "https://images.pexels.com/photos/220453/pexels-photo-220453.jpeg"

// Mock simula el backend de autenticación con una latencia fija.
// Acepta cualquier credencial con campos no vacíos.
type Mock struct {
	delay time.Duration

	mu     sync.Mutex
	lastID int64
}

func NewMock(delay time.Duration) *Mock {
	return &Mock{delay: delay}
}

// Login resuelve tras la latencia simulada; exige email y password no vacíos
func (m *Mock) Login(ctx context.Context, email, password string) (*models.User, bool) {
	if !m.wait(ctx) {
		return nil, false
	}
	if email == "" || password == "" {
		return nil, false
	}
	return &models.User{
		ID:      "1",
		Name:    "John Doe",
		Email:   email,
		Avatar:  mockAvatar,
		Phone:   "+91 9876543210",
		Address: "Mumbai, Maharashtra, India",
	}, true
}

// Register genera un usuario nuevo con id basado en tiempo, único en la sesión
func (m *Mock) Register(ctx context.Context, name, email, password string) (*models.User, bool) {
	if !m.wait(ctx) {
		return nil, false
	}
	if name == "" || email == "" || password == "" {
		return nil, false
	}
	return &models.User{
		ID:     m.nextID(),
		Name:   name,
		Email:  email,
		Avatar: mockAvatar,
	}, true
}

func (m *Mock) wait(ctx context.Context) bool {
	if m.delay <= 0 {
		return ctx.Err() == nil
	}
	select {
	case <-time.After(m.delay):
		return true
	case <-ctx.Done():
		return false
	}
}

// nextID usa UnixNano, corrigiendo colisiones dentro del mismo nanosegundo
func (m *Mock) nextID() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := time.Now().UnixNano()
	if id <= m.lastID {
		id = m.lastID + 1
	}
	m.lastID = id
	return strconv.FormatInt(id, 10)
}
