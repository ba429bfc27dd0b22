package store

import (
	"context"
	"log"
	"sort"
	"sync"

	"github.com/google/uuid"

	"storefront/internal/auth"
	"storefront/internal/catalog"
	"storefront/internal/models"
)

// Store es el único dueño del estado mutable de la sesión: carrito,
// autenticación y filtros activos. Cada mutación es atómica y dispara
// el guardado del subconjunto durable.
type Store struct {
	mu sync.RWMutex

	cart            []models.CartItem
	user            *models.User
	isAuthenticated bool

	// estado efímero: se reinicia en cada sesión
	searchQuery      string
	selectedCategory string
	priceRange       [2]int64
	selectedBrands   []string

	// token del intento de login/register más reciente; una resolución
	// obsoleta se descarta sin tocar el estado
	authToken string

	authenticator auth.Authenticator
	persister     Persister
	saveMu        sync.Mutex
	saves         sync.WaitGroup
}

// FilterState es una vista de solo lectura de los filtros activos
type FilterState struct {
	SearchQuery      string
	SelectedCategory string
	PriceRange       [2]int64
	SelectedBrands   []string
}

func New(authenticator auth.Authenticator, persister Persister) *Store {
	return &Store{
		priceRange:    [2]int64{0, catalog.MaxPrice},
		authenticator: authenticator,
		persister:     persister,
	}
}

// Hydrate carga el blob durable al arranque, si existe. La búsqueda y los
// filtros no se restauran: se reinician en cada sesión.
func (s *Store) Hydrate(ctx context.Context) error {
	state, err := s.persister.Load(ctx)
	if err != nil {
		return err
	}
	if state == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = append([]models.CartItem(nil), state.Cart...)
	s.user = state.User
	// isAuthenticated y user deben ser mutuamente consistentes aunque el
	// blob venga de un esquema viejo
	s.isAuthenticated = state.IsAuthenticated && state.User != nil
	return nil
}

// AddToCart agrega el producto al carrito; si ya existe incrementa su
// cantidad en 1 sin refrescar el snapshot tomado en el primer agregado
func (s *Store) AddToCart(product models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.cart {
		if s.cart[i].ID == product.ID {
			s.cart[i].Quantity++
			s.persistLocked()
			return
		}
	}
	s.cart = append(s.cart, models.CartItem{Product: product, Quantity: 1})
	s.persistLocked()
}

// RemoveFromCart elimina el item si está presente; si no, es un no-op
func (s *Store) RemoveFromCart(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
	s.persistLocked()
}

// UpdateQuantity fija la cantidad exacta del item; una cantidad <= 0
// equivale a eliminarlo. Id ausente es un no-op.
func (s *Store) UpdateQuantity(productID string, quantity int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if quantity <= 0 {
		s.removeLocked(productID)
		s.persistLocked()
		return
	}
	for i := range s.cart {
		if s.cart[i].ID == productID {
			s.cart[i].Quantity = quantity
			break
		}
	}
	s.persistLocked()
}

// ClearCart vacía el carrito incondicionalmente
func (s *Store) ClearCart() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = nil
	s.persistLocked()
}

// Cart devuelve una copia del carrito en orden de primer agregado
func (s *Store) Cart() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.CartItem(nil), s.cart...)
}

// Login resuelve contra el authenticator tras su latencia simulada.
// Si durante la espera arrancó un intento más nuevo, esta resolución se
// descarta y devuelve false.
func (s *Store) Login(ctx context.Context, email, password string) bool {
	token := s.beginAttempt()
	user, ok := s.authenticator.Login(ctx, email, password)
	return s.resolveAttempt(token, user, ok)
}

// Register sigue el mismo contrato que Login, con los tres campos requeridos
func (s *Store) Register(ctx context.Context, name, email, password string) bool {
	token := s.beginAttempt()
	user, ok := s.authenticator.Register(ctx, name, email, password)
	return s.resolveAttempt(token, user, ok)
}

// Logout limpia la sesión; siempre tiene éxito
func (s *Store) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.isAuthenticated = false
	s.persistLocked()
}

// User devuelve el usuario autenticado, si lo hay
func (s *Store) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isAuthenticated || s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

// IsAuthenticated indica si hay una sesión activa
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isAuthenticated
}

// SetSearchQuery reemplaza el texto de búsqueda sin validarlo
func (s *Store) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = query
}

// SetSelectedCategory reemplaza la categoría activa; vacía = sin filtro
func (s *Store) SetSelectedCategory(category string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedCategory = category
}

// SetPriceRange reemplaza el rango de precios; que low <= high es
// responsabilidad del llamador
func (s *Store) SetPriceRange(low, high int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.priceRange = [2]int64{low, high}
}

// SetSelectedBrands reemplaza el conjunto de marcas; se guarda ordenado
// para que el render sea determinista
func (s *Store) SetSelectedBrands(brands []string) {
	sorted := append([]string(nil), brands...)
	sort.Strings(sorted)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedBrands = sorted
}

// Filters devuelve una copia del estado de filtros activo
func (s *Store) Filters() FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterState{
		SearchQuery:      s.searchQuery,
		SelectedCategory: s.selectedCategory,
		PriceRange:       s.priceRange,
		SelectedBrands:   append([]string(nil), s.selectedBrands...),
	}
}

// Flush espera los guardados en vuelo; se usa en tests y al apagar
func (s *Store) Flush() {
	s.saves.Wait()
}

func (s *Store) removeLocked(productID string) {
	for i := range s.cart {
		if s.cart[i].ID == productID {
			s.cart = append(s.cart[:i], s.cart[i+1:]...)
			return
		}
	}
}

func (s *Store) beginAttempt() string {
	token := uuid.NewString()
	s.mu.Lock()
	s.authToken = token
	s.mu.Unlock()
	return token
}

func (s *Store) resolveAttempt(token string, user *models.User, ok bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.authToken != token {
		return false
	}
	s.authToken = ""
	if !ok {
		return false
	}
	s.user = user
	s.isAuthenticated = true
	s.persistLocked()
	return true
}

// persistLocked dispara el guardado del subconjunto durable sin bloquear
// al mutador; el snapshot se toma al momento de escribir, así el último
// guardado siempre refleja el estado más reciente
func (s *Store) persistLocked() {
	s.saves.Add(1)
	go func() {
		defer s.saves.Done()
		s.saveMu.Lock()
		defer s.saveMu.Unlock()

		state := s.durableState()
		if err := s.persister.Save(context.Background(), state); err != nil {
			log.Println("⚠️ Error saving durable state:", err)
		}
	}()
}

func (s *Store) durableState() models.DurableState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.DurableState{
		Cart:            append([]models.CartItem(nil), s.cart...),
		User:            s.user,
		IsAuthenticated: s.isAuthenticated,
	}
}
