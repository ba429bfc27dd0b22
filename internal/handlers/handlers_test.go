package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/auth"
	"storefront/internal/cache"
	"storefront/internal/catalog"
	"storefront/internal/speech"
	"storefront/internal/store"
)

func setupRouter(t *testing.T, rec speech.Recognizer) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat, err := catalog.Load()
	require.NoError(t, err)

	st := store.New(auth.NewMock(0), store.NewFilePersister(filepath.Join(t.TempDir(), "state.json")))
	ch := cache.New(time.Minute)

	router := gin.New()

	products := NewProductHandler(cat, st, ch)
	cart := NewCartHandler(cat, st)
	authH := NewAuthHandler(st)
	search := NewSearchHandler(st, rec, ch)

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

		v1.POST("/auth/login", authH.Login)
		v1.POST("/auth/register", authH.Register)
		v1.POST("/auth/logout", authH.Logout)
		v1.GET("/auth/me", authH.Me)

		v1.PUT("/search", search.UpdateSearch)
		v1.POST("/search/voice", search.VoiceSearch)
	}

	return router, st
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestListProducts_CategoryAndBrandIntersection(t *testing.T) {
	router, _ := setupRouter(t, speech.Unavailable{})

	w := doRequest(router, http.MethodGet, "/v1/products?category=Electronics&brands=Sony", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	data := body["data"].([]interface{})
	require.Len(t, data, 1)

	p := data[0].(map[string]interface{})
	assert.Equal(t, "Sony", p["brand"])
	assert.Equal(t, "Electronics", p["category"])
}

func TestListProducts_SortPriceLow(t *testing.T) {
	router, _ := setupRouter(t, speech.Unavailable{})

	w := doRequest(router, http.MethodGet, "/v1/products?sort=price-low", "")

	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].([]interface{})
	require.NotEmpty(t, data)

	first := data[0].(map[string]interface{})["price"].(float64)
	for _, raw := range data {
		assert.LessOrEqual(t, first, raw.(map[string]interface{})["price"].(float64))
	}
}

func TestListProducts_InvalidSortRejected(t *testing.T) {
	router, _ := setupRouter(t, speech.Unavailable{})

	w := doRequest(router, http.MethodGet, "/v1/products?sort=alphabetical", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListProducts_AllFilteredOutIsEmptyNotError(t *testing.T) {
	router, _ := setupRouter(t, speech.Unavailable{})

	w := doRequest(router, http.MethodGet, "/v1/products?q=zzzznothing", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(0), body["total"])
}

func TestGetProduct_DetailWithDiscount(t *testing.T) {
	router, _ := setupRouter(t, speech.Unavailable{})

	w := doRequest(router, http.MethodGet, "/v1/products/1", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(6), body["discount_percent"])
	assert.Equal(t, "₹74,999", body["price_display"])
}

func TestGetProduct_NotFound(t *testing.T) {
	router, _ := setupRouter(t, speech.Unavailable{})

	w := doRequest(router, http.MethodGet, "/v1/products/9999", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetFeatured_ReturnsFour(t *testing.T) {
	router, _ := setupRouter(t, speech.Unavailable{})

	w := doRequest(router, http.MethodGet, "/v1/featured", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(4), decode(t, w)["total"])
}

func TestGetFilters_Metadata(t *testing.T) {
	router, _ := setupRouter(t, speech.Unavailable{})

	w := doRequest(router, http.MethodGet, "/v1/filters", "")

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)

	availability := body["availability"].(map[string]interface{})
	assert.Greater(t, availability["inStock"].(float64), float64(0))

	priceRange := body["priceRange"].(map[string]interface{})
	assert.Less(t, priceRange["min"].(float64), priceRange["max"].(float64))

	assert.NotEmpty(t, body["categories"])
	assert.NotEmpty(t, body["brands"])
}

func TestCart_AddTwiceMergesQuantity(t *testing.T) {
	router, _ := setupRouter(t, speech.Unavailable{})

	w := doRequest(router, http.MethodPost, "/v1/cart/items", `{"product_id":"9"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	w = doRequest(router, http.MethodPost, "/v1/cart/items", `{"product_id":"9"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(router, http.MethodGet, "/v1/cart", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)

	items := body["items"].([]interface{})
	require.Len(t, items, 1)
	assert.Equal(t, float64(2), items[0].(map[string]interface{})["quantity"])
	assert.Equal(t, float64(2), body["item_count"])

	// 2 x 319 = 638 > 499: envío gratis
	formatted := body["formatted"].(map[string]interface{})
	assert.Equal(t, "FREE", formatted["shipping"])
}

func TestCart_AddUnknownProduct(t *testing.T) {
	router, _ := setupRouter(t, speech.Unavailable{})

	w := doRequest(router, http.MethodPost, "/v1/cart/items", `{"product_id":"404"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCart_UpdateQuantityZeroRemoves(t *testing.T) {
	router, _ := setupRouter(t, speech.Unavailable{})

	doRequest(router, http.MethodPost, "/v1/cart/items", `{"product_id":"2"}`)
	w := doRequest(router, http.MethodPatch, "/v1/cart/items/2", `{"quantity":0}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, decode(t, w)["items"])
}

func TestCart_RemoveIsIdempotent(t *testing.T) {
	router, _ := setupRouter(t, speech.Unavailable{})

	doRequest(router, http.MethodPost, "/v1/cart/items", `{"product_id":"2"}`)

	w := doRequest(router, http.MethodDelete, "/v1/cart/items/2", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodDelete, "/v1/cart/items/2", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestCart_Clear(t *testing.T) {
	router, st := setupRouter(t, speech.Unavailable{})

	doRequest(router, http.MethodPost, "/v1/cart/items", `{"product_id":"1"}`)
	doRequest(router, http.MethodPost, "/v1/cart/items", `{"product_id":"2"}`)

	w := doRequest(router, http.MethodDelete, "/v1/cart", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, st.Cart())
}

func TestAuth_LoginFlow(t *testing.T) {
	router, st := setupRouter(t, speech.Unavailable{})

	// campos vacíos: fallo suave, el estado no cambia
	w := doRequest(router, http.MethodPost, "/v1/auth/login", `{"email":"","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, st.IsAuthenticated())

	w = doRequest(router, http.MethodPost, "/v1/auth/login", `{"email":"a@b.com","password":"x"}`)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "a@b.com", user["email"])

	w = doRequest(router, http.MethodGet, "/v1/auth/me", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodPost, "/v1/auth/logout", "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doRequest(router, http.MethodGet, "/v1/auth/me", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_Register(t *testing.T) {
	router, _ := setupRouter(t, speech.Unavailable{})

	w := doRequest(router, http.MethodPost, "/v1/auth/register", `{"name":"Ana","email":"ana@b.com","password":"x"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	user := decode(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "ana@b.com", user["email"])
	assert.NotEmpty(t, user["id"])

	w = doRequest(router, http.MethodPost, "/v1/auth/register", `{"name":"","email":"b@b.com","password":"x"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSearch_UpdateQueryDrivesListing(t *testing.T) {
	router, st := setupRouter(t, speech.Unavailable{})

	w := doRequest(router, http.MethodPut, "/v1/search", `{"query":"flask"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "flask", st.Filters().SearchQuery)

	w = doRequest(router, http.MethodGet, "/v1/products", "")
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].([]interface{})
	require.Len(t, data, 1)
	assert.Equal(t, "Milton", data[0].(map[string]interface{})["brand"])
}

func TestVoiceSearch_UnavailableDegradesWithNotice(t *testing.T) {
	router, _ := setupRouter(t, speech.Unavailable{})

	w := doRequest(router, http.MethodPost, "/v1/search/voice", "")

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, decode(t, w)["error"], "not supported")
}

func TestVoiceSearch_RecognizedPhraseFeedsQuery(t *testing.T) {
	router, st := setupRouter(t, speech.Static{Phrase: "wireless headphones"})

	w := doRequest(router, http.MethodPost, "/v1/search/voice", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "wireless headphones", st.Filters().SearchQuery)
}
