package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/wadidirect/storefront-backend/api/middleware"
	"github.com/wadidirect/storefront-backend/internal/cart"
)

func cartRouter(store *cart.Store) http.Handler {
	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r.WithContext(middleware.WithCart(r.Context(), store)))
		})
	})
	router.Get("/cart", CartFetch(nil))
	router.Delete("/cart", CartClear(nil))
	router.Post("/cart/items", CartAddItem(nil))
	router.Patch("/cart/items/{itemId}", CartUpdateItem(nil))
	router.Delete("/cart/items/{itemId}", CartRemoveItem(nil))
	return router
}

func decodeCartState(t *testing.T, resp *httptest.ResponseRecorder) cart.State {
	t.Helper()
	var envelope struct {
		Data cart.State `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func TestCartFetchEmpty(t *testing.T) {
	router := cartRouter(cart.NewStore())

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/cart", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	state := decodeCartState(t, resp)
	if len(state.Items) != 0 || state.Total != 0 || state.ItemCount != 0 {
		t.Fatalf("expected an empty cart, got %+v", state)
	}
}

func TestCartAddItem(t *testing.T) {
	router := cartRouter(cart.NewStore())

	body := `{"id":"p1","name":"Oasis Water 500ml","price":2.5,"quantity":2,"brand":"oasis","category":"water"}`
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body)))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	state := decodeCartState(t, resp)
	if state.ItemCount != 2 || state.Total != 5 {
		t.Fatalf("unexpected state after add: %+v", state)
	}
}

func TestCartAddItemRejectsMissingFields(t *testing.T) {
	router := cartRouter(cart.NewStore())

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(`{"price":2.5}`)))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCartAddItemRejectsUnknownFields(t *testing.T) {
	router := cartRouter(cart.NewStore())

	body := `{"id":"p1","name":"Water","price":1,"sku":"nope"}`
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body)))

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

func TestCartUpdateItemQuantity(t *testing.T) {
	store := cart.NewStore()
	store.Add(cart.Item{ID: "p1", Name: "Water", Price: 2}, 1)
	router := cartRouter(store)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPatch, "/cart/items/p1", strings.NewReader(`{"quantity":4}`)))

	state := decodeCartState(t, resp)
	if state.ItemCount != 4 || state.Total != 8 {
		t.Fatalf("unexpected state after update: %+v", state)
	}
}

func TestCartUpdateItemToZeroRemovesLine(t *testing.T) {
	store := cart.NewStore()
	store.Add(cart.Item{ID: "p1", Name: "Water", Price: 2}, 3)
	router := cartRouter(store)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodPatch, "/cart/items/p1", strings.NewReader(`{"quantity":0}`)))

	state := decodeCartState(t, resp)
	if len(state.Items) != 0 {
		t.Fatalf("expected an empty cart, got %+v", state)
	}
}

func TestCartRemoveItem(t *testing.T) {
	store := cart.NewStore()
	store.Add(cart.Item{ID: "p1", Name: "Water", Price: 2}, 1)
	store.Add(cart.Item{ID: "p2", Name: "Juice", Price: 3}, 1)
	router := cartRouter(store)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/cart/items/p1", nil))

	state := decodeCartState(t, resp)
	if len(state.Items) != 1 || state.Items[0].ID != "p2" {
		t.Fatalf("expected only p2 to remain, got %+v", state)
	}
}

func TestCartRemoveUnknownItemIsNoop(t *testing.T) {
	store := cart.NewStore()
	store.Add(cart.Item{ID: "p1", Name: "Water", Price: 2}, 1)
	router := cartRouter(store)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/cart/items/ghost", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	state := decodeCartState(t, resp)
	if len(state.Items) != 1 {
		t.Fatalf("expected the cart to be untouched, got %+v", state)
	}
}

func TestCartClear(t *testing.T) {
	store := cart.NewStore()
	store.Add(cart.Item{ID: "p1", Name: "Water", Price: 2}, 5)
	router := cartRouter(store)

	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, httptest.NewRequest(http.MethodDelete, "/cart", nil))

	state := decodeCartState(t, resp)
	if len(state.Items) != 0 || state.Total != 0 || state.ItemCount != 0 {
		t.Fatalf("expected an empty cart, got %+v", state)
	}
}

func TestCartHandlersWithoutSession(t *testing.T) {
	resp := httptest.NewRecorder()
	CartFetch(nil)(resp, httptest.NewRequest(http.MethodGet, "/cart", nil))

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 without a session cart, got %d", resp.Code)
	}
}
