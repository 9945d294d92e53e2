package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/wadidirect/storefront-backend/api/middleware"
	"github.com/wadidirect/storefront-backend/internal/cart"
	"github.com/wadidirect/storefront-backend/internal/checkout"
)

func TestCheckoutConfirmsAndDrainsCart(t *testing.T) {
	store := cart.NewStore()
	store.Add(cart.Item{ID: "p1", Name: "Water", Price: 2.5}, 2)

	svc := checkout.NewService(time.Millisecond, nil)
	handler := Checkout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	req = req.WithContext(middleware.WithCart(req.Context(), store))
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var envelope struct {
		Data checkout.Confirmation `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Status != "confirmed" || envelope.Data.Reference == "" {
		t.Fatalf("unexpected confirmation: %+v", envelope.Data)
	}
	if envelope.Data.Total != 5 || envelope.Data.ItemCount != 2 {
		t.Fatalf("expected the pre-checkout totals, got %+v", envelope.Data)
	}
	if len(store.Snapshot().Items) != 0 {
		t.Fatal("expected the cart to be drained after checkout")
	}
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	svc := checkout.NewService(time.Millisecond, nil)
	handler := Checkout(svc, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", nil)
	req = req.WithContext(middleware.WithCart(req.Context(), cart.NewStore()))
	resp := httptest.NewRecorder()
	handler(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an empty cart, got %d", resp.Code)
	}
}
