package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wadidirect/storefront-backend/api/middleware"
	"github.com/wadidirect/storefront-backend/api/responses"
	"github.com/wadidirect/storefront-backend/api/validators"
	"github.com/wadidirect/storefront-backend/internal/cart"
	pkgerrors "github.com/wadidirect/storefront-backend/pkg/errors"
	"github.com/wadidirect/storefront-backend/pkg/logger"
)

// AddCartItemRequest is the payload for adding one line to the cart. The
// name and price are captured as sent; the store never re-resolves them.
type AddCartItemRequest struct {
	ID            string  `json:"id" validate:"required"`
	Name          string  `json:"name" validate:"required"`
	Price         float64 `json:"price" validate:"gte=0"`
	OriginalPrice float64 `json:"originalPrice,omitempty"`
	Image         string  `json:"image,omitempty"`
	Category      string  `json:"category,omitempty"`
	Brand         string  `json:"brand,omitempty"`
	Quantity      int     `json:"quantity,omitempty"`
}

// UpdateCartItemRequest sets a line's quantity to an absolute value. Zero or
// below removes the line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CartFetch returns the session's current cart state.
func CartFetch(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := cartFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store.Snapshot())
	}
}

// CartAddItem merges the posted item into the cart.
func CartAddItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := cartFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload AddCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		state := store.Add(cart.Item{
			ID:            payload.ID,
			Name:          payload.Name,
			Price:         payload.Price,
			OriginalPrice: payload.OriginalPrice,
			Image:         payload.Image,
			Category:      payload.Category,
			Brand:         payload.Brand,
		}, payload.Quantity)

		responses.WriteSuccess(w, state)
	}
}

// CartUpdateItem sets the quantity for one line.
func CartUpdateItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := cartFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID := strings.TrimSpace(chi.URLParam(r, "itemId"))
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		var payload UpdateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, store.UpdateQuantity(itemID, payload.Quantity))
	}
}

// CartRemoveItem deletes one line; removing an absent id is not an error.
func CartRemoveItem(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := cartFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		itemID := strings.TrimSpace(chi.URLParam(r, "itemId"))
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		responses.WriteSuccess(w, store.Remove(itemID))
	}
}

// CartClear empties the session's cart.
func CartClear(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := cartFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, store.Clear())
	}
}

func cartFromRequest(r *http.Request) (*cart.Store, error) {
	store := middleware.CartFromContext(r.Context())
	if store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart session missing")
	}
	return store, nil
}
