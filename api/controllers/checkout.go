package controllers

import (
	"net/http"

	"github.com/wadidirect/storefront-backend/api/responses"
	checkoutsvc "github.com/wadidirect/storefront-backend/internal/checkout"
	pkgerrors "github.com/wadidirect/storefront-backend/pkg/errors"
	"github.com/wadidirect/storefront-backend/pkg/logger"
)

// Checkout runs the simulated payment over the session's cart and returns
// the confirmation. The cart is drained on success.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		store, err := cartFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		confirmation, err := svc.Process(r.Context(), store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, confirmation)
	}
}
