package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/wadidirect/storefront-backend/api/responses"
	"github.com/wadidirect/storefront-backend/api/validators"
	"github.com/wadidirect/storefront-backend/internal/catalog"
	pkgerrors "github.com/wadidirect/storefront-backend/pkg/errors"
	"github.com/wadidirect/storefront-backend/pkg/logger"
)

type productList struct {
	Products []catalog.Product `json:"products"`
	Count    int               `json:"count"`
}

func newProductList(products []catalog.Product) productList {
	return productList{Products: products, Count: len(products)}
}

// CatalogByCategory lists the normalized products for one category.
func CatalogByCategory(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		category := strings.TrimSpace(chi.URLParam(r, "category"))
		if category == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "category is required"))
			return
		}

		responses.WriteSuccess(w, newProductList(svc.ByCategory(r.Context(), category)))
	}
}

// CatalogByBrand lists the normalized products for one brand.
func CatalogByBrand(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		brand := strings.TrimSpace(chi.URLParam(r, "brand"))
		if brand == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "brand is required"))
			return
		}

		responses.WriteSuccess(w, newProductList(svc.ByBrand(r.Context(), brand)))
	}
}

// CatalogProducts lists the full catalog, or one upstream page when a page
// query parameter is present.
func CatalogProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		if r.URL.Query().Has("page") {
			page, err := validators.ParseQueryInt(r, "page", 1, 1, 10000)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, svc.Page(r.Context(), page))
			return
		}

		responses.WriteSuccess(w, newProductList(svc.All(r.Context())))
	}
}

// CatalogSearch filters the full catalog by the q query parameter.
func CatalogSearch(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		query := r.URL.Query().Get("q")
		responses.WriteSuccess(w, newProductList(svc.Search(r.Context(), query)))
	}
}
