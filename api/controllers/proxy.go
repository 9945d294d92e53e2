package controllers

import (
	"context"
	"net/http"
	"strings"

	"github.com/wadidirect/storefront-backend/api/responses"
	"github.com/wadidirect/storefront-backend/api/validators"
	"github.com/wadidirect/storefront-backend/internal/catalog"
	pkgerrors "github.com/wadidirect/storefront-backend/pkg/errors"
	"github.com/wadidirect/storefront-backend/pkg/logger"
)

// Forwarder relays raw upstream catalog responses.
type Forwarder interface {
	Forward(ctx context.Context, kind, name string) (int, []byte, error)
	ForwardPage(ctx context.Context, page int) (int, []byte, error)
}

// Proxy relays a single upstream catalog request, echoing the upstream status
// and body verbatim, including non-2xx responses. Browsers cannot hit the
// upstream directly because it does not send CORS headers.
func Proxy(fwd Forwarder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if fwd == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "proxy client unavailable"))
			return
		}

		kind := strings.TrimSpace(r.URL.Query().Get("type"))
		if kind == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "type query parameter is required"))
			return
		}

		var (
			status int
			body   []byte
			err    error
		)

		switch kind {
		case catalog.KindAll:
			page, perr := validators.ParseQueryInt(r, "page", 1, 1, 10000)
			if perr != nil {
				responses.WriteError(r.Context(), logg, w, perr)
				return
			}
			status, body, err = fwd.ForwardPage(r.Context(), page)
		default:
			name := strings.TrimSpace(r.URL.Query().Get("name"))
			if name == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "name query parameter is required"))
				return
			}
			status, body, err = fwd.Forward(r.Context(), kind, name)
		}

		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upstream request failed"))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if _, werr := w.Write(body); werr != nil && logg != nil {
			logg.Warn(logg.WithField(r.Context(), "error", werr.Error()), "proxy.write_response")
		}
	}
}
