package controllers

import (
	"net/http"

	"github.com/angelmondragon/shopstate/api/responses"
	"github.com/angelmondragon/shopstate/api/validators"
	pkgerrors "github.com/angelmondragon/shopstate/pkg/errors"
	"github.com/angelmondragon/shopstate/pkg/logger"
)

type searchRequest struct {
	Query string `json:"query" validate:"max=200"`
}

// CatalogLoad fetches products and banners and waits for both.
func CatalogLoad(engine Engine, reader StateReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := engine.LoadCatalog(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		snap := reader.Snapshot()
		responses.WriteSuccess(w, map[string]any{
			"products": snap.Products,
			"banners":  snap.Banners,
		})
	}
}

// CatalogRefresh re-issues the catalog loads and returns before they resolve.
func CatalogRefresh(engine Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		engine.Refresh(r.Context())
		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"status": "refreshing"})
	}
}

// Search records one keystroke. Results land in the products slice once the
// debounce window closes.
func Search(engine Engine, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload searchRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		engine.Search(r.Context(), payload.Query)
		responses.WriteSuccessStatus(w, http.StatusAccepted, map[string]string{"query": payload.Query})
	}
}

// SelectProduct loads one product into the selected slice.
func SelectProduct(engine Engine, reader StateReader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.PathParam(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if err := engine.SelectProduct(r.Context(), productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		selected := reader.Snapshot().Selected
		if selected.Value == nil || selected.Value.ID != productID {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeConflict, "selection superseded"))
			return
		}
		responses.WriteSuccess(w, selected.Value)
	}
}
