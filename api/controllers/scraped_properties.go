package controllers

import (
	"net/http"

	"github.com/deelmap/admin-backend/api/responses"
	"github.com/deelmap/admin-backend/api/validators"
	"github.com/deelmap/admin-backend/internal/scraped"
	pkgerrors "github.com/deelmap/admin-backend/pkg/errors"
	"github.com/deelmap/admin-backend/pkg/logger"
	"github.com/deelmap/admin-backend/pkg/pagination"
)

// ScrapedPropertyList returns a page of ingested wholesale deals.
func ScrapedPropertyList(svc scraped.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scraped service unavailable"))
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 0, 0, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.List(r.Context(), scraped.ListParams{
			SourceType: r.URL.Query().Get("sourceType"),
			Search:     validators.SanitizeString(r.URL.Query().Get("search"), 200),
			Page: pagination.Params{
				Limit:  limit,
				Cursor: r.URL.Query().Get("cursor"),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// ScrapedPropertyGet returns one scraped deal with its photos.
func ScrapedPropertyGet(svc scraped.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scraped service unavailable"))
			return
		}

		id, err := urlParamUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		deal, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, deal)
	}
}

// ScrapedPropertyDelete removes a scraped deal and its photos.
func ScrapedPropertyDelete(svc scraped.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "scraped service unavailable"))
			return
		}

		id, err := urlParamUUID(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]bool{"deleted": true})
	}
}
