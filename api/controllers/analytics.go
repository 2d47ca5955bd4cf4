package controllers

import (
	"net/http"
	"strings"

	"github.com/deelmap/admin-backend/api/responses"
	"github.com/deelmap/admin-backend/api/validators"
	"github.com/deelmap/admin-backend/internal/analytics"
	pkgerrors "github.com/deelmap/admin-backend/pkg/errors"
	"github.com/deelmap/admin-backend/pkg/logger"
)

// Analytics serves the dashboard analytics endpoint. The type parameter
// selects summary, property-detail, or notifications.
func Analytics(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		queryType := strings.TrimSpace(r.URL.Query().Get("type"))
		if queryType == "" {
			queryType = "summary"
		}

		switch queryType {
		case "summary":
			startDate, err := validators.ParseQueryDate(r, "startDate")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			endDate, err := validators.ParseQueryDate(r, "endDate")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}

			summaries, err := svc.Summary(r.Context(), analytics.SummaryParams{
				PropertyID: r.URL.Query().Get("propertyId"),
				StartDate:  startDate,
				EndDate:    endDate,
			})
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, summaries)

		case "property-detail":
			views, err := svc.PropertyDetail(r.Context(), r.URL.Query().Get("propertyId"))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, views)

		case "notifications":
			history, err := svc.NotificationHistory(r.Context())
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, history)

		default:
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "type must be summary, property-detail, or notifications"))
		}
	}
}
