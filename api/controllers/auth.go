package controllers

import (
	"net/http"

	"github.com/deelmap/admin-backend/api/responses"
	"github.com/deelmap/admin-backend/api/validators"
	"github.com/deelmap/admin-backend/internal/auth"
	pkgerrors "github.com/deelmap/admin-backend/pkg/errors"
	"github.com/deelmap/admin-backend/pkg/logger"
)

// AuthLogin authenticates a dashboard operator and returns an access token.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var input auth.LoginInput
		if err := validators.DecodeJSONBody(r, &input); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Login(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
