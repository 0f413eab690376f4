package controllers

import (
	"net/http"

	"github.com/hellolocalo/localo-backend/api/middleware"
	"github.com/hellolocalo/localo-backend/api/responses"
	"github.com/hellolocalo/localo-backend/api/validators"
	"github.com/hellolocalo/localo-backend/internal/auth"
	pkgAuth "github.com/hellolocalo/localo-backend/pkg/auth"
	"github.com/hellolocalo/localo-backend/pkg/config"
	pkgerrors "github.com/hellolocalo/localo-backend/pkg/errors"
	"github.com/hellolocalo/localo-backend/pkg/logger"
)

// AuthLogin exchanges credentials for an access/refresh pair.
func AuthLogin(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.LoginInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pair, err := svc.Login(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, pair)
	}
}

// AuthRefresh rotates the refresh session tied to an access token.
func AuthRefresh(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.RefreshInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		pair, err := svc.Refresh(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, pair)
	}
}

// AuthLogout revokes the caller's session. It re-parses the bearer token
// to recover the jti; the Auth middleware has already validated it.
func AuthLogout(svc auth.Service, jwt config.JWTConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		claims, err := pkgAuth.ParseAccessToken(jwt, bearerToken(r))
		if err != nil || claims.ID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid token"))
			return
		}

		if err := svc.Logout(r.Context(), claims.ID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "logged_out"})
	}
}

// AdminCreateUser provisions an operator account.
func AdminCreateUser(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		var body auth.RegisterUserInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.RegisterUser(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithUserID(r.Context(), middleware.UserIDFromContext(r.Context()))
			logg.Info(ctx, "admin.user_created")
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}
