package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/hellolocalo/localo-backend/api/responses"
	"github.com/hellolocalo/localo-backend/api/validators"
	"github.com/hellolocalo/localo-backend/internal/sysconfig"
	pkgerrors "github.com/hellolocalo/localo-backend/pkg/errors"
	"github.com/hellolocalo/localo-backend/pkg/logger"
)

func AdminConfigList(svc sysconfig.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "config service unavailable"))
			return
		}

		views, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"configs": views})
	}
}

func AdminConfigGet(svc sysconfig.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "config service unavailable"))
			return
		}

		key := strings.TrimSpace(chi.URLParam(r, "key"))
		if key == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "config key is required"))
			return
		}

		view, err := svc.Get(r.Context(), key)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

type setConfigRequest struct {
	Value string `json:"value" validate:"max=2000"`
}

func AdminConfigSet(svc sysconfig.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "config service unavailable"))
			return
		}

		key := strings.TrimSpace(chi.URLParam(r, "key"))
		if key == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "config key is required"))
			return
		}

		var body setConfigRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Set(r.Context(), sysconfig.SetConfigInput{Key: key, Value: body.Value})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, view)
	}
}

func AdminConfigUnset(svc sysconfig.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "config service unavailable"))
			return
		}

		key := strings.TrimSpace(chi.URLParam(r, "key"))
		if key == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "config key is required"))
			return
		}

		if err := svc.Unset(r.Context(), key); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
