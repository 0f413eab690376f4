package controllers

import (
	"net/http"

	"github.com/hellolocalo/localo-backend/api/responses"
	"github.com/hellolocalo/localo-backend/api/validators"
	"github.com/hellolocalo/localo-backend/internal/geo"
	pkgerrors "github.com/hellolocalo/localo-backend/pkg/errors"
	"github.com/hellolocalo/localo-backend/pkg/logger"
)

type locateRequest struct {
	Address string `json:"address" validate:"required,min=3,max=300"`
}

// GeoLocate resolves an address with the mocked geocoder.
func GeoLocate(svc geo.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "geo service unavailable"))
			return
		}

		var body locateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		point, err := svc.Locate(r.Context(), body.Address)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, point)
	}
}
