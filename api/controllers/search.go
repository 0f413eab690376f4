package controllers

import (
	"net/http"

	"github.com/hellolocalo/localo-backend/api/responses"
	"github.com/hellolocalo/localo-backend/api/validators"
	"github.com/hellolocalo/localo-backend/internal/intelligence"
	"github.com/hellolocalo/localo-backend/internal/vendors"
	pkgerrors "github.com/hellolocalo/localo-backend/pkg/errors"
	"github.com/hellolocalo/localo-backend/pkg/logger"
)

type aiSearchRequest struct {
	Query string   `json:"query" validate:"required,min=1,max=300"`
	Lat   *float64 `json:"lat,omitempty" validate:"omitempty,latitude"`
	Lng   *float64 `json:"lng,omitempty" validate:"omitempty,longitude"`
}

// SearchAI combines the vendor substring search with the mocked AI
// summary. The summary is supplementary; a collaborator failure degrades
// to results without prose.
func SearchAI(vendorsSvc vendors.Service, aiSvc intelligence.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if vendorsSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "vendors service unavailable"))
			return
		}

		var body aiSearchRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views, err := vendorsSvc.ListPublic(r.Context(), vendors.ListFilter{Search: body.Query})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary := ""
		if aiSvc != nil {
			text, aiErr := aiSvc.Summarize(r.Context(), body.Query, body.Lat, body.Lng)
			if aiErr != nil {
				if logg != nil {
					logg.Warn(r.Context(), "ai search degraded")
				}
			} else {
				summary = text
			}
		}

		responses.WriteSuccess(w, map[string]any{
			"summary": summary,
			"vendors": views,
		})
	}
}
