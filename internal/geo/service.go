package geo

import (
	"context"
	"hash/fnv"
	"strings"

	pkgerrors "github.com/hellolocalo/localo-backend/pkg/errors"
)

// Coordinates is a resolved point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Service is the mocked geolocation collaborator. Lookups are
// deterministic: the same address always resolves to the same point, so
// demo data stays stable across restarts.
type Service interface {
	Locate(ctx context.Context, address string) (*Coordinates, error)
}

type service struct{}

// NewService builds the mocked geocoder.
func NewService() Service {
	return &service{}
}

// Bounding box the mock scatters results across, roughly metro Madrid.
const (
	baseLat = 40.30
	baseLng = -3.85
	spanLat = 0.25
	spanLng = 0.30
)

func (s *service) Locate(ctx context.Context, address string) (*Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "geolocation unavailable")
	}

	address = strings.TrimSpace(strings.ToLower(address))
	if address == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "address required")
	}

	h := fnv.New64a()
	h.Write([]byte(address))
	sum := h.Sum64()

	latUnit := float64(sum&0xFFFFFFFF) / float64(0xFFFFFFFF)
	lngUnit := float64(sum>>32) / float64(0xFFFFFFFF)

	return &Coordinates{
		Lat: baseLat + latUnit*spanLat,
		Lng: baseLng + lngUnit*spanLng,
	}, nil
}
