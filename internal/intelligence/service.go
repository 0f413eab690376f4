package intelligence

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hellolocalo/localo-backend/pkg/config"
	pkgerrors "github.com/hellolocalo/localo-backend/pkg/errors"
)

// Service produces the natural-language blurb shown above free-text
// search results. The upstream model call is mocked: responses are
// assembled locally after a short artificial delay.
type Service interface {
	Summarize(ctx context.Context, query string, lat, lng *float64) (string, error)
}

type service struct {
	timeout time.Duration
	latency time.Duration
}

// Option tunes the mocked collaborator.
type Option func(*service)

// WithLatency sets the artificial round-trip delay.
func WithLatency(d time.Duration) Option {
	return func(s *service) { s.latency = d }
}

// NewService builds the mocked AI search collaborator.
func NewService(cfg config.SearchConfig, opts ...Option) (Service, error) {
	if cfg.AITimeout <= 0 {
		return nil, fmt.Errorf("ai timeout must be positive")
	}
	svc := &service{timeout: cfg.AITimeout}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

func (s *service) Summarize(ctx context.Context, query string, lat, lng *float64) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "query required")
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, ctx.Err(), "ai search timed out")
		case <-timer.C:
		}
	}

	return composeSummary(query, lat, lng), nil
}

func composeSummary(query string, lat, lng *float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Here is what we found for %q.", query)
	if lat != nil && lng != nil {
		fmt.Fprintf(&b, " Results are ranked by distance from (%.4f, %.4f).", *lat, *lng)
	} else {
		b.WriteString(" Share your location to rank results by distance.")
	}
	b.WriteString(" Compare ratings and starting prices below, then place an order directly with a vendor.")
	return b.String()
}
