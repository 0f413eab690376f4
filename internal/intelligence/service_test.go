package intelligence

import (
	"context"
	"testing"
	"time"

	"github.com/hellolocalo/localo-backend/pkg/config"
	pkgerrors "github.com/hellolocalo/localo-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeIncludesQueryAndLocation(t *testing.T) {
	svc, err := NewService(config.SearchConfig{AITimeout: time.Second})
	require.NoError(t, err)

	lat, lng := 40.4168, -3.7038
	text, err := svc.Summarize(context.Background(), "fix my boiler", &lat, &lng)
	require.NoError(t, err)
	assert.Contains(t, text, `"fix my boiler"`)
	assert.Contains(t, text, "40.4168")

	text, err = svc.Summarize(context.Background(), "fix my boiler", nil, nil)
	require.NoError(t, err)
	assert.Contains(t, text, "Share your location")
}

func TestSummarizeRejectsEmptyQuery(t *testing.T) {
	svc, err := NewService(config.SearchConfig{AITimeout: time.Second})
	require.NoError(t, err)

	_, err = svc.Summarize(context.Background(), "   ", nil, nil)
	require.Error(t, err)
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestSummarizeTimesOut(t *testing.T) {
	svc, err := NewService(
		config.SearchConfig{AITimeout: 10 * time.Millisecond},
		WithLatency(time.Second),
	)
	require.NoError(t, err)

	_, err = svc.Summarize(context.Background(), "plumber", nil, nil)
	require.Error(t, err)
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeDependency, appErr.Code())
}
