package geo

import (
	"context"
	"testing"

	pkgerrors "github.com/hellolocalo/localo-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocateIsDeterministic(t *testing.T) {
	svc := NewService()

	first, err := svc.Locate(context.Background(), "Calle Mayor 1, Madrid")
	require.NoError(t, err)

	// Same address modulo case and whitespace resolves identically.
	second, err := svc.Locate(context.Background(), "  calle mayor 1, madrid ")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	other, err := svc.Locate(context.Background(), "Gran Via 20, Madrid")
	require.NoError(t, err)
	assert.NotEqual(t, first, other)
}

func TestLocateStaysInBounds(t *testing.T) {
	svc := NewService()

	for _, address := range []string{"a", "somewhere far away", "Plaza del Sol"} {
		point, err := svc.Locate(context.Background(), address)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, point.Lat, baseLat)
		assert.LessOrEqual(t, point.Lat, baseLat+spanLat)
		assert.GreaterOrEqual(t, point.Lng, baseLng)
		assert.LessOrEqual(t, point.Lng, baseLng+spanLng)
	}
}

func TestLocateRejectsEmptyAddress(t *testing.T) {
	svc := NewService()

	_, err := svc.Locate(context.Background(), "   ")
	require.Error(t, err)
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestLocateHonorsCancelledContext(t *testing.T) {
	svc := NewService()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Locate(ctx, "Calle Mayor 1")
	require.Error(t, err)
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeDependency, appErr.Code())
}
