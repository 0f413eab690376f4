package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-5))
	assert.Equal(t, 10, NormalizeLimit(10))
	assert.Equal(t, MaxLimit, NormalizeLimit(MaxLimit+50))
	assert.Equal(t, 11, LimitWithBuffer(10))
}

func TestCursorRoundTrip(t *testing.T) {
	want := Cursor{
		Timestamp: time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC),
		ID:        uuid.New(),
	}

	encoded := EncodeCursor(want)
	got, err := ParseCursor(encoded)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, want.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, want.ID, got.ID)
}

func TestParseCursorEmpty(t *testing.T) {
	got, err := ParseCursor("   ")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestParseCursorInvalid(t *testing.T) {
	_, err := ParseCursor("not-base64!!")
	assert.Error(t, err)

	_, err = ParseCursor("bm8tcGlwZQ") // decodes without the separator
	assert.Error(t, err)
}
