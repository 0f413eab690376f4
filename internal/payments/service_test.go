package payments

import (
	"context"
	"testing"
	"time"

	"github.com/hellolocalo/localo-backend/pkg/config"
	"github.com/hellolocalo/localo-backend/pkg/enums"
	pkgerrors "github.com/hellolocalo/localo-backend/pkg/errors"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[string]string)}
}

func (m *memoryStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	switch v := value.(type) {
	case string:
		m.values[key] = v
	case []byte:
		m.values[key] = string(v)
	}
	return nil
}

func (m *memoryStore) Get(ctx context.Context, key string) (string, error) {
	value, ok := m.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return value, nil
}

func (m *memoryStore) Del(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

type testKeyer struct{}

func (testKeyer) PaymentIntentKey(intentID string) string { return "intent:" + intentID }
func (testKeyer) OTPKey(intentID string) string           { return "otp:" + intentID }

func testPaymentsConfig() config.PaymentsConfig {
	return config.PaymentsConfig{
		OTPTTL:    5 * time.Minute,
		OTPDigits: 6,
		IntentTTL: 30 * time.Minute,
	}
}

func newPaymentsService(t *testing.T, store *memoryStore) Service {
	t.Helper()
	svc, err := NewService(store, testKeyer{}, testPaymentsConfig())
	require.NoError(t, err)
	return svc
}

func TestCreateIntentRequiresOTP(t *testing.T) {
	svc := newPaymentsService(t, newMemoryStore())

	view, err := svc.CreateIntent(context.Background(), CreateIntentInput{Amount: "49.90"})
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentIntentStatusRequiresOTP, view.Status)
	assert.Len(t, view.DebugOTP, 6)
	assert.NotEmpty(t, view.ID)
}

func TestCreateIntentRejectsBadAmount(t *testing.T) {
	svc := newPaymentsService(t, newMemoryStore())

	for _, amount := range []string{"", "abc", "0", "-10"} {
		_, err := svc.CreateIntent(context.Background(), CreateIntentInput{Amount: amount})
		require.Error(t, err, amount)
		var appErr *pkgerrors.Error
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
	}
}

func TestConfirmWithCorrectOTP(t *testing.T) {
	svc := newPaymentsService(t, newMemoryStore())

	created, err := svc.CreateIntent(context.Background(), CreateIntentInput{Amount: "49.90"})
	require.NoError(t, err)

	confirmed, err := svc.Confirm(context.Background(), created.ID, created.DebugOTP)
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentIntentStatusConfirmed, confirmed.Status)
	assert.Empty(t, confirmed.DebugOTP)

	// Settled intents reject further confirmation attempts.
	_, err = svc.Confirm(context.Background(), created.ID, created.DebugOTP)
	require.Error(t, err)
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeStateConflict, appErr.Code())
}

func TestConfirmWithWrongOTPFailsIntent(t *testing.T) {
	svc := newPaymentsService(t, newMemoryStore())

	created, err := svc.CreateIntent(context.Background(), CreateIntentInput{Amount: "49.90"})
	require.NoError(t, err)

	failed, err := svc.Confirm(context.Background(), created.ID, "000000")
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentIntentStatusFailed, failed.Status)

	got, err := svc.GetIntent(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.PaymentIntentStatusFailed, got.Status)
}

func TestConfirmUnknownIntent(t *testing.T) {
	svc := newPaymentsService(t, newMemoryStore())

	_, err := svc.Confirm(context.Background(), "missing", "123456")
	require.Error(t, err)
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestConfirmExpiredOTP(t *testing.T) {
	store := newMemoryStore()
	svc := newPaymentsService(t, store)

	created, err := svc.CreateIntent(context.Background(), CreateIntentInput{Amount: "49.90"})
	require.NoError(t, err)

	require.NoError(t, store.Del(context.Background(), "otp:"+created.ID))

	_, err = svc.Confirm(context.Background(), created.ID, created.DebugOTP)
	require.Error(t, err)
	var appErr *pkgerrors.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}
