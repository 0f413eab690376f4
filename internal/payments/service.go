package payments

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hellolocalo/localo-backend/pkg/config"
	"github.com/hellolocalo/localo-backend/pkg/enums"
	pkgerrors "github.com/hellolocalo/localo-backend/pkg/errors"
	"github.com/hellolocalo/localo-backend/pkg/security"
	redislib "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

type intentStore interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
}

type intentKeyer interface {
	PaymentIntentKey(intentID string) string
	OTPKey(intentID string) string
}

// Intent is the stored state of a mocked payment.
type Intent struct {
	ID        string                    `json:"id"`
	OrderID   *string                   `json:"order_id,omitempty"`
	Amount    decimal.Decimal           `json:"amount"`
	Status    enums.PaymentIntentStatus `json:"status"`
	CreatedAt time.Time                 `json:"created_at"`
}

// CreateIntentInput starts a mocked payment.
type CreateIntentInput struct {
	OrderID *string `json:"order_id,omitempty" validate:"omitempty,uuid"`
	Amount  string  `json:"amount" validate:"required"`
}

// IntentView is the payload returned to clients. DebugOTP carries the
// challenge code that a real gateway would deliver over SMS.
type IntentView struct {
	ID       string                    `json:"id"`
	OrderID  *string                   `json:"order_id,omitempty"`
	Amount   decimal.Decimal           `json:"amount"`
	Status   enums.PaymentIntentStatus `json:"status"`
	DebugOTP string                    `json:"debug_otp,omitempty"`
}

// Service is the mocked payment gateway: an intent is created with an
// OTP challenge, and confirming with the right code settles it.
type Service interface {
	CreateIntent(ctx context.Context, input CreateIntentInput) (*IntentView, error)
	Confirm(ctx context.Context, intentID, otp string) (*IntentView, error)
	GetIntent(ctx context.Context, intentID string) (*IntentView, error)
}

type service struct {
	store intentStore
	keyer intentKeyer
	cfg   config.PaymentsConfig
	now   func() time.Time
}

// NewService builds the mocked gateway backed by Redis.
func NewService(store intentStore, keyer intentKeyer, cfg config.PaymentsConfig) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("intent store required")
	}
	if keyer == nil {
		return nil, fmt.Errorf("intent keyer required")
	}
	if cfg.IntentTTL <= 0 || cfg.OTPTTL <= 0 {
		return nil, fmt.Errorf("intent and otp ttl must be positive")
	}
	return &service{store: store, keyer: keyer, cfg: cfg, now: time.Now}, nil
}

func (s *service) CreateIntent(ctx context.Context, input CreateIntentInput) (*IntentView, error) {
	amount, err := decimal.NewFromString(input.Amount)
	if err != nil || !amount.IsPositive() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be a positive number").
			WithDetails(map[string]string{"amount": input.Amount})
	}

	intent := Intent{
		ID:        uuid.NewString(),
		OrderID:   input.OrderID,
		Amount:    amount,
		Status:    enums.PaymentIntentStatusRequiresOTP,
		CreatedAt: s.now().UTC(),
	}
	if err := s.saveIntent(ctx, intent); err != nil {
		return nil, err
	}

	otp, err := security.GenerateOTP(s.cfg.OTPDigits)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate otp")
	}
	if err := s.store.Set(ctx, s.keyer.OTPKey(intent.ID), otp, s.cfg.OTPTTL); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store otp")
	}

	view := viewFromIntent(intent)
	view.DebugOTP = otp
	return &view, nil
}

// Confirm settles the intent when the provided code matches. A wrong
// code marks the intent failed; the client must start over.
func (s *service) Confirm(ctx context.Context, intentID, otp string) (*IntentView, error) {
	intent, err := s.loadIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}
	if intent.Status != enums.PaymentIntentStatusRequiresOTP {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "intent already settled").
			WithDetails(map[string]string{"status": intent.Status.String()})
	}

	stored, err := s.store.Get(ctx, s.keyer.OTPKey(intentID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "otp expired")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load otp")
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(otp)) == 1 {
		intent.Status = enums.PaymentIntentStatusConfirmed
	} else {
		intent.Status = enums.PaymentIntentStatusFailed
	}
	if err := s.saveIntent(ctx, *intent); err != nil {
		return nil, err
	}
	if err := s.store.Del(ctx, s.keyer.OTPKey(intentID)); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear otp")
	}

	view := viewFromIntent(*intent)
	return &view, nil
}

func (s *service) GetIntent(ctx context.Context, intentID string) (*IntentView, error) {
	intent, err := s.loadIntent(ctx, intentID)
	if err != nil {
		return nil, err
	}
	view := viewFromIntent(*intent)
	return &view, nil
}

func (s *service) saveIntent(ctx context.Context, intent Intent) error {
	payload, err := json.Marshal(intent)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode intent")
	}
	if err := s.store.Set(ctx, s.keyer.PaymentIntentKey(intent.ID), payload, s.cfg.IntentTTL); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store intent")
	}
	return nil
}

func (s *service) loadIntent(ctx context.Context, intentID string) (*Intent, error) {
	raw, err := s.store.Get(ctx, s.keyer.PaymentIntentKey(intentID))
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "payment intent not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load intent")
	}

	var intent Intent
	if err := json.Unmarshal([]byte(raw), &intent); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode intent")
	}
	return &intent, nil
}

func viewFromIntent(intent Intent) IntentView {
	return IntentView{
		ID:      intent.ID,
		OrderID: intent.OrderID,
		Amount:  intent.Amount,
		Status:  intent.Status,
	}
}
