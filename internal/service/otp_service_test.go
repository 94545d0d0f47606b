package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"SereneCMSAPI/internal/config"
	"SereneCMSAPI/internal/constant"
	"SereneCMSAPI/internal/entity"
	"SereneCMSAPI/internal/helper"
	"SereneCMSAPI/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOTPStore struct {
	records map[uuid.UUID]*entity.OTP
}

func newFakeOTPStore() *fakeOTPStore {
	return &fakeOTPStore{records: map[uuid.UUID]*entity.OTP{}}
}

func (s *fakeOTPStore) DeleteByEmailPurpose(_ context.Context, email, purpose string) error {
	for id, o := range s.records {
		if o.Email == email && o.Purpose == purpose {
			delete(s.records, id)
		}
	}
	return nil
}

func (s *fakeOTPStore) Create(_ context.Context, o *entity.OTP) error {
	cp := *o
	s.records[o.ID] = &cp
	return nil
}

func (s *fakeOTPStore) FindActive(_ context.Context, email, purpose string, now time.Time) (*entity.OTP, error) {
	var newest *entity.OTP
	for _, o := range s.records {
		if o.Email != email || o.Purpose != purpose || o.ConsumedAt != nil || !o.ExpiresAt.After(now) {
			continue
		}
		if newest == nil || o.CreatedAt.After(newest.CreatedAt) {
			newest = o
		}
	}
	if newest == nil {
		return nil, nil
	}
	cp := *newest
	return &cp, nil
}

func (s *fakeOTPStore) IncrementAttempts(_ context.Context, id uuid.UUID) (int, error) {
	o, ok := s.records[id]
	if !ok {
		return 0, errors.New("not found")
	}
	o.Attempts++
	return o.Attempts, nil
}

func (s *fakeOTPStore) Consume(_ context.Context, id uuid.UUID, maxAttempts int, now time.Time) (bool, error) {
	o, ok := s.records[id]
	if !ok || o.ConsumedAt != nil || o.Attempts >= maxAttempts {
		return false, nil
	}
	o.ConsumedAt = &now
	o.Attempts++
	return true, nil
}

func (s *fakeOTPStore) activeFor(email, purpose string) *entity.OTP {
	var newest *entity.OTP
	for _, o := range s.records {
		if o.Email != email || o.Purpose != purpose {
			continue
		}
		if newest == nil || o.CreatedAt.After(newest.CreatedAt) {
			newest = o
		}
	}
	return newest
}

type fakeMailer struct {
	sent []string
	err  error
}

func (m *fakeMailer) Send(to, _, _, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, to)
	return nil
}

func newOTPFixture(t *testing.T) (*OTPService, *fakeOTPStore, *fakeMailer) {
	t.Helper()

	store := newFakeOTPStore()
	mail := &fakeMailer{}
	cfg := &config.AppConfig{
		OTPExp:         600,
		OTPMaxAttempts: 5,
		EmailAsync:     false,
	}

	svc := NewOTPService(store, cfg, config.NewValidator(), mail, nil)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, store, mail
}

func TestOTPSendReplacesPriorCode(t *testing.T) {
	svc, store, mail := newOTPFixture(t)
	ctx := context.Background()

	req := model.SendOTPRequest{Email: "Someone@Example.com", Purpose: constant.OTPPurposeSignup}
	require.NoError(t, svc.Send(ctx, req))

	first := store.activeFor("someone@example.com", constant.OTPPurposeSignup)
	require.NotNil(t, first)
	assert.Len(t, first.Code, 6)
	assert.Equal(t, []string{"someone@example.com"}, mail.sent)

	require.NoError(t, svc.Send(ctx, req))

	assert.Len(t, store.records, 1, "a resend must leave exactly one active code")
	second := store.activeFor("someone@example.com", constant.OTPPurposeSignup)
	require.NotNil(t, second)
	assert.NotEqual(t, first.ID, second.ID)

	// The first code is gone entirely, not just superseded.
	_, stillThere := store.records[first.ID]
	assert.False(t, stillThere)
}

func TestOTPSendKeepsCodeWhenEmailFails(t *testing.T) {
	svc, store, mail := newOTPFixture(t)
	mail.err = errors.New("smtp down")

	err := svc.Send(context.Background(), model.SendOTPRequest{
		Email:   "someone@example.com",
		Purpose: constant.OTPPurposeSignup,
	})

	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 503, appErr.Code)

	record := store.activeFor("someone@example.com", constant.OTPPurposeSignup)
	require.NotNil(t, record, "the persisted code must survive a delivery failure")

	// And it still verifies.
	mail.err = nil
	assert.NoError(t, svc.Verify(context.Background(), "someone@example.com", record.Code, constant.OTPPurposeSignup))
}

func TestOTPSendRejectsUnknownPurpose(t *testing.T) {
	svc, _, _ := newOTPFixture(t)

	err := svc.Send(context.Background(), model.SendOTPRequest{
		Email:   "someone@example.com",
		Purpose: "password_reset",
	})

	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestOTPVerifySuccessConsumesAndCounts(t *testing.T) {
	svc, store, _ := newOTPFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Send(ctx, model.SendOTPRequest{Email: "a@b.com", Purpose: constant.OTPPurposeSignup}))
	record := store.activeFor("a@b.com", constant.OTPPurposeSignup)

	require.NoError(t, svc.Verify(ctx, "a@b.com", record.Code, constant.OTPPurposeSignup))

	stored := store.records[record.ID]
	assert.NotNil(t, stored.ConsumedAt)
	assert.Equal(t, 1, stored.Attempts, "a successful check still counts as an attempt")

	// Replaying the same code must fail.
	err := svc.Verify(ctx, "a@b.com", record.Code, constant.OTPPurposeSignup)
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "OTP is invalid or has expired", appErr.Message)
}

func TestOTPVerifyWrongCodeThenLockout(t *testing.T) {
	svc, store, _ := newOTPFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Send(ctx, model.SendOTPRequest{Email: "a@b.com", Purpose: constant.OTPPurposeSignup}))
	record := store.activeFor("a@b.com", constant.OTPPurposeSignup)

	wrong := "000000"
	if record.Code == wrong {
		wrong = "000001"
	}

	for i := 0; i < 5; i++ {
		err := svc.Verify(ctx, "a@b.com", wrong, constant.OTPPurposeSignup)
		var appErr *helper.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "Incorrect OTP, please try again", appErr.Message)
	}

	// Sixth attempt, even with the correct code, is locked out.
	err := svc.Verify(ctx, "a@b.com", record.Code, constant.OTPPurposeSignup)
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Too many invalid attempts. Please request a new code", appErr.Message)
	assert.Nil(t, store.records[record.ID].ConsumedAt)
}

func TestOTPVerifyExpiredCode(t *testing.T) {
	svc, store, _ := newOTPFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Send(ctx, model.SendOTPRequest{Email: "a@b.com", Purpose: constant.OTPPurposeSignup}))
	record := store.activeFor("a@b.com", constant.OTPPurposeSignup)

	svc.now = func() time.Time { return record.ExpiresAt.Add(time.Second) }

	err := svc.Verify(ctx, "a@b.com", record.Code, constant.OTPPurposeSignup)
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "OTP is invalid or has expired", appErr.Message)
}

func TestOTPVerifyPurposeIsolation(t *testing.T) {
	svc, store, _ := newOTPFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Send(ctx, model.SendOTPRequest{Email: "a@b.com", Purpose: constant.OTPPurposeSignup}))
	record := store.activeFor("a@b.com", constant.OTPPurposeSignup)

	err := svc.Verify(ctx, "a@b.com", record.Code, constant.OTPPurposeEventRegistration)
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "OTP is invalid or has expired", appErr.Message)

	// The signup purpose still works afterwards.
	assert.NoError(t, svc.Verify(ctx, "a@b.com", record.Code, constant.OTPPurposeSignup))
}

func TestOTPVerifyNormalizesEmailAndCode(t *testing.T) {
	svc, store, _ := newOTPFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Send(ctx, model.SendOTPRequest{Email: "Mixed@Case.com", Purpose: constant.OTPPurposeSignup}))
	record := store.activeFor("mixed@case.com", constant.OTPPurposeSignup)

	assert.NoError(t, svc.Verify(ctx, "  MIXED@case.COM ", " "+record.Code+" ", constant.OTPPurposeSignup))
}
