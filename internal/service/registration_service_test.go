package service

import (
	"context"
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

type stubVerifier struct {
	err      error
	verified []string
}

func (v *stubVerifier) Verify(_ context.Context, email, _, purpose string) error {
	if v.err != nil {
		return v.err
	}
	v.verified = append(v.verified, email+":"+purpose)
	return nil
}

type fakeRegistrationStore struct {
	regs map[uuid.UUID]*entity.EventRegistration
}

func newFakeRegistrationStore() *fakeRegistrationStore {
	return &fakeRegistrationStore{regs: map[uuid.UUID]*entity.EventRegistration{}}
}

func (s *fakeRegistrationStore) Create(_ context.Context, reg *entity.EventRegistration) error {
	cp := *reg
	s.regs[reg.ID] = &cp
	return nil
}

func (s *fakeRegistrationStore) CountByEvent(_ context.Context, eventID uuid.UUID) (int, error) {
	count := 0
	for _, reg := range s.regs {
		if reg.EventID == eventID {
			count++
		}
	}
	return count, nil
}

func (s *fakeRegistrationStore) ExistsByEventAndEmail(_ context.Context, eventID uuid.UUID, email string) (bool, error) {
	for _, reg := range s.regs {
		if reg.EventID == eventID && reg.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeRegistrationStore) ListByEvent(_ context.Context, eventID uuid.UUID) ([]*entity.EventRegistration, error) {
	var out []*entity.EventRegistration
	for _, reg := range s.regs {
		if reg.EventID == eventID {
			cp := *reg
			out = append(out, &cp)
		}
	}
	return out, nil
}

func seedEvent(store *fakeEventStore, status string, capacity int) *entity.Event {
	e := &entity.Event{
		ID:       helper.NewUUID(),
		Title:    "Morning Sit",
		Type:     constant.EventTypeGroupMeditation,
		Status:   status,
		StartsAt: eventNow.Add(time.Hour),
		EndsAt:   eventNow.Add(2 * time.Hour),
		Capacity: capacity,
	}
	store.events[e.ID] = e
	return e
}

func registrationRequest(email string) model.CreateRegistrationRequest {
	return model.CreateRegistrationRequest{
		FullName: "Attendee Person",
		Email:    email,
		Code:     "123456",
	}
}

func newRegistrationFixture(t *testing.T) (*RegistrationService, *fakeRegistrationStore, *fakeEventStore, *stubVerifier) {
	t.Helper()
	regs := newFakeRegistrationStore()
	events := newFakeEventStore()
	otp := &stubVerifier{}
	svc := NewRegistrationService(regs, events, otp, config.NewValidator())
	svc.now = func() time.Time { return eventNow }
	return svc, regs, events, otp
}

func TestRegisterVerifiesOTPWithRegistrationPurpose(t *testing.T) {
	svc, _, events, otp := newRegistrationFixture(t)
	event := seedEvent(events, constant.EventStatusUpcoming, 0)

	dto, err := svc.Register(context.Background(), event.ID, registrationRequest("Guest@Example.com"))
	require.NoError(t, err)

	assert.Equal(t, "guest@example.com", dto.Email)
	assert.Equal(t, []string{"guest@example.com:" + constant.OTPPurposeEventRegistration}, otp.verified)
}

func TestRegisterRejectsFailedOTP(t *testing.T) {
	svc, regs, events, otp := newRegistrationFixture(t)
	event := seedEvent(events, constant.EventStatusUpcoming, 0)
	otp.err = helper.NewBadRequestError("Incorrect OTP, please try again")

	_, err := svc.Register(context.Background(), event.ID, registrationRequest("guest@example.com"))

	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Empty(t, regs.regs)
}

func TestRegisterOnlyOpenEvents(t *testing.T) {
	svc, _, events, _ := newRegistrationFixture(t)

	for _, status := range []string{
		constant.EventStatusDraft,
		constant.EventStatusPendingReview,
		constant.EventStatusCompleted,
		constant.EventStatusCancelled,
	} {
		event := seedEvent(events, status, 0)
		_, err := svc.Register(context.Background(), event.ID, registrationRequest("guest@example.com"))

		var appErr *helper.AppError
		require.ErrorAs(t, err, &appErr, status)
		assert.Equal(t, 400, appErr.Code, status)
	}

	open := seedEvent(events, constant.EventStatusOngoing, 0)
	_, err := svc.Register(context.Background(), open.ID, registrationRequest("guest@example.com"))
	assert.NoError(t, err)
}

func TestRegisterCapacityAndDuplicates(t *testing.T) {
	svc, _, events, _ := newRegistrationFixture(t)
	event := seedEvent(events, constant.EventStatusUpcoming, 2)
	ctx := context.Background()

	_, err := svc.Register(ctx, event.ID, registrationRequest("one@example.com"))
	require.NoError(t, err)

	// Duplicate registration for the same email.
	_, err = svc.Register(ctx, event.ID, registrationRequest("one@example.com"))
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "You are already registered for this event", appErr.Message)

	_, err = svc.Register(ctx, event.ID, registrationRequest("two@example.com"))
	require.NoError(t, err)

	// Capacity reached.
	_, err = svc.Register(ctx, event.ID, registrationRequest("three@example.com"))
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Event is full", appErr.Message)
}

func TestRegisterUnknownEvent(t *testing.T) {
	svc, _, _, _ := newRegistrationFixture(t)

	_, err := svc.Register(context.Background(), helper.NewUUID(), registrationRequest("guest@example.com"))

	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)
}
