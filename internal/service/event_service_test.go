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

type fakeEventStore struct {
	events map[uuid.UUID]*entity.Event
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: map[uuid.UUID]*entity.Event{}}
}

func (s *fakeEventStore) Create(_ context.Context, e *entity.Event) error {
	cp := *e
	s.events[e.ID] = &cp
	return nil
}

func (s *fakeEventStore) Update(_ context.Context, e *entity.Event) error {
	cp := *e
	s.events[e.ID] = &cp
	return nil
}

func (s *fakeEventStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Event, error) {
	e, ok := s.events[id]
	if !ok {
		return nil, nil
	}
	cp := *e
	return &cp, nil
}

func (s *fakeEventStore) List(_ context.Context, status string) ([]*entity.Event, error) {
	var out []*entity.Event
	for _, e := range s.events {
		if status == "" || e.Status == status {
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeEventStore) ListPublic(_ context.Context) ([]*entity.Event, error) {
	var out []*entity.Event
	for _, e := range s.events {
		switch e.Status {
		case constant.EventStatusUpcoming, constant.EventStatusOngoing, constant.EventStatusCompleted:
			cp := *e
			out = append(out, &cp)
		}
	}
	return out, nil
}

var eventNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func retreatRequest(startsAt, endsAt time.Time) model.UpsertEventRequest {
	return model.UpsertEventRequest{
		Title:    "Weekend Retreat",
		Type:     constant.EventTypeRetreat,
		StartsAt: startsAt,
		EndsAt:   endsAt,
		Location: "Hilltop Center",
		Capacity: 30,
	}
}

func newEventFixture(t *testing.T) (*EventService, *fakeEventStore) {
	t.Helper()
	store := newFakeEventStore()
	svc := NewEventService(store, config.NewValidator(), &fakeActivity{})
	svc.now = func() time.Time { return eventNow }
	return svc, store
}

func TestTemporalStatus(t *testing.T) {
	starts := eventNow.Add(time.Hour)
	ends := eventNow.Add(2 * time.Hour)

	assert.Equal(t, constant.EventStatusUpcoming, TemporalStatus(starts, ends, eventNow))
	assert.Equal(t, constant.EventStatusOngoing, TemporalStatus(eventNow.Add(-time.Hour), ends, eventNow))
	assert.Equal(t, constant.EventStatusCompleted, TemporalStatus(eventNow.Add(-2*time.Hour), eventNow.Add(-time.Hour), eventNow))
}

func TestEventPublishResolvesToTemporalStatus(t *testing.T) {
	svc, _ := newEventFixture(t)
	ctx := context.Background()
	actor := staffUser(constant.RoleContentManager)

	req := retreatRequest(eventNow.Add(24*time.Hour), eventNow.Add(48*time.Hour))
	req.AutoPublish = boolPtr(true)

	dto, err := svc.Create(ctx, actor, req)
	require.NoError(t, err)
	assert.Equal(t, constant.EventStatusUpcoming, dto.Status)
	assert.NotNil(t, dto.PublishedAt)

	// Publishing an event already in progress lands on ongoing.
	running := retreatRequest(eventNow.Add(-time.Hour), eventNow.Add(time.Hour))
	running.AutoPublish = boolPtr(true)
	dto, err = svc.Create(ctx, actor, running)
	require.NoError(t, err)
	assert.Equal(t, constant.EventStatusOngoing, dto.Status)
}

func TestEventCreateDefaultsToDraft(t *testing.T) {
	svc, _ := newEventFixture(t)

	dto, err := svc.Create(context.Background(), staffUser(constant.RoleAdmin), retreatRequest(eventNow.Add(time.Hour), eventNow.Add(2*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, constant.EventStatusDraft, dto.Status)
	assert.Nil(t, dto.PublishedAt)
}

func TestEventReviewerSubmissionGoesPending(t *testing.T) {
	svc, _ := newEventFixture(t)

	req := retreatRequest(eventNow.Add(time.Hour), eventNow.Add(2*time.Hour))
	req.AutoPublish = boolPtr(true)

	dto, err := svc.Create(context.Background(), staffUser(constant.RoleContentReviewer), req)
	require.NoError(t, err)
	assert.Equal(t, constant.EventStatusPendingReview, dto.Status)
}

func TestEventEditRecomputesTemporalStatus(t *testing.T) {
	svc, _ := newEventFixture(t)
	ctx := context.Background()
	actor := staffUser(constant.RoleContentManager)

	req := retreatRequest(eventNow.Add(24*time.Hour), eventNow.Add(48*time.Hour))
	req.AutoPublish = boolPtr(true)
	created, err := svc.Create(ctx, actor, req)
	require.NoError(t, err)
	require.Equal(t, constant.EventStatusUpcoming, created.Status)

	// Rescheduling into the past, with no status flags, keeps the event
	// published but moves it to completed.
	edit := retreatRequest(eventNow.Add(-48*time.Hour), eventNow.Add(-24*time.Hour))
	updated, err := svc.Update(ctx, actor, created.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, constant.EventStatusCompleted, updated.Status)
	assert.Equal(t, created.PublishedAt, updated.PublishedAt)
}

func TestEventEditKeepsDraftUntouched(t *testing.T) {
	svc, _ := newEventFixture(t)
	ctx := context.Background()
	actor := staffUser(constant.RoleContentManager)

	created, err := svc.Create(ctx, actor, retreatRequest(eventNow.Add(time.Hour), eventNow.Add(2*time.Hour)))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, actor, created.ID, retreatRequest(eventNow.Add(3*time.Hour), eventNow.Add(4*time.Hour)))
	require.NoError(t, err)
	assert.Equal(t, constant.EventStatusDraft, updated.Status)
}

func TestEventReviewApproveAndReject(t *testing.T) {
	svc, _ := newEventFixture(t)
	ctx := context.Background()
	author := staffUser(constant.RoleContentManager)
	reviewer := staffUser(constant.RoleContentReviewer)

	req := retreatRequest(eventNow.Add(24*time.Hour), eventNow.Add(48*time.Hour))
	req.Status = strPtr(constant.EventStatusPendingReview)
	created, err := svc.Create(ctx, author, req)
	require.NoError(t, err)

	dto, err := svc.Review(ctx, reviewer, created.ID, model.ReviewRequest{Approve: true})
	require.NoError(t, err)
	assert.Equal(t, constant.EventStatusUpcoming, dto.Status)
	assert.NotNil(t, dto.PublishedAt)

	// Rejection path.
	req2 := retreatRequest(eventNow.Add(24*time.Hour), eventNow.Add(48*time.Hour))
	req2.Status = strPtr(constant.EventStatusPendingReview)
	pending, err := svc.Create(ctx, author, req2)
	require.NoError(t, err)

	rejected, err := svc.Review(ctx, reviewer, pending.ID, model.ReviewRequest{Approve: false, RejectionReason: "dates clash"})
	require.NoError(t, err)
	assert.Equal(t, constant.EventStatusDraft, rejected.Status)
	require.NotNil(t, rejected.RejectionReason)
	assert.Equal(t, "dates clash", *rejected.RejectionReason)
}

func TestEventCancel(t *testing.T) {
	svc, _ := newEventFixture(t)
	ctx := context.Background()
	actor := staffUser(constant.RoleContentManager)

	req := retreatRequest(eventNow.Add(24*time.Hour), eventNow.Add(48*time.Hour))
	req.AutoPublish = boolPtr(true)
	created, err := svc.Create(ctx, actor, req)
	require.NoError(t, err)

	dto, err := svc.Cancel(ctx, actor, created.ID)
	require.NoError(t, err)
	assert.Equal(t, constant.EventStatusCancelled, dto.Status)

	// Cancelled events cannot be edited.
	_, err = svc.Update(ctx, actor, created.ID, retreatRequest(eventNow.Add(time.Hour), eventNow.Add(2*time.Hour)))
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestEventCancelGates(t *testing.T) {
	svc, _ := newEventFixture(t)
	ctx := context.Background()
	actor := staffUser(constant.RoleContentManager)

	// Completed events stay in history.
	done := retreatRequest(eventNow.Add(-48*time.Hour), eventNow.Add(-24*time.Hour))
	done.AutoPublish = boolPtr(true)
	created, err := svc.Create(ctx, actor, done)
	require.NoError(t, err)
	require.Equal(t, constant.EventStatusCompleted, created.Status)

	_, err = svc.Cancel(ctx, actor, created.ID)
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	// Reviewers cannot cancel.
	_, err = svc.Cancel(ctx, staffUser(constant.RoleContentReviewer), created.ID)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Code)
}

func TestEventValidationRejectsInvertedDates(t *testing.T) {
	svc, _ := newEventFixture(t)

	req := retreatRequest(eventNow.Add(2*time.Hour), eventNow.Add(time.Hour))

	_, err := svc.Create(context.Background(), staffUser(constant.RoleAdmin), req)
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}
