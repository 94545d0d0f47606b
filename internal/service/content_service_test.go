package service

import (
	"context"
	"encoding/json"
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

type fakeActivity struct {
	actions []string
}

func (f *fakeActivity) Record(_ context.Context, _ *uuid.UUID, action, _ string, _ *uuid.UUID, _ string) {
	f.actions = append(f.actions, action)
}

type fakeContentStore struct {
	contents map[uuid.UUID]*entity.Content
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{contents: map[uuid.UUID]*entity.Content{}}
}

func (s *fakeContentStore) Create(_ context.Context, c *entity.Content) error {
	cp := *c
	s.contents[c.ID] = &cp
	return nil
}

func (s *fakeContentStore) Update(_ context.Context, c *entity.Content) error {
	cp := *c
	s.contents[c.ID] = &cp
	return nil
}

func (s *fakeContentStore) FindByID(_ context.Context, id uuid.UUID) (*entity.Content, error) {
	c, ok := s.contents[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (s *fakeContentStore) FindPublishedBySlug(_ context.Context, slug string) (*entity.Content, error) {
	for _, c := range s.contents {
		if c.Slug == slug && c.Status == constant.ContentStatusPublished {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeContentStore) SlugExists(_ context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	for _, c := range s.contents {
		if c.Slug == slug && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeContentStore) List(_ context.Context, status string) ([]*entity.Content, error) {
	var out []*entity.Content
	for _, c := range s.contents {
		if status == "" || c.Status == status {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeContentStore) ListPublished(_ context.Context) ([]*entity.Content, error) {
	return s.List(context.Background(), constant.ContentStatusPublished)
}

func staffUser(role string) model.UserDTO {
	return model.UserDTO{ID: helper.NewUUID(), Email: role + "@example.com", Role: role}
}

func articleRequest(title string) model.UpsertContentRequest {
	return model.UpsertContentRequest{
		Title: title,
		Type:  constant.ContentTypeArticle,
		Body:  json.RawMessage(`{"markdown":"# Hello"}`),
	}
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func newContentFixture(t *testing.T) (*ContentService, *fakeContentStore, *fakeActivity) {
	t.Helper()
	store := newFakeContentStore()
	activity := &fakeActivity{}
	svc := NewContentService(store, config.NewValidator(), activity)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc, store, activity
}

func TestContentCreateDefaultsToDraft(t *testing.T) {
	svc, _, activity := newContentFixture(t)

	dto, err := svc.Create(context.Background(), staffUser(constant.RoleContentManager), articleRequest("My First Article"))
	require.NoError(t, err)

	assert.Equal(t, constant.ContentStatusDraft, dto.Status)
	assert.Nil(t, dto.PublishedAt)
	assert.Equal(t, "my-first-article", dto.Slug)
	assert.Equal(t, []string{"content.create"}, activity.actions)
}

func TestContentCreateAutoPublishByRole(t *testing.T) {
	cases := []struct {
		role string
		want string
	}{
		{constant.RoleAdmin, constant.ContentStatusPublished},
		{constant.RoleContentManager, constant.ContentStatusPublished},
		{constant.RoleContentReviewer, constant.ContentStatusPendingReview},
	}

	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			svc, _, _ := newContentFixture(t)

			req := articleRequest("Title Here")
			req.AutoPublish = boolPtr(true)

			dto, err := svc.Create(context.Background(), staffUser(tc.role), req)
			require.NoError(t, err)
			assert.Equal(t, tc.want, dto.Status)

			if tc.want == constant.ContentStatusPublished {
				assert.NotNil(t, dto.PublishedAt)
			} else {
				assert.Nil(t, dto.PublishedAt)
			}
		})
	}
}

func TestContentCreateExplicitDraftBeatsAutoPublish(t *testing.T) {
	svc, _, _ := newContentFixture(t)

	req := articleRequest("Saved For Later")
	req.Status = strPtr(constant.ContentStatusDraft)
	req.AutoPublish = boolPtr(true)

	dto, err := svc.Create(context.Background(), staffUser(constant.RoleAdmin), req)
	require.NoError(t, err)
	assert.Equal(t, constant.ContentStatusDraft, dto.Status)
}

func TestContentCreateSubmitWithoutAutoPublish(t *testing.T) {
	svc, _, _ := newContentFixture(t)

	req := articleRequest("Needs Review")
	req.Status = strPtr(constant.ContentStatusPendingReview)

	dto, err := svc.Create(context.Background(), staffUser(constant.RoleContentManager), req)
	require.NoError(t, err)
	assert.Equal(t, constant.ContentStatusPendingReview, dto.Status)
}

func TestContentCreateRejectsNonStaff(t *testing.T) {
	svc, _, _ := newContentFixture(t)

	_, err := svc.Create(context.Background(), staffUser(constant.RoleMember), articleRequest("Nope"))

	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Code)
}

func TestContentCreateRejectsBodyMismatch(t *testing.T) {
	svc, _, _ := newContentFixture(t)

	req := model.UpsertContentRequest{
		Title: "A Video Without A URL",
		Type:  constant.ContentTypeVideo,
		Body:  json.RawMessage(`{"markdown":"wrong shape"}`),
	}

	_, err := svc.Create(context.Background(), staffUser(constant.RoleAdmin), req)

	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
}

func TestContentSlugCollisionGetsSuffix(t *testing.T) {
	svc, _, _ := newContentFixture(t)
	ctx := context.Background()
	actor := staffUser(constant.RoleContentManager)

	first, err := svc.Create(ctx, actor, articleRequest("Same Title"))
	require.NoError(t, err)
	second, err := svc.Create(ctx, actor, articleRequest("Same Title"))
	require.NoError(t, err)
	third, err := svc.Create(ctx, actor, articleRequest("Same Title"))
	require.NoError(t, err)

	assert.Equal(t, "same-title", first.Slug)
	assert.Equal(t, "same-title-2", second.Slug)
	assert.Equal(t, "same-title-3", third.Slug)
}

func TestContentUpdateWithoutFlagsKeepsStatus(t *testing.T) {
	svc, _, _ := newContentFixture(t)
	ctx := context.Background()
	actor := staffUser(constant.RoleContentManager)

	req := articleRequest("Live Piece")
	req.AutoPublish = boolPtr(true)
	created, err := svc.Create(ctx, actor, req)
	require.NoError(t, err)
	require.Equal(t, constant.ContentStatusPublished, created.Status)

	edit := articleRequest("Live Piece")
	edit.Body = json.RawMessage(`{"markdown":"# Edited"}`)

	updated, err := svc.Update(ctx, actor, created.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, constant.ContentStatusPublished, updated.Status)
	assert.Equal(t, created.PublishedAt, updated.PublishedAt)
}

func TestContentRepublishPreservesPublishedAt(t *testing.T) {
	svc, _, _ := newContentFixture(t)
	ctx := context.Background()
	actor := staffUser(constant.RoleAdmin)

	req := articleRequest("Evergreen")
	req.AutoPublish = boolPtr(true)
	created, err := svc.Create(ctx, actor, req)
	require.NoError(t, err)
	firstPublish := created.PublishedAt

	svc.now = func() time.Time { return time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC) }

	edit := articleRequest("Evergreen")
	edit.AutoPublish = boolPtr(true)
	updated, err := svc.Update(ctx, actor, created.ID, edit)
	require.NoError(t, err)

	assert.Equal(t, firstPublish, updated.PublishedAt)
}

func TestContentUpdateRegeneratesSlugOnTitleChange(t *testing.T) {
	svc, _, _ := newContentFixture(t)
	ctx := context.Background()
	actor := staffUser(constant.RoleContentManager)

	created, err := svc.Create(ctx, actor, articleRequest("Original Title"))
	require.NoError(t, err)

	edit := articleRequest("Renamed Title")
	updated, err := svc.Update(ctx, actor, created.ID, edit)
	require.NoError(t, err)
	assert.Equal(t, "renamed-title", updated.Slug)

	// Same title keeps the slug stable.
	again, err := svc.Update(ctx, actor, created.ID, articleRequest("Renamed Title"))
	require.NoError(t, err)
	assert.Equal(t, "renamed-title", again.Slug)
}

func TestContentReviewApprove(t *testing.T) {
	svc, store, activity := newContentFixture(t)
	ctx := context.Background()
	author := staffUser(constant.RoleContentManager)
	reviewer := staffUser(constant.RoleContentReviewer)

	req := articleRequest("Pending Piece")
	req.Status = strPtr(constant.ContentStatusPendingReview)
	created, err := svc.Create(ctx, author, req)
	require.NoError(t, err)

	dto, err := svc.Review(ctx, reviewer, created.ID, model.ReviewRequest{Approve: true})
	require.NoError(t, err)

	assert.Equal(t, constant.ContentStatusPublished, dto.Status)
	assert.NotNil(t, dto.PublishedAt)
	assert.Equal(t, &reviewer.ID, dto.ReviewedBy)
	assert.Nil(t, store.contents[created.ID].RejectionReason)
	assert.Contains(t, activity.actions, "content.approve")
}

func TestContentReviewRejectRequiresReason(t *testing.T) {
	svc, _, _ := newContentFixture(t)
	ctx := context.Background()
	author := staffUser(constant.RoleContentManager)
	reviewer := staffUser(constant.RoleAdmin)

	req := articleRequest("Pending Piece")
	req.Status = strPtr(constant.ContentStatusPendingReview)
	created, err := svc.Create(ctx, author, req)
	require.NoError(t, err)

	_, err = svc.Review(ctx, reviewer, created.ID, model.ReviewRequest{Approve: false, RejectionReason: "  "})
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)

	dto, err := svc.Review(ctx, reviewer, created.ID, model.ReviewRequest{Approve: false, RejectionReason: "needs sources"})
	require.NoError(t, err)
	assert.Equal(t, constant.ContentStatusDraft, dto.Status)
	require.NotNil(t, dto.RejectionReason)
	assert.Equal(t, "needs sources", *dto.RejectionReason)
}

func TestContentReviewGates(t *testing.T) {
	svc, _, _ := newContentFixture(t)
	ctx := context.Background()
	author := staffUser(constant.RoleContentManager)

	req := articleRequest("Pending Piece")
	req.Status = strPtr(constant.ContentStatusPendingReview)
	created, err := svc.Create(ctx, author, req)
	require.NoError(t, err)

	// A content manager cannot review.
	_, err = svc.Review(ctx, author, created.ID, model.ReviewRequest{Approve: true})
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Code)

	// Reviewing anything not pending is a bad request.
	draft, err := svc.Create(ctx, author, articleRequest("Just A Draft"))
	require.NoError(t, err)
	_, err = svc.Review(ctx, staffUser(constant.RoleContentReviewer), draft.ID, model.ReviewRequest{Approve: true})
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "Content is not pending review", appErr.Message)
}

func TestContentArchivePreservesPublishedAt(t *testing.T) {
	svc, _, _ := newContentFixture(t)
	ctx := context.Background()
	actor := staffUser(constant.RoleContentManager)

	req := articleRequest("Old News")
	req.AutoPublish = boolPtr(true)
	created, err := svc.Create(ctx, actor, req)
	require.NoError(t, err)

	dto, err := svc.Archive(ctx, actor, created.ID)
	require.NoError(t, err)
	assert.Equal(t, constant.ContentStatusArchived, dto.Status)
	assert.Equal(t, created.PublishedAt, dto.PublishedAt)

	// Reviewers cannot archive.
	_, err = svc.Archive(ctx, staffUser(constant.RoleContentReviewer), created.ID)
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 403, appErr.Code)
}

func TestContentPublicLookupOnlySeesPublished(t *testing.T) {
	svc, _, _ := newContentFixture(t)
	ctx := context.Background()
	actor := staffUser(constant.RoleContentManager)

	draft, err := svc.Create(ctx, actor, articleRequest("Hidden Draft"))
	require.NoError(t, err)

	_, err = svc.GetPublishedBySlug(ctx, draft.Slug)
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.Code)

	req := articleRequest("Visible Piece")
	req.AutoPublish = boolPtr(true)
	published, err := svc.Create(ctx, actor, req)
	require.NoError(t, err)

	got, err := svc.GetPublishedBySlug(ctx, published.Slug)
	require.NoError(t, err)
	assert.Equal(t, published.ID, got.ID)
}
