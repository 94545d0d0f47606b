package authz

import (
	"testing"

	"SereneCMSAPI/internal/constant"

	"github.com/stretchr/testify/assert"
)

func TestCanAutoPublish(t *testing.T) {
	assert.True(t, CanAutoPublish(constant.RoleAdmin))
	assert.True(t, CanAutoPublish(constant.RoleContentManager))
	assert.False(t, CanAutoPublish(constant.RoleContentReviewer))
	assert.False(t, CanAutoPublish(constant.RoleMember))
	assert.False(t, CanAutoPublish(""))
}

func TestCanReview(t *testing.T) {
	assert.True(t, CanReview(constant.RoleAdmin))
	assert.True(t, CanReview(constant.RoleContentReviewer))
	assert.False(t, CanReview(constant.RoleContentManager))
	assert.False(t, CanReview(constant.RoleMember))
}

func TestCanDelete(t *testing.T) {
	assert.True(t, CanDelete(constant.RoleAdmin))
	assert.False(t, CanDelete(constant.RoleContentManager))
	assert.False(t, CanDelete(constant.RoleContentReviewer))
	assert.False(t, CanDelete(constant.RoleMember))
}

func TestIsStaff(t *testing.T) {
	assert.True(t, IsStaff(constant.RoleAdmin))
	assert.True(t, IsStaff(constant.RoleContentManager))
	assert.True(t, IsStaff(constant.RoleContentReviewer))
	assert.False(t, IsStaff(constant.RoleMember))
	assert.False(t, IsStaff("moderator"))
}
