// Package authz is the single authority on role capabilities. Handlers and
// services consult these predicates instead of comparing role strings inline.
package authz

import "SereneCMSAPI/internal/constant"

func CanAutoPublish(role string) bool {
	return role == constant.RoleAdmin || role == constant.RoleContentManager
}

func CanReview(role string) bool {
	return role == constant.RoleAdmin || role == constant.RoleContentReviewer
}

func CanDelete(role string) bool {
	return role == constant.RoleAdmin
}

// CanManageContent gates archive/cancel and other editorial actions that sit
// outside the review queue.
func CanManageContent(role string) bool {
	return role == constant.RoleAdmin || role == constant.RoleContentManager
}

func IsStaff(role string) bool {
	for _, r := range constant.StaffRoles {
		if role == r {
			return true
		}
	}
	return false
}
