package constant

const (
	RoleAdmin           = "admin"
	RoleContentManager  = "content_manager"
	RoleContentReviewer = "content_reviewer"
	RoleMember          = "member"
)

var StaffRoles = []string{
	RoleAdmin,
	RoleContentManager,
	RoleContentReviewer,
}
