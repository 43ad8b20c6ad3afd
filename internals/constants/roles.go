package constants

// Roles carried in the JWT `role` claim.
const (
	RoleAdmin   = "admin"
	RoleStaff   = "staff"
	RoleAgent   = "agent"
	RoleStudent = "student"
)

// StaffRoles are the roles allowed on the /staff route group.
var StaffRoles = []string{RoleAdmin, RoleStaff}
