package constants

// Closed role enumeration. MEMBER is the base participant role and must be
// present on every member.
const (
	RoleMember  = "MEMBER"
	RoleAdmin   = "ADMIN"
	RoleAuditor = "AUDITOR"
)

// ValidRoles is the set of allowed values for the member roles column.
var ValidRoles = []string{RoleMember, RoleAdmin, RoleAuditor}

// IsValidRole returns true if role is one of the allowed enum values.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}
