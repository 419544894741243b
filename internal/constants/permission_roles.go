package constants

// PermissionRoles maps each permission to the roles allowed to perform it.
// Writes are admin-only; AUDITOR is read-only across all financial data;
// MEMBER reads its own data and group aggregates only.
var PermissionRoles = map[string][]string{
	RecordContribution: {RoleAdmin},
	RecordPenalty:      {RoleAdmin},
	RecordInvestment:   {RoleAdmin},
	RecordAsset:        {RoleAdmin},
	RecordBuyOut:       {RoleAdmin},
	ManageExitQueue:    {RoleAdmin},
	CreateReversal:     {RoleAdmin},
	ManageMembers:      {RoleAdmin},
	ManageWindows:      {RoleAdmin},
	ViewExitQueue:      {RoleAdmin, RoleAuditor},
	ViewOwnData:        {RoleMember},
	ViewAggregates:     {RoleMember, RoleAdmin, RoleAuditor},
}

// AllowedAnyRole returns true if any of the caller's roles is in the list of
// allowed roles for the permission.
func AllowedAnyRole(permission string, roles []string) bool {
	allowed, ok := PermissionRoles[permission]
	if !ok {
		return false
	}
	for _, have := range roles {
		for _, want := range allowed {
			if have == want {
				return true
			}
		}
	}
	return false
}
