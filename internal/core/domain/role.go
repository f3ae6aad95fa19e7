package domain

// Role is the coarse permission class attached to a user. The wire format is
// the numeric role_id claim; only the treasury value grants back-office
// access, every other value maps to the restricted branch-manager role.
type Role int

const (
	RoleBranchManager Role = 1
	RoleTreasury      Role = 2
)

// RoleFromID maps a raw role_id to a Role. Unknown values fall back to
// RoleBranchManager, never to an elevated role.
func RoleFromID(id int) Role {
	if id == int(RoleTreasury) {
		return RoleTreasury
	}
	return RoleBranchManager
}

func (r Role) String() string {
	switch r {
	case RoleTreasury:
		return "treasury"
	default:
		return "branch_manager"
	}
}
