package authz

// Role is the access level decoded from the session credential. It only
// gates what the dashboard renders and submits; the upstream API stays the
// authoritative enforcement point for every call.
type Role int

const (
	RoleUnknown Role = iota
	RoleViewer
	RoleAdmin
	RoleSuperAdmin
)

const (
	RoleNameSuperAdmin = "Super Admin"
	RoleNameAdmin      = "Admin"
	RoleNameViewer     = "Viewer"
)

var RoleNames = []string{RoleNameSuperAdmin, RoleNameAdmin, RoleNameViewer}

func ParseRole(name string) Role {
	switch name {
	case RoleNameSuperAdmin:
		return RoleSuperAdmin
	case RoleNameAdmin:
		return RoleAdmin
	case RoleNameViewer:
		return RoleViewer
	default:
		return RoleUnknown
	}
}

func (r Role) String() string {
	switch r {
	case RoleSuperAdmin:
		return RoleNameSuperAdmin
	case RoleAdmin:
		return RoleNameAdmin
	case RoleViewer:
		return RoleNameViewer
	default:
		return ""
	}
}

// Known reports whether the role maps to an authenticated account.
func (r Role) Known() bool { return r != RoleUnknown }
