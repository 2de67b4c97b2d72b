package authz

// Capability names for everything the dashboard can gate.
const (
	IssuesView    = "issues:view"
	IssuesCreate  = "issues:create"
	IssuesUpdate  = "issues:update"
	IssuesDelete  = "issues:delete"
	IssuesExport  = "issues:export"
	TeamManage    = "team:manage"
	UsersView     = "users:view"
	UsersManage   = "users:manage"
	AdminNavigate = "admin:navigate"
)

// capabilities is the single role -> capability table. Every call site
// asks this table instead of comparing role names inline.
var capabilities = map[Role]map[string]bool{
	RoleSuperAdmin: {
		IssuesView:    true,
		IssuesCreate:  true,
		IssuesUpdate:  true,
		IssuesDelete:  true,
		IssuesExport:  true,
		TeamManage:    true,
		UsersView:     true,
		UsersManage:   true,
		AdminNavigate: true,
	},
	RoleAdmin: {
		IssuesView:    true,
		IssuesExport:  true,
		UsersView:     true,
		AdminNavigate: true,
	},
	RoleViewer: {
		IssuesView:   true,
		IssuesExport: true,
	},
}

func Can(role Role, capability string) bool {
	return capabilities[role][capability]
}

func CanMutateIssues(role Role) bool { return Can(role, IssuesUpdate) }

func CanViewUsers(role Role) bool { return Can(role, UsersView) }

func CanManageUsers(role Role) bool { return Can(role, UsersManage) }
