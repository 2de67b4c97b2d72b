package authz

import "issues-dashboard/internal/entities"

// IssueFormFields is the declared order of the issue form.
var IssueFormFields = []string{
	"productName",
	"serialNo",
	"leadId",
	"clientName",
	"issueDescription",
	"issueReportedDate",
	"supportTeamReceivedDate",
	"callTakenBy",
	"deviceReceivedInDallas",
	"assignedTo",
	"assignedDate",
	"targetCompletionDate",
	"rca",
	"status",
	"priority",
	"technician",
}

// FieldSet marks which issue form fields the current role may edit.
type FieldSet map[string]bool

func (s FieldSet) Editable(field string) bool { return s[field] }

// EditableFields decides the per-field edit affordances of the issue form.
// Roles without issues:update open an existing issue read-only; the add
// form is gated by issues:create.
func EditableFields(role Role, isEditing bool) FieldSet {
	set := make(FieldSet, len(IssueFormFields))

	allowed := Can(role, IssuesCreate)
	if isEditing {
		allowed = Can(role, IssuesUpdate)
	}

	for _, field := range IssueFormFields {
		set[field] = allowed
	}
	return set
}

// RoleChangeAllowed guards the user-management role select. Demoting the
// sole remaining Super Admin would leave the privileged role empty, so the
// change is refused.
func RoleChangeAllowed(users []entities.User, target entities.User, newRole string) bool {
	if target.Role != RoleNameSuperAdmin || newRole == RoleNameSuperAdmin {
		return true
	}

	superAdmins := 0
	for _, u := range users {
		if u.Role == RoleNameSuperAdmin {
			superAdmins++
		}
	}
	return superAdmins > 1
}
