package services

import (
	"net/http"

	"go.uber.org/zap"

	"issues-dashboard/internal/authz"
	"issues-dashboard/internal/entities"
	apperrors "issues-dashboard/pkg/errors"
)

// UserRow is one line of the user-management table.
type UserRow struct {
	User entities.User
	// RoleLocked disables the role select for the sole remaining
	// Super Admin account.
	RoleLocked   bool
	LastActivity string
}

// RoleCard is one of the per-role summary cards.
type RoleCard struct {
	Role     string
	Accounts int
}

type UserViewServiceInterface interface {
	BuildRows(users []entities.User, selectedRole string) []UserRow
	SummaryCards(summary entities.RoleSummary) []RoleCard
	GuardRoleChange(users []entities.User, targetID, newRole string) error
}

type userViewService struct {
	logger *zap.Logger
}

func NewUserViewService(logger *zap.Logger) UserViewServiceInterface {
	return &userViewService{logger: logger}
}

func (s *userViewService) BuildRows(users []entities.User, selectedRole string) []UserRow {
	superAdmins := 0
	for _, u := range users {
		if u.Role == authz.RoleNameSuperAdmin {
			superAdmins++
		}
	}

	rows := make([]UserRow, 0, len(users))
	for _, u := range users {
		if selectedRole != "" && u.Role != selectedRole {
			continue
		}
		last := ""
		if t, ok := entities.ParseAPIDate(u.LastActivity.String); ok {
			last = t.Format("02/01/2006")
		}
		rows = append(rows, UserRow{
			User:         u,
			RoleLocked:   u.Role == authz.RoleNameSuperAdmin && superAdmins == 1,
			LastActivity: last,
		})
	}
	return rows
}

// SummaryCards keeps the fixed role order regardless of which roles the
// summary endpoint happens to return.
func (s *userViewService) SummaryCards(summary entities.RoleSummary) []RoleCard {
	cards := make([]RoleCard, 0, len(authz.RoleNames))
	for _, role := range authz.RoleNames {
		cards = append(cards, RoleCard{Role: role, Accounts: summary[role]})
	}
	return cards
}

// GuardRoleChange refuses a change that would leave the Super Admin role
// empty. The upstream API is expected to enforce the same invariant; the
// guard keeps the dashboard from even issuing the call.
func (s *userViewService) GuardRoleChange(users []entities.User, targetID, newRole string) error {
	for _, u := range users {
		if u.ID != targetID {
			continue
		}
		if !authz.RoleChangeAllowed(users, u, newRole) {
			s.logger.Warn("refused demotion of the last Super Admin",
				zap.String("userID", targetID),
				zap.String("newRole", newRole),
			)
			return apperrors.NewHttpError(http.StatusConflict,
				"At least one Super Admin account must remain", nil, nil)
		}
		return nil
	}
	return apperrors.NewHttpError(http.StatusNotFound, "User not found", nil,
		map[string]interface{}{"userID": targetID})
}
