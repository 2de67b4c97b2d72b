package dto

type CreateUserDTO struct {
	Name     string `json:"name" form:"name" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required,min=6"`
	Role     string `json:"role" form:"role" validate:"required,oneof='Super Admin' 'Admin' 'Viewer'"`
	Access   string `json:"access" form:"access" validate:"required,oneof='Full' 'View Only'"`
}

// UpdateUserDTO: an empty password means "keep unchanged" and is stripped
// before the patch is sent upstream.
type UpdateUserDTO struct {
	Name     string `json:"name" form:"name" validate:"omitempty"`
	Email    string `json:"email" form:"email" validate:"omitempty,email"`
	Username string `json:"username" form:"username" validate:"omitempty"`
	Password string `json:"password,omitempty" form:"password" validate:"omitempty,min=6"`
	Role     string `json:"role" form:"role" validate:"omitempty,oneof='Super Admin' 'Admin' 'Viewer'"`
	Access   string `json:"access" form:"access" validate:"omitempty,oneof='Full' 'View Only'"`
}

type UpdateRoleDTO struct {
	Role string `json:"role" form:"role" validate:"required,oneof='Super Admin' 'Admin' 'Viewer'"`
}
