package dto

type LoginDTO struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type RegisterDTO struct {
	Username        string `json:"username" form:"username" validate:"required"`
	Password        string `json:"password" form:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"-" form:"confirm_password" validate:"required,eqfield=Password"`
}

type ForgotPasswordDTO struct {
	Email string `json:"email" form:"email" validate:"required,email"`
}

// LoginResponseDTO is the upstream reply to a successful login.
type LoginResponseDTO struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}
