package dto

type TeamMemberDTO struct {
	Name string `json:"name" form:"name" validate:"required"`
}
