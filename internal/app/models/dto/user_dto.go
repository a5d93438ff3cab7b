package dto

import "github.com/yigit/campusreg/internal/pkg/validation"

// CreateUserRequest represents user creation data
type CreateUserRequest struct {
	Name       string  `json:"name" validate:"required,min=3,max=50" example:"Juan"`
	Lastname   string  `json:"lastname" validate:"required,min=3,max=50" example:"García"`
	Email      string  `json:"email" validate:"required" example:"email@email.com"`
	DNI        *string `json:"dni,omitempty" validate:"omitempty,min=7,max=8" example:"12345678"`
	ImgProfile *string `json:"imgProfile,omitempty" validate:"omitempty,min=3,max=130"`
	Role       string  `json:"role,omitempty" validate:"isdefault" swaggerignore:"true"`
}

// Validate checks the request against the user creation rules
func (r *CreateUserRequest) Validate() []validation.FieldError {
	return validation.Struct(r)
}
