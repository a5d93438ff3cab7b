package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/yigit/campusreg/internal/app/models"
	"github.com/yigit/campusreg/internal/pkg/validation"
)

// CreateInstitutionRequest represents institution sign-up data
type CreateInstitutionRequest struct {
	Name          string  `json:"name" validate:"required,min=3,max=80" example:"Acme University"`
	Email         string  `json:"email" validate:"required,email" example:"admin@acme.edu"`
	AccountNumber string  `json:"accountNumber" validate:"required,min=3,max=80" example:"0012345678"`
	Address       string  `json:"address" validate:"required,min=3,max=80" example:"1 Main St"`
	Phone         string  `json:"phone" validate:"required,min=3,max=15,digits" example:"5551234"`
	Logo          *string `json:"logo,omitempty"`
	Banner        *string `json:"banner,omitempty"`
	// Role is never accepted from clients
	Role string `json:"role,omitempty" validate:"isdefault" swaggerignore:"true"`
}

// Validate checks the request against the sign-up rules
func (r *CreateInstitutionRequest) Validate() []validation.FieldError {
	return validation.Struct(r)
}

// ToModel converts the request into a candidate institution. Role and status
// are left for the directory to assign.
func (r *CreateInstitutionRequest) ToModel() *models.Institution {
	return &models.Institution{
		Name:          r.Name,
		Email:         r.Email,
		AccountNumber: r.AccountNumber,
		Address:       r.Address,
		Phone:         r.Phone,
		Logo:          r.Logo,
		Banner:        r.Banner,
	}
}

// UpdateInstitutionRequest represents a partial institution update
type UpdateInstitutionRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=3,max=80"`
	Email         *string `json:"email,omitempty" validate:"omitempty,email"`
	AccountNumber *string `json:"accountNumber,omitempty" validate:"omitempty,min=3,max=80"`
	Address       *string `json:"address,omitempty" validate:"omitempty,min=3,max=80"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,min=3,max=15,digits"`
	Logo          *string `json:"logo,omitempty"`
	Banner        *string `json:"banner,omitempty"`
	Role          *string `json:"role,omitempty" validate:"isdefault" swaggerignore:"true"`
}

// Validate checks the request against the update rules
func (r *UpdateInstitutionRequest) Validate() []validation.FieldError {
	return validation.Struct(r)
}

// ToPatch converts the request into a store patch
func (r *UpdateInstitutionRequest) ToPatch() *models.InstitutionPatch {
	return &models.InstitutionPatch{
		Name:          r.Name,
		Email:         r.Email,
		AccountNumber: r.AccountNumber,
		Address:       r.Address,
		Phone:         r.Phone,
		Logo:          r.Logo,
		Banner:        r.Banner,
	}
}

// ReviewInstitutionRequest carries an administrator's review decision
type ReviewInstitutionRequest struct {
	Status string `json:"status" validate:"required" example:"approved" enums:"approved,denied"`
}

// Validate checks that a status was supplied
func (r *ReviewInstitutionRequest) Validate() []validation.FieldError {
	return validation.Struct(r)
}

// InstitutionResponse is the sanitized view of an institution: role and owner
// reference are internal and never echoed to callers.
type InstitutionResponse struct {
	ID            uuid.UUID                `json:"id"`
	Name          string                   `json:"name"`
	Email         string                   `json:"email"`
	AccountNumber string                   `json:"accountNumber"`
	Address       string                   `json:"address"`
	Phone         string                   `json:"phone"`
	Logo          *string                  `json:"logo,omitempty"`
	Banner        *string                  `json:"banner,omitempty"`
	IsActive      models.InstitutionStatus `json:"isActive"`
	CreatedAt     time.Time                `json:"createdAt"`
	UpdatedAt     time.Time                `json:"updatedAt"`
}

// FromInstitution builds the sanitized view of inst
func FromInstitution(inst *models.Institution) InstitutionResponse {
	return InstitutionResponse{
		ID:            inst.ID,
		Name:          inst.Name,
		Email:         inst.Email,
		AccountNumber: inst.AccountNumber,
		Address:       inst.Address,
		Phone:         inst.Phone,
		Logo:          inst.Logo,
		Banner:        inst.Banner,
		IsActive:      inst.IsActive,
		CreatedAt:     inst.CreatedAt,
		UpdatedAt:     inst.UpdatedAt,
	}
}

// UpdatedInstitutionResponse is returned by updates; only the role is withheld
type UpdatedInstitutionResponse struct {
	InstitutionResponse
	OwnerUserID *uuid.UUID `json:"ownerUserId,omitempty"`
}

// FromUpdatedInstitution builds the update view of inst
func FromUpdatedInstitution(inst *models.Institution) UpdatedInstitutionResponse {
	return UpdatedInstitutionResponse{
		InstitutionResponse: FromInstitution(inst),
		OwnerUserID:         inst.OwnerUserID,
	}
}

// RegisterInstitutionResponse is the sign-up success envelope
type RegisterInstitutionResponse struct {
	Message             string              `json:"message" example:"Institution registered successfully."`
	InstitutionResponse InstitutionResponse `json:"institutionResponse"`
}
