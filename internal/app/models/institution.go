package models

import (
	"time"

	"github.com/google/uuid"
)

// Institution defines the institution model based on the 'institutions' table
type Institution struct {
	ID            uuid.UUID         `json:"id" db:"id" example:"3f0b8a52-6c1e-4c55-9c39-4f3a1f0e8e2b"`
	Name          string            `json:"name" db:"name" example:"Acme University"`
	Email         string            `json:"email" db:"email" example:"admin@acme.edu"`
	AccountNumber string            `json:"accountNumber" db:"account_number" example:"0012345678"`
	Address       string            `json:"address" db:"address" example:"1 Main St"`
	Phone         string            `json:"phone" db:"phone" example:"5551234"`
	Logo          *string           `json:"logo,omitempty" db:"logo"`
	Banner        *string           `json:"banner,omitempty" db:"banner"`
	Role          RoleType          `json:"role" db:"role" example:"institution"`
	IsActive      InstitutionStatus `json:"isActive" db:"is_active" example:"pending"`
	OwnerUserID   *uuid.UUID        `json:"ownerUserId,omitempty" db:"owner_user_id"` // owning user, no live relation
	CreatedAt     time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time         `json:"updatedAt" db:"updated_at"`
}

// InstitutionPatch holds the client-mutable columns of an institution.
// Nil fields are left untouched. Role and review status are not patchable.
type InstitutionPatch struct {
	Name          *string
	Email         *string
	AccountNumber *string
	Address       *string
	Phone         *string
	Logo          *string
	Banner        *string
}

// IsEmpty reports whether the patch changes nothing
func (p *InstitutionPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.AccountNumber == nil && p.Address == nil &&
		p.Phone == nil && p.Logo == nil && p.Banner == nil
}
