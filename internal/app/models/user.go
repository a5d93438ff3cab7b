package models

import (
	"github.com/google/uuid"
)

// User defines the user model based on the 'users' table
type User struct {
	ID            uuid.UUID  `json:"id" db:"id"`                                                   // Unique identifier for the user
	Name          string     `json:"name" db:"name" example:"Juan"`                                // First name, at most 50 characters
	Lastname      string     `json:"lastname" db:"lastname" example:"García"`                      // Last name, at most 50 characters
	Email         string     `json:"email" db:"email" example:"email@email.com"`                   // Unique email address
	DNI           *string    `json:"dni,omitempty" db:"dni" example:"12345678"`                    // National identity number (nullable)
	Address       string     `json:"address" db:"address" example:"Calle falsa 123"`               // Postal address
	Phone         string     `json:"phone" db:"phone" example:"123456789"`                         // Phone number
	ImgProfile    *string    `json:"imgProfile,omitempty" db:"img_profile"`                        // Profile image URL (nullable)
	Role          RoleType   `json:"role" db:"role" example:"student"`                             // User role, defaults to student
	IsAdmin       bool       `json:"isAdmin" db:"is_admin"`                                        // Whether the user is an administrator
	InstitutionID *uuid.UUID `json:"institutionId,omitempty" db:"institution_id"`                  // Owning institution (nullable)
}
