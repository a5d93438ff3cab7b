package models

// RoleType defines the role carried by users and institutions
type RoleType string

const (
	RoleStudent     RoleType = "student"
	RoleInstitution RoleType = "institution"
	RoleAdmin       RoleType = "admin"
)

// InstitutionStatus is the review state of an institution
type InstitutionStatus string

const (
	InstitutionPending  InstitutionStatus = "pending"
	InstitutionApproved InstitutionStatus = "approved"
	InstitutionDenied   InstitutionStatus = "denied"
)

// IsReviewDecision reports whether s is a status an administrator may set.
func (s InstitutionStatus) IsReviewDecision() bool {
	return s == InstitutionApproved || s == InstitutionDenied
}

// CanTransitionTo reports whether the review workflow allows moving from s to next.
// Approved and denied are terminal.
func (s InstitutionStatus) CanTransitionTo(next InstitutionStatus) bool {
	return s == InstitutionPending && next.IsReviewDecision()
}
