package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	dup := &pgconn.PgError{Code: "23505", ConstraintName: "institutions_email_key"}

	assert.True(t, IsDuplicateConstraintError(dup, "institutions_email_key"))
	assert.True(t, IsDuplicateConstraintError(fmt.Errorf("insert: %w", dup), "institutions_email_key"))
	assert.False(t, IsDuplicateConstraintError(dup, "institutions_name_key"))

	fk := &pgconn.PgError{Code: "23503", ConstraintName: "institutions_email_key"}
	assert.False(t, IsDuplicateConstraintError(fk, "institutions_email_key"))
	assert.False(t, IsDuplicateConstraintError(errors.New("23505"), "institutions_email_key"))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "40001"}))
	assert.False(t, IsUniqueViolation(nil))
}
