package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/campusreg/internal/app/models"
	"github.com/yigit/campusreg/internal/pkg/dberrors"
	"github.com/yigit/campusreg/internal/pkg/logger"
)

// Unique constraints declared by migrations/001_institutions.sql
const (
	institutionsEmailKey = "institutions_email_key"
	institutionsNameKey  = "institutions_name_key"
)

// Institution error types
var (
	// ErrDuplicateInstitutionEmail is returned when the email unique constraint fires.
	ErrDuplicateInstitutionEmail = errors.New("institution with this email already exists")
	// ErrDuplicateInstitutionName is returned when the name unique constraint fires.
	ErrDuplicateInstitutionName = errors.New("institution with this name already exists")
	// ErrStatusChanged is returned when a status write finds the row no longer in the expected status.
	ErrStatusChanged = errors.New("institution status changed concurrently")
)

var institutionColumns = []string{
	"id", "name", "email", "account_number", "address", "phone", "logo", "banner",
	"role", "is_active", "owner_user_id", "created_at", "updated_at",
}

// InstitutionRepository handles institution database operations
type InstitutionRepository struct {
	db querier
	// Use squirrel instance with placeholder format
	sb squirrel.StatementBuilderType
}

// NewInstitutionRepository creates a new InstitutionRepository
func NewInstitutionRepository(db *pgxpool.Pool) *InstitutionRepository {
	return newInstitutionRepository(db)
}

func newInstitutionRepository(db querier) *InstitutionRepository {
	return &InstitutionRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func scanInstitution(row pgx.Row) (*models.Institution, error) {
	inst := &models.Institution{}
	err := row.Scan(
		&inst.ID, &inst.Name, &inst.Email, &inst.AccountNumber, &inst.Address, &inst.Phone,
		&inst.Logo, &inst.Banner, &inst.Role, &inst.IsActive, &inst.OwnerUserID,
		&inst.CreatedAt, &inst.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return inst, nil
}

// mapUniqueViolation converts a unique constraint failure into a typed error
func mapUniqueViolation(err error) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, institutionsEmailKey):
		return ErrDuplicateInstitutionEmail
	case dberrors.IsDuplicateConstraintError(err, institutionsNameKey):
		return ErrDuplicateInstitutionName
	}
	return nil
}

// FindPage returns at most limit institutions starting at offset, in insertion order.
func (r *InstitutionRepository) FindPage(ctx context.Context, offset uint64, limit int) ([]*models.Institution, error) {
	sql, args, err := r.sb.Select(institutionColumns...).
		From("institutions").
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(limit)).
		Offset(offset).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building list institutions SQL")
		return nil, fmt.Errorf("failed to build list institutions query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list institutions query")
		return nil, fmt.Errorf("error querying institutions: %w", err)
	}
	defer rows.Close()

	institutions := []*models.Institution{}
	for rows.Next() {
		inst, err := scanInstitution(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning institution row during list")
			return nil, fmt.Errorf("error scanning institution row: %w", err)
		}
		institutions = append(institutions, inst)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating institution rows")
		return nil, fmt.Errorf("error iterating institution rows: %w", err)
	}

	return institutions, nil
}

// findOne returns the first institution matching where, or nil when none does
func (r *InstitutionRepository) findOne(ctx context.Context, where squirrel.Eq) (*models.Institution, error) {
	sql, args, err := r.sb.Select(institutionColumns...).
		From("institutions").
		Where(where).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building find institution SQL")
		return nil, fmt.Errorf("failed to build find institution query: %w", err)
	}

	inst, err := scanInstitution(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		logger.Error().Err(err).Interface("filter", where).Msg("Error scanning institution row")
		return nil, fmt.Errorf("error finding institution: %w", err)
	}

	return inst, nil
}

// FindByID retrieves an institution by ID. A missing row yields (nil, nil).
func (r *InstitutionRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Institution, error) {
	return r.findOne(ctx, squirrel.Eq{"id": id.String()})
}

// FindByEmail retrieves an institution by email. A missing row yields (nil, nil).
func (r *InstitutionRepository) FindByEmail(ctx context.Context, email string) (*models.Institution, error) {
	return r.findOne(ctx, squirrel.Eq{"email": email})
}

// FindByName retrieves an institution by name. A missing row yields (nil, nil).
func (r *InstitutionRepository) FindByName(ctx context.Context, name string) (*models.Institution, error) {
	return r.findOne(ctx, squirrel.Eq{"name": name})
}

// Insert stores a new institution and fills in its timestamps
func (r *InstitutionRepository) Insert(ctx context.Context, inst *models.Institution) error {
	sql, args, err := r.sb.Insert("institutions").
		Columns("id", "name", "email", "account_number", "address", "phone", "logo", "banner",
			"role", "is_active", "owner_user_id").
		Values(inst.ID, inst.Name, inst.Email, inst.AccountNumber, inst.Address, inst.Phone,
			inst.Logo, inst.Banner, inst.Role, inst.IsActive, inst.OwnerUserID).
		Suffix("RETURNING created_at, updated_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create institution SQL")
		return fmt.Errorf("failed to build create institution query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&inst.CreatedAt, &inst.UpdatedAt)
	if err != nil {
		if dup := mapUniqueViolation(err); dup != nil {
			return dup
		}
		logger.Error().Err(err).Msg("Error executing create institution query")
		return fmt.Errorf("error creating institution: %w", err)
	}

	return nil
}

// UpdatePartial writes the non-nil columns of patch
func (r *InstitutionRepository) UpdatePartial(ctx context.Context, id uuid.UUID, patch *models.InstitutionPatch) error {
	set := map[string]interface{}{
		"updated_at": squirrel.Expr("NOW()"),
	}
	if patch.Name != nil {
		set["name"] = *patch.Name
	}
	if patch.Email != nil {
		set["email"] = *patch.Email
	}
	if patch.AccountNumber != nil {
		set["account_number"] = *patch.AccountNumber
	}
	if patch.Address != nil {
		set["address"] = *patch.Address
	}
	if patch.Phone != nil {
		set["phone"] = *patch.Phone
	}
	if patch.Logo != nil {
		set["logo"] = *patch.Logo
	}
	if patch.Banner != nil {
		set["banner"] = *patch.Banner
	}

	sql, args, err := r.sb.Update("institutions").
		SetMap(set).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update institution SQL")
		return fmt.Errorf("failed to build update institution query: %w", err)
	}

	return r.exec(ctx, id, sql, args)
}

// UpdateStatus persists the review status of inst only while the stored
// status is still from. Otherwise it returns ErrStatusChanged.
func (r *InstitutionRepository) UpdateStatus(ctx context.Context, inst *models.Institution, from models.InstitutionStatus) error {
	err := r.updateColumn(ctx, inst, "is_active", inst.IsActive, squirrel.Eq{"is_active": from})
	if errors.Is(err, ErrNotFound) {
		return ErrStatusChanged
	}
	return err
}

// UpdateRole persists the role of inst and nothing else
func (r *InstitutionRepository) UpdateRole(ctx context.Context, inst *models.Institution) error {
	return r.updateColumn(ctx, inst, "role", inst.Role, nil)
}

func (r *InstitutionRepository) updateColumn(ctx context.Context, inst *models.Institution, column string, value interface{}, guard squirrel.Eq) error {
	where := squirrel.Eq{"id": inst.ID.String()}
	for k, v := range guard {
		where[k] = v
	}

	sql, args, err := r.sb.Update("institutions").
		Set(column, value).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(where).
		Suffix("RETURNING updated_at").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Str("column", column).Msg("Error building update institution column SQL")
		return fmt.Errorf("failed to build update institution query: %w", err)
	}

	err = r.db.QueryRow(ctx, sql, args...).Scan(&inst.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		logger.Error().Err(err).Str("institutionID", inst.ID.String()).Str("column", column).Msg("Error updating institution column")
		return fmt.Errorf("error updating institution %s: %w", column, err)
	}

	return nil
}

func (r *InstitutionRepository) exec(ctx context.Context, id uuid.UUID, sql string, args []interface{}) error {
	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if dup := mapUniqueViolation(err); dup != nil {
			return dup
		}
		logger.Error().Err(err).Str("institutionID", id.String()).Msg("Error executing update institution query")
		return fmt.Errorf("error updating institution: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		// ID did not exist
		return ErrNotFound
	}

	return nil
}
