package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yigit/campusreg/internal/app/models"
	"github.com/yigit/campusreg/internal/app/models/dto"
	"github.com/yigit/campusreg/internal/app/repositories"
	"github.com/yigit/campusreg/internal/pkg/apperrors"
	"github.com/yigit/campusreg/internal/pkg/email"
	"github.com/yigit/campusreg/internal/pkg/helpers"
	"github.com/yigit/campusreg/internal/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

const registeredMessage = "Institution registered successfully."

// InstitutionStore is the persistence gateway for institutions
type InstitutionStore interface {
	FindPage(ctx context.Context, offset uint64, limit int) ([]*models.Institution, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Institution, error)
	FindByEmail(ctx context.Context, email string) (*models.Institution, error)
	FindByName(ctx context.Context, name string) (*models.Institution, error)
	Insert(ctx context.Context, inst *models.Institution) error
	UpdatePartial(ctx context.Context, id uuid.UUID, patch *models.InstitutionPatch) error
	UpdateStatus(ctx context.Context, inst *models.Institution, from models.InstitutionStatus) error
	UpdateRole(ctx context.Context, inst *models.Institution) error
}

// UserLookup answers whether an email already belongs to a user
type UserLookup interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

// InstitutionService defines the institution directory operations
type InstitutionService interface {
	ListInstitutions(ctx context.Context, page, limit int) ([]*models.Institution, error)
	GetInstitutionByID(ctx context.Context, id uuid.UUID) (*models.Institution, error)
	RegisterInstitution(ctx context.Context, candidate *models.Institution) (*dto.RegisterInstitutionResponse, error)
	UpdateInstitution(ctx context.Context, id uuid.UUID, patch *models.InstitutionPatch) (*dto.UpdatedInstitutionResponse, error)
	ApproveOrDeny(ctx context.Context, id uuid.UUID, status models.InstitutionStatus) (*models.Institution, error)
	PromoteToAdmin(ctx context.Context, id uuid.UUID) (*models.Institution, error)
}

// institutionServiceImpl implements the InstitutionService interface
type institutionServiceImpl struct {
	store    InstitutionStore
	users    UserLookup
	notifier email.Notifier
	metrics  *metrics.Metrics
	logger   zerolog.Logger
}

// NewInstitutionService creates a new institution service instance
func NewInstitutionService(
	store InstitutionStore,
	users UserLookup,
	notifier email.Notifier,
	metrics *metrics.Metrics,
	logger zerolog.Logger,
) InstitutionService {
	return &institutionServiceImpl{
		store:    store,
		users:    users,
		notifier: notifier,
		metrics:  metrics,
		logger:   logger.With().Str("component", "institution_service").Logger(),
	}
}

// ListInstitutions returns one page of institutions in insertion order
func (s *institutionServiceImpl) ListInstitutions(ctx context.Context, page, limit int) ([]*models.Institution, error) {
	if page < 1 || limit < 1 {
		return nil, apperrors.NewInvalidRequestError("page and limit must be positive")
	}
	if uint64(page-1) > math.MaxInt64/uint64(limit) {
		return nil, apperrors.NewInvalidRequestError("page is out of range")
	}

	institutions, err := s.store.FindPage(ctx, helpers.Offset(page, limit), limit)
	if err != nil {
		return nil, s.internal("list", err)
	}
	if institutions == nil {
		return nil, apperrors.NewInvalidRequestError("no institutions created")
	}

	return institutions, nil
}

// GetInstitutionByID retrieves an institution or fails with NotFound
func (s *institutionServiceImpl) GetInstitutionByID(ctx context.Context, id uuid.UUID) (*models.Institution, error) {
	inst, err := s.load(ctx, id)
	if err != nil {
		return nil, s.internal("get", err)
	}
	return inst, nil
}

// RegisterInstitution signs up a new institution in pending status
func (s *institutionServiceImpl) RegisterInstitution(ctx context.Context, candidate *models.Institution) (*dto.RegisterInstitutionResponse, error) {
	defer s.metrics.ObserveRegister(time.Now())

	if candidate == nil {
		return nil, apperrors.NewInvalidRequestError("institution data is required")
	}

	conflicts, err := s.findConflicts(ctx, candidate.Email, candidate.Name)
	if err != nil {
		return nil, s.internal("register", err)
	}
	if len(conflicts) > 0 {
		return nil, apperrors.NewConflictError("conflicts with the provided data", conflicts...)
	}

	inst := *candidate
	inst.ID = uuid.New()
	inst.Role = models.RoleInstitution
	inst.IsActive = models.InstitutionPending
	inst.OwnerUserID = nil

	if err := s.store.Insert(ctx, &inst); err != nil {
		return nil, s.internal("register", mapStoreError(err))
	}

	stored, err := s.store.FindByID(ctx, inst.ID)
	if err != nil {
		return nil, s.internal("register", err)
	}
	if stored == nil {
		return nil, apperrors.NewInvalidRequestError("institution could not be registered")
	}

	response := &dto.RegisterInstitutionResponse{
		Message:             registeredMessage,
		InstitutionResponse: dto.FromInstitution(stored),
	}

	notice := email.SubmissionNotice{Name: stored.Name, Email: stored.Email}
	if err := s.notifier.SendSubmissionReceived(ctx, notice); err != nil {
		return nil, s.internal("register", err)
	}

	s.metrics.IncrementRegistered()
	s.logger.Info().Str("institutionID", stored.ID.String()).Msg("Institution registered")

	return response, nil
}

// findConflicts runs the three uniqueness lookups concurrently and reports
// one entry per match in the order institution email, name, user email.
func (s *institutionServiceImpl) findConflicts(ctx context.Context, emailAddr, name string) ([]apperrors.ConflictField, error) {
	var (
		byEmail *models.Institution
		byName  *models.Institution
		user    *models.User
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		byEmail, err = s.store.FindByEmail(gctx, emailAddr)
		return err
	})
	g.Go(func() error {
		var err error
		byName, err = s.store.FindByName(gctx, name)
		return err
	})
	g.Go(func() error {
		var err error
		user, err = s.users.FindByEmail(gctx, emailAddr)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var conflicts []apperrors.ConflictField
	if byEmail != nil {
		conflicts = append(conflicts, apperrors.ConflictField{Field: "Email"})
	}
	if byName != nil {
		conflicts = append(conflicts, apperrors.ConflictField{Field: "Name"})
	}
	if user != nil {
		conflicts = append(conflicts, apperrors.ConflictField{Field: "Email"})
	}
	return conflicts, nil
}

// UpdateInstitution applies patch and returns the stored record without its role
func (s *institutionServiceImpl) UpdateInstitution(ctx context.Context, id uuid.UUID, patch *models.InstitutionPatch) (*dto.UpdatedInstitutionResponse, error) {
	if id == uuid.Nil || patch == nil || patch.IsEmpty() {
		return nil, apperrors.NewInvalidRequestError("institution id and changes are required")
	}

	// The institutions_email_key constraint only covers institutions
	if patch.Email != nil {
		user, err := s.users.FindByEmail(ctx, *patch.Email)
		if err != nil {
			return nil, s.internal("update", err)
		}
		if user != nil {
			return nil, apperrors.NewConflictError("conflicts with the provided data",
				apperrors.ConflictField{Field: "Email"})
		}
	}

	if err := s.store.UpdatePartial(ctx, id, patch); err != nil {
		return nil, s.internal("update", mapStoreError(err))
	}

	inst, err := s.load(ctx, id)
	if err != nil {
		return nil, s.internal("update", err)
	}

	response := dto.FromUpdatedInstitution(inst)
	return &response, nil
}

// ApproveOrDeny records an administrator's review decision and notifies the institution
func (s *institutionServiceImpl) ApproveOrDeny(ctx context.Context, id uuid.UUID, status models.InstitutionStatus) (*models.Institution, error) {
	if !status.IsReviewDecision() {
		return nil, apperrors.NewInvalidRequestError("status must be approved or denied")
	}

	inst, err := s.load(ctx, id)
	if err != nil {
		return nil, s.internal("review", err)
	}

	if !inst.IsActive.CanTransitionTo(status) {
		return nil, apperrors.NewConflictError("institution has already been reviewed",
			apperrors.ConflictField{Field: "isActive"})
	}

	// Claim the transition first so concurrent reviewers cannot both notify
	inst.IsActive = status
	if err := s.store.UpdateStatus(ctx, inst, models.InstitutionPending); err != nil {
		return nil, s.internal("review", mapStoreError(err))
	}

	if status == models.InstitutionApproved {
		err = s.notifier.SendApprovalNotice(ctx, inst)
	} else {
		err = s.notifier.SendRejectionNotice(ctx, inst)
	}
	if err != nil {
		s.revertReview(ctx, inst, status)
		return nil, s.internal("review", err)
	}

	s.metrics.IncrementReview(string(status))
	s.logger.Info().
		Str("institutionID", inst.ID.String()).
		Str("status", string(status)).
		Msg("Institution reviewed")

	return inst, nil
}

// revertReview puts a claimed institution back to pending after the
// notification could not be delivered, so the review can be retried.
func (s *institutionServiceImpl) revertReview(ctx context.Context, inst *models.Institution, claimed models.InstitutionStatus) {
	inst.IsActive = models.InstitutionPending
	if err := s.store.UpdateStatus(ctx, inst, claimed); err != nil {
		s.logger.Error().Err(err).
			Str("institutionID", inst.ID.String()).
			Str("status", string(claimed)).
			Msg("Failed to revert review after notification failure")
	}
}

// PromoteToAdmin grants the administrator role, touching only the role column
func (s *institutionServiceImpl) PromoteToAdmin(ctx context.Context, id uuid.UUID) (*models.Institution, error) {
	inst, err := s.load(ctx, id)
	if err != nil {
		return nil, s.internal("promote", err)
	}

	inst.Role = models.RoleAdmin
	if err := s.store.UpdateRole(ctx, inst); err != nil {
		return nil, s.internal("promote", mapStoreError(err))
	}

	s.metrics.IncrementPromotion()
	s.logger.Info().Str("institutionID", inst.ID.String()).Msg("Institution promoted to admin")

	return inst, nil
}

// load fetches an institution, turning a missing row into NotFound
func (s *institutionServiceImpl) load(ctx context.Context, id uuid.UUID) (*models.Institution, error) {
	inst, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if inst == nil {
		return nil, apperrors.NewNotFoundError("institution not found")
	}
	return inst, nil
}

// internal passes domain errors through and collapses everything else into
// a generic internal error, logging the cause.
func (s *institutionServiceImpl) internal(op string, err error) error {
	if apperrors.IsDomain(err) {
		return err
	}
	s.logger.Error().Err(err).Str("operation", op).Msg("Institution operation failed")
	return apperrors.NewInternalError("an unexpected error occurred", err)
}

// mapStoreError translates repository sentinels into directory error kinds
func mapStoreError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return apperrors.NewNotFoundError("institution not found")
	case errors.Is(err, repositories.ErrStatusChanged):
		return apperrors.NewConflictError("institution has already been reviewed", apperrors.ConflictField{Field: "isActive"})
	case errors.Is(err, repositories.ErrDuplicateInstitutionEmail):
		return apperrors.NewConflictError("conflicts with the provided data", apperrors.ConflictField{Field: "Email"})
	case errors.Is(err, repositories.ErrDuplicateInstitutionName):
		return apperrors.NewConflictError("conflicts with the provided data", apperrors.ConflictField{Field: "Name"})
	}
	return err
}
