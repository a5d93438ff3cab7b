package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/yigit/campusreg/internal/app/models"
	"github.com/yigit/campusreg/internal/app/repositories"
	"github.com/yigit/campusreg/internal/pkg/email"
)

// fakeStore is an in-memory InstitutionStore that keeps insertion order
type fakeStore struct {
	mu    sync.Mutex
	order []uuid.UUID
	rows  map[uuid.UUID]models.Institution

	nilPage     bool
	findErr     error
	insertErr   error
	updateErr   error
	statusErr   error
	roleErr     error
	dropInserts bool

	statusWrites int
	roleWrites   int

	// beforeStatusWrite runs inside UpdateStatus before the status is compared
	beforeStatusWrite func(row *models.Institution)
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[uuid.UUID]models.Institution{}}
}

func (f *fakeStore) seed(inst models.Institution) *models.Institution {
	f.mu.Lock()
	defer f.mu.Unlock()
	if inst.ID == uuid.Nil {
		inst.ID = uuid.New()
	}
	if inst.Role == "" {
		inst.Role = models.RoleInstitution
	}
	if inst.IsActive == "" {
		inst.IsActive = models.InstitutionPending
	}
	inst.CreatedAt = time.Now().UTC()
	inst.UpdatedAt = inst.CreatedAt
	f.rows[inst.ID] = inst
	f.order = append(f.order, inst.ID)
	return &inst
}

func (f *fakeStore) get(id uuid.UUID) models.Institution {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[id]
}

func (f *fakeStore) FindPage(_ context.Context, offset uint64, limit int) ([]*models.Institution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	if f.nilPage {
		return nil, nil
	}
	out := []*models.Institution{}
	for i := int(offset); i < len(f.order) && len(out) < limit; i++ {
		inst := f.rows[f.order[i]]
		out = append(out, &inst)
	}
	return out, nil
}

func (f *fakeStore) FindByID(_ context.Context, id uuid.UUID) (*models.Institution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	inst, ok := f.rows[id]
	if !ok {
		return nil, nil
	}
	return &inst, nil
}

func (f *fakeStore) findBy(match func(models.Institution) bool) (*models.Institution, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, id := range f.order {
		if inst := f.rows[id]; match(inst) {
			return &inst, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindByEmail(_ context.Context, addr string) (*models.Institution, error) {
	return f.findBy(func(i models.Institution) bool { return i.Email == addr })
}

func (f *fakeStore) FindByName(_ context.Context, name string) (*models.Institution, error) {
	return f.findBy(func(i models.Institution) bool { return i.Name == name })
}

func (f *fakeStore) Insert(_ context.Context, inst *models.Institution) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	inst.CreatedAt = time.Now().UTC()
	inst.UpdatedAt = inst.CreatedAt
	if f.dropInserts {
		return nil
	}
	f.rows[inst.ID] = *inst
	f.order = append(f.order, inst.ID)
	return nil
}

func (f *fakeStore) UpdatePartial(_ context.Context, id uuid.UUID, patch *models.InstitutionPatch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	inst, ok := f.rows[id]
	if !ok {
		return repositories.ErrNotFound
	}
	applyPatch(patch, &inst)
	f.rows[id] = inst
	return nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, inst *models.Institution, from models.InstitutionStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusErr != nil {
		return f.statusErr
	}
	row, ok := f.rows[inst.ID]
	if !ok {
		return repositories.ErrStatusChanged
	}
	if f.beforeStatusWrite != nil {
		f.beforeStatusWrite(&row)
		f.rows[inst.ID] = row
	}
	if row.IsActive != from {
		return repositories.ErrStatusChanged
	}
	row.IsActive = inst.IsActive
	f.rows[inst.ID] = row
	f.statusWrites++
	return nil
}

func (f *fakeStore) UpdateRole(_ context.Context, inst *models.Institution) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.roleErr != nil {
		return f.roleErr
	}
	row, ok := f.rows[inst.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	row.Role = inst.Role
	f.rows[inst.ID] = row
	f.roleWrites++
	return nil
}

func applyPatch(p *models.InstitutionPatch, inst *models.Institution) {
	if p.Name != nil {
		inst.Name = *p.Name
	}
	if p.Email != nil {
		inst.Email = *p.Email
	}
	if p.AccountNumber != nil {
		inst.AccountNumber = *p.AccountNumber
	}
	if p.Address != nil {
		inst.Address = *p.Address
	}
	if p.Phone != nil {
		inst.Phone = *p.Phone
	}
	if p.Logo != nil {
		inst.Logo = p.Logo
	}
	if p.Banner != nil {
		inst.Banner = p.Banner
	}
}

// fakeUsers answers user email lookups from a fixed set
type fakeUsers struct {
	emails map[string]bool
	err    error
}

func (f *fakeUsers) FindByEmail(_ context.Context, addr string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if !f.emails[addr] {
		return nil, nil
	}
	return &models.User{ID: uuid.New(), Email: addr, Role: models.RoleStudent}, nil
}

// fakeNotifier records every notification
type fakeNotifier struct {
	mu          sync.Mutex
	submissions []email.SubmissionNotice
	approvals   []*models.Institution
	rejections  []*models.Institution
	err         error
}

func (f *fakeNotifier) SendSubmissionReceived(_ context.Context, notice email.SubmissionNotice) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.submissions = append(f.submissions, notice)
	return nil
}

func (f *fakeNotifier) SendApprovalNotice(_ context.Context, inst *models.Institution) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.approvals = append(f.approvals, inst)
	return nil
}

func (f *fakeNotifier) SendRejectionNotice(_ context.Context, inst *models.Institution) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.rejections = append(f.rejections, inst)
	return nil
}

func (f *fakeNotifier) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.submissions) + len(f.approvals) + len(f.rejections)
}
