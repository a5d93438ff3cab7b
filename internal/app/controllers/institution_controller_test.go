package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campusreg/internal/app/models"
	"github.com/yigit/campusreg/internal/app/models/dto"
	"github.com/yigit/campusreg/internal/pkg/apperrors"
)

// stubService records the arguments it receives and returns canned results
type stubService struct {
	page, limit int
	candidate   *models.Institution
	patch       *models.InstitutionPatch
	status      models.InstitutionStatus
	id          uuid.UUID
	err         error
}

func (s *stubService) ListInstitutions(_ context.Context, page, limit int) ([]*models.Institution, error) {
	s.page, s.limit = page, limit
	if s.err != nil {
		return nil, s.err
	}
	return []*models.Institution{{ID: uuid.New(), Name: "Acme Univ"}}, nil
}

func (s *stubService) GetInstitutionByID(_ context.Context, id uuid.UUID) (*models.Institution, error) {
	s.id = id
	if s.err != nil {
		return nil, s.err
	}
	return &models.Institution{ID: id, Name: "Acme Univ"}, nil
}

func (s *stubService) RegisterInstitution(_ context.Context, candidate *models.Institution) (*dto.RegisterInstitutionResponse, error) {
	s.candidate = candidate
	if s.err != nil {
		return nil, s.err
	}
	inst := *candidate
	inst.ID = uuid.New()
	inst.IsActive = models.InstitutionPending
	return &dto.RegisterInstitutionResponse{
		Message:             "Institution registered successfully.",
		InstitutionResponse: dto.FromInstitution(&inst),
	}, nil
}

func (s *stubService) UpdateInstitution(_ context.Context, id uuid.UUID, patch *models.InstitutionPatch) (*dto.UpdatedInstitutionResponse, error) {
	s.id, s.patch = id, patch
	if s.err != nil {
		return nil, s.err
	}
	inst := &models.Institution{ID: id}
	if patch.Address != nil {
		inst.Address = *patch.Address
	}
	resp := dto.FromUpdatedInstitution(inst)
	return &resp, nil
}

func (s *stubService) ApproveOrDeny(_ context.Context, id uuid.UUID, status models.InstitutionStatus) (*models.Institution, error) {
	s.id, s.status = id, status
	if s.err != nil {
		return nil, s.err
	}
	return &models.Institution{ID: id, IsActive: status}, nil
}

func (s *stubService) PromoteToAdmin(_ context.Context, id uuid.UUID) (*models.Institution, error) {
	s.id = id
	if s.err != nil {
		return nil, s.err
	}
	return &models.Institution{ID: id, Role: models.RoleAdmin}, nil
}

func newTestRouter(svc *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	c := NewInstitutionController(svc)

	r := gin.New()
	r.GET("/institutions", c.ListInstitutions)
	r.GET("/institutions/:id", c.GetInstitutionByID)
	r.POST("/institutions", c.RegisterInstitution)
	r.PUT("/institutions/:id", c.UpdateInstitution)
	r.PUT("/institutions/:id/review", c.ReviewInstitution)
	r.PUT("/institutions/:id/promote", c.PromoteInstitution)
	return r
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func validSignUp() map[string]any {
	return map[string]any{
		"name":          "Acme Univ",
		"email":         "a@acme.edu",
		"accountNumber": "123",
		"address":       "1 Main St",
		"phone":         "5551234",
	}
}

func TestRegisterInstitution(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc := &stubService{}
		rec := do(newTestRouter(svc), http.MethodPost, "/institutions", validSignUp())

		require.Equal(t, http.StatusCreated, rec.Code)
		require.NotNil(t, svc.candidate)
		assert.Equal(t, "a@acme.edu", svc.candidate.Email)

		var body struct {
			Success bool `json:"success"`
			Data    struct {
				Message             string         `json:"message"`
				InstitutionResponse map[string]any `json:"institutionResponse"`
			} `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "pending", body.Data.InstitutionResponse["isActive"])
		assert.NotContains(t, body.Data.InstitutionResponse, "role")
	})

	t.Run("client supplied role is rejected before the directory runs", func(t *testing.T) {
		svc := &stubService{}
		payload := validSignUp()
		payload["role"] = "admin"

		rec := do(newTestRouter(svc), http.MethodPost, "/institutions", payload)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), `"field":"role"`)
		assert.Nil(t, svc.candidate)
	})

	t.Run("malformed json", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/institutions", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		newTestRouter(&stubService{}).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("conflict lists fields", func(t *testing.T) {
		svc := &stubService{err: apperrors.NewConflictError("conflicts with the provided data",
			apperrors.ConflictField{Field: "Email"}, apperrors.ConflictField{Field: "Name"})}

		rec := do(newTestRouter(svc), http.MethodPost, "/institutions", validSignUp())
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), `"details":[{"field":"Email"},{"field":"Name"}]`)
	})
}

func TestListInstitutions(t *testing.T) {
	svc := &stubService{}
	rec := do(newTestRouter(svc), http.MethodGet, "/institutions?page=2&limit=5", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, svc.page)
	assert.Equal(t, 5, svc.limit)
	assert.Contains(t, rec.Body.String(), `"pagination":{"page":2,"limit":5,"count":1}`)

	rec = do(newTestRouter(&stubService{}), http.MethodGet, "/institutions?page=x", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetInstitutionByID(t *testing.T) {
	id := uuid.New()

	svc := &stubService{}
	rec := do(newTestRouter(svc), http.MethodGet, "/institutions/"+id.String(), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, svc.id)

	rec = do(newTestRouter(&stubService{}), http.MethodGet, "/institutions/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(newTestRouter(&stubService{err: apperrors.NewNotFoundError("institution not found")}),
		http.MethodGet, "/institutions/"+id.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateInstitution(t *testing.T) {
	id := uuid.New()

	svc := &stubService{}
	rec := do(newTestRouter(svc), http.MethodPut, "/institutions/"+id.String(), map[string]any{"address": "2 Side St"})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.patch)
	assert.Equal(t, "2 Side St", *svc.patch.Address)
	assert.Nil(t, svc.patch.Name)
	assert.NotContains(t, rec.Body.String(), `"role"`)

	rec = do(newTestRouter(&stubService{}), http.MethodPut, "/institutions/"+id.String(), map[string]any{"phone": "12ab"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReviewInstitution(t *testing.T) {
	id := uuid.New()

	svc := &stubService{}
	rec := do(newTestRouter(svc), http.MethodPut, "/institutions/"+id.String()+"/review", map[string]any{"status": "approved"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.InstitutionApproved, svc.status)

	rec = do(newTestRouter(&stubService{}), http.MethodPut, "/institutions/"+id.String()+"/review", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(newTestRouter(&stubService{err: apperrors.NewInvalidRequestError("status must be approved or denied")}),
		http.MethodPut, "/institutions/"+id.String()+"/review", map[string]any{"status": "banned"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPromoteInstitution(t *testing.T) {
	id := uuid.New()

	svc := &stubService{}
	rec := do(newTestRouter(svc), http.MethodPut, "/institutions/"+id.String()+"/promote", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, svc.id)
	assert.Contains(t, rec.Body.String(), `"role":"admin"`)
}
