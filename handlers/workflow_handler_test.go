package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgcarsight/backend/models"
)

type stubService struct {
	failCars    bool
	regenerated []string
}

func (s *stubService) RunCars(ctx context.Context) (models.WorkflowRunResult, error) {
	if s.failCars {
		return models.WorkflowRunResult{RunID: "run-cars", Workflow: "cars"}, errors.New("ingestion failed")
	}
	return models.WorkflowRunResult{RunID: "run-cars", Workflow: "cars", Message: "ok"}, nil
}

func (s *stubService) RunCOE(ctx context.Context) (models.WorkflowRunResult, error) {
	return models.WorkflowRunResult{RunID: "run-coe", Workflow: "coe", Message: "ok"}, nil
}

func (s *stubService) RunDeregistrations(ctx context.Context) (models.WorkflowRunResult, error) {
	return models.WorkflowRunResult{RunID: "run-dereg", Workflow: "deregistrations", Message: "ok"}, nil
}

func (s *stubService) RunRegenerate(ctx context.Context, month, dataType string) (models.WorkflowRunResult, error) {
	s.regenerated = append(s.regenerated, month+"/"+dataType)
	return models.WorkflowRunResult{RunID: "run-regen", Workflow: "regenerate"}, nil
}

func (s *stubService) RunAll(ctx context.Context) ([]models.WorkflowRunResult, []error) {
	cars, carsErr := s.RunCars(ctx)
	coe, _ := s.RunCOE(ctx)
	dereg, _ := s.RunDeregistrations(ctx)
	return []models.WorkflowRunResult{cars, coe, dereg}, []error{carsErr, nil, nil}
}

func TestTriggerAllRequiresBearerToken(t *testing.T) {
	h := NewWorkflowHandler(&stubService{}, "secret")

	req := httptest.NewRequest(http.MethodPost, "/workflows/trigger", nil)
	rec := httptest.NewRecorder()
	h.TriggerAllHandler(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/workflows/trigger", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	rec = httptest.NewRecorder()
	h.TriggerAllHandler(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTriggerAllReturnsRunIDs(t *testing.T) {
	h := NewWorkflowHandler(&stubService{}, "secret")

	req := httptest.NewRequest(http.MethodPost, "/workflows/trigger", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	h.TriggerAllHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.TriggerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"run-cars", "run-coe", "run-dereg"}, resp.WorkflowRunIDs)
}

func TestTriggerAllReportsPartialFailure(t *testing.T) {
	h := NewWorkflowHandler(&stubService{failCars: true}, "secret")

	req := httptest.NewRequest(http.MethodPost, "/workflows/trigger", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	h.TriggerAllHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.TriggerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Message, "1 of 3")
	assert.Len(t, resp.WorkflowRunIDs, 3, "run IDs are reported even for failed workflows")
}

func TestTriggerDomain(t *testing.T) {
	h := NewWorkflowHandler(&stubService{}, "secret")

	req := httptest.NewRequest(http.MethodPost, "/workflows/coe", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	h.TriggerDomainHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.TriggerResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"run-coe"}, resp.WorkflowRunIDs)
}

func TestTriggerDomainUnknown(t *testing.T) {
	h := NewWorkflowHandler(&stubService{}, "secret")

	req := httptest.NewRequest(http.MethodPost, "/workflows/bicycles", nil)
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	h.TriggerDomainHandler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRegenerateValidatesBody(t *testing.T) {
	svc := &stubService{}
	h := NewWorkflowHandler(svc, "secret")

	req := httptest.NewRequest(http.MethodPost, "/workflows/regenerate", strings.NewReader(`{"month":"2024-01"}`))
	req.Header.Set("Authorization", "Bearer secret")
	rec := httptest.NewRecorder()
	h.RegenerateHandler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/workflows/regenerate",
		strings.NewReader(`{"month":"2024-01","dataType":"coe"}`))
	req.Header.Set("Authorization", "Bearer secret")
	rec = httptest.NewRecorder()
	h.RegenerateHandler(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"2024-01/coe"}, svc.regenerated)
}

func TestTriggerMethodNotAllowed(t *testing.T) {
	h := NewWorkflowHandler(&stubService{}, "secret")

	req := httptest.NewRequest(http.MethodGet, "/workflows/trigger", nil)
	rec := httptest.NewRecorder()
	h.TriggerAllHandler(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestUnsetTriggerTokenDisablesEndpoint(t *testing.T) {
	h := NewWorkflowHandler(&stubService{}, "")

	req := httptest.NewRequest(http.MethodPost, "/workflows/trigger", nil)
	req.Header.Set("Authorization", "Bearer ")
	rec := httptest.NewRecorder()
	h.TriggerAllHandler(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
