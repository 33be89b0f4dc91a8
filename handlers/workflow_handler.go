// handlers/workflow_handler.go
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/sgcarsight/backend/models"
)

// WorkflowService is what the HTTP layer needs from the workflow wiring.
type WorkflowService interface {
	RunCars(ctx context.Context) (models.WorkflowRunResult, error)
	RunCOE(ctx context.Context) (models.WorkflowRunResult, error)
	RunDeregistrations(ctx context.Context) (models.WorkflowRunResult, error)
	RunRegenerate(ctx context.Context, month, dataType string) (models.WorkflowRunResult, error)
	RunAll(ctx context.Context) ([]models.WorkflowRunResult, []error)
}

// WorkflowHandler exposes the trigger endpoints consumed by the scheduler and
// by operators.
type WorkflowHandler struct {
	service      WorkflowService
	triggerToken string
}

func NewWorkflowHandler(service WorkflowService, triggerToken string) *WorkflowHandler {
	return &WorkflowHandler{service: service, triggerToken: triggerToken}
}

// authorized checks the bearer token on trigger requests. An unset token
// disables the endpoints rather than leaving them open.
func (h *WorkflowHandler) authorized(r *http.Request) bool {
	if h.triggerToken == "" {
		return false
	}
	auth := r.Header.Get("Authorization")
	return strings.TrimPrefix(auth, "Bearer ") == h.triggerToken
}

// TriggerAllHandler handles POST /workflows/trigger: fan out every domain
// workflow and report their run IDs.
func (h *WorkflowHandler) TriggerAllHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}
	if !h.authorized(r) {
		respondWithError(w, http.StatusUnauthorized, "Missing or invalid bearer token")
		return
	}

	results, errs := h.service.RunAll(r.Context())

	resp := models.TriggerResponse{Success: true, Message: "all workflows completed"}
	failed := 0
	for i, res := range results {
		resp.WorkflowRunIDs = append(resp.WorkflowRunIDs, res.RunID)
		if errs[i] != nil {
			failed++
		}
	}
	if failed > 0 {
		resp.Success = false
		resp.Message = fmt.Sprintf("%d of %d workflows failed", failed, len(results))
	}
	respondWithJSON(w, http.StatusOK, resp)
}

// TriggerDomainHandler handles POST /workflows/{cars|coe|deregistrations}.
func (h *WorkflowHandler) TriggerDomainHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}
	if !h.authorized(r) {
		respondWithError(w, http.StatusUnauthorized, "Missing or invalid bearer token")
		return
	}

	pathParts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	// Expected path: workflows/{domain}
	if len(pathParts) < 2 {
		respondWithError(w, http.StatusBadRequest, "Invalid path. Expected /workflows/{domain}")
		return
	}
	domain := strings.ToLower(pathParts[1])

	var result models.WorkflowRunResult
	var err error
	switch domain {
	case "cars":
		result, err = h.service.RunCars(r.Context())
	case "coe":
		result, err = h.service.RunCOE(r.Context())
	case "deregistrations":
		result, err = h.service.RunDeregistrations(r.Context())
	default:
		respondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("Unknown workflow %q. Use 'cars', 'coe', or 'deregistrations'.", domain))
		return
	}

	if err != nil {
		respondWithJSON(w, http.StatusInternalServerError, models.TriggerResponse{
			Success:        false,
			Message:        err.Error(),
			WorkflowRunIDs: []string{result.RunID},
		})
		return
	}
	respondWithJSON(w, http.StatusOK, models.TriggerResponse{
		Success:        true,
		Message:        result.Message,
		WorkflowRunIDs: []string{result.RunID},
	})
}

// RegenerateHandler handles POST /workflows/regenerate with an explicit
// (month, dataType) pair.
func (h *WorkflowHandler) RegenerateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "Only POST method is allowed")
		return
	}
	if !h.authorized(r) {
		respondWithError(w, http.StatusUnauthorized, "Missing or invalid bearer token")
		return
	}

	var req models.RegenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	defer r.Body.Close()

	if req.Month == "" || req.DataType == "" {
		respondWithError(w, http.StatusBadRequest, "Both 'month' and 'dataType' are required")
		return
	}

	result, err := h.service.RunRegenerate(r.Context(), req.Month, req.DataType)
	if err != nil {
		respondWithJSON(w, http.StatusInternalServerError, models.TriggerResponse{
			Success:        false,
			Message:        err.Error(),
			WorkflowRunIDs: []string{result.RunID},
		})
		return
	}
	respondWithJSON(w, http.StatusOK, models.TriggerResponse{
		Success:        true,
		Message:        result.Message,
		WorkflowRunIDs: []string{result.RunID},
	})
}
