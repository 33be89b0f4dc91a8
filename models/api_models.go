// models/api_models.go
package models

// TriggerResponse is the JSON body returned by the workflow trigger endpoints.
type TriggerResponse struct {
	Success        bool     `json:"success"`
	Message        string   `json:"message"`
	WorkflowRunIDs []string `json:"workflowRunIds"`
}

// RegenerateRequest is the expected JSON body for POST /workflows/regenerate.
type RegenerateRequest struct {
	Month    string `json:"month"`    // "YYYY-MM"
	DataType string `json:"dataType"` // "cars", "coe", "deregistrations"
}
