// models/result.go
package models

// UpdateResult is returned by one updater invocation. RecordsProcessed counts
// rows submitted for upsert; downstream code only branches on > 0. Skipped is
// set when the source checksum matched the cached one and no parse/upsert ran.
type UpdateResult struct {
	Dataset          string `json:"dataset"`
	Table            string `json:"table,omitempty"`
	RecordsProcessed int    `json:"recordsProcessed"`
	Checksum         string `json:"checksum,omitempty"`
	Skipped          bool   `json:"skipped,omitempty"`
}

// WorkflowRunResult summarises one orchestrator run.
type WorkflowRunResult struct {
	RunID            string `json:"runId"`
	Workflow         string `json:"workflow"`
	RecordsProcessed int    `json:"recordsProcessed"`
	Message          string `json:"message"`
}
