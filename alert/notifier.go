// alert/notifier.go
package alert

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

// stackLimit bounds how much of an error chain is forwarded to the webhook.
const stackLimit = 1000

// Notifier delivers workflow-failure alerts to a Discord webhook. Delivery is
// strictly best-effort: alerting must never cause a secondary failure, so
// every error path here ends in a log line.
type Notifier struct {
	webhookURL string
	httpClient *http.Client
}

func NewNotifier(webhookURL string) *Notifier {
	return &Notifier{webhookURL: webhookURL, httpClient: &http.Client{Timeout: 15 * time.Second}}
}

// NotifyFailure reports a failed workflow run. The payload carries the error
// type, the root cause, and the (truncated) full error chain.
func (n *Notifier) NotifyFailure(workflow, runID string, failure error) {
	if n.webhookURL == "" {
		log.Println("WARN Alert: no webhook configured, failure alert not sent.")
		return
	}

	chain := failure.Error()
	if len(chain) > stackLimit {
		chain = chain[:stackLimit] + "…"
	}

	payload := map[string]any{
		"embeds": []map[string]any{{
			"title": fmt.Sprintf("Workflow failed: %s", workflow),
			"color": 15158332, // red
			"fields": []map[string]any{
				{"name": "Run ID", "value": runID},
				{"name": "Error type", "value": fmt.Sprintf("%T", failure)},
				{"name": "Cause", "value": rootCause(failure).Error()},
				{"name": "Detail", "value": chain},
			},
		}},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("ERROR Alert: failed to marshal alert payload: %v\n", err)
		return
	}

	resp, err := n.httpClient.Post(n.webhookURL, "application/json", bytes.NewReader(body))
	if err != nil {
		log.Printf("ERROR Alert: failed to deliver failure alert: %v\n", err)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		log.Printf("ERROR Alert: webhook returned status %d.\n", resp.StatusCode)
		return
	}
	log.Printf("Alert: failure alert sent for workflow %s (run %s).\n", workflow, runID)
}

func rootCause(err error) error {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}
