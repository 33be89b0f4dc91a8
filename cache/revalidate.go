// cache/revalidate.go
package cache

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"
)

// RevalidationResult reports a best-effort cache invalidation. Failures are
// carried in the result rather than returned as errors so orchestrators can
// log them and continue to social posting.
type RevalidationResult struct {
	Success bool
	Tags    []string
	Err     error
}

// Revalidator invalidates named cache tags on the web frontend via its
// authenticated revalidation endpoint.
type Revalidator struct {
	url        string
	token      string
	httpClient *http.Client
}

func NewRevalidator(url, token string, timeout time.Duration) *Revalidator {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Revalidator{url: url, token: token, httpClient: &http.Client{Timeout: timeout}}
}

// Revalidate invalidates the given tags. A missing token or endpoint is a
// soft failure: log a warning and return Success=false, never abort the
// caller's workflow.
func (r *Revalidator) Revalidate(tags []string) RevalidationResult {
	result := RevalidationResult{Tags: tags}

	if r.url == "" || r.token == "" {
		log.Println("WARN Cache: revalidation endpoint or token not configured, skipping.")
		result.Err = fmt.Errorf("revalidation not configured")
		return result
	}

	body, err := json.Marshal(map[string][]string{"tags": tags})
	if err != nil {
		result.Err = fmt.Errorf("failed to marshal revalidation body: %w", err)
		log.Printf("WARN Cache: %v\n", result.Err)
		return result
	}

	req, err := http.NewRequest(http.MethodPost, r.url, bytes.NewReader(body))
	if err != nil {
		result.Err = fmt.Errorf("failed to build revalidation request: %w", err)
		log.Printf("WARN Cache: %v\n", result.Err)
		return result
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-revalidate-token", r.token)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		result.Err = fmt.Errorf("revalidation request failed: %w", err)
		log.Printf("WARN Cache: %v\n", result.Err)
		return result
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		result.Err = fmt.Errorf("revalidation returned status %d: %s", resp.StatusCode, string(text))
		log.Printf("WARN Cache: %v\n", result.Err)
		return result
	}

	log.Printf("Cache: revalidated tags %v.\n", tags)
	result.Success = true
	return result
}
