// social/linkedin.go
package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sgcarsight/backend/config"
)

const (
	linkedInTokenURL = "https://www.linkedin.com/oauth/v2/accessToken"
	linkedInAPIBase  = "https://api.linkedin.com"
	linkedInVersion  = "202405"
)

// LinkedIn posts announcements to a company page and then reshares the post
// to a personal profile feed. The reshare is best-effort: its failure is
// logged and never undoes or fails the original post.
type LinkedIn struct {
	cfg        config.LinkedInConfig
	tokenURL   string // overridable in tests
	apiBase    string
	httpClient *http.Client
}

func NewLinkedIn(cfg config.LinkedInConfig) *LinkedIn {
	return &LinkedIn{
		cfg:        cfg,
		tokenURL:   linkedInTokenURL,
		apiBase:    linkedInAPIBase,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
}

func (l *LinkedIn) Name() string  { return "linkedin" }
func (l *LinkedIn) Enabled() bool { return l.cfg.Enabled }

func (l *LinkedIn) Publish(ctx context.Context, msg Message) error {
	if l.cfg.ClientID == "" || l.cfg.ClientSecret == "" || l.cfg.RefreshToken == "" || l.cfg.OrganisationID == "" {
		return fmt.Errorf("linkedin credentials are not configured")
	}

	accessToken, err := l.refreshAccessToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh linkedin access token: %w", err)
	}

	commentary := msg.Text + "\n" + msg.Link
	author := "urn:li:organization:" + l.cfg.OrganisationID

	postID, err := l.createPost(ctx, accessToken, author, commentary, "")
	if err != nil {
		return fmt.Errorf("failed to create linkedin company post: %w", err)
	}

	if postID != "" && l.cfg.PersonID != "" {
		personAuthor := "urn:li:person:" + l.cfg.PersonID
		if _, err := l.createPost(ctx, accessToken, personAuthor, commentary, postID); err != nil {
			log.Printf("WARN Social: linkedin reshare to personal feed failed: %v\n", err)
		}
	}
	return nil
}

// refreshAccessToken exchanges the long-lived refresh token for an access
// token against the fixed OAuth token endpoint.
func (l *LinkedIn) refreshAccessToken(ctx context.Context) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", l.cfg.RefreshToken)
	form.Set("client_id", l.cfg.ClientID)
	form.Set("client_secret", l.cfg.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("token endpoint returned status %d: %s", resp.StatusCode, string(text))
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("token response contained no access token")
	}
	return payload.AccessToken, nil
}

// createPost creates one post as the given author. When reshareOf is set the
// post reshares an existing entity instead of standing alone. Returns the new
// entity ID from the x-restli-id header when LinkedIn provides one.
func (l *LinkedIn) createPost(ctx context.Context, accessToken, author, commentary, reshareOf string) (string, error) {
	payload := map[string]any{
		"author":     author,
		"commentary": commentary,
		"visibility": "PUBLIC",
		"distribution": map[string]any{
			"feedDistribution": "MAIN_FEED",
		},
		"lifecycleState": "PUBLISHED",
	}
	if reshareOf != "" {
		payload["reshareContext"] = map[string]string{"parent": reshareOf}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal post payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, l.apiBase+"/rest/posts", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build post request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("LinkedIn-Version", linkedInVersion)
	req.Header.Set("X-Restli-Protocol-Version", "2.0.0")

	resp, err := l.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("post request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("linkedin returned status %d: %s", resp.StatusCode, string(text))
	}
	return resp.Header.Get("x-restli-id"), nil
}
