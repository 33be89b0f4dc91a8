// social/twitter.go
package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dghubble/oauth1"

	"github.com/sgcarsight/backend/config"
)

const (
	twitterAPIBase = "https://api.twitter.com"
	tweetMaxLength = 280
)

// Twitter posts announcements via the v2 create-tweet endpoint, signed with
// OAuth 1.0a user context.
type Twitter struct {
	cfg        config.TwitterConfig
	apiBase    string // overridable in tests
	httpClient *http.Client
}

func NewTwitter(cfg config.TwitterConfig) *Twitter {
	oauthCfg := oauth1.NewConfig(cfg.ConsumerKey, cfg.ConsumerSecret)
	token := oauth1.NewToken(cfg.AccessToken, cfg.AccessTokenSecret)
	return &Twitter{
		cfg:        cfg,
		apiBase:    twitterAPIBase,
		httpClient: oauthCfg.Client(oauth1.NoContext, token),
	}
}

func (t *Twitter) Name() string  { return "twitter" }
func (t *Twitter) Enabled() bool { return t.cfg.Enabled }

func (t *Twitter) Publish(ctx context.Context, msg Message) error {
	if t.cfg.ConsumerKey == "" || t.cfg.AccessToken == "" {
		return fmt.Errorf("twitter credentials are not configured")
	}

	body, err := json.Marshal(map[string]string{
		"text": TruncateForTweet(msg.Text, msg.Link),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal tweet payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.apiBase+"/2/tweets", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build tweet request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tweet request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("twitter returned status %d", resp.StatusCode)
	}
	return nil
}

// TruncateForTweet fits text plus the trailing link into the 280-character
// budget, cutting the text and appending "..." when needed. The link and its
// separating newline are reserved in full.
func TruncateForTweet(text, link string) string {
	budget := tweetMaxLength - len([]rune(link)) - 1
	runes := []rune(text)
	if len(runes) <= budget {
		return text + "\n" + link
	}
	return string(runes[:budget-3]) + "..." + "\n" + link
}
