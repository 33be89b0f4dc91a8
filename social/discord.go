// social/discord.go
package social

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sgcarsight/backend/config"
)

// Discord posts announcements to a channel webhook.
type Discord struct {
	cfg        config.DiscordConfig
	httpClient *http.Client
}

func NewDiscord(cfg config.DiscordConfig) *Discord {
	return &Discord{cfg: cfg, httpClient: &http.Client{Timeout: 15 * time.Second}}
}

func (d *Discord) Name() string  { return "discord" }
func (d *Discord) Enabled() bool { return d.cfg.Enabled }

func (d *Discord) Publish(ctx context.Context, msg Message) error {
	if d.cfg.WebhookURL == "" {
		return fmt.Errorf("discord webhook URL is not configured")
	}

	body, err := json.Marshal(map[string]string{
		"content": msg.Text + "\n" + msg.Link,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.cfg.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("discord request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("discord returned status %d", resp.StatusCode)
	}
	return nil
}
