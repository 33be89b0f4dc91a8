// social/telegram.go
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

const telegramAPIBase = "https://api.telegram.org"

// Telegram posts announcements to a channel via the bot API.
type Telegram struct {
	cfg        config.TelegramConfig
	apiBase    string // overridable in tests
	httpClient *http.Client
}

func NewTelegram(cfg config.TelegramConfig) *Telegram {
	return &Telegram{cfg: cfg, apiBase: telegramAPIBase, httpClient: &http.Client{Timeout: 15 * time.Second}}
}

func (t *Telegram) Name() string  { return "telegram" }
func (t *Telegram) Enabled() bool { return t.cfg.Enabled }

func (t *Telegram) Publish(ctx context.Context, msg Message) error {
	if t.cfg.BotToken == "" || t.cfg.ChatID == "" {
		return fmt.Errorf("telegram bot token or chat ID is not configured")
	}

	body, err := json.Marshal(map[string]string{
		"chat_id": t.cfg.ChatID,
		"text":    msg.Text + "\n" + msg.Link,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal telegram payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.cfg.BotToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build telegram request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram returned status %d", resp.StatusCode)
	}
	return nil
}
