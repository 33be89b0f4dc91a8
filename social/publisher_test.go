package social

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlatform struct {
	name    string
	enabled bool
	err     error
	calls   int
}

func (p *stubPlatform) Name() string  { return p.name }
func (p *stubPlatform) Enabled() bool { return p.enabled }

func (p *stubPlatform) Publish(ctx context.Context, msg Message) error {
	p.calls++
	return p.err
}

func TestPublishAllIsolatesFailures(t *testing.T) {
	failing := &stubPlatform{name: "twitter", enabled: true, err: errors.New("rate limited")}
	okA := &stubPlatform{name: "discord", enabled: true}
	okB := &stubPlatform{name: "telegram", enabled: true}

	p := NewPublisher(failing, okA, okB)
	report := p.PublishAll(context.Background(), Message{Text: "hi", Link: "https://x"})

	assert.Equal(t, 2, report.SuccessCount)
	assert.Equal(t, 1, report.ErrorCount)
	assert.Equal(t, 1, okA.calls, "a sibling failure must not block this platform")
	assert.Equal(t, 1, okB.calls)
	require.Len(t, report.Results, 3)
	assert.Error(t, report.Results[0].Err)
	assert.True(t, report.Results[1].Success)
}

func TestPublishAllSkipsDisabledPlatforms(t *testing.T) {
	disabled := &stubPlatform{name: "linkedin", enabled: false}
	enabled := &stubPlatform{name: "discord", enabled: true}

	p := NewPublisher(disabled, enabled)
	report := p.PublishAll(context.Background(), Message{Text: "hi", Link: "https://x"})

	assert.Equal(t, 0, disabled.calls, "disabled platforms must short-circuit")
	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, 0, report.ErrorCount)
	require.Len(t, report.Results, 2)
	assert.True(t, report.Results[0].Skipped)
}

func TestPublishAllEmpty(t *testing.T) {
	report := NewPublisher().PublishAll(context.Background(), Message{})
	assert.Zero(t, report.SuccessCount)
	assert.Zero(t, report.ErrorCount)
	assert.Empty(t, report.Results)
}
