// social/publisher.go
package social

import (
	"context"
	"log"
)

// Message is the announcement posted after new data lands.
type Message struct {
	Text string
	Link string
}

// Platform is one social destination with its own enable flag. Publish errors
// are isolated per platform by the publisher.
type Platform interface {
	Name() string
	Enabled() bool
	Publish(ctx context.Context, msg Message) error
}

// PublishResult records one platform's outcome.
type PublishResult struct {
	Platform string
	Success  bool
	Skipped  bool
	Err      error
}

// PublishReport tallies a fan-out. Orchestrators treat SuccessCount > 0 as a
// satisfied publish step; partial platform outages are expected.
type PublishReport struct {
	SuccessCount int
	ErrorCount   int
	Results      []PublishResult
}

// Publisher fans a message out to every enabled platform.
type Publisher struct {
	platforms []Platform
}

func NewPublisher(platforms ...Platform) *Publisher {
	return &Publisher{platforms: platforms}
}

// PublishAll posts the message to each platform in turn. A disabled platform
// short-circuits to a skipped result; a failing platform is recorded against
// itself only and never blocks the others.
func (p *Publisher) PublishAll(ctx context.Context, msg Message) PublishReport {
	var report PublishReport

	for _, platform := range p.platforms {
		if !platform.Enabled() {
			log.Printf("Social: %s disabled, skipping.\n", platform.Name())
			report.Results = append(report.Results, PublishResult{Platform: platform.Name(), Skipped: true})
			continue
		}

		if err := platform.Publish(ctx, msg); err != nil {
			log.Printf("ERROR Social: %s publish failed: %v\n", platform.Name(), err)
			report.ErrorCount++
			report.Results = append(report.Results, PublishResult{Platform: platform.Name(), Err: err})
			continue
		}

		log.Printf("Social: published to %s.\n", platform.Name())
		report.SuccessCount++
		report.Results = append(report.Results, PublishResult{Platform: platform.Name(), Success: true})
	}
	return report
}
