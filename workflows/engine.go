// workflows/engine.go
package workflows

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/sgcarsight/backend/cache"
	"github.com/sgcarsight/backend/models"
	"github.com/sgcarsight/backend/social"
)

// Task is one named ingestion unit inside a workflow run.
type Task struct {
	Name string
	Run  func(ctx context.Context) (models.UpdateResult, error)
}

// Workflow is a fixed per-domain step sequence: run the ingestion tasks, gate
// on records processed, resolve the latest month, revalidate caches, generate
// content, publish, revalidate content caches.
type Workflow struct {
	Name        string
	DataType    string
	Tags        []string
	Tasks       []Task
	Publish     bool
	LatestMonth func() (string, error)
}

// TaskProcessor wraps a named handler in a durable task (see updater.TaskRunner).
type TaskProcessor interface {
	Process(name string, handler func() (models.UpdateResult, error)) (models.UpdateResult, error)
}

type Revalidator interface {
	Revalidate(tags []string) cache.RevalidationResult
}

type SocialPublisher interface {
	PublishAll(ctx context.Context, msg social.Message) social.PublishReport
}

type FailureNotifier interface {
	NotifyFailure(workflow, runID string, failure error)
}

type PostWriter interface {
	UpsertPost(post models.Post) error
	PostExists(month, dataType string) (bool, error)
}

// Engine executes workflows. Steps run in declared order; only sibling
// ingestion tasks within one workflow run concurrently. Every failure that
// escapes a run is forwarded to the notifier before being returned.
type Engine struct {
	tasks   TaskProcessor
	reval   Revalidator
	posts   PostWriter
	social  SocialPublisher
	alerts  FailureNotifier
	siteURL string
}

func NewEngine(tasks TaskProcessor, reval Revalidator, posts PostWriter, publisher SocialPublisher, alerts FailureNotifier, siteURL string) *Engine {
	return &Engine{
		tasks:   tasks,
		reval:   reval,
		posts:   posts,
		social:  publisher,
		alerts:  alerts,
		siteURL: siteURL,
	}
}

// Execute runs one workflow to completion. The returned result always carries
// the run ID, including on failure.
func (e *Engine) Execute(ctx context.Context, wf Workflow) (models.WorkflowRunResult, error) {
	result := models.WorkflowRunResult{
		RunID:    uuid.NewString(),
		Workflow: wf.Name,
	}
	log.Printf("Workflow %s: run %s starting.\n", wf.Name, result.RunID)

	updates, err := e.runTasks(ctx, wf.Tasks)
	if err != nil {
		e.alerts.NotifyFailure(wf.Name, result.RunID, err)
		return result, err
	}

	for _, u := range updates {
		result.RecordsProcessed += u.RecordsProcessed
	}
	// One task with new rows is enough to proceed; the COE workflow regularly
	// sees bidding results without fresh PQP rates, or the reverse.
	if result.RecordsProcessed == 0 {
		result.Message = "no new records, nothing to do"
		log.Printf("Workflow %s: %s\n", wf.Name, result.Message)
		return result, nil
	}

	month, err := wf.LatestMonth()
	if err != nil {
		err = fmt.Errorf("failed to resolve latest month: %w", err)
		e.alerts.NotifyFailure(wf.Name, result.RunID, err)
		return result, err
	}

	// Best-effort: a failed invalidation is logged inside the revalidator and
	// must not stop content generation or publishing.
	e.reval.Revalidate(wf.Tags)

	exists, err := e.posts.PostExists(month, wf.DataType)
	if err != nil {
		err = fmt.Errorf("failed to check existing content: %w", err)
		e.alerts.NotifyFailure(wf.Name, result.RunID, err)
		return result, err
	}
	if exists {
		result.Message = fmt.Sprintf("content for %s already exists, skipping generation", month)
		log.Printf("Workflow %s: %s\n", wf.Name, result.Message)
		return result, nil
	}

	post := BuildPost(month, wf.DataType)
	if err := e.posts.UpsertPost(post); err != nil {
		err = fmt.Errorf("failed to generate content: %w", err)
		e.alerts.NotifyFailure(wf.Name, result.RunID, err)
		return result, err
	}

	if wf.Publish {
		report := e.social.PublishAll(ctx, BuildAnnouncement(post, e.siteURL))
		if report.SuccessCount == 0 && report.ErrorCount > 0 {
			// Soft: announcements are best-effort, data and content are live.
			log.Printf("WARN Workflow %s: all %d social publishes failed.\n", wf.Name, report.ErrorCount)
		} else {
			log.Printf("Workflow %s: published to %d platform(s), %d failed.\n",
				wf.Name, report.SuccessCount, report.ErrorCount)
		}
	}

	e.reval.Revalidate([]string{"posts"})

	result.Message = fmt.Sprintf("processed %d records for %s", result.RecordsProcessed, month)
	log.Printf("Workflow %s: run %s completed, %s.\n", wf.Name, result.RunID, result.Message)
	return result, nil
}

// ExecuteRegenerate rebuilds derived content for an explicit (month, dataType)
// pair with no ingestion step, invalidating only content-list caches.
func (e *Engine) ExecuteRegenerate(ctx context.Context, month, dataType string) (models.WorkflowRunResult, error) {
	result := models.WorkflowRunResult{
		RunID:    uuid.NewString(),
		Workflow: "regenerate",
	}
	log.Printf("Workflow regenerate: run %s starting for %s/%s.\n", result.RunID, month, dataType)

	post := BuildPost(month, dataType)
	if err := e.posts.UpsertPost(post); err != nil {
		err = fmt.Errorf("failed to regenerate content for %s/%s: %w", month, dataType, err)
		e.alerts.NotifyFailure("regenerate", result.RunID, err)
		return result, err
	}

	e.reval.Revalidate([]string{"posts"})

	result.Message = fmt.Sprintf("regenerated content for %s/%s", month, dataType)
	log.Printf("Workflow regenerate: run %s completed.\n", result.RunID)
	return result, nil
}

// runTasks executes sibling ingestion tasks concurrently. All tasks run to
// completion regardless of sibling failures, but any failure fails the batch.
func (e *Engine) runTasks(ctx context.Context, tasks []Task) ([]models.UpdateResult, error) {
	results := make([]models.UpdateResult, len(tasks))
	errs := make([]error, len(tasks))

	var wg sync.WaitGroup
	for i, task := range tasks {
		wg.Add(1)
		go func(i int, t Task) {
			defer wg.Done()
			results[i], errs[i] = e.tasks.Process(t.Name, func() (models.UpdateResult, error) {
				return t.Run(ctx)
			})
		}(i, task)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return results, err
		}
	}
	return results, nil
}
