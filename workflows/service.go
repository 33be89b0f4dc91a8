// workflows/service.go
package workflows

import (
	"context"
	"database/sql"
	"sync"

	"github.com/sgcarsight/backend/alert"
	"github.com/sgcarsight/backend/cache"
	"github.com/sgcarsight/backend/config"
	"github.com/sgcarsight/backend/database"
	"github.com/sgcarsight/backend/fetcher"
	"github.com/sgcarsight/backend/models"
	"github.com/sgcarsight/backend/social"
	"github.com/sgcarsight/backend/updater"
)

// Service wires the per-domain workflow definitions to real stores, the
// fetcher, the social publisher, and the alert notifier. It is the only place
// the concrete dependency graph is assembled.
type Service struct {
	engine *Engine
	cars   Workflow
	coe    Workflow
	dereg  Workflow
}

func NewService(cfg *config.Config, db *sql.DB) *Service {
	client := fetcher.NewClient(cfg.HTTPTimeout)
	meta := database.NewMetaStore(db)
	carStore := database.NewCarStore(db)
	coeStore := database.NewCOEStore(db)
	deregStore := database.NewDeregStore(db)
	postStore := database.NewPostStore(db)

	runner := updater.NewTaskRunner(meta)
	reval := cache.NewRevalidator(cfg.Revalidation.URL, cfg.Revalidation.Token, cfg.HTTPTimeout)
	publisher := social.NewPublisher(
		social.NewDiscord(cfg.Social.Discord),
		social.NewTelegram(cfg.Social.Telegram),
		social.NewTwitter(cfg.Social.Twitter),
		social.NewLinkedIn(cfg.Social.LinkedIn),
	)
	alerts := alert.NewNotifier(cfg.Alert.DiscordWebhookURL)
	engine := NewEngine(runner, reval, postStore, publisher, alerts, cfg.SiteURL)

	// Local runs always re-fetch fresh data.
	bypass := !cfg.IsProduction()

	cars := Workflow{
		Name:        "cars",
		DataType:    "cars",
		Tags:        []string{"cars", "months"},
		Publish:     true,
		LatestMonth: carStore.LatestMonth,
		Tasks: []Task{{
			Name: "update cars",
			Run: func(ctx context.Context) (models.UpdateResult, error) {
				return updater.Run(client, meta, updater.Options{
					Dataset:        "cars",
					Table:          "cars",
					Source:         cfg.Datasets.Cars,
					BypassChecksum: bypass,
				}, carStore.UpsertCars)
			},
		}},
	}

	// COE ingests two related datasets as independent sibling tasks; either
	// one producing rows is enough to drive the downstream steps.
	coe := Workflow{
		Name:        "coe",
		DataType:    "coe",
		Tags:        []string{"coe", "months"},
		Publish:     true,
		LatestMonth: coeStore.LatestMonth,
		Tasks: []Task{
			{
				Name: "update coe",
				Run: func(ctx context.Context) (models.UpdateResult, error) {
					return updater.Run(client, meta, updater.Options{
						Dataset:        "coe",
						Table:          "coe",
						Source:         cfg.Datasets.COEResults,
						BypassChecksum: bypass,
					}, coeStore.UpsertResults)
				},
			},
			{
				Name: "update coe-pqp",
				Run: func(ctx context.Context) (models.UpdateResult, error) {
					return updater.Run(client, meta, updater.Options{
						Dataset:        "coe-pqp",
						Table:          "coe_pqp",
						Source:         cfg.Datasets.COEPQP,
						BypassChecksum: bypass,
					}, coeStore.UpsertPQP)
				},
			},
		},
	}

	// Deregistrations feed dashboards and content but are not announced.
	dereg := Workflow{
		Name:        "deregistrations",
		DataType:    "deregistrations",
		Tags:        []string{"deregistrations", "months"},
		Publish:     false,
		LatestMonth: deregStore.LatestMonth,
		Tasks: []Task{{
			Name: "update deregistrations",
			Run: func(ctx context.Context) (models.UpdateResult, error) {
				return updater.Run(client, meta, updater.Options{
					Dataset:        "deregistrations",
					Table:          "deregistrations",
					Source:         cfg.Datasets.Deregistrations,
					BypassChecksum: bypass,
				}, deregStore.UpsertDeregistrations)
			},
		}},
	}

	return &Service{engine: engine, cars: cars, coe: coe, dereg: dereg}
}

func (s *Service) RunCars(ctx context.Context) (models.WorkflowRunResult, error) {
	return s.engine.Execute(ctx, s.cars)
}

func (s *Service) RunCOE(ctx context.Context) (models.WorkflowRunResult, error) {
	return s.engine.Execute(ctx, s.coe)
}

func (s *Service) RunDeregistrations(ctx context.Context) (models.WorkflowRunResult, error) {
	return s.engine.Execute(ctx, s.dereg)
}

func (s *Service) RunRegenerate(ctx context.Context, month, dataType string) (models.WorkflowRunResult, error) {
	return s.engine.ExecuteRegenerate(ctx, month, dataType)
}

// RunAll fans out every domain workflow concurrently, as the scheduler's
// trigger endpoint does. Each workflow fails or succeeds on its own; the
// caller gets every run result plus the per-run errors, index-aligned.
func (s *Service) RunAll(ctx context.Context) ([]models.WorkflowRunResult, []error) {
	wfs := []func(context.Context) (models.WorkflowRunResult, error){
		s.RunCars, s.RunCOE, s.RunDeregistrations,
	}

	results := make([]models.WorkflowRunResult, len(wfs))
	errs := make([]error, len(wfs))

	var wg sync.WaitGroup
	for i, run := range wfs {
		wg.Add(1)
		go func(i int, run func(context.Context) (models.WorkflowRunResult, error)) {
			defer wg.Done()
			results[i], errs[i] = run(ctx)
		}(i, run)
	}
	wg.Wait()

	return results, errs
}
