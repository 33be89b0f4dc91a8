// updater/taskrunner.go
package updater

import (
	"fmt"
	"log"
	"time"

	"github.com/sgcarsight/backend/models"
)

// Timestamps is the slice of the meta store the task runner needs.
type Timestamps interface {
	SetLastUpdated(dataset string, ts int64) error
}

// TaskRunner wraps a named unit of ingestion work. On success with records
// processed it stamps the dataset's last-updated time; a zero-record run is a
// logged no-op. Errors are logged with the task name attached and returned, so
// the enclosing workflow step fails while sibling tasks run on.
type TaskRunner struct {
	stamps Timestamps
	now    func() time.Time
}

func NewTaskRunner(stamps Timestamps) *TaskRunner {
	return &TaskRunner{stamps: stamps, now: time.Now}
}

func (r *TaskRunner) Process(name string, handler func() (models.UpdateResult, error)) (models.UpdateResult, error) {
	log.Printf("Task %q: starting.\n", name)

	result, err := handler()
	if err != nil {
		log.Printf("ERROR Task %q failed: %v\n", name, err)
		return result, fmt.Errorf("task %q: %w", name, err)
	}

	if result.RecordsProcessed > 0 {
		ts := r.now().UnixMilli()
		if err := r.stamps.SetLastUpdated(name, ts); err != nil {
			// Bookkeeping only; stale timestamps are tolerable, lost data is not.
			log.Printf("ERROR Task %q: failed to write last-updated timestamp: %v\n", name, err)
		}
		log.Printf("Task %q: completed, %d records processed.\n", name, result.RecordsProcessed)
	} else {
		log.Printf("Task %q: completed with no records processed.\n", name)
	}
	return result, nil
}
