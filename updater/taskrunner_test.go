package updater

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sgcarsight/backend/models"
)

type fakeStamps struct {
	written map[string]int64
	err     error
}

func newFakeStamps() *fakeStamps {
	return &fakeStamps{written: make(map[string]int64)}
}

func (s *fakeStamps) SetLastUpdated(dataset string, ts int64) error {
	if s.err != nil {
		return s.err
	}
	s.written[dataset] = ts
	return nil
}

func TestProcessWritesTimestampOnRecords(t *testing.T) {
	stamps := newFakeStamps()
	runner := NewTaskRunner(stamps)

	before := time.Now().UnixMilli()
	result, err := runner.Process("update cars", func() (models.UpdateResult, error) {
		return models.UpdateResult{Dataset: "cars", RecordsProcessed: 7}, nil
	})
	require.NoError(t, err)

	assert.Equal(t, 7, result.RecordsProcessed)
	ts, ok := stamps.written["update cars"]
	require.True(t, ok, "timestamp must be written when records were processed")
	assert.GreaterOrEqual(t, ts, before)
}

func TestProcessSkipsTimestampOnZeroRecords(t *testing.T) {
	stamps := newFakeStamps()
	runner := NewTaskRunner(stamps)

	_, err := runner.Process("update cars", func() (models.UpdateResult, error) {
		return models.UpdateResult{Dataset: "cars"}, nil
	})
	require.NoError(t, err)
	assert.Empty(t, stamps.written, "a zero-record run must not touch the timestamp")
}

func TestProcessAttachesTaskNameToError(t *testing.T) {
	stamps := newFakeStamps()
	runner := NewTaskRunner(stamps)

	boom := errors.New("archive unreachable")
	_, err := runner.Process("update coe", func() (models.UpdateResult, error) {
		return models.UpdateResult{}, boom
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `task "update coe"`)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, stamps.written)
}

func TestProcessToleratesTimestampWriteFailure(t *testing.T) {
	stamps := newFakeStamps()
	stamps.err = errors.New("store down")
	runner := NewTaskRunner(stamps)

	_, err := runner.Process("update cars", func() (models.UpdateResult, error) {
		return models.UpdateResult{RecordsProcessed: 1}, nil
	})
	assert.NoError(t, err, "timestamp bookkeeping must not fail the task")
}
