package scheduler_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/segctl/segctl/internal/scheduler"
	"github.com/segctl/segctl/internal/utils"
)

func manifestEntries(n int) []utils.ReadEntry {
	entries := make([]utils.ReadEntry, n)
	for i := range entries {
		entries[i] = utils.ReadEntry{
			Segment:  "scope/stream/0",
			Length:   64,
			Endpoint: "127.0.0.1:9919",
			File:     "out.bin",
		}
	}
	return entries
}

func TestRunProcessesAllEntries(t *testing.T) {
	var mu sync.Mutex
	var seen int
	err := scheduler.Run(context.Background(), manifestEntries(5), 2, func(ctx context.Context, jobID string, entry utils.ReadEntry) error {
		mu.Lock()
		defer mu.Unlock()
		seen++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 5, seen)
}

func TestRunReportsFailures(t *testing.T) {
	var mu sync.Mutex
	var calls int
	err := scheduler.Run(context.Background(), manifestEntries(4), 1, func(ctx context.Context, jobID string, entry utils.ReadEntry) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		if calls == 2 {
			return errors.New("stalled")
		}
		return nil
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 4")
	assert.Equal(t, 4, calls, "a failed entry must not stop the rest of the batch")
}

func TestRunClampsWorkerCount(t *testing.T) {
	err := scheduler.Run(context.Background(), manifestEntries(2), 0, func(ctx context.Context, jobID string, entry utils.ReadEntry) error {
		return nil
	})
	require.NoError(t, err)
}
