package scheduler

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/segctl/segctl/internal/output"
	"github.com/segctl/segctl/internal/utils"
)

// RunFunc performs one complete segment read. Each download is internally
// sequential; the scheduler only parallelizes across downloads.
type RunFunc func(ctx context.Context, jobID string, entry utils.ReadEntry) error

// Run processes the entries on a pool of numWorkers workers. A failing entry
// does not stop the others; the returned error reports how many failed.
func Run(ctx context.Context, entries []utils.ReadEntry, numWorkers int, run RunFunc) error {
	logger := output.GetLogger("scheduler")
	if numWorkers < 1 {
		numWorkers = 1
	}
	jobCh := make(chan utils.ReadEntry, len(entries))
	for _, entry := range entries {
		jobCh <- entry
	}
	close(jobCh)

	var failed atomic.Int64
	var wg sync.WaitGroup
	for range min(numWorkers, len(entries)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for entry := range jobCh {
				jobID := uuid.NewString()[:8]
				logger.Info().Str("job", jobID).Msgf("Reading %d bytes of %s into %s", entry.Length, entry.Segment, entry.File)
				if err := run(ctx, jobID, entry); err != nil {
					failed.Add(1)
					logger.Error().Str("job", jobID).Err(err).Msgf("Read failed for %s", entry.Segment)
					continue
				}
				logger.Info().Str("job", jobID).Msgf("Finished %s", entry.File)
			}
		}()
	}
	wg.Wait()

	if n := failed.Load(); n > 0 {
		return fmt.Errorf("%d of %d segment reads failed", n, len(entries))
	}
	return nil
}
