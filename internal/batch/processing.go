package batch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/MeKo-Tech/textspot/internal/common"
	"github.com/MeKo-Tech/textspot/internal/pipeline"
	"github.com/MeKo-Tech/textspot/internal/utils"
)

// FileResult holds the outcome for a single file in a batch run.
type FileResult struct {
	Path    string
	Result  *pipeline.Result
	Err     error
	Elapsed time.Duration
}

// Summary aggregates a completed batch run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
	Regions   int
	Elapsed   time.Duration
}

func (s Summary) String() string {
	return fmt.Sprintf("%d files (%d ok, %d failed), %d regions in %v",
		s.Total, s.Succeeded, s.Failed, s.Regions, s.Elapsed.Round(time.Millisecond))
}

// Process runs the pipeline over files with cfg.Workers concurrent workers.
// Results come back in input order. With ContinueOnError unset the first
// failure cancels remaining work and is returned.
func Process(ctx context.Context, pl *pipeline.Pipeline, files []string, cfg Config) ([]FileResult, Summary, error) {
	if err := cfg.Validate(); err != nil {
		return nil, Summary{}, err
	}
	if len(files) == 0 {
		return nil, Summary{}, nil
	}

	runTimer := common.StartTimer("batch")
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := cfg.Workers
	if workers > len(files) {
		workers = len(files)
	}

	results := make([]FileResult, len(files))
	jobs := make(chan int)

	var (
		once     sync.Once
		firstErr error
		wg       sync.WaitGroup
	)
	fail := func(err error) {
		once.Do(func() {
			firstErr = err
			cancel()
		})
	}

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = processFile(ctx, pl, files[i])
				if results[i].Err != nil && !cfg.ContinueOnError {
					fail(fmt.Errorf("%s: %w", files[i], results[i].Err))
					return
				}
			}
		}()
	}

feed:
	for i := range files {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return nil, Summary{}, firstErr
	}

	summary := Summary{Total: len(files), Elapsed: runTimer.Stop()}
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
			continue
		}
		summary.Succeeded++
		summary.Regions += len(r.Result.Regions)
	}
	slog.Info("batch complete", "files", summary.Total, "failed", summary.Failed,
		"regions", summary.Regions, "duration", summary.Elapsed)
	return results, summary, nil
}

func processFile(ctx context.Context, pl *pipeline.Pipeline, path string) FileResult {
	timer := common.StartTimer(path)
	img, err := utils.LoadImage(path)
	if err != nil {
		return FileResult{Path: path, Err: fmt.Errorf("loading image: %w", err), Elapsed: timer.Stop()}
	}
	res, err := pl.Detect(ctx, img)
	if err != nil {
		return FileResult{Path: path, Err: err, Elapsed: timer.Stop()}
	}
	return FileResult{Path: path, Result: res, Elapsed: timer.Stop()}
}
