package pipeline

import (
	"context"
	"image"
	"sync"

	"github.com/MeKo-Tech/textspot/internal/detector"
)

// recognizeParallel fans regions out to cfg.Workers goroutines. Each result
// lands at its region's original index so discovery order survives. The first
// error cancels the remaining work.
func (p *Pipeline) recognizeParallel(ctx context.Context, img image.Image, regions []detector.TextRegion, out []spottedRegion) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := p.cfg.Workers
	if workers > len(regions) {
		workers = len(regions)
	}
	jobs := make(chan int)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				s, err := p.recognizeOne(ctx, img, regions[i])
				if err != nil {
					fail(err)
					return
				}
				out[i] = s
			}
		}()
	}

feed:
	for i := range regions {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return ctx.Err()
}
