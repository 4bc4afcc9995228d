package main

import (
	"context"
	"sync"
)

// queueCapacity bounds the fan-in channel shared by all generators. It is
// the system's only backpressure: when the batcher or sink falls behind,
// pushes block, generators stall, and limiter tokens accumulate (up to
// bucket capacity) instead of records being dropped. Raise it to let the
// sink fall further behind before generation slows.
const queueCapacity = 32

// A LogGenerator runs one category's production loop: wait for a token,
// synthesize an event, overlay the common fields, and push each record
// onto the shared queue in generation order.
type LogGenerator struct {
	category Category
	limiter  *Limiter
	meta     CommonMetadata
	rng      Rng
	log      Logger
}

func NewLogGenerator(cat Category, meta CommonMetadata, seed string, log Logger) *LogGenerator {
	return &LogGenerator{
		category: cat,
		limiter:  NewLimiter(cat.Rate),
		meta:     meta,
		rng:      NewRng(seed + "/" + cat.Name),
		log:      log,
	}
}

// Generate runs until ctx is cancelled. Cancellation observed in Acquire
// or during a push abandons the rest of the current emission and returns;
// it is the shutdown signal, not an error.
func (g *LogGenerator) Generate(ctx context.Context, records chan<- Record) {
	for {
		if err := g.limiter.Acquire(ctx); err != nil {
			g.log.Debug("generator %s stopping: %v\n", g.category.Name, err)
			return
		}
		for _, rec := range g.category.Produce(g.rng) {
			g.meta.Apply(rec)
			select {
			case records <- rec:
			case <-ctx.Done():
				g.log.Debug("generator %s stopping mid-emission\n", g.category.Name)
				return
			}
		}
	}
}

// StartGenerators launches one goroutine per enabled category and returns
// the shared queue. A category with rate 0 never gets a goroutine. Once
// every generator has exited the queue is closed, which is the batcher's
// signal to flush whatever is pending and stop.
func StartGenerators(ctx context.Context, cats []Category, meta CommonMetadata, seed string, log Logger) <-chan Record {
	records := make(chan Record, queueCapacity)
	var wg sync.WaitGroup
	for _, cat := range cats {
		if cat.Rate == 0 {
			log.Info("category %s disabled\n", cat.Name)
			continue
		}
		log.Info("category %s: %d records/s\n", cat.Name, cat.Rate)
		g := NewLogGenerator(cat, meta, seed, log)
		wg.Add(1)
		go func() {
			defer wg.Done()
			g.Generate(ctx, records)
		}()
	}
	go func() {
		wg.Wait()
		close(records)
	}()
	return records
}
