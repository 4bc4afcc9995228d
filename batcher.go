package main

import "time"

// A Batcher is the queue's single consumer. It accumulates records into a
// batch and hands the batch to the sender when it reaches maxSize records,
// or when maxWait has elapsed since the batch's first record, whichever
// comes first. With no batch open there is no deadline and the batcher
// waits indefinitely for the next record.
type Batcher struct {
	maxSize int
	maxWait time.Duration
	sender  Sender
	log     Logger
}

func NewBatcher(maxSize int, maxWait time.Duration, sender Sender, log Logger) *Batcher {
	return &Batcher{maxSize: maxSize, maxWait: maxWait, sender: sender, log: log}
}

// Run consumes records until the channel is closed, then flushes the
// pending batch and returns. A delivery failure is logged and the batch
// dropped; the loop continues with the next batch.
func (b *Batcher) Run(records <-chan Record) {
	batch := make([]Record, 0, b.maxSize)
	var timer *time.Timer
	var deadline <-chan time.Time

	flush := func() {
		if timer != nil {
			timer.Stop()
			timer = nil
			deadline = nil
		}
		if len(batch) == 0 {
			return
		}
		if err := b.sender.Send(batch); err != nil {
			b.log.Error("could not deliver batch of %d records: %v\n", len(batch), err)
		}
		batch = make([]Record, 0, b.maxSize)
	}

	for {
		select {
		case rec, ok := <-records:
			if !ok {
				flush()
				return
			}
			batch = append(batch, rec)
			if len(batch) == 1 {
				timer = time.NewTimer(b.maxWait)
				deadline = timer.C
			}
			if len(batch) >= b.maxSize {
				flush()
			}
		case <-deadline:
			timer = nil
			deadline = nil
			flush()
		}
	}
}
