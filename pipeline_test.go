package main

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestPipelineSizeBoundedBatches(t *testing.T) {
	// One category at 100 records/s with a batch size of 5 and a long
	// batch timeout: batches should be dominated by size, not time.
	meta := NewCommonMetadata("testhost")
	cats := []Category{{Name: "http", Kind: HTTPNormal, Rate: 100}}
	ctx, cancel := context.WithTimeout(context.Background(), 1500*time.Millisecond)
	defer cancel()

	sender := NewSenderDummy(testLogger())
	records := StartGenerators(ctx, cats, meta, "seed", testLogger())
	NewBatcher(5, 5*time.Second, sender, testLogger()).Run(records)

	full := 0
	for _, batch := range sender.Batches() {
		if len(batch) > 5 {
			t.Errorf("batch of %d exceeds the max size", len(batch))
		}
		if len(batch) == 5 {
			full++
		}
	}
	if full < 20 {
		t.Errorf("got %d full batches in 1.5s at 100/s, want at least 20", full)
	}
}

func TestPipelineTimeoutBoundedFirstBatch(t *testing.T) {
	// A trickling category (1 event/s) never fills a batch of 5 before the
	// batch timeout, so the first delivery must come from the timeout and
	// carry a partial batch.
	meta := NewCommonMetadata("testhost")
	cats := []Category{{Name: "http-leak", Kind: HTTPLeak, Rate: 1}}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	sender := NewSenderDummy(testLogger())
	records := StartGenerators(ctx, cats, meta, "seed", testLogger())
	NewBatcher(5, 700*time.Millisecond, sender, testLogger()).Run(records)

	batches := sender.Batches()
	if len(batches) == 0 {
		t.Fatal("expected at least one batch")
	}
	first := batches[0]
	if len(first) == 0 || len(first) >= 5 {
		t.Fatalf("first batch has %d records, want a partial batch", len(first))
	}

	// The leak pair is enqueued contiguously, so the first two records are
	// the 504 access line followed by the failed-charge line.
	if len(first) >= 2 {
		if !strings.Contains(first[0]["message"].(string), "POST") {
			t.Errorf("first record is not the access line: %v", first[0]["message"])
		}
		if !strings.Contains(first[1]["message"].(string), "could not charge card") {
			t.Errorf("second record is not the leak line: %v", first[1]["message"])
		}
	}
}
