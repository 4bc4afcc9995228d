package main

import (
	"testing"
	"time"
)

func testLogger() Logger {
	return NewLogger(0)
}

func TestApplyOverwritesCommonFields(t *testing.T) {
	meta := NewCommonMetadata("testhost")
	rec := Record{
		"message":  "hello",
		"service":  "storedog",
		"ddsource": "impostor",
		"status":   "CRITICAL",
	}
	meta.Apply(rec)

	want := map[string]string{
		"ddsource": "dynamo",
		"hostname": "testhost",
		"status":   "INFO",
		"ddtags":   "kube_namespace:test",
	}
	for k, v := range want {
		if rec[k] != v {
			t.Errorf("field %s = %v, want %s", k, rec[k], v)
		}
	}
	if rec["message"] != "hello" || rec["service"] != "storedog" {
		t.Errorf("producer fields were clobbered: %v", rec)
	}
}

func TestApplyStampsTimestampAtMergeTime(t *testing.T) {
	meta := NewCommonMetadata("testhost")
	rec := Record{"message": "hello"}
	before := time.Now().UnixMilli()
	meta.Apply(rec)
	after := time.Now().UnixMilli()

	ts, ok := rec["timestamp"].(int64)
	if !ok {
		t.Fatalf("timestamp is %T, want int64", rec["timestamp"])
	}
	if ts < before || ts > after {
		t.Errorf("timestamp %d outside [%d, %d]", ts, before, after)
	}
}

func TestMergeIsDeepForNestedRecords(t *testing.T) {
	dst := Record{
		"attrs": Record{"region": "us-east-1", "zone": "a"},
		"keep":  1,
	}
	merge(dst, Record{
		"attrs": Record{"zone": "b"},
		"new":   true,
	})

	attrs := dst["attrs"].(Record)
	if attrs["region"] != "us-east-1" {
		t.Errorf("nested untouched field lost: %v", attrs)
	}
	if attrs["zone"] != "b" {
		t.Errorf("nested field not overwritten: %v", attrs)
	}
	if dst["keep"] != 1 || dst["new"] != true {
		t.Errorf("top-level merge wrong: %v", dst)
	}
}

func TestMergeReplacesNonRecordWithRecord(t *testing.T) {
	dst := Record{"attrs": "scalar"}
	merge(dst, Record{"attrs": Record{"zone": "b"}})
	attrs, ok := dst["attrs"].(Record)
	if !ok || attrs["zone"] != "b" {
		t.Errorf("patch record should replace scalar, got %v", dst["attrs"])
	}
}
