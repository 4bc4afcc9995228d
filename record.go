package main

import "time"

// A Record is one emittable log event: a free-form set of fields that
// becomes one JSON object in the delivery payload. Producers can put
// whatever they like in it; the common fields below are overlaid before a
// record leaves its generator.
type Record map[string]any

// CommonMetadata carries the fields the collector's datadog_agent source
// requires on every record. It is computed once at startup and never
// mutated afterward, so generators share it without locking.
type CommonMetadata struct {
	Source   string
	Hostname string
	Status   string
	Tags     string
}

func NewCommonMetadata(hostname string) CommonMetadata {
	return CommonMetadata{
		Source:   "dynamo",
		Hostname: hostname,
		Status:   "INFO",
		Tags:     "kube_namespace:test",
	}
}

func (m CommonMetadata) fields() Record {
	return Record{
		"ddsource": m.Source,
		"hostname": m.Hostname,
		"status":   m.Status,
		"ddtags":   m.Tags,
	}
}

// Apply merges the common fields into rec with merge-patch semantics:
// a common field overwrites a producer field of the same name, nested
// Records merge recursively, and everything else is left alone. It then
// stamps the record with the current wall clock (epoch milliseconds), so
// timestamps reflect send-adjacent time rather than production time.
func (m CommonMetadata) Apply(rec Record) {
	merge(rec, m.fields())
	rec["timestamp"] = time.Now().UnixMilli()
}

func merge(dst, patch Record) {
	for k, v := range patch {
		pm, pok := v.(Record)
		dm, dok := dst[k].(Record)
		if pok && dok {
			merge(dm, pm)
			continue
		}
		dst[k] = v
	}
}
