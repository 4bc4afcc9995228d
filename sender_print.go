package main

import (
	"encoding/json"
	"fmt"
)

// SenderPrint writes each record to stdout, one JSON object per line.
// Useful for checking record shapes without a collector.
type SenderPrint struct {
	batches int
	records int
	log     Logger
}

// make sure it implements Sender
var _ Sender = (*SenderPrint)(nil)

func NewSenderPrint(log Logger) *SenderPrint {
	return &SenderPrint{log: log}
}

func (s *SenderPrint) Send(batch []Record) error {
	for _, rec := range batch {
		line, err := json.Marshal(rec)
		if err != nil {
			return err
		}
		fmt.Println(string(line))
	}
	s.batches++
	s.records += len(batch)
	return nil
}

func (s *SenderPrint) Close() {
	s.log.Warn("sender printed %d batches with %d records\n", s.batches, s.records)
}
