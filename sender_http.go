package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/klauspost/compress/gzip"
)

// SenderHTTP posts each batch to the collector's log intake as a
// gzip-compressed JSON array.
type SenderHTTP struct {
	endpoint string
	client   *http.Client
	log      Logger
	batches  int
	records  int
}

// make sure it implements Sender
var _ Sender = (*SenderHTTP)(nil)

func NewSenderHTTP(target *url.URL, log Logger) *SenderHTTP {
	return &SenderHTTP{
		endpoint: target.JoinPath("/api/v2/logs").String(),
		client:   &http.Client{},
		log:      log,
	}
}

func (s *SenderHTTP) Send(batch []Record) error {
	payload, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshaling batch: %w", err)
	}
	var body bytes.Buffer
	zw := gzip.NewWriter(&body)
	if _, err := zw.Write(payload); err != nil {
		return fmt.Errorf("compressing batch: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("compressing batch: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.endpoint, &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	if resp.StatusCode >= 300 {
		s.log.Warn("collector returned %s for a batch of %d records\n", resp.Status, len(batch))
	}
	s.batches++
	s.records += len(batch)
	return nil
}

func (s *SenderHTTP) Close() {
	s.log.Info("sender delivered %d batches with %d records\n", s.batches, s.records)
}
