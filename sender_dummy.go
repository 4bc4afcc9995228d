package main

import "sync"

// SenderDummy records deliveries without sending anything. It backs dry
// runs and tests; SetErr makes every subsequent Send report a transport
// failure until cleared.
type SenderDummy struct {
	mu       sync.Mutex
	batches  [][]Record
	attempts int
	err      error
	log      Logger
}

// make sure it implements Sender
var _ Sender = (*SenderDummy)(nil)

func NewSenderDummy(log Logger) *SenderDummy {
	return &SenderDummy{log: log}
}

func (s *SenderDummy) SetErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *SenderDummy) Send(batch []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	if s.err != nil {
		return s.err
	}
	cp := make([]Record, len(batch))
	copy(cp, batch)
	s.batches = append(s.batches, cp)
	return nil
}

// Attempts returns how many deliveries were tried, including failed ones.
func (s *SenderDummy) Attempts() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attempts
}

// Batches returns the batches delivered so far.
func (s *SenderDummy) Batches() [][]Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([][]Record, len(s.batches))
	copy(out, s.batches)
	return out
}

func (s *SenderDummy) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.batches {
		n += len(b)
	}
	s.log.Info("sender discarded %d batches with %d records\n", len(s.batches), n)
}
