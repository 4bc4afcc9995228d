package main

// A Sender delivers one batch of records. Send is synchronous: the batcher
// blocks until the attempt finishes, so at most one delivery is in flight
// at a time. An error means the batch was not delivered; callers drop the
// batch and move on, there is no retry.
type Sender interface {
	Send(batch []Record) error
	Close()
}
