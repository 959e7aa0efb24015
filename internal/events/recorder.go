package events

import (
	"context"
	"sync"
)

// Recorder is an in-memory Publisher used by tests and local runs. It
// records every payload and can be told to fail to exercise the
// best-effort contract.
type Recorder struct {
	mu       sync.Mutex
	FailWith error

	AuthorCreated []AuthorCreatedPayload
	AuthorWelcome []AuthorWelcomePayload
	BookCreated   []BookCreatedPayload
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) PublishAuthorCreated(ctx context.Context, payload AuthorCreatedPayload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	r.AuthorCreated = append(r.AuthorCreated, payload)
	return nil
}

func (r *Recorder) PublishAuthorWelcome(ctx context.Context, payload AuthorWelcomePayload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	r.AuthorWelcome = append(r.AuthorWelcome, payload)
	return nil
}

func (r *Recorder) PublishBookCreated(ctx context.Context, payload BookCreatedPayload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailWith != nil {
		return r.FailWith
	}
	r.BookCreated = append(r.BookCreated, payload)
	return nil
}
