package queue

import (
	"context"
	"time"
)

//go:generate mockgen -source=interfaces.go -destination=../../mocks/queue_mocks.go -package=mocks

type Message struct {
	ID            string
	Body          []byte
	ReceiptHandle string
}

type ReceiveOptions struct {
	MaxMessages int
	Wait        time.Duration
	Visibility  time.Duration
}

// Queue is an at-least-once work queue. A received message stays hidden for
// the visibility timeout and reappears unless it is deleted.
type Queue interface {
	Name() string
	Receive(ctx context.Context, opts ReceiveOptions) ([]Message, error)
	Delete(ctx context.Context, msg Message) error
	Send(ctx context.Context, body []byte) error
}
