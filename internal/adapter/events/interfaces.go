package events

import "context"

//go:generate mockgen -source=interfaces.go -destination=../../mocks/events_mocks.go -package=mocks

type Publisher interface {
	Publish(ctx context.Context, partitionKey string, payload []byte) error
	Close() error
}
