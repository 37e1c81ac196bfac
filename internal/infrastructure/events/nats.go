package events

import (
	"context"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

const PartitionKeyHeader = "Partition-Key"

type NATSPublisher struct {
	nc      *nats.Conn
	subject string
}

// NewNATSPublisher does not require the server at startup: a failed first
// connect keeps retrying in the background and publishes are buffered until
// the reconnect buffer fills, after which they fail and are logged by the
// notifier. Only a malformed url is an error.
func NewNATSPublisher(url, subject string) (*NATSPublisher, error) {
	nc, err := nats.Connect(url,
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.Timeout(5*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("connecting to nats: %w", err)
	}
	return &NATSPublisher{nc: nc, subject: subject}, nil
}

func (p *NATSPublisher) Publish(_ context.Context, partitionKey string, payload []byte) error {
	msg := nats.NewMsg(p.subject)
	msg.Header.Set(PartitionKeyHeader, partitionKey)
	msg.Data = payload

	if err := p.nc.PublishMsg(msg); err != nil {
		return fmt.Errorf("publishing nats message: %w", err)
	}
	return nil
}

func (p *NATSPublisher) Close() error {
	if p.nc == nil {
		return nil
	}
	// Drain refuses a connection that never came up.
	if !p.nc.IsConnected() {
		p.nc.Close()
		return nil
	}
	return p.nc.Drain()
}
