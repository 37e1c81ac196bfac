package events

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/observability"
)

const (
	ActionInit     = "init"
	ActionUploaded = "uploaded"
)

type Event struct {
	ImageID string `json:"imageId"`
	Action  string `json:"action"`
}

// Notifier emits lifecycle events. Emission is fire-and-forget: a publish
// error is logged and dropped, and never reaches the caller.
type Notifier struct {
	publisher Publisher
	logger    *zap.Logger
}

func NewNotifier(publisher Publisher, logger *zap.Logger) *Notifier {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &Notifier{publisher: publisher, logger: logger}
}

func (n *Notifier) Emit(ctx context.Context, imageID, action string) {
	payload, err := json.Marshal(Event{ImageID: imageID, Action: action})
	if err != nil {
		n.logger.Warn("encoding event", zap.String("image_id", imageID), zap.Error(err))
		return
	}

	if err := n.publisher.Publish(ctx, imageID, payload); err != nil {
		observability.RecordEventPublishFailure(action)
		n.logger.Warn("publishing event",
			zap.String("image_id", imageID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// NopPublisher is used when no event stream is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, []byte) error { return nil }

func (NopPublisher) Close() error { return nil }
