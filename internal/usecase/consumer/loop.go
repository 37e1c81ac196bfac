package consumer

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/marcos-nsantos/image-pipeline/internal/adapter/message"
	"github.com/marcos-nsantos/image-pipeline/internal/adapter/queue"
	"github.com/marcos-nsantos/image-pipeline/internal/domain/entity"
	"github.com/marcos-nsantos/image-pipeline/internal/infrastructure/observability"
)

//go:generate mockgen -source=loop.go -destination=../../mocks/consumer_mocks.go -package=mocks

type IngestHandler interface {
	HandleBatch(ctx context.Context, batch message.FinalizationBatch) error
}

type ResizeHandler interface {
	ProcessResizeTask(ctx context.Context, task entity.ResizeTask) error
}

type AckPolicy string

const (
	// AckAlways deletes every message after dispatch, failed or not. A
	// failed task is dropped; the image stays at its current status.
	AckAlways AckPolicy = "always"
	// AckOnSuccess leaves failed messages on the queue so they reappear
	// once the visibility timeout expires.
	AckOnSuccess AckPolicy = "on-success"
)

const (
	outcomeSucceeded = "succeeded"
	outcomeFailed    = "failed"
	outcomeUnknown   = "unknown"

	previewBytes = 200
)

type Config struct {
	AckPolicy         AckPolicy
	Receive           queue.ReceiveOptions
	HeartbeatInterval time.Duration
	ErrorBackoff      time.Duration
}

type Stats struct {
	Received  int64
	Succeeded int64
	Failed    int64
	Unknown   int64
	Deleted   int64
}

type counters struct {
	received  atomic.Int64
	succeeded atomic.Int64
	failed    atomic.Int64
	unknown   atomic.Int64
	deleted   atomic.Int64
}

// Loop polls the resize queue first and the ingest queue only when the
// resize queue is empty, so in-flight images finish before new ones start.
// It runs sequentially; run more processes to scale out.
type Loop struct {
	resizeQueue queue.Queue
	ingestQueue queue.Queue
	ingest      IngestHandler
	resize      ResizeHandler
	cfg         Config
	logger      *zap.Logger

	stopped  atomic.Bool
	stats    counters
	lastBeat time.Time

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)
}

func NewLoop(
	resizeQueue, ingestQueue queue.Queue,
	ingest IngestHandler,
	resize ResizeHandler,
	cfg Config,
	logger *zap.Logger,
) *Loop {
	if cfg.AckPolicy == "" {
		cfg.AckPolicy = AckAlways
	}
	return &Loop{
		resizeQueue: resizeQueue,
		ingestQueue: ingestQueue,
		ingest:      ingest,
		resize:      resize,
		cfg:         cfg,
		logger:      logger.With(zap.String("component", "consumer")),
		now:         time.Now,
		sleep:       sleepCtx,
	}
}

// Stop asks Run to return after the current batch. In-flight handlers are
// not interrupted.
func (l *Loop) Stop() {
	l.stopped.Store(true)
}

func (l *Loop) Stopped() bool {
	return l.stopped.Load()
}

func (l *Loop) Stats() Stats {
	return Stats{
		Received:  l.stats.received.Load(),
		Succeeded: l.stats.succeeded.Load(),
		Failed:    l.stats.failed.Load(),
		Unknown:   l.stats.unknown.Load(),
		Deleted:   l.stats.deleted.Load(),
	}
}

// Run polls until Stop is called. Cancelling ctx aborts a pending receive
// but, like Stop, never cuts a handler short.
func (l *Loop) Run(ctx context.Context) {
	l.logger.Info("consumer starting",
		zap.String("resize_queue", l.resizeQueue.Name()),
		zap.String("ingest_queue", l.ingestQueue.Name()),
		zap.String("ack_policy", string(l.cfg.AckPolicy)),
	)
	l.lastBeat = l.now()

	for !l.stopped.Load() {
		if ctx.Err() != nil {
			l.Stop()
			break
		}
		l.PollOnce(ctx)
	}

	s := l.Stats()
	l.logger.Info("consumer stopped",
		zap.Int64("received", s.Received),
		zap.Int64("succeeded", s.Succeeded),
		zap.Int64("failed", s.Failed),
		zap.Int64("unknown", s.Unknown),
		zap.Int64("deleted", s.Deleted),
	)
}

// PollOnce runs one cycle and returns how many messages it handled.
func (l *Loop) PollOnce(ctx context.Context) int {
	src, msgs, err := l.poll(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return 0
		}
		l.logger.Error("receiving messages", zap.Error(err))
		l.sleep(ctx, l.cfg.ErrorBackoff)
		return 0
	}

	if len(msgs) == 0 {
		l.heartbeat()
		return 0
	}

	work := context.WithoutCancel(ctx)
	for _, msg := range msgs {
		l.handle(work, src, msg)
	}
	return len(msgs)
}

func (l *Loop) poll(ctx context.Context) (queue.Queue, []queue.Message, error) {
	msgs, err := l.resizeQueue.Receive(ctx, l.cfg.Receive)
	if err != nil {
		return nil, nil, err
	}
	if len(msgs) > 0 {
		return l.resizeQueue, msgs, nil
	}

	msgs, err = l.ingestQueue.Receive(ctx, l.cfg.Receive)
	if err != nil {
		return nil, nil, err
	}
	return l.ingestQueue, msgs, nil
}

func (l *Loop) handle(ctx context.Context, src queue.Queue, msg queue.Message) {
	l.stats.received.Add(1)
	log := l.logger.With(zap.String("queue", src.Name()), zap.String("message_id", msg.ID))

	outcome := outcomeSucceeded
	err := l.dispatch(ctx, msg)
	switch {
	case errors.Is(err, errUnknownPayload):
		outcome = outcomeUnknown
		l.stats.unknown.Add(1)
	case err != nil:
		outcome = outcomeFailed
		l.stats.failed.Add(1)
		log.Error("handling message", zap.Error(err))
	default:
		l.stats.succeeded.Add(1)
	}
	observability.RecordMessage(src.Name(), outcome)

	if outcome == outcomeFailed && l.cfg.AckPolicy == AckOnSuccess {
		log.Info("leaving failed message for redelivery")
		return
	}

	if err := src.Delete(ctx, msg); err != nil {
		log.Warn("deleting message", zap.Error(err))
		return
	}
	l.stats.deleted.Add(1)
}

var errUnknownPayload = errors.New("unknown payload")

func (l *Loop) dispatch(ctx context.Context, msg queue.Message) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()

	switch p := message.Decode(msg.Body).(type) {
	case message.FinalizationBatch:
		return l.ingest.HandleBatch(ctx, p)
	case message.ResizeTask:
		return l.resize.ProcessResizeTask(ctx, p.Task)
	case message.Unknown:
		l.logger.Warn("unknown message",
			zap.String("message_id", msg.ID),
			zap.String("reason", p.Reason),
			zap.String("body", message.Preview(p.Body, previewBytes)),
		)
		return errUnknownPayload
	default:
		return errUnknownPayload
	}
}

func (l *Loop) heartbeat() {
	if l.cfg.HeartbeatInterval <= 0 {
		return
	}
	now := l.now()
	if now.Sub(l.lastBeat) < l.cfg.HeartbeatInterval {
		return
	}
	l.lastBeat = now

	s := l.Stats()
	l.logger.Info("heartbeat",
		zap.Int64("received", s.Received),
		zap.Int64("succeeded", s.Succeeded),
		zap.Int64("failed", s.Failed),
		zap.Int64("unknown", s.Unknown),
		zap.Int64("deleted", s.Deleted),
	)
}

func sleepCtx(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
