package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	gcppubsub "cloud.google.com/go/pubsub/v2"
	"cloud.google.com/go/spanner"

	"github.com/murkotick/price-comparator/internal/app/pricing/contracts"
	"github.com/murkotick/price-comparator/internal/pkg/clock"
	"github.com/murkotick/price-comparator/internal/pkg/committer"
	"github.com/murkotick/price-comparator/internal/pkg/config"
	"github.com/murkotick/price-comparator/internal/pkg/logger"
	"github.com/murkotick/price-comparator/internal/pkg/metrics"
)

const (
	defaultBatchSize      = 50
	defaultPollInterval   = time.Second
	defaultPublishTimeout = 15 * time.Second
	maxBackoff            = 10 * time.Second
	jitterWindow          = 250 * time.Millisecond
)

var (
	jitterSource = rand.New(rand.NewSource(time.Now().UnixNano()))

	errNothingPublished = errors.New("no event of the batch could be published")
)

type pendingReader interface {
	FetchPending(ctx context.Context, limit int) ([]contracts.OutboxEvent, error)
}

type outboxMarker interface {
	MarkPublishedMut(eventID string, at time.Time) *spanner.Mutation
	RecordFailureMut(e contracts.OutboxEvent, maxAttempts int, at time.Time) *spanner.Mutation
}

type pubSubClient interface {
	Ping(context.Context) error
	AlertsPublisher() *gcppubsub.Publisher
}

type publisherFactory func() publisher

type publisher interface {
	Publish(context.Context, *gcppubsub.Message) publishResult
}

type publishResult interface {
	Get(context.Context) (string, error)
}

type ServiceParams struct {
	Config           *config.Config
	Logger           *logger.Logger
	Reader           pendingReader
	Marker           outboxMarker
	Committer        contracts.Committer
	PubSub           pubSubClient
	PublisherFactory publisherFactory
	Metrics          *metrics.OutboxMetrics
	Clock            clock.Clock
}

// Service drains pending outbox rows to the alerts topic. Each batch's
// outcomes are written in one Spanner commit: published rows are marked,
// failed rows count an attempt and are parked once maxAttempts is reached.
type Service struct {
	logg             *logger.Logger
	reader           pendingReader
	marker           outboxMarker
	committer        contracts.Committer
	pubsub           pubSubClient
	publisherFactory publisherFactory
	metrics          *metrics.OutboxMetrics
	clock            clock.Clock
	batchSize        int
	pollInterval     time.Duration
	maxAttempts      int
}

func NewService(params ServiceParams) (*Service, error) {
	if params.Config == nil {
		return nil, errors.New("config is required")
	}
	if params.Logger == nil {
		return nil, errors.New("logger is required")
	}
	if params.Reader == nil {
		return nil, errors.New("outbox reader is required")
	}
	if params.Marker == nil {
		return nil, errors.New("outbox repository is required")
	}
	if params.Committer == nil {
		return nil, errors.New("committer is required")
	}
	if params.PubSub == nil {
		return nil, errors.New("pubsub client is required")
	}

	factory := params.PublisherFactory
	if factory == nil {
		factory = func() publisher {
			return newGCPPublisher(params.PubSub.AlertsPublisher())
		}
	}

	clk := params.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}

	batch := params.Config.Outbox.BatchSize
	if batch <= 0 {
		batch = defaultBatchSize
	}
	poll := params.Config.Outbox.PollInterval
	if poll <= 0 {
		poll = defaultPollInterval
	}

	return &Service{
		logg:             params.Logger,
		reader:           params.Reader,
		marker:           params.Marker,
		committer:        params.Committer,
		pubsub:           params.PubSub,
		publisherFactory: factory,
		metrics:          params.Metrics,
		clock:            clk,
		batchSize:        batch,
		pollInterval:     poll,
		maxAttempts:      params.Config.Outbox.MaxAttempts,
	}, nil
}

func (s *Service) Run(ctx context.Context) error {
	if err := s.pubsub.Ping(ctx); err != nil {
		s.logg.Error(ctx, "pubsub ping failed", err)
		return fmt.Errorf("pubsub ping failed: %w", err)
	}

	backoff := s.pollInterval
	for {
		select {
		case <-ctx.Done():
			s.logg.Info(ctx, "outbox publisher context canceled")
			return ctx.Err()
		default:
		}

		processed, err := s.processBatch(ctx)
		if err != nil {
			s.logg.Error(ctx, "outbox publisher batch error", err)
			backoff = nextBackoff(backoff, s.pollInterval, maxBackoff)
			if err := s.sleep(ctx, withJitter(backoff)); err != nil {
				return err
			}
			continue
		}

		backoff = s.pollInterval
		if processed {
			continue
		}
		if err := s.sleep(ctx, withJitter(s.pollInterval)); err != nil {
			return err
		}
	}
}

// processBatch reports whether any pending row was found.
func (s *Service) processBatch(ctx context.Context) (bool, error) {
	events, err := s.reader.FetchPending(ctx, s.batchSize)
	if err != nil {
		return false, fmt.Errorf("fetch pending: %w", err)
	}
	if len(events) == 0 {
		return false, nil
	}

	pub := s.publisherFactory()
	if pub == nil {
		return true, errors.New("alerts publisher not configured")
	}

	plan := committer.NewPlan()
	published := 0
	for _, event := range events {
		fields := s.eventFields(event)
		if err := s.publish(ctx, pub, event); err != nil {
			s.recordFailure(ctx, plan, event, withError(fields, err))
			continue
		}
		plan.Add(s.marker.MarkPublishedMut(event.EventID, s.clock.Now()))
		published++
		s.metrics.IncPublished(event.EventType)
		s.logg.Debug(s.logg.WithFields(ctx, fields), "outbox event published")
	}

	if err := s.committer.Apply(ctx, plan); err != nil {
		return true, fmt.Errorf("record outcome of %d events: %w", plan.Len(), err)
	}
	if published == 0 {
		return true, errNothingPublished
	}
	return true, nil
}

func (s *Service) recordFailure(ctx context.Context, plan *committer.Plan, event contracts.OutboxEvent, fields map[string]any) {
	s.metrics.IncFailed(event.EventType)
	plan.Add(s.marker.RecordFailureMut(event, s.maxAttempts, s.clock.Now()))

	fields["attempts"] = event.Attempts + 1
	if s.maxAttempts > 0 && event.Attempts+1 >= s.maxAttempts {
		s.metrics.IncDeadLettered(event.EventType)
		s.logg.Error(s.logg.WithFields(ctx, fields), "outbox event parked as failed", nil)
		return
	}
	s.logg.Warn(s.logg.WithFields(ctx, fields), "outbox publish failed")
}

func (s *Service) publish(ctx context.Context, pub publisher, event contracts.OutboxEvent) error {
	msg := &gcppubsub.Message{
		Data: []byte(event.PayloadJSON),
		Attributes: map[string]string{
			"event_id":     event.EventID,
			"event_type":   event.EventType,
			"aggregate_id": event.AggregateID,
			"created_at":   event.CreatedAtUTC.Format(time.RFC3339Nano),
		},
	}

	publishCtx, cancel := context.WithTimeout(ctx, defaultPublishTimeout)
	defer cancel()
	result := pub.Publish(publishCtx, msg)
	if result == nil {
		return errors.New("publisher returned nil result")
	}
	_, err := result.Get(publishCtx)
	return err
}

func (s *Service) eventFields(event contracts.OutboxEvent) map[string]any {
	return map[string]any{
		"event_id":     event.EventID,
		"event_type":   event.EventType,
		"aggregate_id": event.AggregateID,
		"batch_size":   s.batchSize,
	}
}

func withError(fields map[string]any, err error) map[string]any {
	fields["error"] = err.Error()
	return fields
}

func (s *Service) sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func nextBackoff(current, base, max time.Duration) time.Duration {
	if current <= 0 {
		current = base
	}
	next := current * 2
	if next > max {
		return max
	}
	return next
}

func withJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return d + time.Duration(jitterSource.Int63n(int64(jitterWindow)))
}

func newGCPPublisher(p *gcppubsub.Publisher) publisher {
	if p == nil {
		return nil
	}
	return &gcpPublisher{Publisher: p}
}

type gcpPublisher struct {
	*gcppubsub.Publisher
}

func (p *gcpPublisher) Publish(ctx context.Context, msg *gcppubsub.Message) publishResult {
	return p.Publisher.Publish(ctx, msg)
}
