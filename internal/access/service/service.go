// Package service implements the access policy checks backing the session gate
// and the maintenance surface that edits the allow-list.
package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks Store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"vitrina/internal/access/models"
	"vitrina/internal/platform/metrics"
	"vitrina/internal/sentinel"
	"vitrina/pkg/circuit"
	dErrors "vitrina/pkg/domain-errors"
)

// Store defines the persistence interface for allow-list records.
// Error Contract: Find methods return sentinel.ErrNotFound when the record
// doesn't exist; Create returns sentinel.ErrAlreadyUsed on duplicates.
type Store interface {
	Create(ctx context.Context, record *models.AccessRecord) error
	FindByTelegramID(ctx context.Context, telegramID int64) (*models.AccessRecord, error)
	Delete(ctx context.Context, telegramID int64) error
	ListAll(ctx context.Context) ([]*models.AccessRecord, error)
	Count(ctx context.Context) (int, error)
}

const (
	defaultCheckTimeout = 3 * time.Second

	// openProbeTimeout bounds lookups while the store circuit is open.
	openProbeTimeout = 500 * time.Millisecond
)

// Service exposes allow-list reads for the gate and writes for maintenance.
type Service struct {
	store        Store
	logger       *slog.Logger
	metrics      *metrics.Metrics
	tracer       trace.Tracer
	checkTimeout time.Duration

	// breaker sheds load from a failing store: while open, IsAuthorized
	// denies immediately instead of waiting out the timeout on every request.
	breaker *circuit.Breaker
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithMetrics enables access check counters and latency histograms.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithCheckTimeout bounds a single IsAuthorized round trip. Values <= 0 keep
// the default.
func WithCheckTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.checkTimeout = d
		}
	}
}

// New creates the access service.
func New(store Store, opts ...Option) *Service {
	svc := &Service{
		store:        store,
		checkTimeout: defaultCheckTimeout,
		tracer:       otel.Tracer("vitrina/access"),
		breaker:      circuit.New("access-store"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	return svc
}

// IsAuthorized reports whether an allow-list record exists for the telegram id.
//
// The lookup is bounded by the configured timeout and retried once on a
// transient store failure. Any remaining error is returned alongside false so
// the gate can fail closed; the reason is never surfaced to the end user.
func (s *Service) IsAuthorized(ctx context.Context, telegramID int64) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "access.IsAuthorized",
		trace.WithAttributes(attribute.Int64("telegram_id", telegramID)))
	defer span.End()

	start := time.Now()
	defer func() {
		if s.metrics != nil {
			s.metrics.AccessCheckLatency.Observe(time.Since(start).Seconds())
		}
	}()

	// While the circuit is open the lookup still runs, but fails fast and
	// without the retry, so a recovered store closes the circuit again.
	timeout := s.checkTimeout
	open := s.breaker.IsOpen()
	if open && timeout > openProbeTimeout {
		timeout = openProbeTimeout
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := s.store.FindByTelegramID(ctx, telegramID)
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) && !open && ctx.Err() == nil {
		// One bounded retry on a transient failure; a second failure denies.
		_, err = s.store.FindByTelegramID(ctx, telegramID)
	}

	switch {
	case err == nil:
		s.recordStoreSuccess(ctx)
		s.count("allowed")
		return true, nil
	case errors.Is(err, sentinel.ErrNotFound):
		s.recordStoreSuccess(ctx)
		s.count("denied")
		return false, nil
	default:
		if _, change := s.breaker.RecordFailure(); change.Opened {
			s.logger.ErrorContext(ctx, "access store circuit opened", "breaker", s.breaker.Name())
		}
		s.count("error")
		s.logger.ErrorContext(ctx, "access check failed, denying",
			"error", err,
			"telegram_id", telegramID,
		)
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "access check failed")
	}
}

func (s *Service) recordStoreSuccess(ctx context.Context) {
	if _, change := s.breaker.RecordSuccess(); change.Closed {
		s.logger.InfoContext(ctx, "access store circuit closed", "breaker", s.breaker.Name())
	}
}

// Grant adds a telegram id to the allow-list. Only the maintenance surface
// calls this; the gate path never writes.
func (s *Service) Grant(ctx context.Context, telegramID int64) (*models.AccessRecord, error) {
	if telegramID <= 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "telegram id must be a positive number")
	}

	record := &models.AccessRecord{
		ID:         uuid.New(),
		TelegramID: telegramID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.Create(ctx, record); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "telegram id already has access")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not grant access")
	}

	s.logger.InfoContext(ctx, "access granted", "telegram_id", telegramID, "record_id", record.ID)
	return record, nil
}

// Revoke removes a telegram id from the allow-list.
func (s *Service) Revoke(ctx context.Context, telegramID int64) error {
	if err := s.store.Delete(ctx, telegramID); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return dErrors.New(dErrors.CodeNotFound, "telegram id has no access record")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "could not revoke access")
	}
	s.logger.InfoContext(ctx, "access revoked", "telegram_id", telegramID)
	return nil
}

// List returns all allow-list records, newest first.
func (s *Service) List(ctx context.Context) ([]*models.AccessRecord, error) {
	records, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "could not list access records")
	}
	return records, nil
}

func (s *Service) count(result string) {
	if s.metrics != nil {
		s.metrics.AccessChecks.WithLabelValues(result).Inc()
	}
}
