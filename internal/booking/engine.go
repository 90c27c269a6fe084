package booking

import (
	"context"
	"database/sql"
	"time"

	"github.com/iliyamo/cabin-reservation/internal/queue"
	"github.com/iliyamo/cabin-reservation/internal/repository"
)

// Notifier publishes domain events after a successful commit.  The
// engine never fails an operation because of the notifier; publishing
// is strictly best-effort and implementations are expected to log
// their own errors.
type Notifier interface {
	Publish(ctx context.Context, ev queue.Event) error
}

// Engine groups the repositories required for the reservation and
// payment operations.  All mutating operations run their critical
// section inside a single transaction started here, so a reservation
// with its assignments, or a payment with its balance update, commits
// or rolls back as one unit.
type Engine struct {
	db           *sql.DB
	cabins       *repository.CabinRepo
	services     *repository.ServiceRepo
	reservations *repository.ReservationRepo
	payments     *repository.PaymentRepo
	notifier     Notifier
	now          func() time.Time
}

// NewEngine constructs an Engine.  All repositories must be non-nil;
// the notifier may be nil, which disables event publishing.
func NewEngine(db *sql.DB, cabins *repository.CabinRepo, services *repository.ServiceRepo, reservations *repository.ReservationRepo, payments *repository.PaymentRepo, notifier Notifier) *Engine {
	if db == nil || cabins == nil || services == nil || reservations == nil || payments == nil {
		panic("nil dependency passed to NewEngine")
	}
	return &Engine{
		db:           db,
		cabins:       cabins,
		services:     services,
		reservations: reservations,
		payments:     payments,
		notifier:     notifier,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// WithClock overrides the engine's time source.  Production code
// leaves the default; tests use it to pin "now".
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// publish sends an event if a notifier is configured.  Failures are
// swallowed here; the publisher logs them and the commit has already
// happened.
func (e *Engine) publish(ctx context.Context, ev queue.Event) {
	if e.notifier == nil {
		return
	}
	_ = e.notifier.Publish(ctx, ev)
}
