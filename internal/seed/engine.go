package seed

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/vidshare/fixture-seeder/internal/db"
	"github.com/vidshare/fixture-seeder/internal/fixture"
	"github.com/vidshare/fixture-seeder/internal/schema"
)

// Gateway is the persistence boundary the engine drives.
//
//   - DeleteAll removes every row of kind; a no-op on an empty table. It must
//     fail if other rows still reference the rows being deleted.
//   - Create inserts one record. It must fail on an id collision or when a
//     referenced parent does not exist.
type Gateway interface {
	DeleteAll(ctx context.Context, kind schema.Kind) error
	Create(ctx context.Context, rec db.Record) error
}

// Transactor is implemented by gateways that can run a whole reset inside
// one transaction.
type Transactor interface {
	InTx(ctx context.Context, fn func(Gateway) error) error
}

// Report summarizes a successful run.
type Report struct {
	RunID    string
	Teardown []schema.Kind
	Created  map[schema.Kind]int
	Atomic   bool
	Duration time.Duration
}

// Engine resets a store to exactly the fixture dataset.
type Engine struct {
	gw            Gateway
	ds            *fixture.Dataset
	create        []schema.Kind
	teardown      []schema.Kind
	log           *slog.Logger
	transactional bool
}

type Option func(*Engine)

// WithLogger sets the logger. Default discards.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithTransaction toggles single-transaction mode for gateways that support
// it. On by default.
func WithTransaction(on bool) Option {
	return func(e *Engine) { e.transactional = on }
}

// NewEngine derives creation and teardown order from schema.Graph.
func NewEngine(gw Gateway, ds *fixture.Dataset, opts ...Option) (*Engine, error) {
	create, err := schema.CreationOrder()
	if err != nil {
		return nil, fmt.Errorf("derive creation order: %w", err)
	}
	e := &Engine{
		gw:            gw,
		ds:            ds,
		create:        create,
		teardown:      schema.Reverse(create),
		log:           slog.New(slog.NewTextHandler(io.Discard, nil)),
		transactional: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// ResetAndSeed validates the dataset, deletes every kind in teardown order and
// then creates every fixture record in creation order.
//
// Behavior:
//   - An invalid dataset fails before the gateway is called at all.
//   - The first gateway error aborts the run; nothing is retried.
//   - With a Transactor gateway in transactional mode a failure leaves the
//     store as it was. Otherwise what was already applied stays applied.
//
// Example:
//
//	report, err := engine.ResetAndSeed(ctx)
func (e *Engine) ResetAndSeed(ctx context.Context) (*Report, error) {
	started := time.Now()
	report := &Report{
		RunID:    uuid.NewString(),
		Teardown: e.teardown,
		Created:  make(map[schema.Kind]int, len(e.create)),
	}
	log := e.log.With("run_id", report.RunID)

	if err := e.ds.Validate(); err != nil {
		log.Error("fixture validation failed", "err", err)
		return nil, err
	}

	run := func(gw Gateway) error {
		if err := e.Teardown(ctx, gw, log); err != nil {
			return err
		}
		return e.Populate(ctx, gw, log, report.Created)
	}

	var err error
	if tx, ok := e.gw.(Transactor); ok && e.transactional {
		report.Atomic = true
		log.Debug("running in a single transaction")
		err = tx.InTx(ctx, run)
	} else {
		err = run(e.gw)
	}
	if err != nil {
		log.Error("reset-and-seed aborted", "err", err, "atomic", report.Atomic)
		return nil, err
	}

	report.Duration = time.Since(started)
	log.Info("reset-and-seed completed", "kinds", len(report.Created), "took", report.Duration)
	return report, nil
}

// Teardown deletes every kind, children before parents.
func (e *Engine) Teardown(ctx context.Context, gw Gateway, log *slog.Logger) error {
	if log == nil {
		log = e.log
	}
	for _, kind := range e.teardown {
		if err := gw.DeleteAll(ctx, kind); err != nil {
			return fmt.Errorf("delete all %s: %w", kind, err)
		}
		log.Debug("cleared", "kind", kind)
	}
	log.Info("cleared existing data", "kinds", len(e.teardown))
	return nil
}

// Populate creates every fixture record, parents before children, preserving
// the authoring order within a kind. Counts are recorded into created when
// it is non-nil.
func (e *Engine) Populate(ctx context.Context, gw Gateway, log *slog.Logger, created map[schema.Kind]int) error {
	if log == nil {
		log = e.log
	}
	for _, kind := range e.create {
		recs := e.ds.Records(kind)
		for _, rec := range recs {
			if err := gw.Create(ctx, rec); err != nil {
				return fmt.Errorf("create %s %d: %w", kind, rec.Key(), err)
			}
		}
		if created != nil {
			created[kind] = len(recs)
		}
		log.Info("seeded", "kind", kind, "count", len(recs))
	}
	return nil
}
