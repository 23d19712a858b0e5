package repository

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/vidshare/fixture-seeder/internal/db"
	seedErr "github.com/vidshare/fixture-seeder/internal/errors"
	"github.com/vidshare/fixture-seeder/internal/schema"
	"github.com/vidshare/fixture-seeder/internal/seed"
)

// Op is one call recorded by MemoryGateway.
type Op struct {
	Action string // "delete_all" | "create"
	Kind   schema.Kind
	ID     uint64
}

// MemoryGateway is an in-memory store with the same contract as a relational
// backend that enforces foreign keys. Tests use it to exercise the engine
// without a database.
type MemoryGateway struct {
	mu       sync.Mutex
	rows     map[schema.Kind]map[uint64]db.Record
	ops      []Op
	failures map[schema.Ref]error
}

func NewMemoryGateway() *MemoryGateway {
	return &MemoryGateway{
		rows:     map[schema.Kind]map[uint64]db.Record{},
		failures: map[schema.Ref]error{},
	}
}

// FailCreate makes the next Create of (kind, id) return err instead of
// storing the record.
func (m *MemoryGateway) FailCreate(kind schema.Kind, id uint64, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[schema.Ref{Kind: kind, ID: id}] = err
}

// DeleteAll removes every row of kind, unless a row of any kind still
// references one of them.
func (m *MemoryGateway) DeleteAll(_ context.Context, kind schema.Kind) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ops = append(m.ops, Op{Action: "delete_all", Kind: kind})
	for other, rows := range m.rows {
		if other == kind {
			continue
		}
		for _, r := range rows {
			for _, ref := range r.Refs() {
				if _, live := m.rows[kind][ref.ID]; ref.Kind == kind && live {
					return fmt.Errorf("%w: %s still referenced by %s#%d",
						seedErr.ErrForeignKey, ref, other, r.Key())
				}
			}
		}
	}
	delete(m.rows, kind)
	return nil
}

// Create stores a copy of rec.
func (m *MemoryGateway) Create(_ context.Context, rec db.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	kind, id := rec.Kind(), rec.Key()
	m.ops = append(m.ops, Op{Action: "create", Kind: kind, ID: id})

	self := schema.Ref{Kind: kind, ID: id}
	if err, ok := m.failures[self]; ok {
		delete(m.failures, self)
		return err
	}
	if _, dup := m.rows[kind][id]; dup {
		return fmt.Errorf("%w: %s", seedErr.ErrDuplicateKey, self)
	}
	for _, ref := range rec.Refs() {
		if _, ok := m.rows[ref.Kind][ref.ID]; !ok {
			return fmt.Errorf("%w: %s references missing %s", seedErr.ErrForeignKey, self, ref)
		}
	}

	if m.rows[kind] == nil {
		m.rows[kind] = map[uint64]db.Record{}
	}
	m.rows[kind][id] = clone(rec)
	return nil
}

// InTx runs fn against m and restores the previous contents if fn fails.
func (m *MemoryGateway) InTx(_ context.Context, fn func(seed.Gateway) error) error {
	m.mu.Lock()
	saved := make(map[schema.Kind]map[uint64]db.Record, len(m.rows))
	for k, rows := range m.rows {
		cp := make(map[uint64]db.Record, len(rows))
		for id, r := range rows {
			cp[id] = r
		}
		saved[k] = cp
	}
	m.mu.Unlock()

	if err := fn(m); err != nil {
		m.mu.Lock()
		m.rows = saved
		m.mu.Unlock()
		return err
	}
	return nil
}

// Count is the number of rows of kind.
func (m *MemoryGateway) Count(kind schema.Kind) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows[kind])
}

// Get returns a copy of the row (kind, id).
func (m *MemoryGateway) Get(kind schema.Kind, id uint64) (db.Record, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rows[kind][id]
	if !ok {
		return nil, false
	}
	return clone(r), true
}

// All returns copies of every row of kind ordered by id.
func (m *MemoryGateway) All(kind schema.Kind) []db.Record {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]db.Record, 0, len(m.rows[kind]))
	for _, r := range m.rows[kind] {
		out = append(out, clone(r))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// Ops returns the calls seen so far.
func (m *MemoryGateway) Ops() []Op {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Op(nil), m.ops...)
}

// ResetOps forgets the recorded calls.
func (m *MemoryGateway) ResetOps() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ops = nil
}

// clone copies the struct behind rec so later writes to the caller's value
// do not leak into the store.
func clone(rec db.Record) db.Record {
	v := reflect.ValueOf(rec)
	if v.Kind() != reflect.Pointer {
		p := reflect.New(v.Type())
		p.Elem().Set(v)
		return p.Interface().(db.Record)
	}
	p := reflect.New(v.Elem().Type())
	p.Elem().Set(v.Elem())
	return p.Interface().(db.Record)
}

var (
	_ seed.Gateway    = (*MemoryGateway)(nil)
	_ seed.Transactor = (*MemoryGateway)(nil)
)
