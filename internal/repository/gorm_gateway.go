package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vidshare/fixture-seeder/internal/db"
	seedErr "github.com/vidshare/fixture-seeder/internal/errors"
	"github.com/vidshare/fixture-seeder/internal/schema"
	"github.com/vidshare/fixture-seeder/internal/seed"
)

// GormGateway persists fixture records through GORM.
// It works against any dialect NewDB can open.
type GormGateway struct {
	db *gorm.DB
}

// NewGormGateway creates a gateway bound to the given DB connection.
func NewGormGateway(database *gorm.DB) *GormGateway {
	return &GormGateway{db: database}
}

// DeleteAll empties the table backing kind.
//
// Behavior:
//   - Empty tables are fine; the DELETE simply affects zero rows.
//   - Rows still referenced from another table make the store reject the
//     statement; the error wraps seedErr.ErrForeignKey.
//   - On SQLite the table's AUTOINCREMENT sequence is reset as well.
func (g *GormGateway) DeleteAll(ctx context.Context, kind schema.Kind) error {
	m, ok := db.ModelFor(kind)
	if !ok {
		return fmt.Errorf("no model for kind %q", kind)
	}
	tx := g.db.WithContext(ctx)

	if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(m).Error; err != nil {
		return seedErr.FromDriver(err)
	}

	if tx.Dialector.Name() == "sqlite" {
		err := tx.Exec("DELETE FROM sqlite_sequence WHERE name = ?", m.TableName()).Error
		return sequenceResetErr(m.TableName(), err)
	}
	return nil
}

// sequenceResetErr drops the error of a sqlite_sequence reset when the
// table does not exist; it is only created once an AUTOINCREMENT table was
// written to.
func sequenceResetErr(table string, err error) error {
	if err == nil || strings.Contains(err.Error(), "no such table: sqlite_sequence") {
		return nil
	}
	return fmt.Errorf("reset sequence of %s: %w", table, err)
}

// Create inserts rec with its author-assigned primary key. Associations are
// never cascaded; parents must already exist.
func (g *GormGateway) Create(ctx context.Context, rec db.Record) error {
	return seedErr.FromDriver(g.db.WithContext(ctx).Omit(clause.Associations).Create(rec).Error)
}

// InTx runs fn against a gateway bound to a single transaction. Any error
// from fn rolls everything back.
func (g *GormGateway) InTx(ctx context.Context, fn func(seed.Gateway) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&GormGateway{db: tx})
	})
}

var (
	_ seed.Gateway    = (*GormGateway)(nil)
	_ seed.Transactor = (*GormGateway)(nil)
)
