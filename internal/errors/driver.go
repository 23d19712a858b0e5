package errors

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
)

// MySQL server error numbers.
const (
	mysqlDupEntry         = 1062
	mysqlNoReferencedRow  = 1216
	mysqlRowIsReferenced  = 1217
	mysqlRowIsReferenced2 = 1451 // delete or update of a parent row
	mysqlNoReferencedRow2 = 1452 // insert of a child row
)

const (
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"

	sqliteForeignKeyMessage = "FOREIGN KEY constraint failed"
)

// FromDriver wraps a raw driver constraint error with ErrForeignKey or
// ErrDuplicateKey. GORM's own translator skips some of these, for example
// the sqlite error raised when a DELETE hits a RESTRICT reference. Other
// errors, and nil, are returned unchanged.
func FromDriver(err error) error {
	if err == nil {
		return nil
	}
	if sentinel := driverConstraint(err); sentinel != nil && !errors.Is(err, sentinel) {
		return fmt.Errorf("%w: %w", sentinel, err)
	}
	return err
}

func driverConstraint(err error) error {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && sqliteErr.Code == sqlite3.ErrConstraint {
		switch sqliteErr.ExtendedCode {
		case sqlite3.ErrConstraintForeignKey:
			return ErrForeignKey
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return ErrDuplicateKey
		}
		if strings.Contains(sqliteErr.Error(), sqliteForeignKeyMessage) {
			return ErrForeignKey
		}
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		switch mysqlErr.Number {
		case mysqlRowIsReferenced, mysqlRowIsReferenced2, mysqlNoReferencedRow, mysqlNoReferencedRow2:
			return ErrForeignKey
		case mysqlDupEntry:
			return ErrDuplicateKey
		}
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgForeignKeyViolation:
			return ErrForeignKey
		case pgUniqueViolation:
			return ErrDuplicateKey
		}
	}
	return nil
}
