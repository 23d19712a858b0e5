package errors

import (
	"context"
	"database/sql/driver"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Class
	}{
		{"nil", nil, ""},
		{"fixture", fmt.Errorf("video#9: %w", ErrInvalidFixture), ClassFixture},
		{"memory fk", fmt.Errorf("delete all user: %w", ErrForeignKey), ClassConstraint},
		{"memory dup", ErrDuplicateKey, ClassConstraint},
		{"gorm fk", fmt.Errorf("create video 1: %w", gorm.ErrForeignKeyViolated), ClassConstraint},
		{"gorm dup", gorm.ErrDuplicatedKey, ClassConstraint},
		{"sqlite fk", sqliteFK, ClassConstraint},
		{"mysql parent row", &mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"}, ClassConstraint},
		{"postgres fk", &pgconn.PgError{Code: "23503"}, ClassConstraint},
		{"sqlite busy", sqlite3.Error{Code: sqlite3.ErrBusy}, ClassUnknown},
		{"deadline", context.DeadlineExceeded, ClassTransient},
		{"bad conn", fmt.Errorf("exec: %w", driver.ErrBadConn), ClassTransient},
		{"other", fmt.Errorf("boom"), ClassUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.err))
		})
	}
}

var sqliteFK = sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintForeignKey}

func TestFromDriver(t *testing.T) {
	assert.NoError(t, FromDriver(nil))

	cases := []struct {
		name string
		err  error
		want error
	}{
		{"sqlite fk", sqliteFK, ErrForeignKey},
		{"sqlite unique", sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintUnique}, ErrDuplicateKey},
		{"mysql child row", &mysql.MySQLError{Number: 1452}, ErrForeignKey},
		{"mysql dup", &mysql.MySQLError{Number: 1062}, ErrDuplicateKey},
		{"postgres fk", fmt.Errorf("exec: %w", &pgconn.PgError{Code: "23503"}), ErrForeignKey},
		{"postgres unique", &pgconn.PgError{Code: "23505"}, ErrDuplicateKey},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FromDriver(tc.err)
			assert.ErrorIs(t, got, tc.want)
			assert.ErrorIs(t, got, tc.err)
		})
	}

	plain := fmt.Errorf("boom")
	assert.Same(t, plain, FromDriver(plain))
	wrapped := fmt.Errorf("%w: x", ErrForeignKey)
	assert.Same(t, wrapped, FromDriver(wrapped))
}

func TestMap(t *testing.T) {
	assert.NoError(t, Map(nil))

	cases := []struct {
		err  error
		code codes.Code
	}{
		{ErrInvalidFixture, codes.InvalidArgument},
		{ErrForeignKey, codes.FailedPrecondition},
		{sqliteFK, codes.FailedPrecondition},
		{driver.ErrBadConn, codes.Unavailable},
		{context.DeadlineExceeded, codes.DeadlineExceeded},
		{context.Canceled, codes.Canceled},
		{fmt.Errorf("boom"), codes.Internal},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, status.Code(Map(tc.err)), "%v", tc.err)
	}
}
