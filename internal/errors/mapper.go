// internal/errors/mapper.go
package errors

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"gorm.io/gorm"
)

var (
	// ErrForeignKey: a row references a missing parent, or a parent is
	// deleted while children still reference it.
	ErrForeignKey = errors.New("foreign key violation")

	// ErrDuplicateKey: an identifier (or unique column) already exists.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidFixture: the dataset failed validation before any store call.
	ErrInvalidFixture = errors.New("invalid fixture")
)

// Class groups failures for reporting. Nothing is retried based on it.
type Class string

const (
	ClassConstraint Class = "constraint"
	ClassFixture    Class = "fixture"
	ClassTransient  Class = "transient"
	ClassUnknown    Class = "unknown"
)

// Classify buckets a gateway or engine error.
func Classify(err error) Class {
	if err == nil {
		return ""
	}

	var netErr net.Error
	switch {
	case errors.Is(err, ErrInvalidFixture):
		return ClassFixture

	case errors.Is(err, ErrForeignKey),
		errors.Is(err, ErrDuplicateKey),
		errors.Is(err, gorm.ErrForeignKeyViolated),
		errors.Is(err, gorm.ErrDuplicatedKey),
		driverConstraint(err) != nil:
		return ClassConstraint

	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, driver.ErrBadConn),
		errors.As(err, &netErr):
		return ClassTransient

	default:
		return ClassUnknown
	}
}

// Map converts seeding errors into gRPC-friendly status errors.
func Map(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return status.Error(codes.DeadlineExceeded, "seeding timed out")

	case errors.Is(err, context.Canceled):
		return status.Error(codes.Canceled, "seeding was canceled")
	}

	switch Classify(err) {
	case ClassFixture:
		return status.Error(codes.InvalidArgument, err.Error())
	case ClassConstraint:
		return status.Error(codes.FailedPrecondition, err.Error())
	case ClassTransient:
		return status.Error(codes.Unavailable, err.Error())
	default:
		// fallback → bubble up error message for debugging
		return status.Error(codes.Internal, err.Error())
	}
}
