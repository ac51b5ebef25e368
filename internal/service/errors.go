// Package service holds the request-scoped business operations: contact
// link resolution, collection reordering and engagement tracking.  Each
// operation reports failures through the error values below so that
// transports can map them to status codes without knowing about the store.
package service

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrInvalidRequest: the caller supplied malformed or missing input.
	// Detected before any store access.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrNotFound: the referenced artist does not exist or is inactive.
	ErrNotFound = errors.New("not found")
	// ErrForbidden: the request references records outside the artist's scope.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthorized: an operation requiring an operator was called without one.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrPartialFailure: a multi-step write applied some but not all steps.
	ErrPartialFailure = errors.New("partial failure")
	// ErrServiceUnavailable: the store was unreachable or timed out.
	ErrServiceUnavailable = errors.New("service unavailable")
	// ErrInternal: any other unexpected failure.
	ErrInternal = errors.New("internal error")
)

// invalid wraps ErrInvalidRequest with a caller-facing reason.
func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}

// ReorderError reports a reorder that stopped after Applied of Total
// position updates.  It matches ErrPartialFailure and unwraps to the store
// error that interrupted it.
type ReorderError struct {
	Applied int
	Total   int
	Err     error
}

func (e *ReorderError) Error() string {
	return fmt.Sprintf("reorder applied %d of %d updates: %v", e.Applied, e.Total, e.Err)
}

func (e *ReorderError) Unwrap() error { return e.Err }

func (e *ReorderError) Is(target error) bool { return target == ErrPartialFailure }

// classifyStoreError maps a data-store failure onto the taxonomy.  The
// original error stays in the chain.
func classifyStoreError(err error) error {
	if err == nil {
		return nil
	}
	if IsUnavailable(err) {
		return fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}
	return fmt.Errorf("%w: %w", ErrInternal, err)
}

// IsUnavailable reports whether err means the store could not be reached
// or did not answer in time, as opposed to rejecting the query.
func IsUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) ||
		errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}
