// Package repository contains the data access layer for the artist
// directory.  This file defines error values shared by every repository so
// that services and handlers can tell failure scenarios apart without
// inspecting driver errors.
package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// ErrNotFound is returned when a row addressed by id does not exist.
var ErrNotFound = errors.New("not found")

// ErrArtistNotFound is returned when an artist does not exist or, for
// public lookups, exists but is inactive.  It matches ErrNotFound.
var ErrArtistNotFound = &notFoundError{what: "artist"}

// ErrConflict is returned when a write violates a uniqueness constraint,
// such as a second artist claiming an existing slug.
var ErrConflict = errors.New("conflict")

type notFoundError struct{ what string }

func (e *notFoundError) Error() string        { return e.what + " not found" }
func (e *notFoundError) Is(target error) bool { return target == ErrNotFound }

// mysqlDuplicateEntry is the server error number for unique key violations.
const mysqlDuplicateEntry = 1062

// isDuplicate reports whether err is a MySQL duplicate-key error.
func isDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

// affectedOrNotFound turns a zero-row UPDATE/DELETE into ErrNotFound.
func affectedOrNotFound(n int64, err error) error {
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
