// Package dberr translates driver-level database errors into a closed set of
// semantic kinds. It is the single place in the codebase that looks at
// Postgres error codes; everything above it switches on Kind.
package dberr

import (
	"context"
	"errors"
	"net"
	"syscall"

	"github.com/jackc/pgx/v5/pgconn"
)

type Kind int

const (
	KindOther Kind = iota
	KindConnection
	KindAuth
	KindNoDatabase
	KindNoTable
	KindDuplicate
	KindForeignKey
)

// Postgres SQLSTATE codes we care about.
const (
	codeInvalidPassword = "28P01"
	codeInvalidCatalog  = "3D000"
	codeUndefinedTable  = "42P01"
	codeUniqueViolation = "23505"
	codeFKViolation     = "23503"
)

type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string { return e.Message }
func (e *Error) Unwrap() error { return e.cause }

// KindOf returns the kind of a classified error, or KindOther for anything
// that did not pass through Classify.
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindOther
}

// Classify wraps a database error with its semantic kind. nil passes through.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeInvalidPassword:
			return wrap(err, KindAuth, "Database authentication failed. Please check your credentials.")
		case codeInvalidCatalog:
			return wrap(err, KindNoDatabase, "Database not found. Please create the database first.")
		case codeUndefinedTable:
			return wrap(err, KindNoTable, "Table not found. Please run the database migrations.")
		case codeUniqueViolation:
			return wrap(err, KindDuplicate, "A todo with this information already exists.")
		case codeFKViolation:
			return wrap(err, KindForeignKey, "Invalid reference. The requested resource does not exist.")
		}
		return wrap(err, KindOther, "Database error: "+pgErr.Message)
	}

	if isConnectionError(err) {
		return wrap(err, KindConnection, "Database connection failed. Please check if the database server is running.")
	}

	return wrap(err, KindOther, "Database error: "+err.Error())
}

func isConnectionError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

func wrap(err error, kind Kind, msg string) error {
	return &Error{Kind: kind, Message: msg, cause: err}
}
