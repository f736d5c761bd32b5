// Package errdefs defines the failure kinds a backup run can end with.
package errdefs

import (
	"errors"
	"fmt"
)

// Kind classifies a terminal failure of the workflow.
type Kind string

const (
	KindPrerequisite Kind = "prerequisite"
	KindCredential   Kind = "credential"
	KindConnectivity Kind = "connectivity"
	KindDump         Kind = "dump"
	KindPackaging    Kind = "packaging"
	KindTransfer     Kind = "transfer"
	KindRestore      Kind = "restore"
)

// Error is the structured error returned by each workflow step. It carries
// the failure kind, the operation that failed, and the underlying cause.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s error: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err as a failure of the given kind.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Newf formats a cause and wraps it as a failure of the given kind.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// KindOf returns the kind of err, or the empty Kind when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err is a failure of the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// ExitCode maps an error to the process exit code. Each failure kind gets a
// stable code so operators and schedulers can tell them apart.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case KindPrerequisite:
		return 2
	case KindCredential:
		return 3
	case KindConnectivity:
		return 4
	case KindDump:
		return 5
	case KindPackaging:
		return 6
	case KindTransfer:
		return 7
	case KindRestore:
		return 8
	default:
		return 1
	}
}
