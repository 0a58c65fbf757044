package ids

import (
	"errors"
	"fmt"
)

// ErrIDTaken is the one ordinary failure of the engine: the requested raw id
// is already bound. Callers are expected to recover (e.g. ask the user for a
// different name).
var ErrIDTaken = errors.New("ids: raw id already taken")

// Invariant violations. These are always wrapped in an *InvariantError and
// point at a programming error, not at bad user input.
var (
	ErrInvalidRaw     = errors.New("ids: invalid raw id")
	ErrNotOrdered     = errors.New("ids: format has no ordered allocation")
	ErrExists         = errors.New("ids: id already live")
	ErrNotFound       = errors.New("ids: id not live")
	ErrUnknownID      = errors.New("ids: id not remembered by store")
	ErrForeignID      = errors.New("ids: id belongs to a different store")
	ErrMemberMismatch = errors.New("ids: a different member is stored under id")
	ErrInUse          = errors.New("ids: id still has a live member")
	ErrWrongScope     = errors.New("ids: id owned by another scope")
	ErrNotInSubset    = errors.New("ids: id not active in subset")
	ErrWrongKind      = errors.New("ids: member kind does not match projection")
	ErrReentrant      = errors.New("ids: store mutated during rename")
	ErrNilID          = errors.New("ids: member has no id")
)

// InvariantError reports a broken engine invariant.
type InvariantError struct {
	Op    string // operation that failed, e.g. "add", "rename"
	Store string // store or view name
	Raw   string // raw id involved, if any
	Err   error  // one of the Err* sentinels, possibly wrapped
}

func (e *InvariantError) Error() string {
	if e.Raw == "" {
		return fmt.Sprintf("%s in %s: %v", e.Op, e.Store, e.Err)
	}
	return fmt.Sprintf("%s %q in %s: %v", e.Op, e.Raw, e.Store, e.Err)
}

// Unwrap allows errors.Is against the sentinels.
func (e *InvariantError) Unwrap() error {
	return e.Err
}

// IsInvariant reports whether err is an invariant violation rather than an
// ordinary condition.
func IsInvariant(err error) bool {
	var ie *InvariantError
	return errors.As(err, &ie)
}

func violation[R Raw](op, where string, id *ID[R], err error) error {
	raw := ""
	if id != nil {
		raw = fmt.Sprint(id.parsed.Raw)
	}
	return &InvariantError{Op: op, Store: where, Raw: raw, Err: err}
}
