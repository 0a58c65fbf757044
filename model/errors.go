package model

import (
	"errors"
	"fmt"

	"github.com/arthur-debert/tamodel/ids"
)

// Errors a caller can act on. Invariant violations from the ids package are
// passed through wrapped and still satisfy ids.IsInvariant.
var (
	// ErrDuplicateID is returned when a raw id is already taken. It always
	// wraps ids.ErrIDTaken as well.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrUnknownReference is returned when a raw reference (a location of an
	// edge, a component of an instance, a member of a system edge) does not
	// resolve.
	ErrUnknownReference = errors.New("unknown reference")

	// ErrInvalidValue is returned for enum values outside their domain.
	ErrInvalidValue = errors.New("invalid value")

	// ErrComponentInUse is returned when deleting a component that a system
	// still instantiates.
	ErrComponentInUse = errors.New("component in use")

	// ErrInvalidEdge is returned for system edges that would break the
	// system tree.
	ErrInvalidEdge = errors.New("invalid system edge")
)

func idError(kind string, raw any, err error) error {
	if errors.Is(err, ids.ErrIDTaken) {
		return fmt.Errorf("%s %v: %w: %w", kind, raw, ErrDuplicateID, err)
	}
	return fmt.Errorf("%s %v: %w", kind, raw, err)
}
