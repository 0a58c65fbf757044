package model

import (
	"fmt"
	"slices"
	"strings"
)

// LocationType is the persisted role of a location.
type LocationType string

const (
	LocationInitial      LocationType = "INITIAL"
	LocationNormal       LocationType = "NORMAL"
	LocationUniversal    LocationType = "UNIVERSAL"
	LocationInconsistent LocationType = "INCONSISTENT"
)

var locationTypes = []LocationType{LocationInitial, LocationNormal, LocationUniversal, LocationInconsistent}

// Urgency controls whether time may pass in a location.
type Urgency string

const (
	UrgencyNormal     Urgency = "NORMAL"
	UrgencyUrgent     Urgency = "URGENT"
	UrgencyCommitted  Urgency = "COMMITTED"
	UrgencyProhibited Urgency = "PROHIBITED"
)

var urgencies = []Urgency{UrgencyNormal, UrgencyUrgent, UrgencyCommitted, UrgencyProhibited}

// EdgeStatus is the direction of an edge's synchronisation.
type EdgeStatus string

const (
	EdgeInput  EdgeStatus = "INPUT"
	EdgeOutput EdgeStatus = "OUTPUT"
)

var edgeStatuses = []EdgeStatus{EdgeInput, EdgeOutput}

// PropertyType names the edge label a nail anchors.
type PropertyType string

const (
	PropertyNone            PropertyType = "NONE"
	PropertySelection       PropertyType = "SELECTION"
	PropertyGuard           PropertyType = "GUARD"
	PropertySynchronization PropertyType = "SYNCHRONIZATION"
	PropertyUpdate          PropertyType = "UPDATE"
)

var propertyTypes = []PropertyType{PropertyNone, PropertySelection, PropertyGuard, PropertySynchronization, PropertyUpdate}

// OperatorType is the composition a system operator performs. Files written
// by older editors use upper case; the canonical form is lower case.
type OperatorType string

const (
	OperatorConjunction OperatorType = "conjunction"
	OperatorComposition OperatorType = "composition"
	OperatorQuotient    OperatorType = "quotient"
)

var operatorTypes = []OperatorType{OperatorConjunction, OperatorComposition, OperatorQuotient}

// ParseOperatorType folds case before matching.
func ParseOperatorType(s string) (OperatorType, error) {
	return parseEnum("operator type", strings.ToLower(s), operatorTypes)
}

func parseEnum[T ~string](field, s string, allowed []T) (T, error) {
	if slices.Contains(allowed, T(s)) {
		return T(s), nil
	}
	return "", fmt.Errorf("%w: %s %q", ErrInvalidValue, field, s)
}
