package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/arthur-debert/tamodel/ids"
)

// LocationVariant is the subtype encoded in a location id prefix.
type LocationVariant string

const (
	VariantNormal       LocationVariant = "NORMAL"
	VariantUniversal    LocationVariant = "UNIVERSAL"
	VariantInconsistent LocationVariant = "INCONSISTENT"
)

var (
	errEmptyID = errors.New("empty id")

	locationPattern = regexp.MustCompile(`^([UI]*)L(0|[1-9][0-9]*)$`)
	edgePattern     = regexp.MustCompile(`^E(0|[1-9][0-9]*)$`)
	numberPattern   = regexp.MustCompile(`[0-9]+`)
)

// canonical parses s as an order. Leading zeros and overflow are rejected so
// FromOrder(order) reproduces s exactly.
func canonical(s string) (int, bool) {
	if len(s) > 1 && s[0] == '0' {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// LocationFormat parses "L5", "UL5" and "IL5". Any other non-empty string is
// an opaque id. The prefix selects the variant; with several prefix letters
// the last one wins ("UIL3" is inconsistent).
type LocationFormat struct{}

func (LocationFormat) Name() string { return "location" }

func (LocationFormat) Parse(raw string) (ids.Parsed[string], error) {
	if raw == "" {
		return ids.Parsed[string]{}, errEmptyID
	}
	m := locationPattern.FindStringSubmatch(raw)
	if m == nil {
		return ids.Opaque(raw), nil
	}
	n, ok := canonical(m[2])
	if !ok {
		return ids.Opaque(raw), nil
	}
	variant := VariantNormal
	for _, c := range m[1] {
		switch c {
		case 'U':
			variant = VariantUniversal
		case 'I':
			variant = VariantInconsistent
		}
	}
	return ids.Ordered(raw, n).WithTag(string(variant)), nil
}

func (LocationFormat) FromOrder(order int) string { return "L" + strconv.Itoa(order) }

func (LocationFormat) MinOrder() int { return 0 }

// EdgeFormat parses "E12". Other strings made of two or more numbers
// (for instance "E4.2") are composite ids; the rest are opaque.
type EdgeFormat struct{}

func (EdgeFormat) Name() string { return "edge" }

func (EdgeFormat) Parse(raw string) (ids.Parsed[string], error) {
	if raw == "" {
		return ids.Parsed[string]{}, errEmptyID
	}
	if m := edgePattern.FindStringSubmatch(raw); m != nil {
		if n, ok := canonical(m[1]); ok {
			return ids.Ordered(raw, n), nil
		}
		return ids.Opaque(raw), nil
	}
	runs := numberPattern.FindAllString(raw, -1)
	if len(runs) < 2 {
		return ids.Opaque(raw), nil
	}
	orders := make([]int, 0, len(runs))
	for _, run := range runs {
		n, ok := canonical(run)
		if !ok {
			return ids.Opaque(raw), nil
		}
		orders = append(orders, n)
	}
	return ids.Composite(raw, orders), nil
}

func (EdgeFormat) FromOrder(order int) string { return "E" + strconv.Itoa(order) }

func (EdgeFormat) MinOrder() int { return 0 }

// numberedFormat parses "<prefix> <n>" with n >= 1; any other non-empty
// string is opaque.
type numberedFormat struct {
	name    string
	prefix  string
	pattern *regexp.Regexp
}

func newNumberedFormat(name, prefix string) numberedFormat {
	return numberedFormat{
		name:    name,
		prefix:  prefix,
		pattern: regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + ` ([1-9][0-9]*)$`),
	}
}

func (f numberedFormat) Name() string { return f.name }

func (f numberedFormat) Parse(raw string) (ids.Parsed[string], error) {
	if raw == "" {
		return ids.Parsed[string]{}, errEmptyID
	}
	if m := f.pattern.FindStringSubmatch(raw); m != nil {
		if n, ok := canonical(m[1]); ok {
			return ids.Ordered(raw, n), nil
		}
	}
	return ids.Opaque(raw), nil
}

func (f numberedFormat) FromOrder(order int) string { return fmt.Sprintf("%s %d", f.prefix, order) }

func (numberedFormat) MinOrder() int { return 1 }

// ProjectFormat parses "Project 3" or a free project name.
func ProjectFormat() ids.OrderedFormat[string] { return newNumberedFormat("project", "Project") }

// SystemFormat parses "System 2" or a free system name.
func SystemFormat() ids.OrderedFormat[string] { return newNumberedFormat("system", "System") }

// ComponentFormat accepts any non-empty component name as an opaque id.
type ComponentFormat struct{}

func (ComponentFormat) Name() string { return "component" }

func (ComponentFormat) Parse(raw string) (ids.Parsed[string], error) {
	if raw == "" {
		return ids.Parsed[string]{}, errEmptyID
	}
	return ids.Opaque(raw), nil
}

// SystemRoot is the reserved member id of a system's root node.
const SystemRoot = 0

// SystemMemberFormat accepts positive integers. SystemRoot and negative
// values are rejected.
type SystemMemberFormat struct{}

func (SystemMemberFormat) Name() string { return "system member" }

func (SystemMemberFormat) Parse(raw int) (ids.Parsed[int], error) {
	if raw == SystemRoot {
		return ids.Parsed[int]{}, fmt.Errorf("%d is reserved for the system root", raw)
	}
	if raw < 0 {
		return ids.Parsed[int]{}, fmt.Errorf("negative member id %d", raw)
	}
	return ids.Ordered(raw, raw), nil
}

func (SystemMemberFormat) FromOrder(order int) int { return order }

func (SystemMemberFormat) MinOrder() int { return 1 }
