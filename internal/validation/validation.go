// Package validation checks a loaded project for modelling mistakes the
// id engine cannot catch: missing initial locations, location ids whose
// prefix contradicts their type, and malformed system trees.
package validation

import (
	"errors"
	"fmt"

	"github.com/arthur-debert/tamodel/model"
)

// Severity ranks an issue.
type Severity int

const (
	// Error makes the project unusable for verification.
	Error Severity = iota
	// Warning is suspicious but legal.
	Warning
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	default:
		return "unknown"
	}
}

// Issue is a single finding.
type Issue struct {
	Severity Severity
	Where    string // "Machine", "Machine/L4", "System 1/3"
	Message  string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s: %s: %s", i.Severity, i.Where, i.Message)
}

// Validate returns every Error issue of p joined, or nil.
func Validate(p *model.Project) error {
	var errs []error
	for _, issue := range Check(p) {
		if issue.Severity == Error {
			errs = append(errs, issue)
		}
	}
	return errors.Join(errs...)
}

// Check returns every issue of p, components first, in model order.
func Check(p *model.Project) []Issue {
	var issues []Issue
	for c := range p.Components().Values() {
		issues = append(issues, checkComponent(c)...)
	}
	for s := range p.Systems().Values() {
		issues = append(issues, checkSystem(p, s)...)
	}
	return issues
}

func checkComponent(c *model.Component) []Issue {
	var issues []Issue
	add := func(sev Severity, where, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, Where: where, Message: fmt.Sprintf(format, args...)})
	}

	initial := 0
	for loc := range c.Locations().Values() {
		where := c.Name() + "/" + loc.ID().Raw()
		if loc.Type == model.LocationInitial {
			initial++
		}
		switch loc.Variant() {
		case model.VariantUniversal:
			if loc.Type != model.LocationUniversal {
				add(Error, where, "id marks a universal location but type is %s", loc.Type)
			}
		case model.VariantInconsistent:
			if loc.Type != model.LocationInconsistent {
				add(Error, where, "id marks an inconsistent location but type is %s", loc.Type)
			}
		default:
			if loc.Type == model.LocationUniversal || loc.Type == model.LocationInconsistent {
				add(Warning, where, "type %s without a matching id prefix", loc.Type)
			}
		}
	}
	switch {
	case c.Locations().Len() == 0:
		add(Error, c.Name(), "no locations")
	case initial == 0:
		add(Error, c.Name(), "no initial location")
	case initial > 1:
		add(Error, c.Name(), "%d initial locations", initial)
	}

	for e := range c.Edges().Values() {
		if e.Sync == "" {
			add(Warning, c.Name()+"/"+e.ID().Raw(), "edge has no synchronisation")
		}
	}
	return issues
}

func checkSystem(p *model.Project, s *model.System) []Issue {
	var issues []Issue
	add := func(sev Severity, where, format string, args ...any) {
		issues = append(issues, Issue{Severity: sev, Where: where, Message: fmt.Sprintf(format, args...)})
	}
	at := func(raw int) string { return fmt.Sprintf("%s/%d", s.Name(), raw) }

	if s.Members().Len() == 0 {
		add(Warning, s.Name(), "empty system")
		return issues
	}
	switch top := s.Children(model.SystemRoot); len(top) {
	case 0:
		add(Error, s.Name(), "nothing is connected to the system root")
	case 1:
	default:
		add(Error, s.Name(), "system root has %d children, want 1", len(top))
	}

	for inst := range s.Instances().Values() {
		raw := inst.ID().Raw()
		if c, ok := p.Component(inst.Component.Name()); !ok || c != inst.Component {
			add(Error, at(raw), "instance of removed component %q", inst.Component.Name())
		}
		if _, ok := s.Parent(raw); !ok {
			add(Warning, at(raw), "instance is not connected")
		}
	}
	for op := range s.Operators().Values() {
		raw := op.ID().Raw()
		if _, ok := s.Parent(raw); !ok {
			add(Warning, at(raw), "operator is not connected")
		}
		if n := len(s.Children(raw)); n < 2 {
			add(Warning, at(raw), "%s with %d operand(s)", op.Type, n)
		}
	}

	// Every edge end must still be a member
	for _, e := range s.Edges() {
		for _, raw := range []int{e.Parent, e.Child} {
			if raw == model.SystemRoot {
				continue
			}
			if _, ok := s.Member(raw); !ok {
				add(Error, s.Name(), "edge %d -> %d refers to missing member %d", e.Parent, e.Child, raw)
			}
		}
	}
	return issues
}
