package main

import (
	"fmt"
	"strconv"

	"github.com/arthur-debert/tamodel/model"
)

func findComponent(op string, p *model.Project, name string) (*model.Component, error) {
	c, ok := p.Component(name)
	if !ok {
		return nil, NewNotFoundError(op, "component", name, "Run 'tamodel ids' to list components")
	}
	return c, nil
}

func findLocation(op string, c *model.Component, raw string) (*model.Location, error) {
	loc, ok := c.Location(raw)
	if !ok {
		return nil, NewNotFoundError(op, "location", raw, fmt.Sprintf("Locations are looked up inside component %q", c.Name()))
	}
	return loc, nil
}

func findEdge(op string, c *model.Component, raw string) (*model.LocationEdge, error) {
	e, ok := c.Edge(raw)
	if !ok {
		return nil, NewNotFoundError(op, "edge", raw, fmt.Sprintf("Edges are looked up inside component %q", c.Name()))
	}
	return e, nil
}

func findSystem(op string, p *model.Project, name string) (*model.System, error) {
	s, ok := p.System(name)
	if !ok {
		return nil, NewNotFoundError(op, "system", name, "Run 'tamodel ids' to list systems")
	}
	return s, nil
}

// memberID parses a system member id; 0 names the root.
func memberID(op, arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, &CLIError{Operation: op, Cause: fmt.Sprintf("invalid member id %q", arg), Underlying: err}
	}
	return n, nil
}

func findMember(op string, s *model.System, arg string) (model.SystemMember, error) {
	raw, err := memberID(op, arg)
	if err != nil {
		return nil, err
	}
	m, ok := s.Member(raw)
	if !ok {
		return nil, NewNotFoundError(op, "member", arg)
	}
	return m, nil
}
