package main

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/tamodel/model"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type idReport struct {
	Project      string         `yaml:"project"`
	NextLocation string         `yaml:"nextLocation,omitempty"`
	NextEdge     string         `yaml:"nextEdge,omitempty"`
	Components   []componentIDs `yaml:"components"`
	Systems      []systemIDs    `yaml:"systems"`
}

type componentIDs struct {
	Name      string   `yaml:"name"`
	Locations []string `yaml:"locations"`
	Edges     []string `yaml:"edges"`
}

type systemIDs struct {
	Name      string   `yaml:"name"`
	Instances []int    `yaml:"instances"`
	Operators []int    `yaml:"operators"`
	Edges     []string `yaml:"edges"`
}

func (cli *CLI) idsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ids",
		Short: "List the identifiers allocated in a project",
		Long:  "Show every location, edge and system member id in engine order, plus the ids the next additions will get.",
		Args:  cobra.NoArgs,
		RunE:  cli.runIDs,
	}
}

func (cli *CLI) runIDs(cmd *cobra.Command, args []string) error {
	s, err := cli.openSession("list ids")
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	var report idReport
	if err := s.Read(func(p *model.Project) error {
		report = buildIDReport(p)
		return nil
	}); err != nil {
		return err
	}

	switch output := cli.v.GetString("output"); output {
	case "yaml":
		enc := yaml.NewEncoder(cli.out)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		writeIDReport(cli, report)
		return nil
	default:
		return NewConfigError("list ids", fmt.Sprintf("unknown output format %q", output), "Use --output text or --output yaml")
	}
}

func buildIDReport(p *model.Project) idReport {
	r := idReport{
		Project:    p.Name(),
		Components: []componentIDs{},
		Systems:    []systemIDs{},
	}
	if order, ok := p.Locations().Store().PeekOrder(); ok {
		r.NextLocation = model.LocationFormat{}.FromOrder(order)
	}
	if order, ok := p.Edges().Store().PeekOrder(); ok {
		r.NextEdge = model.EdgeFormat{}.FromOrder(order)
	}

	for c := range p.Components().Values() {
		entry := componentIDs{Name: c.Name(), Locations: []string{}, Edges: []string{}}
		for id := range c.Locations().All() {
			entry.Locations = append(entry.Locations, id.Raw())
		}
		for id := range c.Edges().All() {
			entry.Edges = append(entry.Edges, id.Raw())
		}
		r.Components = append(r.Components, entry)
	}

	for sys := range p.Systems().Values() {
		entry := systemIDs{Name: sys.Name(), Instances: []int{}, Operators: []int{}, Edges: []string{}}
		for id := range sys.Instances().All() {
			entry.Instances = append(entry.Instances, id.Raw())
		}
		for id := range sys.Operators().All() {
			entry.Operators = append(entry.Operators, id.Raw())
		}
		for _, e := range sys.Edges() {
			entry.Edges = append(entry.Edges, fmt.Sprintf("%d -> %d", e.Parent, e.Child))
		}
		r.Systems = append(r.Systems, entry)
	}
	return r
}

func writeIDReport(cli *CLI, r idReport) {
	fmt.Fprintf(cli.out, "project %s\n", r.Project)
	fmt.Fprintf(cli.out, "  next location %s, next edge %s\n", r.NextLocation, r.NextEdge)
	for _, c := range r.Components {
		fmt.Fprintf(cli.out, "component %s\n", c.Name)
		fmt.Fprintf(cli.out, "  locations: %s\n", strings.Join(c.Locations, " "))
		fmt.Fprintf(cli.out, "  edges: %s\n", strings.Join(c.Edges, " "))
	}
	for _, s := range r.Systems {
		fmt.Fprintf(cli.out, "system %s\n", s.Name)
		fmt.Fprintf(cli.out, "  instances: %s\n", joinInts(s.Instances))
		fmt.Fprintf(cli.out, "  operators: %s\n", joinInts(s.Operators))
		fmt.Fprintf(cli.out, "  edges: %s\n", strings.Join(s.Edges, ", "))
	}
}

func joinInts(xs []int) string {
	parts := make([]string, len(xs))
	for i, x := range xs {
		parts[i] = fmt.Sprint(x)
	}
	return strings.Join(parts, " ")
}
