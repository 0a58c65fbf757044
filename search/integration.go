package search

import (
	"github.com/arthur-debert/tamodel/model"
)

// ProjectProvider exposes a project's names and labels as entries, in
// model order: the project, then each component with its locations and
// edges, then the systems.
type ProjectProvider struct {
	project *model.Project
}

// NewProjectProvider creates a provider for p.
func NewProjectProvider(p *model.Project) *ProjectProvider {
	return &ProjectProvider{project: p}
}

// Entries implements Provider. Empty fields are left out.
func (pp *ProjectProvider) Entries() ([]Entry, error) {
	p := pp.project
	entries := []Entry{
		entry(KindProject, p.Name(),
			"id", p.Name(),
			"globalDeclarations", p.GlobalDeclarations,
			"systemDeclarations", p.SystemDeclarations),
	}

	for c := range p.Components().Values() {
		entries = append(entries, entry(KindComponent, c.Name(),
			"id", c.Name(),
			"declarations", c.Declarations,
			"description", c.Description))
		for loc := range c.Locations().Values() {
			raw := loc.ID().Raw()
			entries = append(entries, entry(KindLocation, c.Name()+"/"+raw,
				"id", raw,
				"nickname", loc.Nickname,
				"invariant", loc.Invariant))
		}
		for edge := range c.Edges().Values() {
			raw := edge.ID().Raw()
			entries = append(entries, entry(KindEdge, c.Name()+"/"+raw,
				"id", raw,
				"select", edge.Select,
				"guard", edge.Guard,
				"update", edge.Update,
				"sync", edge.Sync))
		}
	}

	for s := range p.Systems().Values() {
		entries = append(entries, entry(KindSystem, s.Name(),
			"id", s.Name(),
			"description", s.Description))
	}
	return entries, nil
}

func entry(kind Kind, path string, pairs ...string) Entry {
	e := Entry{Kind: kind, Path: path}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			e.Fields = append(e.Fields, Field{Name: pairs[i], Text: pairs[i+1]})
		}
	}
	return e
}

// SearchProject is a convenience wrapper searching p directly.
func SearchProject(p *model.Project, options Options) ([]Result, error) {
	return NewEngine(NewProjectProvider(p)).Search(options)
}
