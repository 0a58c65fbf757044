package model

import (
	"fmt"
	"iter"
	"log/slog"

	"github.com/arthur-debert/tamodel/ids"
	"github.com/arthur-debert/tamodel/types"
)

// Workspace holds the open projects. Project names are unique within a
// workspace.
type Workspace struct {
	projects *ids.Map[string, *Project]
	opts     options
	log      *slog.Logger
}

// NewWorkspace creates an empty workspace.
func NewWorkspace(opts ...Option) *Workspace {
	o := buildOptions(opts)
	return &Workspace{
		projects: ids.NewMap[string, *Project](ids.NewStore[string](ProjectFormat(), o.store("projects")...)),
		opts:     o,
		log:      o.logger,
	}
}

// Project looks an open project up by name.
func (w *Workspace) Project(name string) (*Project, bool) {
	return w.projects.GetByRaw(name)
}

// Projects yields the open projects.
func (w *Workspace) Projects() iter.Seq[*Project] {
	return w.projects.Values()
}

// NewProject opens an empty project at the next free "Project <n>".
func (w *Workspace) NewProject() (*Project, error) {
	store := w.projects.Store()
	id, err := store.NewOrderedID()
	if err != nil {
		return nil, err
	}
	p := newProject(id, w.opts)
	if err := w.projects.Add(p); err != nil {
		_ = store.Delete(id)
		return nil, err
	}
	w.log.Info("project created", "project", id.Raw())
	return p, nil
}

// LoadProject builds a project from its persisted form. A project whose
// name is already open fails with ErrDuplicateID. On any error the
// workspace is left unchanged.
func (w *Workspace) LoadProject(raw *types.RawProject) (*Project, error) {
	store := w.projects.Store()
	id, err := store.NewIDFromRaw(raw.Name)
	if err != nil {
		return nil, idError("project", raw.Name, err)
	}
	p := newProject(id, w.opts)
	if err := p.load(raw); err != nil {
		_ = store.Delete(id)
		return nil, fmt.Errorf("load project %q: %w", raw.Name, err)
	}
	if err := w.projects.Add(p); err != nil {
		_ = store.Delete(id)
		return nil, err
	}
	w.log.Info("project loaded",
		"project", raw.Name,
		"components", p.components.Len(),
		"systems", p.systems.Len(),
		"locations", p.locations.Len(),
		"edges", p.edges.Len())
	return p, nil
}

// RenameProject renames p. It reports false when name is taken.
func (w *Workspace) RenameProject(p *Project, name string) (bool, error) {
	return w.projects.Rename(p.id, name)
}

// CloseProject drops p from the workspace and frees its name.
func (w *Workspace) CloseProject(p *Project) error {
	return w.projects.Release(p.id)
}
