package testutil

import (
	"embed"
	"testing"

	"github.com/arthur-debert/tamodel/model"
	"github.com/arthur-debert/tamodel/types"
)

//go:embed testdata/*.json
var fixtures embed.FS

// University provides typed access to the UniversityExample fixture
type University struct {
	Workspace *model.Workspace
	Project   *model.Project

	// Components, in file order
	Administration *model.Component // L0-L3, E1-E4
	Machine        *model.Component // L4, L5, E25-E29
	Researcher     *model.Component // L6-L8, UL10, E30-E33
	Spec           *model.Component // L11, L12, IL13, Final; E40, E41, E41.2, Finish

	// Systems
	System1 *model.System // "System 1": instances 1-3, operators 4 and 5
	Main    *model.System // opaque name, one instance of Spec
}

// FixtureBytes returns the raw content of testdata/<name>.
func FixtureBytes(t testing.TB, name string) []byte {
	t.Helper()
	data, err := fixtures.ReadFile("testdata/" + name)
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return data
}

// MachineJSON returns the Machine component fixture: locations L4 and L5
// and five edges between them carrying nails of every property kind.
func MachineJSON(t testing.TB) []byte {
	return FixtureBytes(t, "machine.json")
}

// UniversityJSON returns the UniversityExample project fixture.
func UniversityJSON(t testing.TB) []byte {
	return FixtureBytes(t, "university.json")
}

// LoadMachine decodes the Machine fixture into a fresh project.
func LoadMachine(t testing.TB) (*model.Project, *model.Component) {
	t.Helper()
	raw, err := types.DecodeComponent(MachineJSON(t))
	if err != nil {
		t.Fatal(err)
	}
	p, err := model.NewWorkspace().NewProject()
	if err != nil {
		t.Fatalf("failed to create project: %v", err)
	}
	c, err := p.LoadComponent(*raw)
	if err != nil {
		t.Fatalf("failed to load Machine: %v", err)
	}
	return p, c
}

// LoadUniversity decodes the UniversityExample fixture into a new workspace.
func LoadUniversity(t testing.TB) *University {
	t.Helper()
	raw, err := types.DecodeProject(UniversityJSON(t))
	if err != nil {
		t.Fatal(err)
	}
	ws := model.NewWorkspace()
	p, err := ws.LoadProject(raw)
	if err != nil {
		t.Fatalf("failed to load UniversityExample: %v", err)
	}

	u := &University{Workspace: ws, Project: p}
	for name, dst := range map[string]**model.Component{
		"Administration": &u.Administration,
		"Machine":        &u.Machine,
		"Researcher":     &u.Researcher,
		"Spec":           &u.Spec,
	} {
		c, ok := p.Component(name)
		if !ok {
			t.Fatalf("component %q missing from fixture", name)
		}
		*dst = c
	}
	for name, dst := range map[string]**model.System{
		"System 1": &u.System1,
		"Main":     &u.Main,
	} {
		s, ok := p.System(name)
		if !ok {
			t.Fatalf("system %q missing from fixture", name)
		}
		*dst = s
	}
	return u
}
