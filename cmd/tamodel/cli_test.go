package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/tamodel/model"
	"github.com/arthur-debert/tamodel/testutil"
	"github.com/arthur-debert/tamodel/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type result struct {
	out    string
	errOut string
	err    error
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("TAMODEL_CONFIG", "")

	var out, errOut bytes.Buffer
	cli := newCLI(&out, &errOut)
	cli.root.SetArgs(append(args, "--no-color"))
	err := cli.Execute()
	return result{out: out.String(), errOut: errOut.String(), err: err}
}

func universityFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "university.json")
	require.NoError(t, os.WriteFile(path, testutil.UniversityJSON(t), 0644))
	return path
}

func loadFile(t *testing.T, path string) *types.RawProject {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	raw, err := types.DecodeProject(data)
	require.NoError(t, err)
	return raw
}

func TestNewProjectWorkflow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coffee.json")

	r := run(t, "new", "--project", path)
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "created Project 1")

	steps := []struct {
		args []string
		want string
	}{
		{[]string{"add", "component"}, "added component Component 1"},
		{[]string{"add", "location", "Component 1"}, "added location L1 to Component 1"},
		{[]string{"add", "edge", "Component 1", "L0", "L1", "--status", "output"}, "added edge E0 (L0 -> L1)"},
		{[]string{"add", "system"}, "added system System 1"},
		{[]string{"add", "operator", "System 1", "CONJUNCTION"}, "added conjunction 1 to System 1"},
		{[]string{"add", "instance", "System 1", "Component 1"}, "added instance 2 of Component 1"},
		{[]string{"connect", "System 1", "0", "1"}, "connected 0 -> 1"},
		{[]string{"connect", "System 1", "1", "2"}, "connected 1 -> 2"},
	}
	for _, step := range steps {
		r := run(t, append(step.args, "--project", path)...)
		require.NoError(t, r.err, "%v", step.args)
		assert.Contains(t, r.out, step.want)
	}

	raw := loadFile(t, path)
	require.Len(t, raw.Components, 1)
	assert.Equal(t, "OUTPUT", raw.Components[0].Edges[0].Status)
	require.Len(t, raw.Systems, 1)
	assert.Len(t, raw.Systems[0].Edges, 2)

	t.Run("existing file is not overwritten", func(t *testing.T) {
		r := run(t, "new", "--project", path)
		var cliErr *CLIError
		require.ErrorAs(t, r.err, &cliErr)
		assert.Contains(t, cliErr.Cause, "already exists")
	})
}

func TestIDs(t *testing.T) {
	path := universityFile(t)

	t.Run("yaml", func(t *testing.T) {
		r := run(t, "ids", "--project", path, "--output", "yaml")
		require.NoError(t, r.err)

		var report idReport
		require.NoError(t, yaml.Unmarshal([]byte(r.out), &report))
		assert.Equal(t, "UniversityExample", report.Project)
		assert.Equal(t, "L9", report.NextLocation)
		assert.Equal(t, "E0", report.NextEdge)
		require.Len(t, report.Components, 4)
		assert.Equal(t, []string{"L6", "L7", "L8", "UL10"}, report.Components[2].Locations)
		assert.Equal(t, []string{"E40", "E41", "E41.2", "Finish"}, report.Components[3].Edges)
		require.Len(t, report.Systems, 2)
		assert.Equal(t, []int{1, 2, 3}, report.Systems[0].Instances)
		assert.Equal(t, []int{4, 5}, report.Systems[0].Operators)
		assert.Equal(t, "0 -> 4", report.Systems[0].Edges[0])
	})

	t.Run("text", func(t *testing.T) {
		r := run(t, "ids", "--project", path)
		require.NoError(t, r.err)
		assert.Contains(t, r.out, "next location L9, next edge E0")
		assert.Contains(t, r.out, "locations: L11 L12 IL13 Final")
	})

	t.Run("unknown format", func(t *testing.T) {
		r := run(t, "ids", "--project", path, "--output", "xml")
		assert.Error(t, r.err)
	})
}

func TestCheck(t *testing.T) {
	t.Run("clean fixture", func(t *testing.T) {
		r := run(t, "check", "--project", universityFile(t))
		require.NoError(t, r.err)
		assert.Contains(t, r.out, "UniversityExample: 0 error(s), 0 warning(s)")
		assert.Empty(t, r.errOut)
	})

	t.Run("missing initial location", func(t *testing.T) {
		path := universityFile(t)
		require.NoError(t, run(t, "remove", "location", "Machine", "L4", "--project", path).err)

		r := run(t, "check", "--project", path)
		require.Error(t, r.err)
		assert.Contains(t, r.errOut, "error: Machine: no initial location")
	})

	t.Run("upper case operators are reported", func(t *testing.T) {
		path := universityFile(t)
		data := strings.Replace(string(testutil.UniversityJSON(t)), `"conjunction"`, `"CONJUNCTION"`, 1)
		require.NoError(t, os.WriteFile(path, []byte(data), 0644))

		r := run(t, "check", "--project", path)
		require.NoError(t, r.err)
		assert.Contains(t, r.errOut, "run 'tamodel normalize'")

		require.NoError(t, run(t, "normalize", "--project", path).err)
		r = run(t, "check", "--project", path)
		require.NoError(t, r.err)
		assert.Empty(t, r.errOut)
	})

	t.Run("missing file", func(t *testing.T) {
		r := run(t, "check", "--project", filepath.Join(t.TempDir(), "nope.json"))
		var cliErr *CLIError
		require.ErrorAs(t, r.err, &cliErr)
		assert.Equal(t, "project file not found", cliErr.Cause)
	})
}

func TestEdits(t *testing.T) {
	t.Run("rename to a taken id", func(t *testing.T) {
		r := run(t, "rename", "location", "Machine", "L5", "L4", "--project", universityFile(t))
		require.Error(t, r.err)
		assert.Contains(t, r.err.Error(), `location name "L4" is already in use`)
	})

	t.Run("rename component follows instances", func(t *testing.T) {
		path := universityFile(t)
		require.NoError(t, run(t, "rename", "component", "Machine", "Coffee", "--project", path).err)
		raw := loadFile(t, path)
		assert.Equal(t, "Coffee", raw.Components[1].Name)
		assert.Equal(t, "Coffee", raw.Systems[0].ComponentInstances[1].ComponentName)
	})

	t.Run("component in use", func(t *testing.T) {
		r := run(t, "remove", "component", "Machine", "--project", universityFile(t))
		require.True(t, errors.Is(r.err, model.ErrComponentInUse), "error = %v", r.err)
	})

	t.Run("remove member frees its id", func(t *testing.T) {
		path := universityFile(t)
		require.NoError(t, run(t, "remove", "member", "Main", "1", "--project", path).err)
		r := run(t, "add", "instance", "Main", "Machine", "--project", path)
		require.NoError(t, r.err)
		assert.Contains(t, r.out, "added instance 1 of Machine")
	})

	t.Run("cycle", func(t *testing.T) {
		path := universityFile(t)
		require.NoError(t, run(t, "remove", "link", "System 1", "0", "4", "--project", path).err)
		r := run(t, "connect", "System 1", "5", "4", "--project", path)
		require.True(t, errors.Is(r.err, model.ErrInvalidEdge), "error = %v", r.err)
	})

	t.Run("unknown component", func(t *testing.T) {
		r := run(t, "add", "location", "Nope", "--project", universityFile(t))
		var cliErr *CLIError
		require.ErrorAs(t, r.err, &cliErr)
		assert.Equal(t, `component "Nope" not found`, cliErr.Cause)
	})

	t.Run("dry run leaves the file alone", func(t *testing.T) {
		path := universityFile(t)
		r := run(t, "add", "system", "--dry-run", "--project", path)
		require.NoError(t, r.err)
		assert.Contains(t, r.out, "added system System 2")
		assert.Contains(t, r.out, "dry run")
		testutil.AssertJSONEqual(t, testutil.UniversityJSON(t), loadFile(t, path))
	})
}

func TestConfiguration(t *testing.T) {
	t.Run("project is required", func(t *testing.T) {
		r := run(t, "ids")
		var cliErr *CLIError
		require.ErrorAs(t, r.err, &cliErr)
		assert.Contains(t, r.err.Error(), "TAMODEL_PROJECT")
	})

	t.Run("project from the environment", func(t *testing.T) {
		path := universityFile(t)
		t.Setenv("TAMODEL_PROJECT", path)
		r := run(t, "ids")
		require.NoError(t, r.err)
		assert.Contains(t, r.out, "project UniversityExample")
	})

	t.Run("config file", func(t *testing.T) {
		dir := t.TempDir()
		path := universityFile(t)
		config := filepath.Join(dir, "tamodel.yaml")
		require.NoError(t, os.WriteFile(config, []byte("project: "+path+"\noutput: yaml\n"), 0644))

		t.Setenv("XDG_CACHE_HOME", t.TempDir())
		t.Setenv("TAMODEL_CONFIG", config)
		var out, errOut bytes.Buffer
		cli := newCLI(&out, &errOut)
		cli.root.SetArgs([]string{"ids"})
		require.NoError(t, cli.Execute())
		assert.Contains(t, out.String(), "project: UniversityExample")
	})
}

func TestNormalizeDryRun(t *testing.T) {
	path := universityFile(t)
	r := run(t, "normalize", "--dry-run", "--project", path)
	require.NoError(t, r.err)
	raw, err := types.DecodeProject([]byte(r.out))
	require.NoError(t, err)
	testutil.AssertJSONEqual(t, testutil.UniversityJSON(t), raw)
}

func TestFind(t *testing.T) {
	path := universityFile(t)

	r := run(t, "find", "coin", "--field", "sync", "--exact", "--project", path)
	require.NoError(t, r.err)
	assert.Equal(t, 4, strings.Count(r.out, "  sync: coin"))
	assert.Contains(t, r.out, "edge Spec/E41.2")

	r = run(t, "find", "no such label", "--project", path)
	require.NoError(t, r.err)
	assert.Contains(t, r.out, "no matches")
}
