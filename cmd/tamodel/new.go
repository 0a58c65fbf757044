package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/tamodel/model"
	"github.com/arthur-debert/tamodel/storage"
	"github.com/spf13/cobra"
)

func (cli *CLI) newCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create an empty project file",
		Long:  "Write a new project named \"Project 1\" to the --project path. Existing files are never overwritten.",
		Args:  cobra.NoArgs,
		RunE:  cli.runNew,
	}
}

func (cli *CLI) runNew(cmd *cobra.Command, args []string) error {
	path, err := cli.projectPath("create project")
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); err == nil {
		return &CLIError{
			Operation:   "create project",
			Cause:       fmt.Sprintf("%s already exists", path),
			Suggestions: []string{"Choose another --project path"},
		}
	}

	ws := model.NewWorkspace(model.WithLogger(cli.log))
	s, err := storage.Create(path, ws,
		storage.WithLockTimeout(cli.v.GetDuration("lock-timeout")),
		storage.WithLogger(cli.log))
	if err != nil {
		return NewStoreError("create project", err)
	}
	defer func() { _ = s.Close() }()

	fmt.Fprintf(cli.out, "created %s (%s)\n", s.Project().Name(), path)
	return nil
}
