package main

import (
	"fmt"

	"github.com/arthur-debert/tamodel/internal/validation"
	"github.com/arthur-debert/tamodel/model"
	"github.com/arthur-debert/tamodel/storage"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/cobra"
)

func (cli *CLI) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate a project file",
		Long: `Load the project, report modelling issues and show what saving it
would change. Exits non-zero when any error is found.`,
		Args: cobra.NoArgs,
		RunE: cli.runCheck,
	}
}

func (cli *CLI) runCheck(cmd *cobra.Command, args []string) error {
	const operation = "check project"
	path, err := cli.projectPath(operation)
	if err != nil {
		return err
	}
	st := storage.NewJSONStorage(path, storage.WithLockTimeout(cli.v.GetDuration("lock-timeout")))
	defer func() { _ = st.Close() }()

	raw, err := st.Load()
	if err != nil {
		return NewStoreError(operation, err)
	}
	p, err := model.NewWorkspace(model.WithLogger(cli.log)).LoadProject(raw)
	if err != nil {
		return NewStoreError(operation, err)
	}

	var errs, warnings int
	for _, issue := range validation.Check(p) {
		cli.printIssue(issue)
		if issue.Severity == validation.Error {
			errs++
		} else {
			warnings++
		}
	}

	if diff := cmp.Diff(raw, p.ToRaw(), cmpopts.EquateEmpty()); diff != "" {
		warnings++
		cli.printIssue(validation.Issue{
			Severity: validation.Warning,
			Where:    p.Name(),
			Message:  "saving would rewrite the file; run 'tamodel normalize'",
		})
		if cli.v.GetBool("verbose") {
			fmt.Fprintf(cli.out, "(-file +saved):\n%s", diff)
		}
	}

	fmt.Fprintf(cli.out, "%s: %d error(s), %d warning(s)\n", p.Name(), errs, warnings)
	if errs > 0 {
		return &CLIError{Operation: operation, Cause: fmt.Sprintf("%d error(s) found", errs)}
	}
	return nil
}

func (cli *CLI) printIssue(issue validation.Issue) {
	color := "\033[33m"
	if issue.Severity == validation.Error {
		color = "\033[31m"
	}
	if cli.v.GetBool("no-color") {
		fmt.Fprintln(cli.errOut, issue.Error())
		return
	}
	fmt.Fprintf(cli.errOut, "%s%s\033[0m\n", color, issue.Error())
}
