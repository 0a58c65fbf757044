package main

import (
	"fmt"

	"github.com/arthur-debert/tamodel/types"
	"github.com/spf13/cobra"
)

func (cli *CLI) normalizeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize",
		Short: "Rewrite a project file in canonical form",
		Long: `Load and save the project. Entities are written in id order, operator
types in lower case and every list field is present. With --dry-run the
canonical file is printed instead.`,
		Args: cobra.NoArgs,
		RunE: cli.runNormalize,
	}
}

func (cli *CLI) runNormalize(cmd *cobra.Command, args []string) error {
	const operation = "normalize project"
	s, err := cli.openSession(operation)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if cli.v.GetBool("dry-run") {
		data, err := types.Encode(s.Project().ToRaw())
		if err != nil {
			return err
		}
		fmt.Fprintln(cli.out, string(data))
		return nil
	}
	if err := s.Save(); err != nil {
		return NewStoreError(operation, err)
	}
	fmt.Fprintf(cli.out, "normalized %s\n", s.Project().Name())
	return nil
}
