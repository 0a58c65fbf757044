package main

import (
	"fmt"

	"github.com/arthur-debert/tamodel/model"
	"github.com/spf13/cobra"
)

// renamed turns a refused rename into an error.
func renamed(op, kind, from, to string, ok bool, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if !ok {
		return "", &CLIError{
			Operation:   op,
			Cause:       fmt.Sprintf("%s name %q is already in use", kind, to),
			Suggestions: []string{"Run 'tamodel ids' to see allocated names"},
		}
	}
	return fmt.Sprintf("renamed %s %s to %s", kind, from, to), nil
}

func (cli *CLI) renameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rename",
		Short: "Rename an entity, keeping every reference to it",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "component <name> <new-name>",
			Short: "Rename a component; system instances follow",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				const op = "rename component"
				return cli.edit(op, func(p *model.Project) (string, error) {
					c, err := findComponent(op, p, args[0])
					if err != nil {
						return "", err
					}
					ok, err := p.RenameComponent(c, args[1])
					return renamed(op, "component", args[0], args[1], ok, err)
				})
			},
		},
		&cobra.Command{
			Use:   "location <component> <id> <new-id>",
			Short: "Rename a location",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				const op = "rename location"
				return cli.edit(op, func(p *model.Project) (string, error) {
					c, err := findComponent(op, p, args[0])
					if err != nil {
						return "", err
					}
					loc, err := findLocation(op, c, args[1])
					if err != nil {
						return "", err
					}
					ok, err := c.RenameLocation(loc, args[2])
					return renamed(op, "location", args[1], args[2], ok, err)
				})
			},
		},
		&cobra.Command{
			Use:   "edge <component> <id> <new-id>",
			Short: "Rename an edge",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				const op = "rename edge"
				return cli.edit(op, func(p *model.Project) (string, error) {
					c, err := findComponent(op, p, args[0])
					if err != nil {
						return "", err
					}
					e, err := findEdge(op, c, args[1])
					if err != nil {
						return "", err
					}
					ok, err := c.RenameEdge(e, args[2])
					return renamed(op, "edge", args[1], args[2], ok, err)
				})
			},
		},
		&cobra.Command{
			Use:   "system <name> <new-name>",
			Short: "Rename a system",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				const op = "rename system"
				return cli.edit(op, func(p *model.Project) (string, error) {
					s, err := findSystem(op, p, args[0])
					if err != nil {
						return "", err
					}
					ok, err := p.RenameSystem(s, args[1])
					return renamed(op, "system", args[0], args[1], ok, err)
				})
			},
		},
	)
	return cmd
}
