package main

import (
	"fmt"

	"github.com/arthur-debert/tamodel/model"
	"github.com/spf13/cobra"
)

func (cli *CLI) removeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove an entity and free its id",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "component <name>",
			Short: "Remove a component that no system instantiates",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				const op = "remove component"
				return cli.edit(op, func(p *model.Project) (string, error) {
					c, err := findComponent(op, p, args[0])
					if err != nil {
						return "", err
					}
					if err := p.DeleteComponent(c); err != nil {
						return "", err
					}
					return "removed component " + args[0], nil
				})
			},
		},
		&cobra.Command{
			Use:   "location <component> <id>",
			Short: "Remove a location and the edges touching it",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				const op = "remove location"
				return cli.edit(op, func(p *model.Project) (string, error) {
					c, err := findComponent(op, p, args[0])
					if err != nil {
						return "", err
					}
					loc, err := findLocation(op, c, args[1])
					if err != nil {
						return "", err
					}
					if err := c.DeleteLocation(loc); err != nil {
						return "", err
					}
					return fmt.Sprintf("removed location %s from %s", args[1], c.Name()), nil
				})
			},
		},
		&cobra.Command{
			Use:   "edge <component> <id>",
			Short: "Remove an edge",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				const op = "remove edge"
				return cli.edit(op, func(p *model.Project) (string, error) {
					c, err := findComponent(op, p, args[0])
					if err != nil {
						return "", err
					}
					e, err := findEdge(op, c, args[1])
					if err != nil {
						return "", err
					}
					if err := c.DeleteEdge(e); err != nil {
						return "", err
					}
					return fmt.Sprintf("removed edge %s from %s", args[1], c.Name()), nil
				})
			},
		},
		&cobra.Command{
			Use:   "system <name>",
			Short: "Remove a system",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				const op = "remove system"
				return cli.edit(op, func(p *model.Project) (string, error) {
					s, err := findSystem(op, p, args[0])
					if err != nil {
						return "", err
					}
					if err := p.DeleteSystem(s); err != nil {
						return "", err
					}
					return "removed system " + args[0], nil
				})
			},
		},
		&cobra.Command{
			Use:   "member <system> <id>",
			Short: "Remove an instance or operator and its tree edges",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				const op = "remove member"
				return cli.edit(op, func(p *model.Project) (string, error) {
					s, err := findSystem(op, p, args[0])
					if err != nil {
						return "", err
					}
					m, err := findMember(op, s, args[1])
					if err != nil {
						return "", err
					}
					if err := s.RemoveMember(m); err != nil {
						return "", err
					}
					return fmt.Sprintf("removed %s %s from %s", m.MemberKind(), args[1], s.Name()), nil
				})
			},
		},
		&cobra.Command{
			Use:   "link <system> <parent> <child>",
			Short: "Remove a tree edge",
			Args:  cobra.ExactArgs(3),
			RunE: func(cmd *cobra.Command, args []string) error {
				const op = "remove link"
				return cli.edit(op, func(p *model.Project) (string, error) {
					s, err := findSystem(op, p, args[0])
					if err != nil {
						return "", err
					}
					parent, err := memberID(op, args[1])
					if err != nil {
						return "", err
					}
					child, err := memberID(op, args[2])
					if err != nil {
						return "", err
					}
					if !s.Disconnect(parent, child) {
						return "", NewNotFoundError(op, "link", fmt.Sprintf("%d -> %d", parent, child))
					}
					return fmt.Sprintf("removed link %d -> %d from %s", parent, child, s.Name()), nil
				})
			},
		},
	)
	return cmd
}
