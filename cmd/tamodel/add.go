package main

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/tamodel/model"
	"github.com/spf13/cobra"
)

func (cli *CLI) addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an entity at the next free id",
	}

	var status string
	edge := &cobra.Command{
		Use:   "edge <component> <source> <target>",
		Short: "Add an edge between two locations of a component",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.edit("add edge", func(p *model.Project) (string, error) {
				c, err := findComponent("add edge", p, args[0])
				if err != nil {
					return "", err
				}
				src, err := findLocation("add edge", c, args[1])
				if err != nil {
					return "", err
				}
				tgt, err := findLocation("add edge", c, args[2])
				if err != nil {
					return "", err
				}
				e, err := c.NewEdge(src, tgt, model.EdgeStatus(strings.ToUpper(status)))
				if err != nil {
					return "", err
				}
				return fmt.Sprintf("added edge %s (%s -> %s) to %s", e.ID().Raw(), src.ID().Raw(), tgt.ID().Raw(), c.Name()), nil
			})
		},
	}
	edge.Flags().StringVar(&status, "status", string(model.EdgeInput), "edge status (INPUT|OUTPUT)")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "component",
			Short: "Add a component with an initial location",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return cli.edit("add component", func(p *model.Project) (string, error) {
					c, err := p.NewComponent()
					if err != nil {
						return "", err
					}
					return "added component " + c.Name(), nil
				})
			},
		},
		&cobra.Command{
			Use:   "location <component>",
			Short: "Add a location to a component",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return cli.edit("add location", func(p *model.Project) (string, error) {
					c, err := findComponent("add location", p, args[0])
					if err != nil {
						return "", err
					}
					loc, err := c.NewLocation()
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("added location %s to %s", loc.ID().Raw(), c.Name()), nil
				})
			},
		},
		edge,
		&cobra.Command{
			Use:   "system",
			Short: "Add an empty system",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return cli.edit("add system", func(p *model.Project) (string, error) {
					s, err := p.NewSystem()
					if err != nil {
						return "", err
					}
					return "added system " + s.Name(), nil
				})
			},
		},
		&cobra.Command{
			Use:   "instance <system> <component>",
			Short: "Instantiate a component in a system",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return cli.edit("add instance", func(p *model.Project) (string, error) {
					s, err := findSystem("add instance", p, args[0])
					if err != nil {
						return "", err
					}
					c, err := findComponent("add instance", p, args[1])
					if err != nil {
						return "", err
					}
					inst, err := s.AddInstance(c)
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("added instance %d of %s to %s", inst.ID().Raw(), c.Name(), s.Name()), nil
				})
			},
		},
		&cobra.Command{
			Use:   "operator <system> <conjunction|composition|quotient>",
			Short: "Add an operator to a system",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return cli.edit("add operator", func(p *model.Project) (string, error) {
					s, err := findSystem("add operator", p, args[0])
					if err != nil {
						return "", err
					}
					op, err := s.AddOperator(model.OperatorType(args[1]))
					if err != nil {
						return "", err
					}
					return fmt.Sprintf("added %s %d to %s", op.Type, op.ID().Raw(), s.Name()), nil
				})
			},
		},
	)
	return cmd
}

func (cli *CLI) connectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect <system> <parent> <child>",
		Short: "Place a system member below an operator or the root (0)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.edit("connect members", func(p *model.Project) (string, error) {
				s, err := findSystem("connect members", p, args[0])
				if err != nil {
					return "", err
				}
				parent, err := memberID("connect members", args[1])
				if err != nil {
					return "", err
				}
				child, err := memberID("connect members", args[2])
				if err != nil {
					return "", err
				}
				if err := s.Connect(parent, child); err != nil {
					return "", err
				}
				return fmt.Sprintf("connected %d -> %d in %s", parent, child, s.Name()), nil
			})
		},
	}
}
