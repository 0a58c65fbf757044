package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arthur-debert/tamodel/model"
	"github.com/arthur-debert/tamodel/search"
	"github.com/spf13/cobra"
)

func (cli *CLI) findCmd() *cobra.Command {
	var opts search.Options
	cmd := &cobra.Command{
		Use:   "find <text>",
		Short: "Search names and labels",
		Long: `Search ids, nicknames, guards, invariants, updates, syncs and
declarations. Results are ranked; names rank above labels.

Examples:
  tamodel find coin --field sync --exact
  tamodel find "x <=" --field invariant`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cli.openSession("find")
			if err != nil {
				return err
			}
			defer func() { _ = s.Close() }()

			opts.Query = args[0]
			opts.EnableHighlight = !cli.v.GetBool("no-color")
			opts.HighlightStartMarker = "\033[1m"
			opts.HighlightEndMarker = "\033[0m"

			var results []search.Result
			err = s.Read(func(p *model.Project) error {
				results, err = search.SearchProject(p, opts)
				return err
			})
			if err != nil {
				return err
			}

			for _, r := range results {
				fmt.Fprintf(cli.out, "%s %s\n", r.Entry.Kind, r.Entry.Path)
				for _, f := range r.Entry.Fields {
					if !slices.Contains(r.MatchedFields, f.Name) {
						continue
					}
					text := f.Text
					if h, ok := r.Highlights[f.Name]; ok {
						text = h
					}
					fmt.Fprintf(cli.out, "  %s: %s\n", f.Name, text)
				}
			}
			if len(results) == 0 {
				fmt.Fprintf(cli.out, "no matches for %q\n", opts.Query)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&opts.Fields, "field", nil, "restrict to these fields ("+strings.Join(searchFields, "|")+")")
	cmd.Flags().BoolVar(&opts.ExactMatch, "exact", false, "match whole fields only")
	cmd.Flags().BoolVar(&opts.CaseSensitive, "case-sensitive", false, "match case")
	cmd.Flags().IntVar(&opts.MaxResults, "limit", 0, "maximum number of results (0 for all)")
	return cmd
}

var searchFields = []string{"id", "nickname", "invariant", "select", "guard", "update", "sync", "declarations", "description"}
