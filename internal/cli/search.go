package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gameverse/gameverse-go/internal/client"
	"github.com/gameverse/gameverse-go/internal/model"
	"github.com/gameverse/gameverse-go/internal/search"
)

// facetFlags collects repeatable filter flags plus their AND switches
type facetFlags struct {
	values map[model.Facet]*[]string
	allOf  map[model.Facet]*bool
}

func newFacetFlags(cmd *cobra.Command) *facetFlags {
	f := &facetFlags{
		values: make(map[model.Facet]*[]string),
		allOf:  make(map[model.Facet]*bool),
	}
	for _, facet := range model.AllFacets {
		name := strings.TrimSuffix(string(facet), "s")
		f.values[facet] = cmd.Flags().StringSlice(name, nil, "Filter by "+name+" (repeatable)")
		f.allOf[facet] = cmd.Flags().Bool("all-"+string(facet), false, "Require every selected "+name+" (AND)")
	}
	return f
}

func (f *facetFlags) selection() *model.FilterSelection {
	sel := model.NewFilterSelection()
	for _, facet := range model.AllFacets {
		for _, value := range *f.values[facet] {
			sel.Toggle(facet, value)
		}
		if *f.allOf[facet] {
			sel.SetMode(facet, model.ModeAll)
		}
	}
	return sel
}

func newSearchCmd() *cobra.Command {
	var (
		page   int
		limit  int
		sortBy string
		desc   bool
		facets *facetFlags
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search the catalog",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var query string
			if len(args) > 0 {
				query = args[0]
			}

			params := client.SearchParams{
				Query:     query,
				Selection: facets.selection(),
				Page:      page,
				Limit:     limit,
				SortBy:    sortBy,
			}
			if desc {
				params.SortOrder = client.SortDesc
			}

			result, err := app.Client.SearchGames(cmd.Context(), params)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(SearchResult{Games: result.Games, Total: result.Total, Page: page})
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Result page")
	cmd.Flags().IntVar(&limit, "limit", search.DefaultConfig().PageSize, "Page size")
	cmd.Flags().StringVar(&sortBy, "sort", "", "Sort field, e.g. added")
	cmd.Flags().BoolVar(&desc, "desc", false, "Sort descending")
	facets = newFacetFlags(cmd)

	return cmd
}

func newSuggestCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "suggest <prefix>",
		Short: "Autocomplete game titles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Client.SearchGames(cmd.Context(), client.SearchParams{
				Query: args[0],
				Limit: limit,
			})
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(GameList{Games: result.Games})
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", search.DefaultSuggestConfig().Limit, "Suggestion count")

	return cmd
}
