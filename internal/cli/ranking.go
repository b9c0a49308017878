package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gameverse/gameverse-go/internal/ranking"
)

func newRankingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ranking",
		Short: "Ranking views",
	}

	cmd.AddCommand(newRankingFacetsCmd())
	cmd.AddCommand(newRankingTopCmd())

	return cmd
}

func newRankingFacetsCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "facets",
		Short: "Show the rankable genres, themes, and platform families",
		RunE: func(cmd *cobra.Command, args []string) error {
			hub, err := app.Ranking.Hub(cmd.Context())
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(RankingHub{Hub: hub, ShowAll: all})
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Show the full vocabularies, not just the top entries")

	return cmd
}

func newRankingTopCmd() *cobra.Command {
	var genre, theme, platform, family string

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Rank the most popular games for one facet",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				result *ranking.Ranking
				err    error
			)
			switch {
			case genre != "":
				result, err = app.Ranking.RankGenre(cmd.Context(), genre)
			case theme != "":
				result, err = app.Ranking.RankTheme(cmd.Context(), theme)
			case platform != "":
				result, err = app.Ranking.RankPlatform(cmd.Context(), platform)
			case family != "":
				result, err = rankFamily(cmd, family)
			default:
				return fmt.Errorf("one of --genre, --theme, --platform, --platform-family is required")
			}
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*result)
			return nil
		},
	}

	cmd.Flags().StringVar(&genre, "genre", "", "Rank within a genre")
	cmd.Flags().StringVar(&theme, "theme", "", "Rank within a theme")
	cmd.Flags().StringVar(&platform, "platform", "", "Rank on a single platform")
	cmd.Flags().StringVar(&family, "platform-family", "", "Rank across a platform family, e.g. Nintendo")

	return cmd
}

// rankFamily resolves a family name against the current vocabulary so the
// query carries the family's concrete platforms
func rankFamily(cmd *cobra.Command, name string) (*ranking.Ranking, error) {
	hub, err := app.Ranking.Hub(cmd.Context())
	if err != nil {
		return nil, err
	}
	for _, fam := range hub.PlatformGroups {
		if fam.Name == name {
			return app.Ranking.RankPlatformFamily(cmd.Context(), fam)
		}
	}
	return nil, fmt.Errorf("unknown platform family %q", name)
}
