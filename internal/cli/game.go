package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "game <id>",
		Short: "Show a game's details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}

			game, err := app.Catalog.Game(cmd.Context(), id)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*game)
			return nil
		},
	}
}

func newHomeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "home",
		Short: "Show the home feed",
		RunE: func(cmd *cobra.Command, args []string) error {
			feed, err := app.Catalog.HomeFeed(cmd.Context())
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(feed)
			return nil
		},
	}
}

func newPopularCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "popular",
		Short: "Show the most popular games",
		RunE: func(cmd *cobra.Command, args []string) error {
			games, err := app.Catalog.Popular(cmd.Context())
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(GameList{Games: games})
			return nil
		},
	}
}
