package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/gameverse/gameverse-go/internal/model"
)

func newLibraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Personal library commands",
	}

	cmd.AddCommand(newLibraryListCmd())
	cmd.AddCommand(newLibraryToggleCmd())

	return cmd
}

func newLibraryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the games in your library",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAuth(cmd); err != nil {
				return err
			}

			games, err := libraryGames(cmd.Context(), app.Session.User())
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(GameList{Games: games})
			return nil
		},
	}
}

func newLibraryToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Add or remove a game from your library",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			if err := requireAuth(cmd); err != nil {
				return err
			}

			if err := app.Session.ToggleFavorite(cmd.Context(), id); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if app.Session.User().HasGame(id) {
				out.PrintMessage("Added to library.")
			} else {
				out.PrintMessage("Removed from library.")
			}
			return nil
		},
	}
}

// libraryGames resolves the user's game ids into catalog entries. A game
// the catalog no longer serves is skipped rather than failing the list.
func libraryGames(ctx context.Context, user *model.User) ([]model.Game, error) {
	games := make([]model.Game, 0, len(user.GameList))
	for _, id := range user.GameList {
		game, err := app.Catalog.Game(ctx, id)
		if err != nil {
			if errors.Is(err, model.ErrGameNotFound) {
				continue
			}
			return nil, err
		}
		games = append(games, *game)
	}
	return games, nil
}
