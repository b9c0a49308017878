package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gameverse/gameverse-go/internal/factory"
	"github.com/gameverse/gameverse-go/internal/session"
)

var (
	cfg *Config
	app *factory.App
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "gameverse",
		Short: "CLI for the GameVerse catalog API",
		Long: `gameverse is a CLI for browsing the GameVerse video-game catalog.

It covers the full API surface: account management, catalog search with
facet filters, autocomplete suggestions, game details, the personal
library, and ranking views.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(io.Discard, nil))
			if cfg.Verbose {
				logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
					Level: slog.LevelDebug,
				}))
			}

			// An explicit --token bypasses the token file
			var creds session.CredentialStore
			if cfg.Token != "" {
				store := session.NewMemoryStore()
				if err := store.Save(cfg.Token); err != nil {
					return err
				}
				creds = store
			}

			var err error
			app, err = factory.New(factory.Config{
				App:         cfg.appConfig(),
				Credentials: creds,
				Logger:      logger,
			})
			return err
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "API base URL (env: GAMEVERSE_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Access token (env: GAMEVERSE_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: GAMEVERSE_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newSuggestCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newLibraryCmd())
	rootCmd.AddCommand(newRankingCmd())
	rootCmd.AddCommand(newHomeCmd())
	rootCmd.AddCommand(newPopularCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// requireAuth resumes the stored session and fails when it is anonymous
func requireAuth(cmd *cobra.Command) error {
	if err := app.Session.Resume(cmd.Context()); err != nil {
		return err
	}
	if !app.Session.IsAuthenticated() {
		return errNotLoggedIn
	}
	return nil
}
