package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Account and session commands",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthRegisterCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthStatusCmd())
	cmd.AddCommand(newAuthVerifyCmd())

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var email, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the access token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Login(cmd.Context(), email, pass); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*app.Session.User())
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newAuthRegisterCmd() *cobra.Command {
	var email, user, pass string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create an account. The account must confirm its email address before
it can log in; see 'gameverse auth verify'.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Register(cmd.Context(), email, user, pass); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Account created. Check your inbox to verify your email address.")
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newAuthLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and clear the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Resume(cmd.Context()); err != nil {
				return err
			}
			app.Session.Logout(cmd.Context())

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logged out.")
			return nil
		},
	}
}

func newAuthStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Session.Resume(cmd.Context()); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if !app.Session.IsAuthenticated() {
				out.PrintMessage("Not logged in.")
				return nil
			}
			out.Print(*app.Session.User())
			return nil
		},
	}
}

func newAuthVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <token>",
		Short: "Redeem an email-verification token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			message, err := app.Client.VerifyEmail(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if message == "" {
				message = fmt.Sprintf("Email verified for token %s.", args[0])
			}
			out.PrintMessage(message)
			return nil
		},
	}
}
