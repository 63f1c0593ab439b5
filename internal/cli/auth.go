package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recipebox/recipe-api/pkg/client"
)

func (a *app) registerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Long: `Create an account. Registering does not log you in.

The password is prompted for unless --password is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			email, _ := cmd.Flags().GetString("email")
			password, err := a.passwordFlag(cmd)
			if err != nil {
				return err
			}

			user, err := a.client.Register(cmd.Context(), name, email, password)
			if err != nil {
				return err
			}

			if a.jsonOut() {
				return printJSON(cmd.OutOrStdout(), map[string]any{"user": user})
			}
			printSuccess(cmd.OutOrStdout(), "Account created for %s. Run `recipectl login` to sign in.", user.Email)
			return nil
		},
	}
	cmd.Flags().String("name", "", "display name")
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("password", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) loginCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			email, _ := cmd.Flags().GetString("email")
			password, err := a.passwordFlag(cmd)
			if err != nil {
				return err
			}

			user, err := a.client.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}

			if a.jsonOut() {
				return printJSON(cmd.OutOrStdout(), map[string]any{"user": user})
			}
			printSuccess(cmd.OutOrStdout(), "Logged in as %s <%s>", user.Name, user.Email)
			return nil
		},
	}
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("password", "", "password (prompted when omitted)")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func (a *app) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Long: `Forget the stored session token.

The server keeps no sessions, so a copied token stays valid until it expires.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.client.Logout(); err != nil {
				return err
			}
			if a.jsonOut() {
				return printJSON(cmd.OutOrStdout(), map[string]string{"status": "logged_out"})
			}
			printSuccess(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (a *app) verifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check that the stored session is still accepted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			valid, err := a.client.Verify(cmd.Context())
			if errors.Is(err, client.ErrNotLoggedIn) {
				return fmt.Errorf("%w: run `recipectl login` first", err)
			}
			if err != nil {
				return err
			}

			if a.jsonOut() {
				return printJSON(cmd.OutOrStdout(), map[string]bool{"valid": valid})
			}
			printSuccess(cmd.OutOrStdout(), "Session is valid")
			return nil
		},
	}
}

// passwordFlag returns --password or prompts for it.
func (a *app) passwordFlag(cmd *cobra.Command) (string, error) {
	password, _ := cmd.Flags().GetString("password")
	if password != "" {
		return password, nil
	}
	return promptPassword(cmd.InOrStdin(), cmd.ErrOrStderr(), "Password: ")
}
