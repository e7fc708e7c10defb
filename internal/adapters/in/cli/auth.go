// internal/adapters/in/cli/auth.go
package cli

import (
	"errors"
	"fmt"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/caerux/e-commerce-website/internal/adapters/in/auth"
)

// NewLoginCommand authenticates a user and merges the guest cart into
// the user cart.
func NewLoginCommand(rootOpts *RootOptions) *cobra.Command {
	var (
		password string
		idToken  string
	)

	cmd := &cobra.Command{
		Use:   "login [username]",
		Short: "Log in and adopt your saved cart",
		Long: `Log in and adopt your saved cart.

With AUTH_BACKEND=file (default) pass a username and a password. With
AUTH_BACKEND=firebase pass --token with a Firebase ID token instead.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := newContainer(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer c.Close()

			if idToken != "" {
				if c.FirebaseIDs == nil {
					return errors.New("--token requires AUTH_BACKEND=firebase")
				}
				id, err := c.FirebaseIDs.SignInWithToken(cmd.Context(), idToken)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s. Cart now has %d item(s).\n",
					id.UserID, c.Engine.TotalItems())
				return nil
			}

			if c.Auth == nil {
				return errors.New("username login requires AUTH_BACKEND=file")
			}
			if len(args) != 1 {
				return errors.New("username required")
			}

			if password == "" {
				fmt.Fprint(cmd.OutOrStdout(), "Password: ")
				raw, err := term.ReadPassword(int(syscall.Stdin))
				fmt.Fprintln(cmd.OutOrStdout())
				if err != nil {
					return err
				}
				password = string(raw)
			}

			if _, err := c.Auth.Login(cmd.Context(), args[0], password); err != nil {
				if errors.Is(err, auth.ErrInvalidCredentials) {
					return errors.New("invalid username or password")
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s. Cart now has %d item(s).\n",
				args[0], c.Engine.TotalItems())
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "password (prompted when omitted)")
	cmd.Flags().StringVar(&idToken, "token", "", "Firebase ID token (AUTH_BACKEND=firebase)")
	return cmd
}

// NewLogoutCommand drops back to the guest identity.
func NewLogoutCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and return to the guest cart",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, _, err := newContainer(cmd.Context(), rootOpts)
			if err != nil {
				return err
			}
			defer c.Close()

			if c.FirebaseIDs != nil {
				c.FirebaseIDs.SignOut()
			}
			if c.Auth != nil {
				c.Auth.Logout()
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}
