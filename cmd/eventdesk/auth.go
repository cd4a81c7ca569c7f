package main

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nkiryanov/eventdesk/internal/models"
)

func (c *cli) loginCmd() *cobra.Command {
	var in models.LoginInput

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and keep the session for next commands",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if in.Password == "" {
				fmt.Fprint(cmd.ErrOrStderr(), "Password: ")
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password: %w", err)
				}
				in.Password = strings.TrimRight(line, "\r\n")
			}

			user, err := c.app.session.Login(cmd.Context(), in)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s> (%s)\n", user.Name, user.Email, user.RoleName)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "Account email")
	cmd.Flags().StringVar(&in.Password, "password", "", "Account password, asked on stdin when empty")
	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			c.app.session.CheckAuth(ctx)
			c.app.session.LogoutAsync(ctx)
			if err := c.app.selection.Clear(ctx); err != nil {
				c.app.logger.Warn("Failed to clear selected event", "error", err)
			}
			c.app.purgeExpired(ctx)

			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (c *cli) whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "whoami",
		Short:   "Show the signed in user",
		Args:    cobra.NoArgs,
		PreRunE: c.guard(requireAuth),
		RunE: func(cmd *cobra.Command, _ []string) error {
			cred := c.app.session.Credential()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "%s <%s>\n", cred.User.Name, cred.User.Email)
			fmt.Fprintf(out, "Role:    %s\n", cred.User.RoleName)
			fmt.Fprintf(out, "Expires: %s\n", cred.ExpiresAt.Local().Format(time.RFC1123))

			ev, ok, err := c.app.selection.Load(cmd.Context())
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintf(out, "Event:   %s (#%d)\n", ev.Name, ev.ID)
			}
			return nil
		},
	}
}
