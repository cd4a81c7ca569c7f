package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

func main() {
	// Initialize context that cancelled on SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := run(ctx, os.Args[1:], os.Getenv, os.Getwd, os.Stdin, os.Stdout, os.Stderr)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// cli builds the App lazily so that help and flag errors never touch storage or network
type cli struct {
	cfg    *Config
	errOut io.Writer
	app    *App
}

func run(
	ctx context.Context,
	args []string,
	getenv func(string) string,
	getwd func() (string, error),
	in io.Reader,
	out io.Writer,
	errOut io.Writer,
) error {
	cfg := NewConfig()
	if err := cfg.LoadDotEnv(getwd); err != nil {
		return fmt.Errorf("error while reading .env: %w", err)
	}
	if err := cfg.LoadEnv(getenv); err != nil {
		return fmt.Errorf("error while reading environment: %w", err)
	}

	c := &cli{cfg: cfg, errOut: errOut}
	defer func() {
		if c.app != nil {
			c.app.Close()
		}
	}()

	root := c.rootCmd()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)

	return root.ExecuteContext(ctx)
}

func (c *cli) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "eventdesk",
		Short:         "Event management admin API client",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp(cmd.Context(), c.cfg, cmd.OutOrStdout(), c.errOut)
			if err != nil {
				return fmt.Errorf("can't initialize app: %w", err)
			}
			c.app = app
			return nil
		},
	}

	c.cfg.BindFlags(root.PersistentFlags())

	root.AddCommand(
		c.loginCmd(),
		c.logoutCmd(),
		c.whoamiCmd(),
		c.eventsCmd(),
		c.guestsCmd(),
		c.dashboardCmd(),
		c.beveragesCmd(),
		c.watchCmd(),
	)
	return root
}
