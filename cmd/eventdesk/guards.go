package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nkiryanov/eventdesk/internal/apperrors"
	"github.com/nkiryanov/eventdesk/internal/session"
)

// guard decides whether a command may run for the current session
type guard func(ctx context.Context, a *App) error

func (c *cli) guard(guards ...guard) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		for _, g := range guards {
			if err := g(cmd.Context(), c.app); err != nil {
				return err
			}
		}
		return nil
	}
}

func requireAuth(ctx context.Context, a *App) error {
	if a.session.CheckAuth(ctx) {
		return nil
	}

	a.terminator.Expire(ctx, session.ReasonSessionExpired)
	return apperrors.ErrNotAuthenticated
}

func requireStaff(_ context.Context, a *App) error {
	if !a.session.IsStaff() {
		return apperrors.ErrForbidden
	}
	return nil
}

// Administrators and super administrators both pass
func requireAdministrator(_ context.Context, a *App) error {
	if !a.session.IsMultiEventStaff() {
		return apperrors.ErrForbidden
	}
	return nil
}

func requireSuperAdministrator(_ context.Context, a *App) error {
	if !a.session.IsSuperAdministrator() {
		return apperrors.ErrForbidden
	}
	return nil
}

// requireEvent restores the selected event. Users bound to one event have nothing to choose from,
// so without a selection their session is ended
func requireEvent(ctx context.Context, a *App) error {
	_, ok, err := a.selection.Load(ctx)
	if err != nil {
		return err
	}
	if ok {
		return nil
	}

	if a.session.IsMultiEventStaff() {
		return fmt.Errorf("%w: run `eventdesk events select <id>`", apperrors.ErrNoEventSelected)
	}

	a.session.LogoutAsync(ctx)
	return apperrors.ErrNoEventSelected
}
