package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nkiryanov/eventdesk/internal/models"
)

func (c *cli) dashboardCmd() *cobra.Command {
	p := models.DashboardStatsParameters{Range: "30d"}
	var refresh bool

	cmd := &cobra.Command{
		Use:     "dashboard",
		Short:   "Statistics of the selected event",
		Args:    cobra.NoArgs,
		PreRunE: c.guard(requireAuth, requireStaff, requireEvent),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if p.From != "" || p.To != "" {
				p.Range = ""
			}

			stats := c.app.dashboard.Stats
			if refresh {
				stats = c.app.dashboard.Refresh
			}
			s, err := stats(cmd.Context(), p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Status: %s, health %d, %d days remaining\n",
				s.Overview.OperationalStatus, s.Overview.HealthScore, s.Overview.DaysRemaining)
			fmt.Fprintf(out, "Guests: %d total, %d confirmed, %d declined, %d pending (%.0f%% confirmed)\n",
				s.Guests.Total, s.Guests.Confirmed, s.Guests.Declined, s.Guests.Pending, s.Guests.ConfirmationRate*100)
			fmt.Fprintf(out, "People: %d total, %d confirmed\n", s.Guests.PeopleTotal, s.Guests.PeopleConfirmed)
			fmt.Fprintf(out, "Seating: %d tables, %d/%d seats assigned\n",
				s.Seating.TablesCount, s.Seating.AssignedGuests, s.Seating.SeatsCapacity)
			if s.Budget != nil {
				fmt.Fprintf(out, "Budget: estimated %s, actual %s, paid %s %s\n",
					s.Budget.Estimated.StringFixed(2), s.Budget.Actual.StringFixed(2), s.Budget.Paid.StringFixed(2), s.Budget.Currency)
			}
			for _, item := range s.AttentionItems {
				fmt.Fprintf(out, "! %s: %d (%s)\n", item.Title, item.Count, item.Severity)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&p.Range, "range", p.Range, "Preset range, e.g. 7d or 30d")
	cmd.Flags().StringVar(&p.From, "from", "", "Range start date, overrides --range")
	cmd.Flags().StringVar(&p.To, "to", "", "Range end date, overrides --range")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Skip cached statistics")
	return cmd
}
