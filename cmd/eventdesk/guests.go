package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nkiryanov/eventdesk/internal/models"
)

func (c *cli) guestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "guests",
		Short: "Guest list of the selected event",
	}
	cmd.AddCommand(c.guestsListCmd(), c.guestsConfirmCmd(), c.guestsArrivedCmd())
	return cmd
}

func parseGuestID(arg string) (int64, error) {
	guestID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid guest id %q", arg)
	}
	return guestID, nil
}

func (c *cli) guestsListCmd() *cobra.Command {
	p := models.GuestParameters{PageNumber: 1, PageSize: 20}
	var (
		categoryID int64
		refresh    bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List guests",
		Args:    cobra.NoArgs,
		PreRunE: c.guard(requireAuth, requireStaff, requireEvent),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if categoryID > 0 {
				p.CategoryID = &categoryID
			}

			list := c.app.guests.List
			if refresh {
				list = c.app.guests.Refresh
			}
			page, err := list(cmd.Context(), p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := newTable(out)
			fmt.Fprintln(tw, "ID\tNAME\tPEOPLE\tCATEGORY\tDESK\tCONFIRMED\tARRIVED")
			for _, g := range page.Data {
				fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\t%s\t%s\n",
					g.ID, g.Name, g.PeopleCount, g.CategoryName, g.DeskName, yesNo(g.PresenceConfirmed), yesNo(g.Arrived))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			printPageInfo(out, page.PageInfo)
			return nil
		},
	}

	cmd.Flags().StringVar(&p.SearchQuery, "search", "", "Search by name")
	cmd.Flags().Int64Var(&categoryID, "category", 0, "Guest category id")
	cmd.Flags().StringVar(&p.AvailabilityType, "availability", "", "Availability filter")
	cmd.Flags().IntVar(&p.PageNumber, "page", p.PageNumber, "Page number")
	cmd.Flags().IntVar(&p.PageSize, "size", p.PageSize, "Page size")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Skip cached list")
	return cmd
}

func (c *cli) guestsConfirmCmd() *cobra.Command {
	var in models.ConfirmPresenceInput

	cmd := &cobra.Command{
		Use:     "confirm <guest-id>",
		Short:   "Confirm presence of a guest",
		Args:    cobra.ExactArgs(1),
		PreRunE: c.guard(requireAuth, requireStaff, requireEvent),
		RunE: func(cmd *cobra.Command, args []string) error {
			guestID, err := parseGuestID(args[0])
			if err != nil {
				return err
			}

			g, err := c.app.guests.ConfirmPresence(cmd.Context(), guestID, in)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Presence confirmed for %s (#%d), %d people\n", g.Name, g.ID, in.PeopleConfirmed)
			return nil
		},
	}

	cmd.Flags().IntVar(&in.PeopleConfirmed, "people", 1, "Confirmed number of people")
	cmd.Flags().StringVar(&in.AdditionalComments, "comment", "", "Additional comments")
	return cmd
}

func (c *cli) guestsArrivedCmd() *cobra.Command {
	var cancel bool

	cmd := &cobra.Command{
		Use:     "arrived <guest-id>",
		Short:   "Mark a guest as arrived",
		Args:    cobra.ExactArgs(1),
		PreRunE: c.guard(requireAuth, requireStaff, requireEvent),
		RunE: func(cmd *cobra.Command, args []string) error {
			guestID, err := parseGuestID(args[0])
			if err != nil {
				return err
			}

			mark, verb := c.app.guests.ConfirmArrival, "arrived"
			if cancel {
				mark, verb = c.app.guests.CancelArrival, "not arrived"
			}

			g, err := mark(cmd.Context(), guestID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (#%d) marked %s\n", g.Name, g.ID, verb)
			return nil
		},
	}

	cmd.Flags().BoolVar(&cancel, "cancel", false, "Undo arrival")
	return cmd
}
