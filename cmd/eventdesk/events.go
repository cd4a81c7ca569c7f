package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nkiryanov/eventdesk/internal/models"
	"github.com/nkiryanov/eventdesk/internal/session"
)

func (c *cli) eventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Browse and select events",
	}
	cmd.AddCommand(c.eventsListCmd(), c.eventsSelectCmd(), c.eventsTypesCmd())
	return cmd
}

func (c *cli) eventsListCmd() *cobra.Command {
	p := models.EventParameters{PageNumber: 1, PageSize: 20}

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List events",
		Args:    cobra.NoArgs,
		PreRunE: c.guard(requireAuth, requireAdministrator),
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := c.app.api.Events.List(cmd.Context(), p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := newTable(out)
			fmt.Fprintln(tw, "ID\tNAME\tDATE\tGUESTS\tDESKS")
			for _, ev := range page.Data {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%d\t%d\n", ev.ID, ev.Name, ev.EventDate.Format("2006-01-02"), ev.GuestsCount, ev.DesksCount)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			printPageInfo(out, page.PageInfo)
			return nil
		},
	}

	cmd.Flags().StringVar(&p.SearchQuery, "search", "", "Search by name")
	cmd.Flags().IntVar(&p.PageNumber, "page", p.PageNumber, "Page number")
	cmd.Flags().IntVar(&p.PageSize, "size", p.PageSize, "Page size")
	return cmd
}

func (c *cli) eventsSelectCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "select <id>",
		Short:   "Choose the event next commands work on",
		Args:    cobra.ExactArgs(1),
		PreRunE: c.guard(requireAuth, requireAdministrator),
		RunE: func(cmd *cobra.Command, args []string) error {
			eventID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid event id %q", args[0])
			}

			ev, err := c.app.api.Events.Get(cmd.Context(), eventID)
			if err != nil {
				return err
			}

			selected := session.SelectedEvent{ID: ev.ID, Name: ev.Name, Slug: ev.Slug}
			if err := c.app.selection.Select(cmd.Context(), selected); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Selected %s (#%d)\n", ev.Name, ev.ID)
			return nil
		},
	}
}

func (c *cli) eventsTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "types",
		Short:   "List event types",
		Args:    cobra.NoArgs,
		PreRunE: c.guard(requireAuth, requireStaff),
		RunE: func(cmd *cobra.Command, _ []string) error {
			types, err := c.app.api.Events.Types(cmd.Context())
			if err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintln(tw, "ID\tSLUG\tNAME\tACTIVE")
			for _, et := range types {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", et.ID, et.Slug, et.Name, yesNo(et.Active))
			}
			return tw.Flush()
		},
	}
}
