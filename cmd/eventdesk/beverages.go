package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nkiryanov/eventdesk/internal/models"
)

func (c *cli) beveragesCmd() *cobra.Command {
	categories := &cobra.Command{
		Use:   "categories",
		Short: "Beverage catalog categories",
	}
	categories.AddCommand(c.beverageCategoriesListCmd(), c.beverageCategoriesCreateCmd())

	cmd := &cobra.Command{
		Use:   "beverages",
		Short: "Beverage catalog",
	}
	cmd.AddCommand(categories)
	return cmd
}

func (c *cli) beverageCategoriesListCmd() *cobra.Command {
	p := models.BeverageCategoriesParameters{PageNumber: 1, PageSize: 50}
	var refresh bool

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List categories",
		Args:    cobra.NoArgs,
		PreRunE: c.guard(requireAuth, requireSuperAdministrator),
		RunE: func(cmd *cobra.Command, _ []string) error {
			list := c.app.categories.List
			if refresh {
				list = c.app.categories.Refresh
			}
			page, err := list(cmd.Context(), p)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			tw := newTable(out)
			fmt.Fprintln(tw, "ID\tSLUG\tNAME")
			for _, bc := range page.Data {
				fmt.Fprintf(tw, "%d\t%s\t%s\n", bc.ID, bc.Slug, bc.Name)
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
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Skip cached list")
	return cmd
}

func (c *cli) beverageCategoriesCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "create <name>",
		Short:   "Create category",
		Args:    cobra.MinimumNArgs(1),
		PreRunE: c.guard(requireAuth, requireSuperAdministrator),
		RunE: func(cmd *cobra.Command, args []string) error {
			bc, err := c.app.categories.CreateCategory(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created category %s (#%d)\n", bc.Name, bc.ID)
			return nil
		},
	}
}
