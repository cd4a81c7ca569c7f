package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/nkiryanov/eventdesk/internal/models"
)

func newTable(out io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
}

func printPageInfo(out io.Writer, info models.PageInfo) {
	fmt.Fprintf(out, "Page %d of %d, %d total", info.CurrentPage, info.TotalPages, info.TotalCount)
	if info.TotalPeopleCount != nil {
		fmt.Fprintf(out, ", %d people", *info.TotalPeopleCount)
	}
	fmt.Fprintln(out)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
