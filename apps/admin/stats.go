package main

import (
	"context"
	"fmt"
	"text/tabwriter"
)

func (cli *commandLine) stats(ctx context.Context) error {
	stats, err := cli.api.FetchStats(ctx)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Total Students\t%d\n", stats.Students)
	fmt.Fprintf(w, "Total Teachers\t%d\n", stats.Teachers)
	fmt.Fprintf(w, "Total Courses\t%d\n", stats.Courses)
	return w.Flush()
}
