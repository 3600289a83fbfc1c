package table

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Render writes res as an aligned text table, ids first.
func Render(w io.Writer, res Result) error {
	switch res.State {
	case Loading:
		_, err := fmt.Fprintln(w, "Loading products...")
		return err
	case Empty:
		_, err := fmt.Fprintln(w, "No products yet.")
		return err
	case NoMatches:
		_, err := fmt.Fprintf(w, "No results (0 of %d products match the filter).\n", res.Total)
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "ID")
	for _, c := range res.Columns {
		fmt.Fprintf(tw, "\t%s", c.Header)
	}
	fmt.Fprintln(tw)
	for _, r := range res.Rows {
		fmt.Fprint(tw, r.ID)
		for _, cell := range r.Cells {
			fmt.Fprintf(tw, "\t%s", cell)
		}
		fmt.Fprintln(tw)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d of %d products\n", len(res.Rows), res.Total)
	return err
}
