package cli

import (
	"context"
	"fmt"
	"strings"
)

// TrendsCmd only reads. Delivering nudges is left to `unwind nudge`.
type TrendsCmd struct{}

func (c *TrendsCmd) Run(ctx *Context) error {
	if err := ctx.Session.Reload(context.Background()); err != nil {
		return err
	}
	st := ctx.Session.Snapshot()
	w := ctx.out()

	fmt.Fprintln(w, "Average stress, last 7 days")
	for _, d := range st.Daily {
		fmt.Fprintf(w, "  %s  %4.1f %s\n", d.Day.Format("Mon 01-02"), d.Avg, bar(d.Avg))
	}

	fmt.Fprintln(w, "\nStress by time of day")
	for _, s := range st.Slots {
		fmt.Fprintf(w, "  %-9s  %4.1f %s\n", s.Slot, s.Avg, bar(s.Avg))
	}

	if st.Advisory != nil {
		fmt.Fprintf(w, "\n%s\n", st.Advisory.Message)
	}
	return nil
}

func bar(avg float64) string {
	return strings.Repeat("█", int(avg*2+0.5))
}
