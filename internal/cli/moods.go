package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/sadopc/unwind/internal/wellness"
)

// MoodsCmd lists every mood tag ever recorded with its use in the window.
type MoodsCmd struct {
	Days int `help:"Count tag use over this many days." default:"30"`
}

func (c *MoodsCmd) Run(ctx *Context) error {
	if c.Days < 1 {
		return &wellness.ValidationError{Field: "days", Reason: "must be at least 1"}
	}
	bg := context.Background()
	tags, err := ctx.Store.ListTags(bg)
	if err != nil {
		return err
	}
	w := ctx.out()
	if len(tags) == 0 {
		fmt.Fprintln(w, "No mood tags yet.")
		return nil
	}

	counts, err := ctx.Store.MoodCounts(bg, time.Now().AddDate(0, 0, -c.Days))
	if err != nil {
		return err
	}
	byLabel := make(map[string]int, len(counts))
	for _, mc := range counts {
		byLabel[mc.Label] = mc.Count
	}

	fmt.Fprintf(w, "Mood tags, uses in the last %d days\n", c.Days)
	for _, t := range tags {
		fmt.Fprintf(w, "  %-14s %3d\n", t.Label, byLabel[t.Label])
	}
	return nil
}
