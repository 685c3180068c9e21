package cli

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/sadopc/unwind/internal/store"
	"github.com/sadopc/unwind/internal/wellness"
)

type RecentCmd struct {
	Limit int `help:"Number of check-ins to show." default:"10"`
}

func (c *RecentCmd) Run(ctx *Context) error {
	if c.Limit < 1 {
		return &wellness.ValidationError{Field: "limit", Reason: "must be at least 1"}
	}
	records, err := ctx.Store.QueryRecords(context.Background(), store.RecordFilter{Limit: c.Limit})
	if err != nil {
		return err
	}

	w := ctx.out()
	if len(records) == 0 {
		fmt.Fprintln(w, "No check-ins yet.")
		return nil
	}
	for _, r := range records {
		fmt.Fprintf(w, "%s  %2d %-9s %-8s %-28s %s\n",
			r.CreatedAt.Local().Format("Jan 02 15:04"),
			r.StressLevel,
			wellness.StressLabel(r.StressLevel),
			r.Mode,
			moodList(r.MoodTags),
			humanize.Time(r.CreatedAt),
		)
	}
	return nil
}
