package cli

import (
	"fmt"

	"github.com/sadopc/unwind/internal/media"
	"github.com/sadopc/unwind/internal/wellness"
)

type MusicCmd struct {
	Category string `help:"Only show this category (Calm, Focus, Energize, Sleep, Nature)." short:"c"`
	Min      int    `help:"Minimum length in minutes."`
}

func (c *MusicCmd) Run(ctx *Context) error {
	if c.Min < 0 {
		return &wellness.ValidationError{Field: "min", Reason: "must not be negative"}
	}

	var items []media.Item
	if c.Category == "" {
		for _, it := range media.Catalog() {
			if it.Minutes >= c.Min {
				items = append(items, it)
			}
		}
	} else {
		cat, err := media.ParseCategory(c.Category)
		if err != nil {
			return &wellness.ValidationError{Field: "category", Reason: err.Error()}
		}
		items = media.Filter(cat, c.Min)
	}

	w := ctx.out()
	if len(items) == 0 {
		fmt.Fprintln(w, "No tracks match.")
		return nil
	}
	for _, it := range items {
		fmt.Fprintf(w, "%-9s %4d min  %s\n          %s\n", it.Category, it.Minutes, it.Title, it.EmbedURL())
	}
	return nil
}
