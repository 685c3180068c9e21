package cli

import (
	"fmt"

	"github.com/sadopc/unwind/internal/wellness"
)

type SuggestCmd struct {
	Stress int      `help:"Stress level from 0 to 10." required:""`
	Mood   []string `help:"Mood tag. Repeat or comma separate for several." short:"m"`
}

func (c *SuggestCmd) Run(ctx *Context) error {
	if err := wellness.ValidateStress(c.Stress); err != nil {
		return err
	}
	moods, err := parseMoods(c.Mood)
	if err != nil {
		return err
	}
	for _, s := range wellness.Suggest(c.Stress, wellness.NewMoodSet(moods...)) {
		fmt.Fprintf(ctx.out(), "%-24s %-10s %-8s %s\n", s.Title, s.Duration, s.Intensity, s.Subtitle)
	}
	return nil
}
