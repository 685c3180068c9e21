package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/sadopc/unwind/internal/wellness"
)

type CheckinCmd struct {
	Stress int      `help:"Stress level from 0 to 10." required:""`
	Mode   string   `help:"Check-in mode (quick, daily, detailed)." default:"quick"`
	Mood   []string `help:"Mood tag. Repeat or comma separate for several." short:"m"`
	Notes  string   `help:"Notes for daily and detailed check-ins."`
}

func (c *CheckinCmd) Run(ctx *Context) error {
	if err := wellness.ValidateStress(c.Stress); err != nil {
		return err
	}
	mode, err := wellness.ParseMode(c.Mode)
	if err != nil {
		return err
	}
	if mode == wellness.ModeQuick && strings.TrimSpace(c.Notes) != "" {
		return &wellness.ValidationError{Field: "notes", Reason: "quick check-ins do not keep notes, use --mode daily or detailed"}
	}
	moods, err := parseMoods(c.Mood)
	if err != nil {
		return err
	}

	sess := ctx.Session
	sess.Clear()
	if err := sess.SetStress(c.Stress); err != nil {
		return err
	}
	if err := sess.SetMode(mode); err != nil {
		return err
	}
	for _, m := range moods {
		if err := sess.ToggleMood(m); err != nil {
			return err
		}
	}
	sess.SetNotes(c.Notes)

	id, err := sess.Save(context.Background())
	if id == "" {
		return err
	}
	fmt.Fprintf(ctx.out(), "Saved check-in %s: stress %d (%s), %s\n",
		id, c.Stress, wellness.StressLabel(c.Stress), moodList(moods))
	if err != nil {
		return fmt.Errorf("check-in saved but refresh failed: %w", err)
	}
	if adv, ok := sess.Advisory(); ok {
		fmt.Fprintln(ctx.out(), adv.Message)
	}
	return nil
}
