package cli

import (
	"context"
	"fmt"
)

// NudgeCmd refreshes analytics once, which sends the desktop notification
// when a new advisory applies. Meant for cron.
type NudgeCmd struct {
	Quiet bool `help:"Print nothing when no nudge applies." short:"q"`
}

func (c *NudgeCmd) Run(ctx *Context) error {
	if err := ctx.Session.Refresh(context.Background()); err != nil {
		return err
	}
	adv, ok := ctx.Session.Advisory()
	if !ok {
		if !c.Quiet {
			fmt.Fprintln(ctx.out(), "No nudge right now.")
		}
		return nil
	}
	fmt.Fprintln(ctx.out(), adv.Message)
	return nil
}
