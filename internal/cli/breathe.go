package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/sadopc/unwind/internal/logger"
	"github.com/sadopc/unwind/internal/store"
	"github.com/sadopc/unwind/internal/wellness"
)

// BreatheCmd runs the breathing guide on stdout. Ctrl+C stops it early.
type BreatheCmd struct {
	Pattern  string        `help:"Preset (box, 4-7-8, custom)." default:"box"`
	Custom   string        `help:"Custom pattern as inhale-hold-exhale-hold seconds, e.g. 4-2-6-0. Implies --pattern custom."`
	Rounds   int           `help:"Rounds to run." default:"3"`
	Interval time.Duration `help:"Length of one breathing second." default:"1s" hidden:""`
}

func (c *BreatheCmd) Run(ctx *Context) error {
	if c.Rounds < 1 {
		return &wellness.ValidationError{Field: "rounds", Reason: "must be at least 1"}
	}
	pattern, err := c.resolve(ctx)
	if err != nil {
		return err
	}
	cycle, err := wellness.NewCycle(pattern)
	if err != nil {
		return err
	}
	if err := cycle.Start(); err != nil {
		return err
	}

	bg := context.Background()
	rs, err := ctx.Store.StartReliefSession(bg, store.KindBreathing, pattern.String())
	if err != nil {
		return err
	}

	w := ctx.out()
	fmt.Fprintf(w, "Breathing %s for %d rounds. Breathe gently. Comfort over intensity.\n", pattern, c.Rounds)
	fmt.Fprintf(w, "%s %ds\n", cycle.Phase(), cycle.Remaining())

	runCtx, stop := signal.NotifyContext(bg, os.Interrupt)
	defer stop()

	done := false
	m := wellness.NewMetronome(c.Interval)
	m.Start(runCtx, func(time.Time) bool {
		step, ok := cycle.Tick()
		if !ok {
			return false
		}
		if step.RoundDone {
			fmt.Fprintf(w, "Round %d of %d done\n", cycle.Rounds(), c.Rounds)
			if cycle.Rounds() >= c.Rounds {
				done = true
				return false
			}
		}
		if step.Advanced {
			fmt.Fprintf(w, "%s %ds\n", step.Phase, step.Remaining)
		}
		return true
	})
	m.Wait()

	rounds := cycle.Rounds()
	cycle.Stop()

	status := store.StatusCancelled
	if done {
		status = store.StatusCompleted
	}
	if err := ctx.Store.FinishReliefSession(bg, rs.ID, status, rounds); err != nil {
		return err
	}
	logger.Debug("breathing finished", "pattern", pattern.String(), "rounds", rounds, "status", status)
	if !done {
		fmt.Fprintf(w, "Stopped after %d rounds.\n", rounds)
	}
	return nil
}

// resolve picks the pattern from the flags, falling back to the stored
// custom pattern.
func (c *BreatheCmd) resolve(ctx *Context) (wellness.Pattern, error) {
	if c.Custom != "" {
		return wellness.ParsePattern(c.Custom)
	}
	preset, err := wellness.ParsePreset(c.Pattern)
	if err != nil {
		return wellness.Pattern{}, err
	}
	if preset != wellness.PresetCustom {
		return wellness.PatternFor(preset, wellness.Pattern{}), nil
	}
	v, err := ctx.Store.GetSetting(context.Background(), store.SettingBreathCustom)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return wellness.Pattern{}, err
	}
	if v == "" {
		return wellness.DefaultCustomPattern, nil
	}
	return wellness.ParsePattern(v)
}
