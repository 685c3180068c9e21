// Package cli holds the kong commands behind the unwind binary.
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/sadopc/unwind/internal/config"
	"github.com/sadopc/unwind/internal/notify"
	"github.com/sadopc/unwind/internal/session"
	"github.com/sadopc/unwind/internal/store"
	"github.com/sadopc/unwind/internal/wellness"
)

// Notifications is a notifier whose permission can be set directly. The
// desktop notifier implements it.
type Notifications interface {
	notify.Notifier
	SetPermission(ctx context.Context, p notify.Permission) error
}

// Context is passed to every command's Run method.
type Context struct {
	Config   *config.Config
	Store    *store.Store
	Session  *session.Session
	Notifier Notifications
	Out      io.Writer
}

func (c *Context) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

// Format renders a command error for stderr.
func Format(err error) string {
	return "Error: " + err.Error()
}

// parseMoods resolves --mood values, dropping repeats.
func parseMoods(raw []string) ([]wellness.Mood, error) {
	set := wellness.NewMoodSet()
	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			m, err := wellness.ParseMood(part)
			if err != nil {
				return nil, err
			}
			set[m] = struct{}{}
		}
	}
	return set.Sorted(), nil
}

func moodList(moods []wellness.Mood) string {
	if len(moods) == 0 {
		return "-"
	}
	parts := make([]string, len(moods))
	for i, m := range moods {
		parts[i] = m.Slug()
	}
	return strings.Join(parts, ", ")
}
