package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/sadopc/unwind/internal/notify"
)

var errNoNotifier = errors.New("desktop notifications are unavailable")

type NotificationsCmd struct {
	Status  NotificationsStatusCmd  `cmd:"" help:"Show the notification permission." default:"1"`
	Enable  NotificationsEnableCmd  `cmd:"" help:"Allow predictive nudges."`
	Disable NotificationsDisableCmd `cmd:"" help:"Block predictive nudges."`
}

type NotificationsStatusCmd struct{}

func (c *NotificationsStatusCmd) Run(ctx *Context) error {
	if ctx.Notifier == nil {
		return errNoNotifier
	}
	fmt.Fprintf(ctx.out(), "Notifications: %s\n", describePermission(ctx.Notifier.Permission()))
	return nil
}

type NotificationsEnableCmd struct{}

func (c *NotificationsEnableCmd) Run(ctx *Context) error {
	return setPermission(ctx, notify.PermissionGranted)
}

type NotificationsDisableCmd struct{}

func (c *NotificationsDisableCmd) Run(ctx *Context) error {
	return setPermission(ctx, notify.PermissionDenied)
}

func setPermission(ctx *Context, p notify.Permission) error {
	if ctx.Notifier == nil {
		return errNoNotifier
	}
	if err := ctx.Notifier.SetPermission(context.Background(), p); err != nil {
		return err
	}
	fmt.Fprintf(ctx.out(), "Notifications: %s\n", describePermission(p))
	return nil
}

func describePermission(p notify.Permission) string {
	switch p {
	case notify.PermissionGranted:
		return "enabled"
	case notify.PermissionDenied:
		return "blocked"
	default:
		return "not enabled"
	}
}
