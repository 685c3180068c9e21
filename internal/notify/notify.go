package notify

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gen2brain/beeep"
	"golang.org/x/time/rate"

	"github.com/sadopc/unwind/internal/logger"
	"github.com/sadopc/unwind/internal/store"
)

var (
	// ErrPermissionDenied is returned by Notify when the user has not
	// granted notifications. Callers keep rendering the advisory.
	ErrPermissionDenied = errors.New("notification permission not granted")
	// ErrRateLimited is returned when a notification arrives before the
	// minimum interval since the last one has passed.
	ErrRateLimited = errors.New("notification rate limited")
)

var sendFunc = func(title, body string) error {
	return beeep.Notify(title, body, "")
}

type Permission string

const (
	PermissionDefault Permission = "default"
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
)

func ParsePermission(s string) Permission {
	switch Permission(s) {
	case PermissionGranted, PermissionDenied:
		return Permission(s)
	default:
		return PermissionDefault
	}
}

// Notifier is the desktop notification capability.
type Notifier interface {
	Permission() Permission
	RequestPermission() (Permission, error)
	Notify(title, body string) error
}

// Settings persists the permission between runs.
type Settings interface {
	GetSetting(ctx context.Context, key string) (string, error)
	SetSetting(ctx context.Context, key, value string) error
}

// Desktop delivers notifications through the OS notification service. A
// terminal has no permission prompt, so RequestPermission grants on first
// use and an explicit Deny is sticky until SetPermission changes it.
type Desktop struct {
	settings Settings
	limiter  *rate.Limiter
	now      func() time.Time

	mu         sync.Mutex
	permission Permission
}

// NewDesktop loads the stored permission and the time of the last shown
// notification. minInterval bounds how often a notification may be shown,
// counted across runs; 0 disables the limit.
func NewDesktop(ctx context.Context, settings Settings, minInterval time.Duration) (*Desktop, error) {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}
	d := &Desktop{
		settings:   settings,
		limiter:    rate.NewLimiter(limit, 1),
		now:        time.Now,
		permission: PermissionDefault,
	}
	if settings != nil {
		v, err := settings.GetSetting(ctx, store.SettingNotificationPermission)
		if err != nil {
			return nil, fmt.Errorf("load notification permission: %w", err)
		}
		d.permission = ParsePermission(v)

		if v, err := settings.GetSetting(ctx, store.SettingNotificationLastSent); err == nil && v != "" {
			if last, err := time.Parse(time.RFC3339Nano, v); err == nil {
				// Spend the burst at the stored send time so the interval
				// carries over from the previous run.
				d.limiter.AllowN(last, 1)
			}
		}
	}
	return d, nil
}

func (d *Desktop) Permission() Permission {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.permission
}

// RequestPermission grants permission unless it was explicitly denied.
func (d *Desktop) RequestPermission() (Permission, error) {
	d.mu.Lock()
	p := d.permission
	d.mu.Unlock()
	if p != PermissionDefault {
		return p, nil
	}
	if err := d.SetPermission(context.Background(), PermissionGranted); err != nil {
		return p, err
	}
	return PermissionGranted, nil
}

// SetPermission stores p, overriding any earlier decision.
func (d *Desktop) SetPermission(ctx context.Context, p Permission) error {
	if d.settings != nil {
		if err := d.settings.SetSetting(ctx, store.SettingNotificationPermission, string(p)); err != nil {
			return fmt.Errorf("save notification permission: %w", err)
		}
	}
	d.mu.Lock()
	d.permission = p
	d.mu.Unlock()
	logger.Info("notification permission changed", "permission", p)
	return nil
}

func (d *Desktop) Notify(title, body string) error {
	if d.Permission() != PermissionGranted {
		return ErrPermissionDenied
	}
	now := d.now()
	if !d.limiter.AllowN(now, 1) {
		logger.Debug("notification suppressed", "title", title)
		return ErrRateLimited
	}
	if err := sendFunc(title, body); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	if d.settings != nil {
		err := d.settings.SetSetting(context.Background(), store.SettingNotificationLastSent, now.UTC().Format(time.RFC3339Nano))
		if err != nil {
			logger.Warn("store notification time failed", "error", err)
		}
	}
	logger.Debug("notification sent", "title", title)
	return nil
}
