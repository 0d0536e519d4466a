// Package notify shows the post-change brightness notification, replacing
// the previous one in place so rapid key-repeat invocations do not stack
// popups. Every failure here is non-fatal: the brightness change has already
// been written by the time a notification is attempted.
package notify

import (
	"errors"
	"fmt"
	"math"

	"github.com/godbus/dbus/v5"
	"github.com/ncruces/zenity"
	"github.com/sirupsen/logrus"
)

// ErrUnavailable means the notification subsystem could not be reached.
var ErrUnavailable = errors.New("notification daemon unavailable")

const (
	appName = "lumen"
	icon    = "display-brightness-symbolic"
)

// Poster delivers one notification payload and returns the handle the
// daemon assigned to it.
type Poster interface {
	Post(summary, body string, replaces uint32, percent int, timeoutMS int32) (uint32, error)
}

// DBusPoster speaks org.freedesktop.Notifications on the session bus. The
// value hint carries the percentage so daemons that render progress bars
// show one; daemons that ignore hints still get a valid payload.
type DBusPoster struct{}

func (DBusPoster) Post(summary, body string, replaces uint32, percent int, timeoutMS int32) (uint32, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer conn.Close()

	hints := map[string]dbus.Variant{
		"value": dbus.MakeVariant(int32(percent)),
	}

	obj := conn.Object("org.freedesktop.Notifications", "/org/freedesktop/Notifications")
	call := obj.Call("org.freedesktop.Notifications.Notify", 0,
		appName,
		replaces,
		icon,
		summary,
		body,
		[]string{},
		hints,
		timeoutMS,
	)
	if call.Err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return id, nil
}

// Coordinator owns the handle store and the delivery strategy for one
// invocation.
type Coordinator struct {
	Store     *Store
	Poster    Poster
	TimeoutMS int32

	// UseFallback enables a zenity popup when the session bus is
	// unreachable. Fallback notifications have no handle, so they cannot
	// be replaced in place.
	UseFallback bool
}

// Show displays the brightness for a device, replacing the prior
// notification when its handle is still fresh. Returns the recorded handle,
// or 0 with a non-nil error when nothing could be shown.
func (c *Coordinator) Show(device string, percent float64) (uint32, error) {
	rounded := int(math.Round(percent))
	summary := fmt.Sprintf("Brightness %d%%", rounded)
	body := device

	id, err := c.Store.Update(device, func(prior uint32) (uint32, error) {
		return c.Poster.Post(summary, body, prior, rounded, c.TimeoutMS)
	})
	if err == nil {
		return id, nil
	}

	if c.UseFallback {
		if zerr := zenity.Notify(summary, zenity.Title(appName), zenity.Icon(zenity.InfoIcon)); zerr == nil {
			return 0, nil
		}
		logrus.Debugf("zenity fallback failed too")
	}
	return 0, err
}
