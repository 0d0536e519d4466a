// Package engine sequences one brightness invocation: resolve the device,
// compute the new value, persist it, then notify. Only the computed, clamped
// value ever reaches the device; the notification always reflects what the
// hardware actually stored.
package engine

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/hoppxi/lumen/internal/notify"
	"github.com/hoppxi/lumen/pkg/backlight"
)

type Engine struct {
	Root     string
	Device   string // explicit device name, empty means auto-select
	Curve    backlight.Curve
	Writer   *backlight.Writer
	Notifier *notify.Coordinator // nil disables notifications
}

// FromConfig assembles an engine from the loaded config. An explicit device
// flag wins over the config key.
func FromConfig(v *viper.Viper, deviceFlag string) *Engine {
	device := deviceFlag
	if device == "" {
		device = v.GetString("device")
	}

	e := &Engine{
		Root:   backlight.DefaultRoot,
		Device: device,
		Curve:  backlight.NewCurve(v.GetFloat64("curve.exponent")),
		Writer: backlight.NewWriter(v.GetStringSlice("writer.helper")),
	}

	if v.GetBool("notify.enabled") {
		ttl := time.Duration(v.GetInt("notify.handle_ttl_ms")) * time.Millisecond
		e.Notifier = &notify.Coordinator{
			Store:       notify.NewStore(notify.DefaultStatePath(), ttl),
			Poster:      notify.DBusPoster{},
			TimeoutMS:   int32(v.GetInt("notify.timeout_ms")),
			UseFallback: v.GetString("notify.fallback") == "zenity",
		}
	}

	return e
}

// Run applies one brightness request end to end and returns the result as
// the device stored it.
func (e *Engine) Run(req backlight.Request) (backlight.Result, error) {
	device, err := backlight.Resolve(e.Root, e.Device)
	if err != nil {
		return backlight.Result{}, err
	}
	logrus.Debugf("using device %s (current %d, max %d)", device.Name, device.Current, device.Max)

	result, err := backlight.Compute(device.Max, device.Current, req, e.Curve)
	if err != nil {
		return backlight.Result{}, err
	}

	actual, err := e.Writer.Apply(device, result)
	if err != nil {
		return backlight.Result{}, err
	}
	if actual != result.New {
		logrus.Debugf("device stored %d instead of %d", actual, result.New)
		result.New = actual
		result.Percent = e.Curve.PercentOf(actual, device.Max)
	}

	e.notify(device.Name, result.Percent)
	return result, nil
}

// Current resolves the device and reports its brightness without writing.
func (e *Engine) Current() (backlight.Device, float64, error) {
	device, err := backlight.Resolve(e.Root, e.Device)
	if err != nil {
		return backlight.Device{}, 0, err
	}
	return device, e.Curve.PercentOf(device.Current, device.Max), nil
}

// Announce re-reads the device and notifies with its current state, used by
// the watch command when brightness changed outside this process.
func (e *Engine) Announce() error {
	device, percent, err := e.Current()
	if err != nil {
		return err
	}
	e.notify(device.Name, percent)
	return nil
}

func (e *Engine) notify(device string, percent float64) {
	if e.Notifier == nil {
		return
	}
	if _, err := e.Notifier.Show(device, percent); err != nil {
		// Non-fatal: the brightness change is already persisted.
		logrus.Warnf("notification failed: %v", err)
	}
}
