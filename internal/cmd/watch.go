package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hoppxi/lumen/internal/engine"
	"github.com/hoppxi/lumen/internal/manager"
	"github.com/hoppxi/lumen/internal/subscribe"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch for external brightness changes and keep the notification updated",
	Long: "Watch follows kernel uevents for backlight changes made outside lumen\n" +
		"(firmware hotkeys, other tools) and shows the same replaced-in-place\n" +
		"notification a lumen invocation would.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := manager.Config.Load()

		// Config reloads arrive on viper's own goroutine; hand them to the
		// loop as a signal so the engine is only ever touched there.
		reload := make(chan struct{}, 1)
		manager.Config.Watch(func() {
			select {
			case reload <- struct{}{}:
			default:
			}
		})

		build := func() *engine.Engine {
			return engine.FromConfig(cfg, deviceFlag)
		}

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

		return watchLoop(build, subscribe.BacklightEvents(cmd.Context()), reload, sigChan)
	},
}

// watchLoop owns the engine: events, config reloads, and shutdown all funnel
// into one select so no other goroutine reads or replaces it.
func watchLoop(build func() *engine.Engine, events <-chan struct{}, reload <-chan struct{}, stop <-chan os.Signal) error {
	eng := build()

	device, _, err := eng.Current()
	if err != nil {
		return err
	}
	last := device.Current
	fmt.Printf("Watching %s. Press Ctrl+C to stop.\n", device.Name)

	for {
		select {
		case <-reload:
			eng = build()
			logrus.Info("config reloaded")
		case _, ok := <-events:
			if !ok {
				return nil
			}
			device, _, err := eng.Current()
			if err != nil {
				logrus.Warnf("device went away: %v", err)
				continue
			}
			if device.Current == last {
				continue
			}
			last = device.Current
			if err := eng.Announce(); err != nil {
				logrus.Warnf("announce failed: %v", err)
			}
		case <-stop:
			fmt.Println("\nStopping watcher.")
			return nil
		}
	}
}
