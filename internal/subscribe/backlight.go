// Package subscribe delivers kernel uevent signals for backlight changes
// made outside this process (firmware hotkeys, other tools).
package subscribe

import (
	"context"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
)

// BacklightEvents streams a signal for every backlight change uevent until
// ctx is cancelled, then closes the channel. The channel has capacity one
// and drops signals while the consumer is busy; a coalesced wake-up is
// enough, the consumer re-reads the device anyway.
func BacklightEvents(ctx context.Context) <-chan struct{} {
	events := make(chan struct{}, 1)

	go func() {
		defer close(events)

		fd, err := syscall.Socket(syscall.AF_NETLINK, syscall.SOCK_RAW, syscall.NETLINK_KOBJECT_UEVENT)
		if err != nil {
			logrus.Errorf("subscribe: failed to open netlink socket: %v", err)
			return
		}

		addr := &syscall.SockaddrNetlink{
			Family: syscall.AF_NETLINK,
			Groups: 1, // listen to broadcast uevents
		}
		if err := syscall.Bind(fd, addr); err != nil {
			logrus.Errorf("subscribe: failed to bind netlink socket: %v", err)
			syscall.Close(fd)
			return
		}

		// Recvfrom has no cancellation of its own; closing the socket is
		// what unblocks it on shutdown.
		go func() {
			<-ctx.Done()
			syscall.Close(fd)
		}()

		buf := make([]byte, 4096)
		for {
			n, _, err := syscall.Recvfrom(fd, buf, 0)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logrus.Debugf("subscribe: netlink recv error: %v", err)
				continue
			}

			msg := string(buf[:n])
			if strings.Contains(msg, "SUBSYSTEM=backlight") && strings.Contains(msg, "ACTION=change") {
				select {
				case events <- struct{}{}:
				default:
				}
			}
		}
	}()

	return events
}
