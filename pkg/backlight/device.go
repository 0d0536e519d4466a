package backlight

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// DefaultRoot is the kernel enumeration root for backlight-class devices.
const DefaultRoot = "/sys/class/backlight"

// Device is one backlight controller for the duration of a single
// invocation. Max is immutable for the device lifetime; Current is the raw
// value read when the device was resolved.
type Device struct {
	Name    string
	Path    string
	Max     int
	Current int
}

// BrightnessPath is the writable scalar endpoint for the device.
func (d Device) BrightnessPath() string {
	return filepath.Join(d.Path, "brightness")
}

func readInt(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(string(data)))
}

func open(root, name string) (Device, error) {
	dir := filepath.Join(root, name)

	max, err := readInt(filepath.Join(dir, "max_brightness"))
	if err != nil {
		return Device{}, fmt.Errorf("%w: %s: %v", ErrDeviceRead, name, err)
	}
	current, err := readInt(filepath.Join(dir, "brightness"))
	if err != nil {
		return Device{}, fmt.Errorf("%w: %s: %v", ErrDeviceRead, name, err)
	}

	return Device{Name: name, Path: dir, Max: max, Current: current}, nil
}

// List enumerates all backlight devices under root, sorted by name. Devices
// whose attributes cannot be read are skipped.
func List(root string) ([]Device, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNoDevice
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrDeviceRead, root, err)
	}

	var devices []Device
	for _, e := range entries {
		d, err := open(root, e.Name())
		if err != nil {
			continue
		}
		devices = append(devices, d)
	}

	sort.Slice(devices, func(i, j int) bool {
		return devices[i].Name < devices[j].Name
	})
	return devices, nil
}

// Resolve picks the target device. With an explicit name the device must
// exist and be readable. Otherwise the device with the highest
// max_brightness wins, ties broken by lexicographically smallest name, so
// the choice is stable across runs on the same hardware.
func Resolve(root, name string) (Device, error) {
	if name != "" {
		if _, err := os.Stat(filepath.Join(root, name)); err != nil {
			return Device{}, fmt.Errorf("%w: %s", ErrDeviceNotFound, name)
		}
		d, err := open(root, name)
		if err != nil {
			return Device{}, fmt.Errorf("%w: %s", ErrDeviceNotFound, name)
		}
		return d, nil
	}

	devices, err := List(root)
	if err != nil {
		return Device{}, err
	}
	if len(devices) == 0 {
		return Device{}, ErrNoDevice
	}

	best := devices[0]
	for _, d := range devices[1:] {
		if d.Max > best.Max {
			best = d
		}
	}
	return best, nil
}
