package backlight

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// WriteStrategy stores a raw integer at a device control path. Two
// implementations exist: a direct file write and a privileged helper used
// when the direct write is denied.
type WriteStrategy interface {
	Write(path string, raw int) error
}

// DirectWrite writes the value with the invoking user's own privileges.
type DirectWrite struct{}

func (DirectWrite) Write(path string, raw int) error {
	return os.WriteFile(path, []byte(strconv.Itoa(raw)), 0o644)
}

// HelperWrite escalates through an external command, by default pkexec with
// tee. The command receives the control path as its final argument and the
// raw value on stdin; how it obtains privilege is its own business.
type HelperWrite struct {
	Command []string
}

func (h HelperWrite) Write(path string, raw int) error {
	if len(h.Command) == 0 {
		return errors.New("no helper command configured")
	}
	args := append(append([]string{}, h.Command[1:]...), path)
	cmd := exec.Command(h.Command[0], args...)
	cmd.Stdin = strings.NewReader(strconv.Itoa(raw))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %v: %s", h.Command[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Writer applies a computed brightness to a device and verifies it stuck.
type Writer struct {
	Direct WriteStrategy
	Helper WriteStrategy
}

// NewWriter builds a writer with the default direct strategy and the given
// helper command.
func NewWriter(helper []string) *Writer {
	return &Writer{Direct: DirectWrite{}, Helper: HelperWrite{Command: helper}}
}

// Apply writes result.New to the device and returns the value the device
// actually stored. Hardware may silently clamp to its own granularity, so
// the stored value is re-read after the write and reported back; callers
// must surface that value, not the requested one.
func (w *Writer) Apply(device Device, result Result) (int, error) {
	path := device.BrightnessPath()

	err := w.Direct.Write(path, result.New)
	if err != nil && errors.Is(err, os.ErrPermission) && w.Helper != nil {
		if herr := w.Helper.Write(path, result.New); herr != nil {
			return 0, fmt.Errorf("%w: %s: helper: %v", ErrPermissionDenied, path, herr)
		}
		err = nil
	}
	if err != nil {
		if errors.Is(err, os.ErrPermission) {
			return 0, fmt.Errorf("%w: %s", ErrPermissionDenied, path)
		}
		return 0, fmt.Errorf("%w: %s: %v", ErrIO, path, err)
	}

	actual, err := readInt(path)
	if err != nil {
		return 0, fmt.Errorf("%w: verify %s: %v", ErrIO, path, err)
	}
	return actual, nil
}
