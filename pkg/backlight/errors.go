package backlight

import "errors"

var (
	// ErrNoDevice means the enumeration root exists but holds no usable device.
	ErrNoDevice = errors.New("no backlight device available")

	// ErrDeviceNotFound means an explicitly named device does not exist.
	ErrDeviceNotFound = errors.New("backlight device not found")

	// ErrDeviceRead covers I/O failures while reading device attributes.
	ErrDeviceRead = errors.New("failed to read backlight device")

	// ErrInvalidRequest means the brightness request itself is malformed.
	ErrInvalidRequest = errors.New("invalid brightness request")

	// ErrPermissionDenied means both the direct write and the privileged
	// helper failed to store the new value.
	ErrPermissionDenied = errors.New("permission denied writing brightness")

	// ErrIO covers any other filesystem failure while writing.
	ErrIO = errors.New("backlight I/O error")
)
