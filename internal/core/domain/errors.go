package domain

import "go.trai.ch/zerr"

var (
	// ErrLaunchFailed is returned when the arduino-cli process could not be
	// started at all, as opposed to running and exiting non-zero.
	ErrLaunchFailed = zerr.New("failed to launch arduino-cli")

	// ErrSketchNotFound is returned when a sketch path does not exist.
	ErrSketchNotFound = zerr.New("sketch file not found")

	// ErrEmptySketch is returned when a sketch file exists but has no content.
	ErrEmptySketch = zerr.New("sketch file is empty")

	// ErrNotASketch is returned when a path does not name a .ino file.
	ErrNotASketch = zerr.New("sketch file must have .ino extension")

	// ErrHexNotFound is returned when a hex file for upload cannot be located.
	ErrHexNotFound = zerr.New("hex file not found")

	// ErrToolFailed is returned by workflows when arduino-cli ran and
	// reported a failure. The raw result travels alongside it.
	ErrToolFailed = zerr.New("arduino-cli reported failure")
)
