// Package serial opens the node's diagnostic UART from the host side.
package serial

import "io"

// Port is the serial connection to the node's debug UART. The
// abstraction keeps the watcher testable against an in-memory
// implementation.
type Port interface {
	io.ReadWriteCloser
}

// Config holds serial port configuration.
type Config struct {
	// Device path (e.g., "/dev/ttyACM0", "COM3")
	Device string

	// Baud rate; the node configures its UART at 115200
	Baud int

	// Read timeout in milliseconds (0 = blocking)
	ReadTimeout int
}

// DefaultConfig returns the configuration matching the firmware's UART
// settings.
func DefaultConfig(device string) *Config {
	return &Config{
		Device:      device,
		Baud:        115200,
		ReadTimeout: 100,
	}
}
