// Package uart drives the point-to-point serial link to the downstream
// key controller.
package uart

import (
	"io"

	"go.bug.st/serial"
)

// SerialPorter defines the minimal interface needed for the controller link.
type SerialPorter interface {
	io.ReadWriter
	io.Closer
}

// Open opens the serial device at path with the controller's fixed line
// settings (115200 baud, 8N1).
func Open(path string) (SerialPorter, error) {
	mode := &serial.Mode{
		BaudRate: 115200,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, err
	}

	return port, nil
}
