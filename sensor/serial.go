package sensor

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.bug.st/serial"

	"tracker-go/estimate"
)

// SerialSource reads comma-separated acceleration triples ("ax,ay,az") from
// an accelerometer serial port and keeps the most recent one.
type SerialSource struct {
	port serial.Port
	last latest
}

// OpenSerial opens the named port in 8N1 mode at the given baud rate.
func OpenSerial(portName string, baud int) (*SerialSource, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: 1,
	}
	port, err := serial.Open(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", portName, err)
	}
	return &SerialSource{port: port}, nil
}

// NewSerialSource wraps an already-open port. Used by tests.
func NewSerialSource(port serial.Port) *SerialSource {
	return &SerialSource{port: port}
}

// Monitor reads lines from the port until the context is cancelled or the
// port fails. Unparseable lines are skipped; the sensor occasionally emits
// banner or partial lines at startup.
func (s *SerialSource) Monitor(ctx context.Context) error {
	scan := bufio.NewScanner(s.port)
	for scan.Scan() {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		sample, err := parseLine(scan.Text())
		if err != nil {
			continue
		}
		s.last.put(sample)
	}
	return scan.Err()
}

func (s *SerialSource) Sample() (estimate.Sample, error) {
	return s.last.get()
}

func (s *SerialSource) Close() error {
	return s.port.Close()
}

// parseLine parses one "ax,ay,az" line into a sample.
func parseLine(line string) (estimate.Sample, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != estimate.NumAxes {
		return estimate.Sample{}, fmt.Errorf("want %d fields, got %d", estimate.NumAxes, len(parts))
	}
	var v [estimate.NumAxes]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return estimate.Sample{}, fmt.Errorf("field %d: %w", i, err)
		}
		v[i] = f
	}
	return estimate.Sample{Ax: v[0], Ay: v[1], Az: v[2]}, nil
}
