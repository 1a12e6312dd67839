package sensor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"

	"tracker-go/estimate"
)

// mockPort is a serial.Port backed by a byte slice.
type mockPort struct {
	data   []byte
	closed bool
}

func (m *mockPort) Break(time.Duration) error                            { return nil }
func (m *mockPort) Drain() error                                         { return nil }
func (m *mockPort) GetModemStatusBits() (*serial.ModemStatusBits, error) { return nil, nil }
func (m *mockPort) ResetInputBuffer() error                              { return nil }
func (m *mockPort) ResetOutputBuffer() error                             { return nil }
func (m *mockPort) SetDTR(bool) error                                    { return nil }
func (m *mockPort) SetMode(*serial.Mode) error                           { return nil }
func (m *mockPort) SetReadTimeout(time.Duration) error                   { return nil }
func (m *mockPort) SetRTS(bool) error                                    { return nil }
func (m *mockPort) Write(p []byte) (int, error)                          { return len(p), nil }

func (m *mockPort) Read(p []byte) (int, error) {
	if len(m.data) == 0 {
		// Block like an idle port so the scanner does not see EOF while
		// the test is still reading events.
		time.Sleep(10 * time.Millisecond)
		return 0, nil
	}
	n := copy(p, m.data)
	m.data = m.data[n:]
	return n, nil
}

func (m *mockPort) Close() error {
	m.closed = true
	return nil
}

func TestParseLine(t *testing.T) {
	s, err := parseLine("0.12,-9.81, 0.004")
	require.NoError(t, err)
	assert.Equal(t, estimate.Sample{Ax: 0.12, Ay: -9.81, Az: 0.004}, s)

	_, err = parseLine("1.0,2.0")
	assert.Error(t, err)

	_, err = parseLine("a,b,c")
	assert.Error(t, err)
}

func TestSerialSourceMonitor(t *testing.T) {
	port := &mockPort{data: []byte("garbage banner\n0.5,-1.5,9.75\n")}
	src := NewSerialSource(port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go src.Monitor(ctx)

	want := estimate.Sample{Ax: 0.5, Ay: -1.5, Az: 9.75}
	deadline := time.After(time.Second)
	for {
		got, err := src.Sample()
		if err == nil {
			assert.Equal(t, want, got)
			return
		}
		select {
		case <-deadline:
			t.Fatal("timeout waiting for sample")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestSerialSourceNoSample(t *testing.T) {
	src := NewSerialSource(&mockPort{})
	_, err := src.Sample()
	assert.ErrorIs(t, err, ErrNoSample)
}
