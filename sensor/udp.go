package sensor

import (
	"context"
	"log"
	"net"

	"tracker-go/estimate"
)

const maxDatagram = 1024

// UDPSource listens for binary acceleration frames and keeps the most
// recent one. Out-of-order frames are dropped by sequence number.
type UDPSource struct {
	conn    *net.UDPConn
	last    latest
	lastSeq uint32
	seen    bool
}

// ListenUDP binds a sample listener on the given port.
func ListenUDP(port int) (*UDPSource, error) {
	addr := net.UDPAddr{Port: port, IP: net.ParseIP("0.0.0.0")}
	conn, err := net.ListenUDP("udp", &addr)
	if err != nil {
		return nil, err
	}
	conn.SetReadBuffer(256 * 1024)
	return &UDPSource{conn: conn}, nil
}

// Monitor reads frames until the context is cancelled or the socket is
// closed. Malformed frames are logged and dropped.
func (u *UDPSource) Monitor(ctx context.Context) error {
	buf := make([]byte, maxDatagram)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		n, _, err := u.conn.ReadFromUDP(buf)
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
			}
			return err
		}
		seq, sample, err := ParseFrame(buf[:n])
		if err != nil {
			log.Printf("drop frame: %v", err)
			continue
		}
		if u.seen && seqBefore(seq, u.lastSeq) {
			continue
		}
		u.lastSeq = seq
		u.seen = true
		u.last.put(sample)
	}
}

func (u *UDPSource) Sample() (estimate.Sample, error) {
	return u.last.get()
}

func (u *UDPSource) Close() error {
	return u.conn.Close()
}

// LocalAddr returns the bound address, useful when port 0 was requested.
func (u *UDPSource) LocalAddr() net.Addr {
	return u.conn.LocalAddr()
}

// seqBefore reports whether a precedes b in wrap-around sequence order.
func seqBefore(a, b uint32) bool {
	return int32(a-b) < 0
}
