package journal

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"

	"tracker-go/estimate"
)

// Reader streams records out of a journal file.
type Reader struct {
	f   *os.File
	r   *bufio.Reader
	hdr Header
	buf []byte
}

func Open(path string) (*Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	jr := &Reader{f: f, r: bufio.NewReader(f), buf: make([]byte, recordLen)}
	if err := jr.readHeader(); err != nil {
		f.Close()
		return nil, err
	}
	return jr, nil
}

func (jr *Reader) readHeader() error {
	b := make([]byte, headerLen)
	if _, err := io.ReadFull(jr.r, b); err != nil {
		return fmt.Errorf("journal header: %w", err)
	}
	if binary.LittleEndian.Uint32(b[0:]) != Magic {
		return fmt.Errorf("not a journal file (magic %#x)", binary.LittleEndian.Uint32(b[0:]))
	}
	if v := binary.LittleEndian.Uint16(b[4:]); v != Version {
		return fmt.Errorf("unsupported journal version %d", v)
	}
	jr.hdr = Header{
		Step: getFloat(b[8:]),
		Gains: estimate.Gains{
			Alpha: getFloat(b[16:]),
			Beta:  getFloat(b[24:]),
			Gamma: getFloat(b[32:]),
		},
	}
	return nil
}

// Header returns the capture parameters.
func (jr *Reader) Header() Header {
	return jr.hdr
}

// Next returns the next record, or io.EOF at the end of the journal.
func (jr *Reader) Next() (Record, error) {
	if _, err := io.ReadFull(jr.r, jr.buf); err != nil {
		if err == io.ErrUnexpectedEOF {
			return Record{}, fmt.Errorf("truncated record: %w", err)
		}
		return Record{}, err
	}
	b := jr.buf
	rec := Record{
		TSMillis: int64(binary.LittleEndian.Uint64(b[0:])),
		Seq:      binary.LittleEndian.Uint64(b[8:]),
		Flag:     int32(binary.LittleEndian.Uint32(b[16:])),
		Sample: estimate.Sample{
			Ax: getFloat(b[20:]),
			Ay: getFloat(b[28:]),
			Az: getFloat(b[36:]),
		},
	}
	off := 44
	for i := 0; i < estimate.NumAxes; i++ {
		rec.Est[i] = estimate.AxisState{
			Pos: getFloat(b[off:]),
			Vel: getFloat(b[off+8:]),
			Acc: getFloat(b[off+16:]),
		}
		off += 24
	}
	return rec, nil
}

// ReadAll drains the journal.
func (jr *Reader) ReadAll() ([]Record, error) {
	var recs []Record
	for {
		rec, err := jr.Next()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return recs, err
		}
		recs = append(recs, rec)
	}
}

func (jr *Reader) Close() error {
	return jr.f.Close()
}

func getFloat(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}
