// Package journal records estimation cycles to a binary log: one header
// carrying the filter parameters, then one fixed-size record per cycle with
// the raw sample and the published estimate. Journals are capture files for
// offline replay, not checkpoints; the estimator never reads its own state
// back.
package journal

import (
	"encoding/binary"
	"io"
	"math"
	"os"
	"sync"

	"tracker-go/estimate"
)

const (
	Magic   = 0x4A4B5254 // "TRKJ"
	Version = 1

	headerLen = 40  // magic(4) version(2) reserved(2) step(8) alpha(8) beta(8) gamma(8)
	recordLen = 116 // ts(8) seq(8) flag(4) sample(3x8) estimate(3 axes x 3x8)
)

// Header carries the parameters the journal was captured with, so replay
// can rebuild an identical pipeline.
type Header struct {
	Step  float64
	Gains estimate.Gains
}

// Record is one estimation cycle.
type Record struct {
	TSMillis int64
	Seq      uint64
	Flag     int32
	Sample   estimate.Sample
	Est      [estimate.NumAxes]estimate.AxisState
}

// Writer appends records to a journal file. Safe for use from one writer
// goroutine; the mutex guards Close racing a late write.
type Writer struct {
	mu  sync.Mutex
	w   io.WriteCloser
	buf []byte
}

func NewWriter(path string, hdr Header) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	jw := &Writer{w: f, buf: make([]byte, recordLen)}
	if err := jw.writeHeader(hdr); err != nil {
		f.Close()
		return nil, err
	}
	return jw, nil
}

func (jw *Writer) writeHeader(hdr Header) error {
	b := make([]byte, headerLen)
	binary.LittleEndian.PutUint32(b[0:], Magic)
	binary.LittleEndian.PutUint16(b[4:], Version)
	putFloat(b[8:], hdr.Step)
	putFloat(b[16:], hdr.Gains.Alpha)
	putFloat(b[24:], hdr.Gains.Beta)
	putFloat(b[32:], hdr.Gains.Gamma)
	_, err := jw.w.Write(b)
	return err
}

// WriteRecord appends one cycle.
func (jw *Writer) WriteRecord(rec Record) error {
	jw.mu.Lock()
	defer jw.mu.Unlock()

	b := jw.buf
	binary.LittleEndian.PutUint64(b[0:], uint64(rec.TSMillis))
	binary.LittleEndian.PutUint64(b[8:], rec.Seq)
	binary.LittleEndian.PutUint32(b[16:], uint32(rec.Flag))
	putFloat(b[20:], rec.Sample.Ax)
	putFloat(b[28:], rec.Sample.Ay)
	putFloat(b[36:], rec.Sample.Az)
	off := 44
	for i := 0; i < estimate.NumAxes; i++ {
		putFloat(b[off:], rec.Est[i].Pos)
		putFloat(b[off+8:], rec.Est[i].Vel)
		putFloat(b[off+16:], rec.Est[i].Acc)
		off += 24
	}
	_, err := jw.w.Write(b)
	return err
}

func (jw *Writer) Close() error {
	jw.mu.Lock()
	defer jw.mu.Unlock()
	return jw.w.Close()
}

func putFloat(b []byte, v float64) {
	binary.LittleEndian.PutUint64(b, math.Float64bits(v))
}
