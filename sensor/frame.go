package sensor

import (
	"encoding/binary"
	"fmt"
	"math"

	"tracker-go/estimate"
)

// Binary acceleration frame, little endian:
//
//	magic(2) version(1) flags(1) seq(4) ax(8) ay(8) az(8)
const (
	FrameMagic   = 0x4B41 // "AK"
	FrameVersion = 1
	FrameLen     = 32
)

// EncodeFrame packs one sample into a wire frame.
func EncodeFrame(seq uint32, s estimate.Sample) []byte {
	b := make([]byte, FrameLen)
	binary.LittleEndian.PutUint16(b[0:], FrameMagic)
	b[2] = FrameVersion
	b[3] = 0
	binary.LittleEndian.PutUint32(b[4:], seq)
	binary.LittleEndian.PutUint64(b[8:], math.Float64bits(s.Ax))
	binary.LittleEndian.PutUint64(b[16:], math.Float64bits(s.Ay))
	binary.LittleEndian.PutUint64(b[24:], math.Float64bits(s.Az))
	return b
}

// ParseFrame unpacks a wire frame into a sample.
func ParseFrame(b []byte) (uint32, estimate.Sample, error) {
	if len(b) < FrameLen {
		return 0, estimate.Sample{}, fmt.Errorf("frame too short: %d bytes", len(b))
	}
	if binary.LittleEndian.Uint16(b[0:]) != FrameMagic {
		return 0, estimate.Sample{}, fmt.Errorf("bad frame magic %#x", binary.LittleEndian.Uint16(b[0:]))
	}
	if b[2] != FrameVersion {
		return 0, estimate.Sample{}, fmt.Errorf("unsupported frame version %d", b[2])
	}
	seq := binary.LittleEndian.Uint32(b[4:])
	s := estimate.Sample{
		Ax: math.Float64frombits(binary.LittleEndian.Uint64(b[8:])),
		Ay: math.Float64frombits(binary.LittleEndian.Uint64(b[16:])),
		Az: math.Float64frombits(binary.LittleEndian.Uint64(b[24:])),
	}
	return seq, s, nil
}
