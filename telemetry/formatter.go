package telemetry

import (
	"fmt"
	"time"

	"tracker-go/estimate"
)

// FormatState renders one published estimate as a text line:
//
//	state:     ,SEQ,TIMESTAMP,FLAG,px,py,pz,vx,vy,vz,ax,ay,az\r\n
//
// The three spaces before the first comma are a length field: downstream
// consumers framing a TCP stream read the total line length from bytes
// 8..10 before parsing.
func FormatState(ts int64, est estimate.Estimate) []byte {
	t := time.UnixMilli(ts)
	body := fmt.Sprintf("state:     ,%d,%s,%d,%.4f,%.4f,%.4f,%.4f,%.4f,%.4f,%.4f,%.4f,%.4f\r\n",
		est.Seq, t.Format("20060102150405.000"), est.Flag,
		est.X.Pos, est.Y.Pos, est.Z.Pos,
		est.X.Vel, est.Y.Vel, est.Z.Vel,
		est.X.Acc, est.Y.Acc, est.Z.Acc)

	b := []byte(body)
	fillLengthField(b)
	return b
}

// FormatWarning renders a free-text warning line with the same framing.
func FormatWarning(ts int64, msg string) []byte {
	t := time.UnixMilli(ts)
	b := []byte(fmt.Sprintf("warn:      ,%s,%s\r\n", t.Format("20060102150405.000"), msg))
	fillLengthField(b)
	return b
}

// fillLengthField backpatches the decimal message length into bytes 8..10.
func fillLengthField(b []byte) {
	n := len(b)
	if n >= 100 {
		b[8] = byte('0' + (n/100)%10)
	}
	b[9] = byte('0' + (n/10)%10)
	b[10] = byte('0' + n%10)
}
