package telemetry

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tracker-go/estimate"
)

func TestFormatState(t *testing.T) {
	est := estimate.Estimate{
		Seq:  7,
		X:    estimate.AxisState{Pos: 1.5, Vel: 0.25, Acc: -0.125},
		Flag: estimate.FlagUpdated,
	}
	line := string(FormatState(1700000000000, est))

	assert.True(t, strings.HasPrefix(line, "state:"))
	assert.True(t, strings.HasSuffix(line, "\r\n"))

	fields := strings.Split(strings.TrimSuffix(line, "\r\n"), ",")
	require.Len(t, fields, 13)
	assert.Equal(t, "7", fields[1])
	assert.Equal(t, "2", fields[3])
	assert.Equal(t, "1.5000", fields[4])
	assert.Equal(t, "0.2500", fields[7])
	assert.Equal(t, "-0.1250", fields[10])
}

func TestFormatStateLengthField(t *testing.T) {
	line := FormatState(0, estimate.Estimate{Seq: 123456})

	n, err := strconv.Atoi(strings.TrimSpace(string(line[6:11])))
	require.NoError(t, err)
	assert.Equal(t, len(line), n)
}

func TestFormatWarningLengthField(t *testing.T) {
	line := FormatWarning(0, "sensor stalled")

	n, err := strconv.Atoi(strings.TrimSpace(string(line[5:11])))
	require.NoError(t, err)
	assert.Equal(t, len(line), n)
}
