package telemetry

// Message class flags. Targets subscribe with a mask; a message goes to a
// target when target.mask & flag == flag.
const (
	FlagState   = 1
	FlagWarning = 2
	FlagSummary = 4
)
