package quill

// StopReason indicates why the model stopped generating.
type StopReason string

const (
	StopEndTurn StopReason = "end_turn"
	StopLength  StopReason = "length"
	StopSafety  StopReason = "safety"
	StopUnknown StopReason = "unknown"
)
