package core

// recordingState tracks whether samples are being produced.
type recordingState uint8

const (
	stateStopped recordingState = iota
	stateRecording
)

// Recorder holds the recording state machine and the elapsed-time
// origin. The origin is meaningful only while recording and is
// re-captured on every start, so elapsed times restart from zero when a
// running session is restarted.
type Recorder struct {
	state  recordingState
	origin uint32
}

// Start switches to the recording state and captures the elapsed-time
// origin from the supplied clock reading.
func (r *Recorder) Start(nowMillis uint32) {
	r.state = stateRecording
	r.origin = nowMillis
}

// Stop switches to the stopped state. Records already appended to the
// batch buffer stay there and go out with the next scheduled flush.
func (r *Recorder) Stop() {
	r.state = stateStopped
}

// IsRecording reports whether samples should be produced.
func (r *Recorder) IsRecording() bool {
	return r.state == stateRecording
}

// ElapsedMillis returns the milliseconds since the recording origin.
// Unsigned modular subtraction keeps the result correct across a single
// wrap of the 32-bit clock within one session. Only meaningful while
// recording.
func (r *Recorder) ElapsedMillis(nowMillis uint32) uint32 {
	return nowMillis - r.origin
}
