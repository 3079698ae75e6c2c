package core

import "testing"

func TestRecorderTransitions(t *testing.T) {
	var r Recorder

	if r.IsRecording() {
		t.Error("Recorder must start stopped")
	}

	// Stop while stopped is a no-op.
	r.Stop()
	if r.IsRecording() {
		t.Error("Stop on a stopped recorder changed state")
	}

	r.Start(1000)
	if !r.IsRecording() {
		t.Error("Start did not begin recording")
	}
	if got := r.ElapsedMillis(1600); got != 600 {
		t.Errorf("ElapsedMillis = %d, want 600", got)
	}

	// Start while recording re-captures the origin.
	r.Start(5000)
	if got := r.ElapsedMillis(5100); got != 100 {
		t.Errorf("ElapsedMillis after restart = %d, want 100", got)
	}

	r.Stop()
	if r.IsRecording() {
		t.Error("Stop did not end recording")
	}
}

func TestRecorderElapsedWraps(t *testing.T) {
	var r Recorder

	origin := ^uint32(0) - 100
	r.Start(origin)

	if got := r.ElapsedMillis(origin + 50); got != 50 {
		t.Errorf("Elapsed before wrap = %d, want 50", got)
	}
	// 150 ms later the counter has wrapped past zero.
	if got := r.ElapsedMillis(49); got != 150 {
		t.Errorf("Elapsed across wrap = %d, want 150", got)
	}
}
