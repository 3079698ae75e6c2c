// Package core implements the sampling and batching state machine of
// the hall-sensor node: command ingestion from the BLE serial link,
// periodic ADC sampling, a bounded batch buffer of encoded samples, and
// the timed flush over the link. The package is platform neutral; all
// hardware access goes through the interfaces in hal.go, so the whole
// state machine runs under plain go test on the host.
package core

import (
	"errors"

	"hallnode/protocol"
)

// ErrHalted is returned by Run after an unrecoverable buffer fault.
var ErrHalted = errors.New("core: halted on encoding fault")

// Config holds the tunable firmware constants.
type Config struct {
	// MetricType tags every emitted sample for downstream
	// classification.
	MetricType uint16

	// BatchCapacity is the batch buffer size in bytes.
	BatchCapacity int

	// FlushPeriodMillis is the minimum age of the batch buffer before
	// its contents are transmitted.
	FlushPeriodMillis uint32

	// SamplePeriodMillis is the main-loop tick interval and therefore
	// the sampling cadence while recording.
	SamplePeriodMillis uint32
}

// DefaultConfig returns the reference constants: one flush per second
// batching five 200 ms samples into a 1 KiB buffer.
func DefaultConfig() Config {
	return Config{
		MetricType:         1,
		BatchCapacity:      1024,
		FlushPeriodMillis:  1000,
		SamplePeriodMillis: 200,
	}
}

// Core owns all mutable state of the main loop: the input accumulator,
// the recording controller, the batch buffer and the flush stamp. It is
// driven from a single goroutine; BLE stack callbacks never receive a
// reference to it.
type Core struct {
	cfg   Config
	clock Clock
	adc   ADC
	link  Link

	recorder Recorder
	batch    *Batch
	input    []byte

	lastFlushMillis uint32
	halted          bool
	dropLogged      bool
}

// New wires a Core to its collaborators.
func New(cfg Config, clock Clock, adc ADC, link Link) *Core {
	return &Core{
		cfg:   cfg,
		clock: clock,
		adc:   adc,
		link:  link,
		batch: NewBatch(cfg.BatchCapacity),
		input: make([]byte, 0, maxCommandLen),
	}
}

// IsRecording reports whether the sampling path is active.
func (c *Core) IsRecording() bool {
	return c.recorder.IsRecording()
}

// Halted reports whether the core hit an unrecoverable buffer fault.
func (c *Core) Halted() bool {
	return c.halted
}

// Tick runs one main-loop iteration: commands first, so a stop received
// during this tick suppresses the sample it would otherwise take; the
// flush last, so a sample just produced is a candidate for the current
// flush window. A halted core ignores ticks.
func (c *Core) Tick() {
	if c.halted {
		return
	}

	c.drainCommands()

	if c.recorder.IsRecording() {
		c.sample()
	}

	c.flushIfDue()
}

// Run drives Tick at the sampling cadence until the core halts. The
// sleep function is injected so targets pace with the hardware timer
// and tests do not sleep at all.
func (c *Core) Run(sleepMillis func(uint32)) error {
	for {
		c.Tick()
		if c.halted {
			return ErrHalted
		}
		sleepMillis(c.cfg.SamplePeriodMillis)
	}
}

// sample reads the ADC once and appends the encoded record. A full
// buffer drops the sample and logs once per fill; an encoding fault
// halts the device rather than flush a corrupted buffer.
func (c *Core) sample() {
	value, err := c.adc.ReadRaw()
	if err != nil {
		DebugPrintln("adc read failed, sample skipped")
		return
	}

	rec := protocol.Record{
		Type:          c.cfg.MetricType,
		ElapsedMillis: c.recorder.ElapsedMillis(c.clock.NowMillis()),
		Value:         uint32(value),
	}

	switch err := c.batch.Append(rec); err {
	case nil:
		c.dropLogged = false
	case ErrBufferFull:
		if !c.dropLogged {
			DebugPrintln("batch buffer full, dropping samples until next flush")
			c.dropLogged = true
		}
	default:
		DebugPrintln("something is wrong with the buffer, halting")
		c.halted = true
	}
}

// flushIfDue transmits and resets the batch buffer once per flush
// period. An empty window still advances the flush stamp so the next
// window starts from now, but transmits nothing.
func (c *Core) flushIfDue() {
	now := c.clock.NowMillis()
	if now-c.lastFlushMillis <= c.cfg.FlushPeriodMillis {
		return
	}

	if c.batch.Len() > 0 {
		c.writeAll(c.batch.TakeFrame())
		c.batch.Reset()
		c.dropLogged = false
	}
	c.lastFlushMillis = c.clock.NowMillis()
}

// writeAll sends a flush frame to the BLE link and echoes it to the
// diagnostic serial. Link errors mean no central is connected; the
// bytes are simply gone, there is no replay.
func (c *Core) writeAll(frame []byte) {
	if _, err := c.link.Write(frame); err != nil {
		DebugPrintln("link write dropped " + utoa(uint32(len(frame))) + " bytes")
	}
	DebugPrintln(string(frame))
}
