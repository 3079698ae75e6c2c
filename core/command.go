package core

// Command is an action requested by the connected central.
type Command uint8

// Command codes as they appear on the wire: the first two ASCII decimal
// digits of whatever bytes accumulate between two main-loop ticks.
const (
	CommandStopRecording  Command = 0 // "00"
	CommandStartRecording Command = 1 // "01"
)

// maxCommandLen bounds the input accumulator. Commands are two digits
// plus reserved parameter bytes; anything beyond this is noise and is
// dropped on arrival.
const maxCommandLen = 32

// drainCommands moves all currently-available link bytes into the input
// accumulator and, if it is non-empty afterwards, interprets it as a
// single command record. The accumulator is cleared unconditionally
// after dispatch, so a command is consumed at the first tick boundary
// after its first byte arrives even if the central is still
// transmitting. Read errors count as "no data".
func (c *Core) drainCommands() {
	for c.link.Buffered() > 0 {
		b, err := c.link.ReadByte()
		if err != nil {
			break
		}
		if len(c.input) < maxCommandLen {
			c.input = append(c.input, b)
		}
	}

	if len(c.input) == 0 {
		return
	}

	cmd, ok := parseCommandCode(c.input)
	if !ok {
		DebugPrintln("ignoring unrecognized command: " + string(c.input))
	} else {
		c.dispatch(cmd)
	}

	c.input = c.input[:0]
}

// parseCommandCode parses the first two bytes of a command record as a
// decimal integer. A record holding a single digit supplies only the
// tens digit, so a split "01" arrives as "0" (code 0) and then "1"
// (code 10, unrecognized). Trailing bytes are reserved for parameters
// and ignored.
func parseCommandCode(buf []byte) (Command, bool) {
	d0 := buf[0]
	if d0 < '0' || d0 > '9' {
		return 0, false
	}
	code := uint8(d0-'0') * 10

	if len(buf) >= 2 {
		d1 := buf[1]
		if d1 < '0' || d1 > '9' {
			return 0, false
		}
		code += d1 - '0'
	}

	switch Command(code) {
	case CommandStopRecording, CommandStartRecording:
		return Command(code), true
	}
	return 0, false
}

// dispatch applies a decoded command to the recording controller.
func (c *Core) dispatch(cmd Command) {
	switch cmd {
	case CommandStopRecording:
		DebugPrintln("received STOP_RECORDING command")
		c.recorder.Stop()
	case CommandStartRecording:
		DebugPrintln("received START_RECORDING command")
		c.recorder.Start(c.clock.NowMillis())
	}
}
