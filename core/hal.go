package core

// ADCValue is the raw reading as seen by the rest of the firmware,
// interpreted as an unsigned integer in the converter's native range.
type ADCValue uint32

// ADC is the abstract analog input the core samples from. The target
// registers an implementation backed by the hardware converter; tests
// register stubs.
type ADC interface {
	// ReadRaw performs a one-shot blocking sample of the hall sensor
	// input.
	ReadRaw() (ADCValue, error)
}

// Link is the byte-oriented serial channel layered over BLE. Reads are
// non-blocking; writes are best effort and silently drop when no
// central is connected.
type Link interface {
	// Buffered returns the number of received bytes waiting to be read.
	Buffered() int

	// ReadByte removes and returns the next received byte. It must only
	// be called when Buffered reports data.
	ReadByte() (byte, error)

	// Write transmits data to the connected central, if any.
	Write(data []byte) (int, error)
}

// Clock is a free-running monotonic millisecond counter since power-on.
// It wraps after about 49.7 days; all age computations use unsigned
// modular subtraction so a single wrap within a session stays correct.
type Clock interface {
	NowMillis() uint32
}
