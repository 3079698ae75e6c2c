package core

// DebugWriter is a function type for writing diagnostic lines.
type DebugWriter func(string)

// debugPrintln is the global debug print function. Platform code points
// it at the wired serial port; the default discards everything so the
// core never depends on a console being attached.
var debugPrintln DebugWriter = func(s string) {}

// SetDebugWriter sets the platform-specific debug output function.
// This allows targets to redirect diagnostics to UART, USB, etc.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// DebugPrintln writes a diagnostic line using the platform writer.
func DebugPrintln(msg string) {
	if debugPrintln != nil {
		debugPrintln(msg)
	}
}
