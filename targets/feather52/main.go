//go:build tinygo

package main

import (
	"machine"
	"time"

	"hallnode/core"
)

func main() {
	// Diagnostic UART over USB CDC. Give the host time to enumerate
	// before the first log line.
	machine.Serial.Configure(machine.UARTConfig{BaudRate: 115200})
	time.Sleep(1500 * time.Millisecond)

	core.SetDebugWriter(func(msg string) {
		machine.Serial.Write([]byte(msg))
		machine.Serial.Write([]byte("\r\n"))
	})

	adc, err := newHallADC()
	if err != nil {
		fatal("adc init failed: " + err.Error())
	}

	link := newBLELink()
	if err := link.setup(); err != nil {
		fatal("ble init failed: " + err.Error())
	}
	println("advertising as " + deviceName)

	node := core.New(core.DefaultConfig(), newRuntimeClock(), adc, link)

	err = node.Run(func(millis uint32) {
		time.Sleep(time.Duration(millis) * time.Millisecond)
	})

	// Run only returns after a fatal buffer fault. Stay up so the
	// diagnostic UART and DFU service remain reachable.
	fatal("firmware halted: " + err.Error())
}

func fatal(msg string) {
	for {
		println(msg)
		time.Sleep(5 * time.Second)
	}
}
