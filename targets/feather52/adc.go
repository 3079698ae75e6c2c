//go:build tinygo

package main

import (
	"machine"

	"hallnode/core"
)

// hallADC samples the hall-effect sensor on A0 through the nRF52 SAADC.
type hallADC struct {
	adc machine.ADC
}

func newHallADC() (*hallADC, error) {
	machine.InitADC()
	adc := machine.ADC{Pin: machine.A0}
	adc.Configure(machine.ADCConfig{})
	return &hallADC{adc: adc}, nil
}

// ReadRaw performs a one-shot conversion. TinyGo scales the result to
// the full 16-bit range regardless of the converter's native width, so
// shift back down to the SAADC's 10 usable bits to keep readings in the
// range the records were designed for.
func (h *hallADC) ReadRaw() (core.ADCValue, error) {
	raw := h.adc.Get()
	return core.ADCValue(raw >> 6), nil
}
