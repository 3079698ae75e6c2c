//go:build tinygo

package main

import (
	"errors"

	"tinygo.org/x/bluetooth"

	"hallnode/protocol"
)

const deviceName = "Steering"

// Vendor-stack GAP parameters carried over from the board's reference
// firmware. The portable bluetooth API does not expose the fast/slow
// advertising split or the TX power attribute, so only the fast
// interval is wired through; the rest stay here for a stack that can
// take them.
const (
	advFastIntervalUnits = 32  // 20 ms in 0.625 ms units
	advSlowIntervalUnits = 244 // 152.5 ms
	advFastTimeoutSecs   = 30
	txPowerDBm           = 4
)

var (
	// Nordic legacy DFU trigger service. Not a SIG-assigned UUID, so
	// there is no named constant for it.
	serviceUUIDLegacyDFU = mustParseUUID("00001530-1212-EFDE-1523-785FEABCD123")

	errLinkClosed = errors.New("ble: rx fifo empty")
)

func mustParseUUID(s string) bluetooth.UUID {
	u, err := bluetooth.ParseUUID(s)
	if err != nil {
		panic("ble: bad uuid: " + s)
	}
	return u
}

// bleLink is the byte channel the core talks through, layered over the
// Nordic UART service. RX bytes arrive on the soft-device callback and
// are queued in a FIFO for the main loop; TX frames go out as
// notifications on the UART TX characteristic.
type bleLink struct {
	adapter *bluetooth.Adapter
	rx      *protocol.Fifo
	tx      bluetooth.Characteristic

	connected bool
}

func newBLELink() *bleLink {
	return &bleLink{
		adapter: bluetooth.DefaultAdapter,
		rx:      protocol.NewFifo(256),
	}
}

// setup enables the soft device, registers the GATT table and starts
// connectable advertising under the device name.
func (l *bleLink) setup() error {
	if err := l.adapter.Enable(); err != nil {
		return err
	}

	l.adapter.SetConnectHandler(func(device bluetooth.Device, connected bool) {
		l.connected = connected
		if connected {
			println("ble: central connected")
		} else {
			println("ble: central disconnected")
		}
	})

	// Device Information, matching what the stock bootloader reports.
	err := l.adapter.AddService(&bluetooth.Service{
		UUID: bluetooth.ServiceUUIDDeviceInformation,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				UUID:  bluetooth.CharacteristicUUIDManufacturerNameString,
				Value: []byte("Adafruit Industries"),
				Flags: bluetooth.CharacteristicReadPermission,
			},
			{
				UUID:  bluetooth.CharacteristicUUIDModelNumberString,
				Value: []byte("Bluefruit Feather52"),
				Flags: bluetooth.CharacteristicReadPermission,
			},
		},
	})
	if err != nil {
		return err
	}

	// Battery level is static until a fuel gauge lands on the board.
	err = l.adapter.AddService(&bluetooth.Service{
		UUID: bluetooth.ServiceUUIDBattery,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				UUID:  bluetooth.CharacteristicUUIDBatteryLevel,
				Value: []byte{100},
				Flags: bluetooth.CharacteristicReadPermission,
			},
		},
	})
	if err != nil {
		return err
	}

	// Legacy DFU trigger so nRF Connect can kick the device into the
	// bootloader. The bootloader owns the actual transfer.
	err = l.adapter.AddService(&bluetooth.Service{
		UUID: serviceUUIDLegacyDFU,
	})
	if err != nil {
		return err
	}

	// Nordic UART: the serial link itself. The write callback runs in
	// soft-device context and must only queue bytes; the main loop
	// drains the FIFO on its own schedule.
	err = l.adapter.AddService(&bluetooth.Service{
		UUID: bluetooth.ServiceUUIDNordicUART,
		Characteristics: []bluetooth.CharacteristicConfig{
			{
				UUID:  bluetooth.CharacteristicUUIDUARTRX,
				Flags: bluetooth.CharacteristicWritePermission | bluetooth.CharacteristicWriteWithoutResponsePermission,
				WriteEvent: func(client bluetooth.Connection, offset int, value []byte) {
					l.rx.Write(value)
				},
			},
			{
				Handle: &l.tx,
				UUID:   bluetooth.CharacteristicUUIDUARTTX,
				Flags:  bluetooth.CharacteristicNotifyPermission | bluetooth.CharacteristicReadPermission,
			},
		},
	})
	if err != nil {
		return err
	}

	adv := l.adapter.DefaultAdvertisement()
	err = adv.Configure(bluetooth.AdvertisementOptions{
		LocalName: deviceName,
		ServiceUUIDs: []bluetooth.UUID{
			bluetooth.ServiceUUIDNordicUART,
		},
		Interval: bluetooth.Duration(advFastIntervalUnits),
	})
	if err != nil {
		return err
	}
	return adv.Start()
}

func (l *bleLink) Buffered() int {
	return l.rx.Available()
}

func (l *bleLink) ReadByte() (byte, error) {
	b, ok := l.rx.ReadByte()
	if !ok {
		return 0, errLinkClosed
	}
	return b, nil
}

// Write sends data as TX notifications in MTU-sized chunks. With no
// central subscribed the write fails inside the stack and the frame is
// dropped, matching serial semantics with nobody listening.
func (l *bleLink) Write(data []byte) (int, error) {
	if !l.connected {
		return len(data), nil
	}
	const chunk = 20
	sent := 0
	for sent < len(data) {
		end := sent + chunk
		if end > len(data) {
			end = len(data)
		}
		n, err := l.tx.Write(data[sent:end])
		if err != nil {
			return sent, err
		}
		if n == 0 {
			break
		}
		sent += n
	}
	return sent, nil
}
