// Command hallnode-host talks to a hall sensor node. In the default
// mode it connects over BLE to the node's UART service, prints every
// flushed sample frame, and forwards start/stop commands typed on
// stdin. With -serial it instead tails the node's diagnostic UART.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"tinygo.org/x/bluetooth"

	"hallnode/host/config"
	"hallnode/host/serial"
	"hallnode/protocol"
)

var (
	configPath = flag.String("config", "", "YAML config file path")
	deviceName = flag.String("name", "", "advertised device name to scan for")
	serialDev  = flag.String("serial", "", "watch the diagnostic UART on this device instead of connecting over BLE")
	verbose    = flag.Bool("verbose", false, "enable debug logging")
)

// Command codes understood by the node: two ASCII decimal digits at the
// start of a UART write.
var (
	cmdStopRecording  = []byte("00")
	cmdStartRecording = []byte("01")
)

// frameQuietPeriod separates one flush frame from the next. Frames
// arrive split across MTU-sized notifications with no terminator, so
// the stream is re-framed by the gap between flushes (one second on
// the node, so 300 ms of silence is decisive).
const frameQuietPeriod = 300 * time.Millisecond

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
	slog.SetDefault(logger)

	cfg, err := loadConfig()
	if err != nil {
		slog.Error("config", "err", err)
		os.Exit(1)
	}

	if *serialDev != "" {
		cfg.Serial.Port = *serialDev
	}
	if *deviceName != "" {
		cfg.Device.Name = *deviceName
	}

	if *serialDev != "" {
		err = watchSerial(cfg)
	} else {
		err = runBLE(cfg)
	}
	if err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if *configPath == "" {
		return config.Default(), nil
	}
	return config.Load(*configPath)
}

// watchSerial tails the diagnostic UART and echoes whatever the
// firmware logs.
func watchSerial(cfg *config.Config) error {
	scfg := serial.DefaultConfig(cfg.Serial.Port)
	scfg.Baud = cfg.Serial.Baud

	port, err := serial.Open(scfg)
	if err != nil {
		return err
	}
	defer port.Close()

	slog.Info("watching diagnostic UART", "device", scfg.Device, "baud", scfg.Baud)

	buf := make([]byte, 256)
	for {
		n, err := port.Read(buf)
		if err != nil {
			return fmt.Errorf("serial read: %w", err)
		}
		if n > 0 {
			os.Stdout.Write(buf[:n])
		}
	}
}

// runBLE scans for the node, connects, subscribes to the UART TX
// stream and runs the interactive command loop.
func runBLE(cfg *config.Config) error {
	adapter := bluetooth.DefaultAdapter
	if cfg.Device.Adapter != "" {
		adapter = bluetooth.NewAdapter(cfg.Device.Adapter)
	}
	if err := adapter.Enable(); err != nil {
		return fmt.Errorf("ble enable: %w", err)
	}

	slog.Info("scanning", "name", cfg.Device.Name)

	scanTimeout := time.Duration(cfg.Device.ScanTimeoutSeconds) * time.Second
	timer := time.AfterFunc(scanTimeout, func() {
		adapter.StopScan()
	})

	var found bool
	var addr bluetooth.Address
	err := adapter.Scan(func(a *bluetooth.Adapter, result bluetooth.ScanResult) {
		if result.LocalName() != cfg.Device.Name {
			return
		}
		slog.Info("found device", "address", result.Address.String(), "rssi", result.RSSI)
		found = true
		addr = result.Address
		a.StopScan()
	})
	timer.Stop()
	if err != nil {
		return fmt.Errorf("ble scan: %w", err)
	}
	if !found {
		return fmt.Errorf("device %q not found within %s", cfg.Device.Name, scanTimeout)
	}

	device, err := adapter.Connect(addr, bluetooth.ConnectionParams{})
	if err != nil {
		return fmt.Errorf("ble connect: %w", err)
	}
	defer device.Disconnect()
	slog.Info("connected", "address", addr.String())

	services, err := device.DiscoverServices([]bluetooth.UUID{bluetooth.ServiceUUIDNordicUART})
	if err != nil {
		return fmt.Errorf("discover uart service: %w", err)
	}
	chars, err := services[0].DiscoverCharacteristics([]bluetooth.UUID{
		bluetooth.CharacteristicUUIDUARTRX,
		bluetooth.CharacteristicUUIDUARTTX,
	})
	if err != nil {
		return fmt.Errorf("discover uart characteristics: %w", err)
	}
	rx, tx := chars[0], chars[1]

	frames := make(chan []byte, 16)
	err = tx.EnableNotifications(func(buf []byte) {
		data := make([]byte, len(buf))
		copy(data, buf)
		frames <- data
	})
	if err != nil {
		return fmt.Errorf("subscribe uart tx: %w", err)
	}

	go printFrames(frames)

	fmt.Println("commands: start, stop, quit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		switch scanner.Text() {
		case "":
		case "start":
			if _, err := rx.WriteWithoutResponse(cmdStartRecording); err != nil {
				slog.Error("send start", "err", err)
			}
		case "stop":
			if _, err := rx.WriteWithoutResponse(cmdStopRecording); err != nil {
				slog.Error("send stop", "err", err)
			}
		case "quit", "exit", "q":
			return nil
		default:
			fmt.Printf("unknown command %q (start, stop, quit)\n", scanner.Text())
		}
	}
	return scanner.Err()
}

// printFrames reassembles notification chunks into flush frames and
// prints the decoded records.
func printFrames(chunks <-chan []byte) {
	var frame []byte
	for {
		select {
		case data := <-chunks:
			frame = append(frame, data...)
		case <-time.After(frameQuietPeriod):
			if len(frame) == 0 {
				continue
			}
			records, err := protocol.ParseFrame(frame)
			if err != nil {
				slog.Warn("bad frame", "err", err, "raw", string(frame))
			}
			for _, r := range records {
				fmt.Printf("type=%d elapsed=%dms value=%d\n", r.Type, r.ElapsedMillis, r.Value)
			}
			frame = frame[:0]
		}
	}
}
