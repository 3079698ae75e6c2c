// Package config loads the host tool's settings from a YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the host tool configuration.
type Config struct {
	Device DeviceConfig `yaml:"device"`
	Serial SerialConfig `yaml:"serial"`
}

// DeviceConfig identifies the sensor node to connect to over BLE.
type DeviceConfig struct {
	// Name is the advertised local name to scan for.
	Name string `yaml:"name"`
	// Adapter is the host BLE adapter ID (Linux only, e.g. "hci0").
	Adapter string `yaml:"adapter"`
	// ScanTimeoutSeconds bounds the discovery phase.
	ScanTimeoutSeconds int `yaml:"scan_timeout_seconds"`
}

// SerialConfig configures the diagnostic UART watcher.
type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// Default returns a configuration matching the firmware's defaults.
func Default() *Config {
	return &Config{
		Device: DeviceConfig{
			Name:               "Steering",
			ScanTimeoutSeconds: 30,
		},
		Serial: SerialConfig{
			Baud: 115200,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist
// or fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.ensureDefaults()
	return cfg, nil
}

// ensureDefaults fills required fields left empty by a partial file.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Device.Name == "" {
		c.Device.Name = def.Device.Name
	}
	if c.Device.ScanTimeoutSeconds == 0 {
		c.Device.ScanTimeoutSeconds = def.Device.ScanTimeoutSeconds
	}
	if c.Serial.Baud == 0 {
		c.Serial.Baud = def.Serial.Baud
	}
}
