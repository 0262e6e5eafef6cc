// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/relabs-tech/gyro_pointer/internal/screen"
)

// DefaultPath is where the binaries look for the config file.
const DefaultPath = "./gyro_pointer_config.txt"

// EnvPrefix prefixes environment overrides, e.g. GYRO_WS_PORT=9000.
const EnvPrefix = "GYRO"

// Config holds all application configuration values.
type Config struct {
	// Transport
	HTTPPort  int    `mapstructure:"HTTP_PORT"`
	WSPort    int    `mapstructure:"WS_PORT"`
	StaticDir string `mapstructure:"STATIC_DIR"`
	IndexFile string `mapstructure:"INDEX_FILE"`

	// Serial-attached clients
	SerialPort     string `mapstructure:"SERIAL_PORT"`
	SerialBaudRate int    `mapstructure:"SERIAL_BAUD_RATE"`

	// MQTT telemetry
	MQTTBroker          string `mapstructure:"MQTT_BROKER"`
	MQTTClientID        string `mapstructure:"MQTT_CLIENT_ID"`
	MQTTClientIDMonitor string `mapstructure:"MQTT_CLIENT_ID_MONITOR"`
	TopicEmissions      string `mapstructure:"TOPIC_EMISSIONS"`

	// Screen. Zero width/height means detect from SCREEN_MONITORS.
	ScreenX        int    `mapstructure:"SCREEN_X"`
	ScreenY        int    `mapstructure:"SCREEN_Y"`
	ScreenWidth    int    `mapstructure:"SCREEN_WIDTH"`
	ScreenHeight   int    `mapstructure:"SCREEN_HEIGHT"`
	ScreenMonitors string `mapstructure:"SCREEN_MONITORS"` // "1920x1080+0+0,1280x1024+1920+0"

	// Pointer
	PointerDriver    string  `mapstructure:"POINTER_DRIVER"` // "uinput" or "log"
	DefaultSmoothing float64 `mapstructure:"DEFAULT_SMOOTHING"`

	// Simulation
	SimulateInterval int `mapstructure:"SIMULATE_INTERVAL"` // milliseconds

	LoggerConfig `mapstructure:",squash"`
}

// LoggerConfig configures the zap logger.
type LoggerConfig struct {
	Level       string `mapstructure:"LOG_LEVEL"`
	Format      string `mapstructure:"LOG_FORMAT"` // "console" or "json"
	LogFile     string `mapstructure:"LOG_FILE"`
	MaxSize     int    `mapstructure:"LOG_MAX_SIZE_MB"`
	MaxBackups  int    `mapstructure:"LOG_MAX_BACKUPS"`
	MaxAge      int    `mapstructure:"LOG_MAX_AGE_DAYS"`
	Compress    bool   `mapstructure:"LOG_COMPRESS"`
	AddSource   bool   `mapstructure:"LOG_ADD_SOURCE"`
	ServiceName string `mapstructure:"LOG_SERVICE_NAME"`
}

var defaults = map[string]interface{}{
	"HTTP_PORT":              8081,
	"WS_PORT":                8080,
	"STATIC_DIR":             "web",
	"INDEX_FILE":             "gyro_pointer_simulator.html",
	"SERIAL_PORT":            "",
	"SERIAL_BAUD_RATE":       115200,
	"MQTT_BROKER":            "",
	"MQTT_CLIENT_ID":         "gyro-pointer-server",
	"MQTT_CLIENT_ID_MONITOR": "gyro-pointer-monitor",
	"TOPIC_EMISSIONS":        "gyropointer/emissions",
	"SCREEN_X":               0,
	"SCREEN_Y":               0,
	"SCREEN_WIDTH":           0,
	"SCREEN_HEIGHT":          0,
	"SCREEN_MONITORS":        "",
	"POINTER_DRIVER":         "uinput",
	"DEFAULT_SMOOTHING":      0.25,
	"SIMULATE_INTERVAL":      50,
	"LOG_LEVEL":              "info",
	"LOG_FORMAT":             "console",
	"LOG_FILE":               "",
	"LOG_MAX_SIZE_MB":        10,
	"LOG_MAX_BACKUPS":        3,
	"LOG_MAX_AGE_DAYS":       28,
	"LOG_COMPRESS":           false,
	"LOG_ADD_SOURCE":         false,
	"LOG_SERVICE_NAME":       "gyro-pointer",
}

// Load reads the KEY=VALUE configuration file at path, applies GYRO_*
// environment overrides and defaults, and validates the result. An empty
// path or a missing file yields defaults plus environment.
func Load(path string) (*Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !isNotExist(err) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks ranges that would otherwise fail late at runtime.
func (c *Config) validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT must be 1-65535, got %d", c.HTTPPort)
	}
	if c.WSPort <= 0 || c.WSPort > 65535 {
		return fmt.Errorf("WS_PORT must be 1-65535, got %d", c.WSPort)
	}
	if c.HTTPPort == c.WSPort {
		return fmt.Errorf("HTTP_PORT and WS_PORT must differ, both are %d", c.HTTPPort)
	}
	if c.ScreenWidth < 0 || c.ScreenHeight < 0 {
		return fmt.Errorf("SCREEN_WIDTH/SCREEN_HEIGHT must not be negative")
	}
	if (c.ScreenWidth == 0) != (c.ScreenHeight == 0) {
		return fmt.Errorf("SCREEN_WIDTH and SCREEN_HEIGHT must be set together")
	}
	if c.DefaultSmoothing <= 0 || c.DefaultSmoothing > 1 {
		return fmt.Errorf("DEFAULT_SMOOTHING must be in (0,1], got %g", c.DefaultSmoothing)
	}
	switch c.PointerDriver {
	case "uinput", "log":
	default:
		return fmt.Errorf("POINTER_DRIVER must be uinput or log, got %q", c.PointerDriver)
	}
	if c.SerialPort != "" && c.SerialBaudRate <= 0 {
		return fmt.Errorf("SERIAL_BAUD_RATE is required when SERIAL_PORT is set")
	}
	if c.MQTTBroker != "" && c.TopicEmissions == "" {
		return fmt.Errorf("TOPIC_EMISSIONS is required when MQTT_BROKER is set")
	}
	if c.SimulateInterval <= 0 {
		return fmt.Errorf("SIMULATE_INTERVAL must be positive, got %d", c.SimulateInterval)
	}
	return nil
}

// ExplicitScreen returns the configured screen rectangle, or false when
// the size is left to detection.
func (c *Config) ExplicitScreen() (screen.Rect, bool) {
	if c.ScreenWidth == 0 {
		return screen.Rect{}, false
	}
	return screen.Rect{X: c.ScreenX, Y: c.ScreenY, Width: c.ScreenWidth, Height: c.ScreenHeight}, true
}

// Screen returns the explicit screen rectangle when one is configured,
// otherwise the bounding box of SCREEN_MONITORS. Detection problems come
// back together with the 1920x1080 fallback.
func (c *Config) Screen() (screen.Rect, error) {
	if r, ok := c.ExplicitScreen(); ok {
		return r, nil
	}
	return screen.Detect(c.ScreenMonitors)
}
