package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// MaxConfigFileBytes bounds the size of a config file accepted by Load.
const MaxConfigFileBytes = 1 << 20

// Camera backend types accepted in camera.type.
const (
	CameraTypeFile         = "file"
	CameraTypeNikonD90GPIO = "nikon_d90_gpio"
)

// CameraConfig selects and parameterizes the camera backend.
type CameraConfig struct {
	Type             string `yaml:"type"`               // "file" or "nikon_d90_gpio"
	SourcePath       string `yaml:"source_path"`        // file: fixed image read on capture
	MIMEType         string `yaml:"mime_type"`          // file: optional MIME override
	Device           string `yaml:"device"`             // opaque device identifier, informational
	FocusPin         int    `yaml:"focus_pin"`          // GPIO pin for FOCUS line
	ShutterPin       int    `yaml:"shutter_pin"`        // GPIO pin for SHUTTER line
	FocusDelayMs     int    `yaml:"focus_delay_ms"`     // autofocus delay (ms)
	ShutterDelayMs   int    `yaml:"shutter_delay_ms"`   // shutter hold time (ms)
	DropDir          string `yaml:"drop_dir"`           // tethered: directory the body writes into
	CaptureTimeoutMs int    `yaml:"capture_timeout_ms"` // tethered: wait for the dropped file (ms)
}

// StorageConfig controls where save_photo writes.
type StorageConfig struct {
	Dir string `yaml:"dir"` // empty = <home>/Pictures/camgo
}

// WebConfig configures the HTTP server.
type WebConfig struct {
	Port               int   `yaml:"port"`
	RateLimitPerMinute int   `yaml:"rate_limit_per_minute"`
	MaxBodyBytes       int64 `yaml:"max_body_bytes"`
}

// DefaultsConfig contains generic parameters.
type DefaultsConfig struct {
	DebugLevel int  `yaml:"debug_level"` // debug level 0-4 (0=off, 1=info, 2=live, 3=verbose, 4=trace)
	MockGPIO   bool `yaml:"mock_gpio"`   // use mock GPIO (true=dev/test, false=real Raspberry Pi)
}

// Config aggregates all application configuration.
type Config struct {
	Camera   CameraConfig   `yaml:"camera"`
	Storage  StorageConfig  `yaml:"storage"`
	Web      WebConfig      `yaml:"web"`
	Defaults DefaultsConfig `yaml:"defaults"`
}

// ValidateConfigPath accepts only a .yaml file whose parent directory is
// named "configs".
func ValidateConfigPath(path string) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	if filepath.Ext(abs) != ".yaml" {
		return fmt.Errorf("config file must have .yaml extension: %s", path)
	}
	if filepath.Base(filepath.Dir(abs)) != "configs" {
		return fmt.Errorf("config file must be inside a configs/ directory: %s", path)
	}
	return nil
}

// Load reads a YAML file and returns the configuration.
func Load(path string) (*Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if info.Size() > MaxConfigFileBytes {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), MaxConfigFileBytes)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml: %w", err)
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{Defaults: DefaultsConfig{DebugLevel: 1, MockGPIO: true}}
	// cannot fail: the zero camera config defaults to the file backend
	_ = cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() error {
	c.Camera.Type = strings.TrimSpace(c.Camera.Type)
	if c.Camera.Type == "" {
		c.Camera.Type = CameraTypeFile
	}

	switch c.Camera.Type {
	case CameraTypeFile:
		if c.Camera.SourcePath == "" {
			c.Camera.SourcePath = "sample.jpg"
		}
	case CameraTypeNikonD90GPIO:
		if c.Camera.DropDir == "" {
			return fmt.Errorf("camera.drop_dir is required for %s", CameraTypeNikonD90GPIO)
		}
		if c.Camera.FocusPin <= 0 || c.Camera.ShutterPin <= 0 {
			return fmt.Errorf("camera.focus_pin and camera.shutter_pin must be > 0")
		}
		if c.Camera.FocusPin == c.Camera.ShutterPin {
			return fmt.Errorf("camera.focus_pin and camera.shutter_pin must differ, both are %d", c.Camera.FocusPin)
		}
	default:
		return fmt.Errorf("unsupported camera type: %s", c.Camera.Type)
	}

	// Default values for camera delays
	if c.Camera.FocusDelayMs <= 0 {
		c.Camera.FocusDelayMs = 500 // 500ms for autofocus
	}
	if c.Camera.ShutterDelayMs <= 0 {
		c.Camera.ShutterDelayMs = 200 // 200ms shutter hold
	}
	if c.Camera.CaptureTimeoutMs <= 0 {
		c.Camera.CaptureTimeoutMs = 10000
	}

	if c.Web.Port == 0 {
		c.Web.Port = 8080
	}
	if c.Web.Port < 0 || c.Web.Port > 65535 {
		return fmt.Errorf("web.port must be between 1 and 65535, got %d", c.Web.Port)
	}
	if c.Web.RateLimitPerMinute <= 0 {
		c.Web.RateLimitPerMinute = 120
	}
	if c.Web.MaxBodyBytes <= 0 {
		c.Web.MaxBodyBytes = 32 << 20
	}

	if c.Defaults.DebugLevel < 0 || c.Defaults.DebugLevel > 4 {
		return fmt.Errorf("debug_level must be between 0 and 4, got %d", c.Defaults.DebugLevel)
	}
	return nil
}

// FocusDelay returns the autofocus delay duration.
func (c *Config) FocusDelay() time.Duration {
	return time.Duration(c.Camera.FocusDelayMs) * time.Millisecond
}

// ShutterDelay returns the shutter hold duration.
func (c *Config) ShutterDelay() time.Duration {
	return time.Duration(c.Camera.ShutterDelayMs) * time.Millisecond
}

// CaptureTimeout returns how long a tethered capture waits for its file.
func (c *Config) CaptureTimeout() time.Duration {
	return time.Duration(c.Camera.CaptureTimeoutMs) * time.Millisecond
}
