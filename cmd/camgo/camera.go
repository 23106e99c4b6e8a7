package main

import (
	"fmt"

	"github.com/cjeanneret/CamGo/internal/config"
	"github.com/cjeanneret/CamGo/internal/hw/camera"
	"github.com/cjeanneret/CamGo/internal/hw/gpio"
)

// newCameraFromConfig selects a camera implementation based on configuration.
// The returned close func releases any hardware the backend holds.
func newCameraFromConfig(cfg *config.Config) (camera.Service, func() error, error) {
	switch cfg.Camera.Type {
	case config.CameraTypeFile:
		return camera.NewFileService(cfg.Camera.SourcePath, cfg.Camera.MIMEType), func() error { return nil }, nil

	case config.CameraTypeNikonD90GPIO:
		driver, err := gpio.NewDriver(cfg.Defaults.MockGPIO)
		if err != nil {
			return nil, nil, fmt.Errorf("init GPIO: %w", err)
		}
		trigger, err := camera.NewNikonD90GPIO(
			driver,
			cfg.Camera.FocusPin,
			cfg.Camera.ShutterPin,
			cfg.FocusDelay(),
			cfg.ShutterDelay(),
		)
		if err != nil {
			_ = driver.Close()
			return nil, nil, err
		}
		svc := camera.NewTetheredService(trigger, cfg.Camera.DropDir, cfg.Camera.Device, cfg.CaptureTimeout())
		return svc, driver.Close, nil

	default:
		return nil, nil, fmt.Errorf("unsupported camera type: %s", cfg.Camera.Type)
	}
}
