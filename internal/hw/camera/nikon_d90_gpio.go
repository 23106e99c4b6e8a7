package camera

import (
	"time"

	"github.com/cjeanneret/CamGo/internal/hw/gpio"
	"github.com/cjeanneret/CamGo/internal/log"
)

// NikonD90GPIO is a Trigger for a Nikon D90
// controlled via the 3-pin remote connector:
// - GND: connected to Raspberry Pi ground
// - FOCUS: autofocus (activate by setting to LOW)
// - SHUTTER: trigger (activate by setting to LOW)
//
// Trigger sequence:
// 1. FOCUS to LOW (activates autofocus)
// 2. Wait for autofocus to complete
// 3. SHUTTER to LOW (triggers the shot)
// 4. Hold for a moment
// 5. Set SHUTTER and FOCUS back to HIGH
type NikonD90GPIO struct {
	gpio         gpio.Driver
	focusPin     int
	shutterPin   int
	focusDelay   time.Duration // time for autofocus
	shutterDelay time.Duration // shutter hold time
}

// NewNikonD90GPIO configures both pins as outputs at HIGH (inactive).
func NewNikonD90GPIO(g gpio.Driver, focusPin, shutterPin int, focusDelay, shutterDelay time.Duration) (*NikonD90GPIO, error) {
	for _, pin := range []int{focusPin, shutterPin} {
		if err := g.SetupPin(pin, gpio.Output); err != nil {
			return nil, err
		}
		if err := g.WritePin(pin, gpio.High); err != nil {
			return nil, err
		}
	}

	return &NikonD90GPIO{
		gpio:         g,
		focusPin:     focusPin,
		shutterPin:   shutterPin,
		focusDelay:   focusDelay,
		shutterDelay: shutterDelay,
	}, nil
}

// Shoot triggers a photo on the D90.
// Sequence: FOCUS -> wait for AF -> SHUTTER -> hold -> release
func (n *NikonD90GPIO) Shoot() error {
	l := log.WithComponent("camera")
	l.Debug().Int("focus_pin", n.focusPin).Int("shutter_pin", n.shutterPin).Msg("triggering shot")

	if err := n.gpio.WritePin(n.focusPin, gpio.Low); err != nil {
		return err
	}
	time.Sleep(n.focusDelay)

	if err := n.gpio.WritePin(n.shutterPin, gpio.Low); err != nil {
		// Release FOCUS on error
		_ = n.gpio.WritePin(n.focusPin, gpio.High)
		return err
	}
	time.Sleep(n.shutterDelay)

	if err := n.gpio.WritePin(n.shutterPin, gpio.High); err != nil {
		return err
	}
	if err := n.gpio.WritePin(n.focusPin, gpio.High); err != nil {
		return err
	}

	l.Debug().Str(log.FieldEvent, "trigger.done").Msg("shot triggered")
	return nil
}
