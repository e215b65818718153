// Package gpio implements the pin state machine behind the GPIO:...
// command subtree: pin mode/value/pull with per-attribute fixed-value
// enforcement, and the HardwareIO boundary a real or simulated GPIO chip
// implements.
//
// Grounded on original_source/SCPI_Server/interface_gpio.py's PiGPIO.Pin
// inner class.
package gpio

import (
	"fmt"

	"scpigpio/scpievent"
)

// Mode is a pin's electrical direction/function.
type Mode int

const (
	ModeIn Mode = iota
	ModeOut
	ModeI2C
	ModePWM
	ModeSerial
)

func (m Mode) String() string {
	switch m {
	case ModeIn:
		return "IN"
	case ModeOut:
		return "OUT"
	case ModeI2C:
		return "I2C"
	case ModePWM:
		return "PWM"
	case ModeSerial:
		return "SERIAL"
	default:
		return "UNKNOWN"
	}
}

// Pull is a pin's internal pull resistor configuration.
type Pull int

const (
	PullOff Pull = iota
	PullUp
	PullDown
)

func (p Pull) String() string {
	switch p {
	case PullUp:
		return "UP"
	case PullDown:
		return "DOWN"
	default:
		return "NONE"
	}
}

// HardwareIO is the boundary this package drives on every pin mutation. A
// real implementation talks to the board's GPIO chip; Simulated (in
// simulated.go) is an in-memory stand-in for development and tests.
type HardwareIO interface {
	// SetupOutput configures id as an output. Called instead of
	// SetupInput whenever a pin's mode becomes ModeOut; no pull is
	// pushed, matching the asymmetry in the original driver.
	SetupOutput(id int) error
	// SetupInput configures id as an input with the given pull.
	SetupInput(id int, pull Pull) error
	// Write drives id to value. Only called while the pin is in
	// ModeOut.
	Write(id int, value bool) error
	// Read samples id's current electrical level, regardless of mode.
	Read(id int) (bool, error)
}

// Pin is one entry in the board's pin table: its reset defaults, which
// attributes are fixed, and its live mode/value/pull state.
type Pin struct {
	ID          int
	Description string

	modeReset  Mode
	valueReset bool
	pullReset  Pull

	configurable bool
	modeFix      bool
	valueFix     bool
	pullFix      bool

	mode  Mode
	value bool
	pull  Pull

	hw HardwareIO
}

// newPin builds a pin and applies its reset state. configurable=false
// forces every attribute fixed, matching Pin.__init__'s "setup=False
// implies mode_fix, val_fix and pud_fix".
func newPin(hw HardwareIO, id int, modeReset Mode, valueReset bool, pullReset Pull, configurable, modeFix, valueFix, pullFix bool, description string) *Pin {
	if !configurable {
		modeFix, valueFix, pullFix = true, true, true
	}
	p := &Pin{
		ID:           id,
		Description:  description,
		modeReset:    modeReset,
		valueReset:   valueReset,
		pullReset:    pullReset,
		configurable: configurable,
		modeFix:      modeFix,
		valueFix:     valueFix,
		pullFix:      pullFix,
		hw:           hw,
	}
	p.Reset()
	return p
}

// Reset restores mode, value and pull to their power-on defaults and
// re-applies them to the hardware.
func (p *Pin) Reset() {
	p.mode = p.modeReset
	p.pull = p.pullReset
	p.value = p.valueReset
	p.apply()
	if p.configurable && p.mode == ModeOut {
		p.hw.Write(p.ID, p.value)
	}
}

// apply pushes the current mode (and, for non-output modes, pull) to
// hardware. Output pins push only their mode; every other mode pushes
// mode and pull together. This asymmetry is carried over from the
// original RPi.GPIO driver rather than smoothed out.
func (p *Pin) apply() error {
	if !p.configurable {
		return nil
	}
	if p.mode == ModeOut {
		return p.hw.SetupOutput(p.ID)
	}
	return p.hw.SetupInput(p.ID, p.pull)
}

// SetMode changes the pin's mode, or reports a DeviceError if mode is
// fixed and the requested mode differs from the current one.
func (p *Pin) SetMode(mode Mode) error {
	if p.modeFix {
		if p.mode != mode {
			return scpievent.DeviceError(fmt.Sprintf("mode of pin %d is fixed.", p.ID))
		}
		return nil
	}
	p.mode = mode
	return p.apply()
}

// Mode returns the pin's current mode.
func (p *Pin) Mode() Mode { return p.mode }

// SetPull changes the pin's pull resistor setting, or reports a
// DeviceError if pull is fixed and the requested setting differs from the
// current one.
func (p *Pin) SetPull(pull Pull) error {
	if p.pullFix {
		if p.pull != pull {
			return scpievent.DeviceError(fmt.Sprintf("pull-up/down resistor of pin %d is fixed.", p.ID))
		}
		return nil
	}
	p.pull = pull
	return p.apply()
}

// Pull returns the pin's current pull resistor setting.
func (p *Pin) Pull() Pull { return p.pull }

// SetValue sets the pin's last-commanded value, or reports a DeviceError
// if value is fixed and the requested value differs from the current
// one. The value is only pushed to hardware while the pin is in ModeOut.
func (p *Pin) SetValue(value bool) error {
	if p.valueFix {
		if p.value != value {
			return scpievent.DeviceError(fmt.Sprintf("value of pin %d is fixed.", p.ID))
		}
		return nil
	}
	p.value = value
	if p.mode == ModeOut {
		return p.hw.Write(p.ID, value)
	}
	return nil
}

// Value returns the pin's last-commanded value (not a hardware read).
func (p *Pin) Value() bool { return p.value }

// ReadValue samples the pin's electrical level from hardware. A
// value-fixed pin (e.g. a supply or ground rail) never touches hardware
// and always reports its reset value.
func (p *Pin) ReadValue() (bool, error) {
	if p.valueFix {
		return p.valueReset, nil
	}
	return p.hw.Read(p.ID)
}
