package gpio

import (
	"fmt"

	"scpigpio/scpievent"
)

// PinCount is the number of pin positions on the board header. Positions
// 27 and 28 are reserved (ID EEPROM) and never populated.
const PinCount = 40

type pinSpec struct {
	id           int
	modeReset    Mode
	valueReset   bool
	pullReset    Pull
	configurable bool
	modeFix      bool
	valueFix     bool
	pullFix      bool
	description  string
}

// boardSpecs lays out a 40-pin header: power and ground rails fixed and
// unconfigurable, the two I2C pins configurable but pull-fixed, and every
// other position a general-purpose pin defaulting to a floating output.
// Positions 27 and 28 are intentionally absent. Grounded on the _pins
// table in interface_gpio.py:PiGPIO.__init__, corrected to not carry
// forward that table's accidental duplicate pin-32 entry (which silently
// shifted every later pin's identity by one).
var boardSpecs = []pinSpec{
	{1, ModeOut, true, PullUp, false, true, true, true, "3V3 supply"},
	{2, ModeOut, true, PullUp, false, true, true, true, "5V supply"},
	{3, ModeOut, false, PullUp, true, false, false, true, "I2C_SDA"},
	{4, ModeOut, true, PullUp, false, true, true, true, "5V supply"},
	{5, ModeOut, false, PullUp, true, false, false, true, "I2C_SCL"},
	{6, ModeOut, false, PullDown, false, true, true, true, "GND"},
	{7, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	{8, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	{9, ModeOut, false, PullDown, false, true, true, true, "GND"},
	{10, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	{11, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	{12, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	{13, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	{14, ModeOut, false, PullDown, false, true, true, true, "GND"},
	{15, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	{16, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	{17, ModeOut, true, PullUp, false, true, true, true, "3V3 supply"},
	{18, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	{19, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	{20, ModeOut, false, PullDown, false, true, true, true, "GND"},
	{21, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	{22, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	{23, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	{24, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	{25, ModeOut, false, PullDown, false, true, true, true, "GND"},
	{26, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	// 27, 28: reserved, absent.
	{29, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	{30, ModeOut, false, PullDown, false, true, true, true, "GND"},
	{31, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	{32, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	{33, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	{34, ModeOut, false, PullDown, false, true, true, true, "GND"},
	{35, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	{36, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	{37, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	{38, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
	{39, ModeOut, false, PullDown, false, true, true, true, "GND"},
	{40, ModeOut, false, PullOff, true, false, false, false, "GPIO"},
}

// Table is the board's full pin set, indexed 1..PinCount.
type Table struct {
	pins [PinCount + 1]*Pin
	hw   HardwareIO
}

// NewTable builds a Table backed by hw, instantiating every pin at its
// reset state (and so performing its initial hardware setup call).
func NewTable(hw HardwareIO) *Table {
	t := &Table{hw: hw}
	for _, spec := range boardSpecs {
		t.pins[spec.id] = newPin(hw, spec.id, spec.modeReset, spec.valueReset, spec.pullReset,
			spec.configurable, spec.modeFix, spec.valueFix, spec.pullFix, spec.description)
	}
	return t
}

// Pin returns the pin at id, or a DeviceError if id is out of range or
// names a reserved, unpopulated position.
func (t *Table) Pin(id int) (*Pin, error) {
	if id < 1 || id > PinCount || t.pins[id] == nil {
		return nil, scpievent.DeviceError(fmt.Sprintf("pin %d does not exist.", id))
	}
	return t.pins[id], nil
}

// Reset restores every populated pin to its power-on default.
func (t *Table) Reset() {
	for _, p := range t.pins {
		if p != nil {
			p.Reset()
		}
	}
}
