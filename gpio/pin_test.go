package gpio

import "testing"

func TestReservedPinsAreAbsent(t *testing.T) {
	tbl := NewTable(NewSimulated())
	for _, id := range []int{27, 28} {
		if _, err := tbl.Pin(id); err == nil {
			t.Errorf("Pin(%d) = nil error, want DeviceError (reserved position)", id)
		}
	}
}

func TestOutOfRangePin(t *testing.T) {
	tbl := NewTable(NewSimulated())
	for _, id := range []int{0, -1, 41, 100} {
		if _, err := tbl.Pin(id); err == nil {
			t.Errorf("Pin(%d) = nil error, want DeviceError", id)
		}
	}
}

func TestFixedSupplyPinRejectsMutation(t *testing.T) {
	tbl := NewTable(NewSimulated())
	pin, err := tbl.Pin(1) // 3V3 supply: fully fixed, unconfigurable
	if err != nil {
		t.Fatalf("Pin(1): %v", err)
	}
	if pin.Mode() != ModeOut {
		t.Errorf("Mode() = %v, want OUT", pin.Mode())
	}
	if !pin.Value() {
		t.Error("Value() = false, want true (3V3 rail)")
	}
	if err := pin.SetMode(ModeIn); err == nil {
		t.Error("SetMode on fixed pin = nil error")
	}
	if err := pin.SetValue(false); err == nil {
		t.Error("SetValue on fixed pin = nil error")
	}
	// setting to the same value it already holds is not an error.
	if err := pin.SetValue(true); err != nil {
		t.Errorf("SetValue(same value) = %v, want nil", err)
	}
}

func TestI2CPinPullIsFixedModeIsNot(t *testing.T) {
	tbl := NewTable(NewSimulated())
	pin, err := tbl.Pin(3) // I2C_SDA
	if err != nil {
		t.Fatalf("Pin(3): %v", err)
	}
	if err := pin.SetPull(PullDown); err == nil {
		t.Error("SetPull on I2C pin = nil error, want DeviceError")
	}
	if err := pin.SetMode(ModeIn); err != nil {
		t.Errorf("SetMode on I2C pin = %v, want nil", err)
	}
	if pin.Mode() != ModeIn {
		t.Errorf("Mode() = %v, want IN", pin.Mode())
	}
}

func TestGeneralPurposePinReadWrite(t *testing.T) {
	hw := NewSimulated()
	tbl := NewTable(hw)
	pin, err := tbl.Pin(7)
	if err != nil {
		t.Fatalf("Pin(7): %v", err)
	}
	if err := pin.SetMode(ModeOut); err != nil {
		t.Fatalf("SetMode(OUT): %v", err)
	}
	if err := pin.SetValue(true); err != nil {
		t.Fatalf("SetValue(true): %v", err)
	}
	got, err := pin.ReadValue()
	if err != nil {
		t.Fatalf("ReadValue: %v", err)
	}
	if !got {
		t.Error("ReadValue() = false, want true after SetValue(true) in OUT mode")
	}
}

func TestInputModeDoesNotWriteHardware(t *testing.T) {
	hw := NewSimulated()
	tbl := NewTable(hw)
	pin, err := tbl.Pin(7)
	if err != nil {
		t.Fatalf("Pin(7): %v", err)
	}
	if err := pin.SetMode(ModeIn); err != nil {
		t.Fatalf("SetMode(IN): %v", err)
	}
	if err := pin.SetValue(true); err != nil {
		t.Fatalf("SetValue: %v", err)
	}
	// value is stored but never pushed to hardware in input mode.
	level, _ := hw.Read(7)
	if level {
		t.Error("hardware level changed from SetValue while pin is an input")
	}
	if !pin.Value() {
		t.Error("Value() should still report the last-commanded value")
	}
}

func TestResetRestoresDefaults(t *testing.T) {
	tbl := NewTable(NewSimulated())
	pin, err := tbl.Pin(7)
	if err != nil {
		t.Fatalf("Pin(7): %v", err)
	}
	if err := pin.SetMode(ModeIn); err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if err := pin.SetPull(PullUp); err != nil {
		t.Fatalf("SetPull: %v", err)
	}
	pin.Reset()
	if pin.Mode() != ModeOut {
		t.Errorf("Mode() after Reset = %v, want OUT", pin.Mode())
	}
	if pin.Pull() != PullOff {
		t.Errorf("Pull() after Reset = %v, want NONE", pin.Pull())
	}
}
