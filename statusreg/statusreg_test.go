package statusreg

import (
	"testing"

	"scpigpio/scpievent"
)

func TestEnableMaskBounds(t *testing.T) {
	m := New()
	if err := m.SetStandardEventStatusEnable(127); err != nil {
		t.Fatalf("SetStandardEventStatusEnable(127): %v", err)
	}
	if err := m.SetStandardEventStatusEnable(128); err == nil {
		t.Fatal("SetStandardEventStatusEnable(128) = nil error, want range error")
	}
	if err := m.SetOperationEnable(32767); err != nil {
		t.Fatalf("SetOperationEnable(32767): %v", err)
	}
	if err := m.SetOperationEnable(32768); err == nil {
		t.Fatal("SetOperationEnable(32768) = nil error, want range error")
	}
}

func TestPushEventSetsSESRBit(t *testing.T) {
	m := New()
	m.PushEvent(scpievent.DeviceError("pin 1 is fixed"))
	if m.sesr&SesrDeviceDependentError == 0 {
		t.Error("PushEvent(DeviceError) did not set SESR device-dependent-error bit")
	}
	if m.events.Len() != 1 {
		t.Fatalf("events.Len() = %d, want 1", m.events.Len())
	}
	ev := m.NextError()
	if ev.Code != scpievent.CodeDeviceError {
		t.Errorf("NextError() = %+v", ev)
	}
}

func TestPushNoErrorIsNoop(t *testing.T) {
	m := New()
	m.PushEvent(scpievent.NoError())
	if m.events.Len() != 0 {
		t.Error("pushing NoError should not enqueue")
	}
}

func TestStandardEventStatusReadIsDestructive(t *testing.T) {
	m := New()
	m.SetOperationComplete()
	if got := m.StandardEventStatus(); got != SesrOperationComplete {
		t.Fatalf("StandardEventStatus() = %#x, want %#x", got, SesrOperationComplete)
	}
	if got := m.StandardEventStatus(); got != 0 {
		t.Fatalf("second StandardEventStatus() = %#x, want 0 (cleared by first read)", got)
	}
}

func TestStatusByteClearsSESRAsASideEffect(t *testing.T) {
	m := New()
	if err := m.SetStandardEventStatusEnable(0xff & sevenBitMask); err != nil {
		t.Fatalf("SetStandardEventStatusEnable: %v", err)
	}
	m.SetOperationComplete()

	sb := m.StatusByte()
	if sb&StbSESR == 0 {
		t.Fatalf("StatusByte() = %#x, want StbSESR bit set", sb)
	}
	// *STB? read SESR destructively; a direct *ESR? afterwards must see 0.
	if got := m.StandardEventStatus(); got != 0 {
		t.Errorf("SESR after StatusByte() = %#x, want 0 (StatusByte already drained it)", got)
	}
}

func TestOperationConditionSummaryBit(t *testing.T) {
	m := New()
	if err := m.SetOperationEnable(OperMeasuring); err != nil {
		t.Fatalf("SetOperationEnable: %v", err)
	}
	m.SetOperationCondition(OperMeasuring)
	cond := m.OperationCondition()
	if cond&OperMeasuring == 0 {
		t.Error("OperationCondition lost the raw bit")
	}
	if cond&OperInstrumentSummary == 0 {
		t.Error("OperationCondition did not derive the instrument-summary bit")
	}
	// non-destructive: a second read sees the same thing.
	if m.OperationCondition() != cond {
		t.Error("OperationCondition is not idempotent")
	}
	// event read is destructive.
	ev := m.OperationEvent()
	if ev != cond {
		t.Errorf("OperationEvent() = %#x, want %#x", ev, cond)
	}
	if m.OperationCondition() != 0 {
		t.Error("OperationEvent did not clear the condition register")
	}
}

func TestClearResetsEventRegistersNotMasks(t *testing.T) {
	m := New()
	if err := m.SetStandardEventStatusEnable(5); err != nil {
		t.Fatalf("SetStandardEventStatusEnable: %v", err)
	}
	m.SetOperationComplete()
	m.PushEvent(scpievent.CommandError("boom"))

	m.Clear()

	if m.StandardEventStatus() != 0 {
		t.Error("Clear did not clear SESR")
	}
	if m.events.Len() != 0 {
		t.Error("Clear did not clear the event queue")
	}
	if m.StandardEventStatusEnable() != 5 {
		t.Error("Clear must not reset the enable mask")
	}
}
