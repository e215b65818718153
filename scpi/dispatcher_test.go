package scpi

import (
	"testing"

	"scpigpio/scpievent"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg := NewRegistry()
	if _, err := reg.Add("GPIO:MEASure:DIGital:DATA",
		func(channels []int) (any, error) { return channels[3] == 5, nil },
		nil, []int{0, 0, 0, 40}); err != nil {
		t.Fatalf("Add DATA: %v", err)
	}
	if _, err := reg.Add("*CLS", nil,
		func(args []string, channels []int) error { return nil }, nil); err != nil {
		t.Fatalf("Add *CLS: %v", err)
	}
	return reg
}

func TestExecuteQueryDefaultsChannelToOne(t *testing.T) {
	reg := newTestRegistry(t)
	stmts, err := Parse("GPIO:MEAS:DIG:DATA?")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, err := Execute(reg, stmts[0])
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got != false {
		t.Errorf("got %v, want false (channel defaulted to 1, not 5)", got)
	}
}

func TestExecuteQueryOutOfRangeChannel(t *testing.T) {
	reg := newTestRegistry(t)
	stmts, err := Parse("GPIO:MEAS:DIG:DATA41?")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = Execute(reg, stmts[0])
	if err == nil {
		t.Fatal("Execute with channel 41 = nil error, want SyntaxError")
	}
	ev, ok := err.(scpievent.Event)
	if !ok || ev.Code != scpievent.CodeSyntaxError {
		t.Fatalf("err = %v, want SyntaxError", err)
	}
}

func TestExecuteUnsupportedCommand(t *testing.T) {
	reg := newTestRegistry(t)
	stmts, err := Parse("NOPE:NOTHING?")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, err = Execute(reg, stmts[0])
	if err == nil {
		t.Fatal("Execute on unregistered command = nil error")
	}
}

func TestExecuteSetWithNoChannelSpec(t *testing.T) {
	reg := newTestRegistry(t)
	stmts, err := Parse("*CLS")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := Execute(reg, stmts[0]); err != nil {
		t.Fatalf("Execute *CLS: %v", err)
	}
}

func TestExecuteQueryNotSupported(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Add("PRESet", nil, func([]string, []int) error { return nil }, nil); err != nil {
		t.Fatalf("Add: %v", err)
	}
	stmts, err := Parse("PRESet?")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, err := Execute(reg, stmts[0]); err == nil {
		t.Fatal("Execute query on set-only command = nil error")
	}
}
