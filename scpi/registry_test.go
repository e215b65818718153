package scpi

import "testing"

func TestRegistryAddAndFindShortLong(t *testing.T) {
	reg := NewRegistry()
	_, err := reg.Add("SYSTem:ERRor:NEXT",
		func(channels []int) (any, error) { return "0,\"No error\"", nil },
		nil, nil)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	for _, name := range []string{"SYSTem:ERRor:NEXT", "SYST:ERR:NEXT", "system:error:next", "SYST:ERRor:NEXT"} {
		if reg.Find(name) == nil {
			t.Errorf("Find(%q) = nil, want match", name)
		}
	}
	if reg.Find("SYST:ERR:PREV") != nil {
		t.Error("Find matched an unregistered mnemonic")
	}
}

func TestRegistryCollisionRejected(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.Add("SYSTem:ERRor", nil, func([]string, []int) error { return nil }, nil); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	if _, err := reg.Add("SYST:ERRor", nil, func([]string, []int) error { return nil }, nil); err == nil {
		t.Fatal("second Add with colliding short form = nil error, want collision error")
	}
}

func TestRegistryChannelSpecPadded(t *testing.T) {
	reg := NewRegistry()
	cmd, err := reg.Add("GPIO:MEASure:DIGital:DATA",
		func(channels []int) (any, error) { return channels, nil }, nil, []int{0, 0, 0})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if len(cmd.Channels) != 4 {
		t.Fatalf("Channels = %v, want len 4 (padded with trailing zero)", cmd.Channels)
	}
	if cmd.Channels[3] != 0 {
		t.Errorf("Channels[3] = %d, want 0", cmd.Channels[3])
	}
}
