package scpievent

import "testing"

func TestRoundCode(t *testing.T) {
	cases := []struct {
		code Code
		n    int
		want Code
	}{
		{-102, 100, -100},
		{-220, 100, -200},
		{0, 100, 0},
		{-799, 100, -700},
		{-800, 100, -800},
	}
	for _, c := range cases {
		if got := RoundCode(c.code, c.n); got != c.want {
			t.Errorf("RoundCode(%d, %d) = %d, want %d", c.code, c.n, got, c.want)
		}
	}
}

func TestMessageFallsBackThroughFamilies(t *testing.T) {
	// -102 has no direct entry; it rounds to -100, whose message is "Command error".
	msg, ok := Message(CodeSyntaxError)
	if !ok || msg != "Command error" {
		t.Fatalf("rounded-to-100 fallback for -102: got (%q, %v)", msg, ok)
	}
	// -220 has no direct entry either; it rounds to -200, "Execution error".
	msg, ok = Message(CodeParameterError)
	if !ok || msg != "Execution error" {
		t.Fatalf("rounded-to-100 fallback for -220: got (%q, %v)", msg, ok)
	}
	msg, ok = Message(-201)
	if !ok || msg != "Execution error" {
		t.Fatalf("rounded-to-100 fallback: got (%q, %v)", msg, ok)
	}
}

func TestClassifyFamily(t *testing.T) {
	cases := []struct {
		code Code
		want Family
	}{
		{CodeNoError, FamilyNoError},
		{CodeSyntaxError, FamilyCommandError},
		{CodeParameterError, FamilyExecutionError},
		{CodeDeviceError, FamilyDeviceError},
		{CodeQueryUnterminated, FamilyQueryError},
		{CodePowerOn, FamilyPowerOn},
		{CodeUserRequest, FamilyUserRequest},
		{CodeRequestControl, FamilyRequestControl},
		{CodeOperationComplete, FamilyOperationComplete},
		{-9999, FamilyUnknown},
	}
	for _, c := range cases {
		if got := ClassifyFamily(c.code); got != c.want {
			t.Errorf("ClassifyFamily(%d) = %v, want %v", c.code, got, c.want)
		}
	}
}
