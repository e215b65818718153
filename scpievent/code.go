// Package scpievent implements the SCPI/IEEE-488.2 event and error taxonomy:
// typed event codes, their canonical messages, and the FIFO queue a client
// drains with SYSTem:ERRor[:NEXT]?.
package scpievent

// Code is a signed 16-bit SCPI event/error code. Zero means no error;
// negative values are reserved for IEEE-488.2/SCPI-defined event families.
type Code int16

// Canonical codes, per spec.md §4.5.
const (
	CodeNoError                      Code = 0
	CodeCommandError                 Code = -100
	CodeSyntaxError                  Code = -102
	CodeDataTypeError                Code = -104
	CodeGetNotAllowed                Code = -105
	CodeParameterNotAllowed          Code = -108
	CodeMissingParameter             Code = -109
	CodeExecutionError               Code = -200
	CodeParameterError               Code = -220
	CodeDeviceError                  Code = -300
	CodeQueryError                   Code = -400
	CodeQueryInterrupted             Code = -410
	CodeQueryUnterminated            Code = -420
	CodeQueryDeadlocked              Code = -430
	CodeQueryUnterminatedIndefinite  Code = -440
	CodePowerOn                      Code = -500
	CodeUserRequest                  Code = -600
	CodeRequestControl               Code = -700
	CodeOperationComplete            Code = -800
)

// messages gives the canonical text for a code, looked up first exactly,
// then after rounding toward zero to the nearest multiple of 10, then 100 —
// mirroring SCPIEvent.__init__ in original_source/SCPI_Server/scpi_event.py.
var messages = map[Code]string{
	CodeNoError:                     "No error",
	CodeCommandError:                "Command error",
	CodeExecutionError:              "Execution error",
	CodeDeviceError:                 "Device-specific error",
	CodeQueryError:                  "Query error",
	CodeQueryInterrupted:            "Query INTERRUPTED",
	CodeQueryUnterminated:           "Query UNTERMINATED",
	CodeQueryDeadlocked:             "Query DEADLOCKED",
	CodeQueryUnterminatedIndefinite: "Query UNTERMINATED after indefinite response",
	CodePowerOn:                     "Power on",
	CodeUserRequest:                 "User request",
	CodeRequestControl:              "Request control",
	CodeOperationComplete:           "Operation complete",
}

// RoundCode rounds code toward zero to the nearest multiple of n.
// Direct port of SCPIEvent.round_code.
func RoundCode(code Code, n int) Code {
	c := int(code)
	if n == 0 {
		return code
	}
	if c < 0 {
		return Code(-n * (-c / n))
	}
	return Code(n * (c / n))
}

// Message returns the canonical message for code, checking the exact code,
// then the nearest multiple of 10, then the nearest multiple of 100.
func Message(code Code) (string, bool) {
	for _, n := range [...]int{1, 10, 100} {
		if msg, ok := messages[RoundCode(code, n)]; ok {
			return msg, true
		}
	}
	return "", false
}

// Family identifies which of the nine SCPI event variants a code belongs to.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyNoError
	FamilyCommandError
	FamilyExecutionError
	FamilyDeviceError
	FamilyQueryError
	FamilyPowerOn
	FamilyUserRequest
	FamilyRequestControl
	FamilyOperationComplete
)

var familyByCode = map[Code]Family{
	CodeNoError:           FamilyNoError,
	CodeCommandError:      FamilyCommandError,
	CodeExecutionError:    FamilyExecutionError,
	CodeDeviceError:       FamilyDeviceError,
	CodeQueryError:        FamilyQueryError,
	CodePowerOn:           FamilyPowerOn,
	CodeUserRequest:       FamilyUserRequest,
	CodeRequestControl:    FamilyRequestControl,
	CodeOperationComplete: FamilyOperationComplete,
}

// ClassifyFamily selects the event variant for code by rounding toward zero
// to the nearest multiple of 100, per SCPIEvent.factory.
func ClassifyFamily(code Code) Family {
	if f, ok := familyByCode[RoundCode(code, 100)]; ok {
		return f
	}
	return FamilyUnknown
}
