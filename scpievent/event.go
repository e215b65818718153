package scpievent

import "fmt"

// Event is a single SCPI error/event queue entry: a code, a message, and an
// optional device-dependent info string. It implements error so handlers can
// return it directly.
type Event struct {
	Code    Code
	Message string
	Info    string
}

// New builds an Event, filling in the canonical message for code when
// message is empty. info is stored separately in Info; Error appends it to
// the message with a semicolon, matching SCPIEvent.__init__.
func New(code Code, message, info string) Event {
	if message == "" {
		if msg, ok := Message(code); ok {
			message = msg
		}
	}
	return Event{Code: code, Message: message, Info: info}
}

// Error renders the event the way a client receives it over the wire:
// code,"message[;info]".
func (e Event) Error() string {
	msg := e.Message
	if e.Info != "" {
		msg = fmt.Sprintf("%s;%s", msg, e.Info)
	}
	return fmt.Sprintf(`%d,"%s"`, e.Code, msg)
}

// Family reports which of the nine SCPI event variants e belongs to.
func (e Event) Family() Family { return ClassifyFamily(e.Code) }

// NoError returns the code-0 sentinel returned by an empty error queue pop.
func NoError() Event { return New(CodeNoError, "", "") }

// CommandError builds a -100-family event ("an error in the execution
// block"); sets SESR bit 5 on occurrence (statusreg applies that).
func CommandError(info string) Event { return New(CodeCommandError, "", info) }

// SyntaxError is the specific -102 CommandError subtype the parser raises.
func SyntaxError(info string) Event { return New(CodeSyntaxError, "", info) }

// ExecutionError builds a -200-family event; sets SESR bit 4.
func ExecutionError(info string) Event { return New(CodeExecutionError, "", info) }

// DeviceError builds a -300-family event; sets SESR bit 3.
func DeviceError(info string) Event { return New(CodeDeviceError, "", info) }

// QueryError builds a -400-family event; sets SESR bit 2.
func QueryError(info string) Event { return New(CodeQueryError, "", info) }

// PowerOnEvent builds a -500 event; sets SESR bit 7.
func PowerOnEvent() Event { return New(CodePowerOn, "", "") }

// UserRequestEvent builds a -600 event; sets SESR bit 6.
func UserRequestEvent() Event { return New(CodeUserRequest, "", "") }

// RequestControlEvent builds a -700 event; sets SESR bit 1.
func RequestControlEvent() Event { return New(CodeRequestControl, "", "") }

// OperationCompleteEvent builds a -800 event; sets SESR bit 0.
func OperationCompleteEvent() Event { return New(CodeOperationComplete, "", "") }
