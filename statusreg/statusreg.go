// Package statusreg implements the IEEE-488.2/SCPI status-reporting model:
// the Status Byte, the Standard Event Status Register, and the Operation
// and Questionable condition/event/enable register pairs, plus the FIFO
// error/event queue that backs SYSTem:ERRor[:NEXT]?.
//
// Grounded on original_source/SCPI_Server/scpi_base.py, the status-byte
// and register methods of SCPIBase.
package statusreg

import (
	"fmt"

	"scpigpio/scpievent"
)

// Status Byte bits.
const (
	StbUser0             = 1 << 0
	StbUser1             = 1 << 1
	StbError             = 1 << 2
	StbQuestionable      = 1 << 3
	StbMessageAvailable  = 1 << 4
	StbSESR              = 1 << 5
	StbServiceRequest    = 1 << 6
	StbOperation         = 1 << 7
)

// Standard Event Status Register bits.
const (
	SesrOperationComplete     = 1 << 0
	SesrRequestControl        = 1 << 1
	SesrQueryError            = 1 << 2
	SesrDeviceDependentError  = 1 << 3
	SesrExecutionError        = 1 << 4
	SesrCommandError          = 1 << 5
	SesrUserRequest           = 1 << 6
	SesrPowerOn               = 1 << 7
)

// Operation Status register bits.
const (
	OperCalibrating        = 1 << 0
	OperSettling           = 1 << 1
	OperRanging            = 1 << 2
	OperSweeping           = 1 << 3
	OperMeasuring          = 1 << 4
	OperWaitTrigger        = 1 << 5
	OperWaitArm            = 1 << 6
	OperCorrecting         = 1 << 7
	OperUser0              = 1 << 8
	OperUser1              = 1 << 9
	OperUser2              = 1 << 10
	OperUser3              = 1 << 11
	OperUser4              = 1 << 12
	OperInstrumentSummary  = 1 << 13
	OperProgramRunning     = 1 << 14
)

// Questionable Status register bits.
const (
	QuesVoltage            = 1 << 0
	QuesCurrent            = 1 << 1
	QuesTime               = 1 << 2
	QuesPower              = 1 << 3
	QuesTemperature        = 1 << 4
	QuesFrequency          = 1 << 5
	QuesPhase              = 1 << 6
	QuesModulation         = 1 << 7
	QuesCalibration        = 1 << 8
	QuesUser0              = 1 << 9
	QuesUser1              = 1 << 10
	QuesUser2              = 1 << 11
	QuesUser3              = 1 << 12
	QuesInstrumentSummary  = 1 << 13
	QuesCommandWarning     = 1 << 14
)

// sevenBitMask and fifteenBitMask bound *ESE/*SRE and the Operation and
// Questionable enable masks respectively.
const (
	sevenBitMask   = 1<<7 - 1
	fifteenBitMask = 1<<15 - 1
)

// Model holds every status-reporting register for one instrument. It is
// not safe for concurrent use; callers serialize access (the instrument
// package holds one mutex over the whole device).
type Model struct {
	serviceRequest bool

	sesr     int
	sesrMask int
	stbMask  int

	operStatus int
	operMask   int

	quesStatus int
	quesMask   int

	events scpievent.Queue
}

// New returns a Model with every register cleared, matching power-on
// state.
func New() *Model {
	m := &Model{}
	m.Clear()
	return m
}

// Clear implements *CLS: clears SESR, the Operation and Questionable
// event registers, and the error/event queue, and drops any pending
// service request. It does not touch the enable masks.
func (m *Model) Clear() {
	m.serviceRequest = false
	m.StandardEventStatusClear()
	m.QuestionableClear()
	m.OperationClear()
	m.ErrorClear()
}

// StandardEventStatusClear zeroes the Standard Event Status Register.
func (m *Model) StandardEventStatusClear() { m.sesr = 0 }

// SetStandardEventStatusEnable implements *ESE. The mask must fit in 7
// bits.
func (m *Model) SetStandardEventStatusEnable(mask int) error {
	if mask < 0 || mask > sevenBitMask {
		return scpievent.CommandError("enable mask must be between 0 and 2**7-1")
	}
	m.sesrMask = mask
	return nil
}

// StandardEventStatusEnable implements *ESE?.
func (m *Model) StandardEventStatusEnable() int { return m.sesrMask }

// StandardEventStatus implements *ESR?. Reading SESR is destructive: it
// clears the register as it returns it, matching the original server's
// get_standard_event_status.
func (m *Model) StandardEventStatus() int {
	status := m.sesr
	m.StandardEventStatusClear()
	return status
}

// SetOperationComplete implements *OPC. The instrument never overlaps
// commands, so completion is immediate.
func (m *Model) SetOperationComplete() { m.sesr |= SesrOperationComplete }

// OperationComplete implements *OPC?, always true for the same reason.
func (m *Model) OperationComplete() bool { return true }

// SetServiceRequestEnable implements *SRE. The mask must fit in 7 bits.
func (m *Model) SetServiceRequestEnable(mask int) error {
	if mask < 0 || mask > sevenBitMask {
		return scpievent.CommandError("enable mask must be between 0 and 2**7-1")
	}
	m.stbMask = mask
	return nil
}

// ServiceRequestEnable implements *SRE?.
func (m *Model) ServiceRequestEnable() int { return m.stbMask }

// StatusByte implements *STB?. It reads SESR destructively as a side
// effect, reproducing the original server's behaviour exactly: every *STB?
// query clears SESR, whether or not the masked bits were nonzero.
func (m *Model) StatusByte() int {
	status := 0
	if m.events.Len() > 0 {
		status |= StbError
	}
	if m.QuestionableCondition()&QuesInstrumentSummary != 0 {
		status |= StbQuestionable
	}
	if m.StandardEventStatus()&m.sesrMask != 0 {
		status |= StbSESR
	}
	if m.OperationCondition()&OperInstrumentSummary != 0 {
		status |= StbOperation
	}
	if status&m.stbMask != 0 {
		status |= StbServiceRequest
	}
	return status
}

// SelfTest implements *TST?: this instrument has no self-test to run.
func (m *Model) SelfTest() int { return 0 }

// ErrorClear empties the error/event queue.
func (m *Model) ErrorClear() { m.events.Clear() }

// NextError implements SYSTem:ERRor[:NEXT]?, popping the oldest queued
// event (or the NoError sentinel if the queue is empty).
func (m *Model) NextError() scpievent.Event { return m.events.Pop() }

// PushEvent enqueues e (unless it is the no-error sentinel) and raises the
// SESR bit associated with its family, so a later *ESR? or *STB? observes
// it.
func (m *Model) PushEvent(e scpievent.Event) {
	if e.Code == scpievent.CodeNoError {
		return
	}
	m.events.Push(e)
	if bit, ok := sesrBitForFamily(e.Family()); ok {
		m.sesr |= bit
	}
}

func sesrBitForFamily(f scpievent.Family) (int, bool) {
	switch f {
	case scpievent.FamilyCommandError:
		return SesrCommandError, true
	case scpievent.FamilyExecutionError:
		return SesrExecutionError, true
	case scpievent.FamilyDeviceError:
		return SesrDeviceDependentError, true
	case scpievent.FamilyQueryError:
		return SesrQueryError, true
	case scpievent.FamilyPowerOn:
		return SesrPowerOn, true
	case scpievent.FamilyUserRequest:
		return SesrUserRequest, true
	case scpievent.FamilyRequestControl:
		return SesrRequestControl, true
	case scpievent.FamilyOperationComplete:
		return SesrOperationComplete, true
	default:
		return 0, false
	}
}

// OperationClear zeroes the Operation Status event register.
func (m *Model) OperationClear() { m.operStatus = 0 }

// OperationEvent implements STATus:OPERation[:EVENt]?, destructively.
func (m *Model) OperationEvent() int {
	status := m.OperationCondition()
	m.OperationClear()
	return status
}

// OperationCondition implements STATus:OPERation:CONDition?,
// non-destructively, with the instrument-summary bit derived from the
// enable mask.
func (m *Model) OperationCondition() int {
	status := m.operStatus
	if m.operStatus&m.operMask != 0 {
		status |= OperInstrumentSummary
	}
	return status
}

// SetOperationEnable implements STATus:OPERation:ENABle. The mask must
// fit in 15 bits.
func (m *Model) SetOperationEnable(mask int) error {
	if mask < 0 || mask > fifteenBitMask {
		return scpievent.CommandError("enable mask must be between 0 and 2**15-1")
	}
	m.operMask = mask
	return nil
}

// OperationEnable implements STATus:OPERation:ENABle?.
func (m *Model) OperationEnable() int { return m.operMask }

// SetOperationCondition ORs bits into the raw Operation condition
// register, for use by handlers that track a long-running operation.
func (m *Model) SetOperationCondition(bits int) { m.operStatus |= bits }

// ClearOperationCondition ANDs bits out of the raw Operation condition
// register.
func (m *Model) ClearOperationCondition(bits int) { m.operStatus &^= bits }

// QuestionableClear zeroes the Questionable Status event register.
func (m *Model) QuestionableClear() { m.quesStatus = 0 }

// QuestionableEvent implements QUEStionable[:EVENt]? (registered without a
// STATus: prefix), destructively.
func (m *Model) QuestionableEvent() int {
	status := m.QuestionableCondition()
	m.QuestionableClear()
	return status
}

// QuestionableCondition implements QUEStionable:CONDition?,
// non-destructively.
func (m *Model) QuestionableCondition() int {
	status := m.quesStatus
	if status&m.quesMask != 0 {
		status |= QuesInstrumentSummary
	}
	return status
}

// SetQuestionableEnable implements QUEStionable:ENABle. The mask
// must fit in 15 bits.
func (m *Model) SetQuestionableEnable(mask int) error {
	if mask < 0 || mask > fifteenBitMask {
		return scpievent.CommandError("enable mask must be between 0 and 2**15-1")
	}
	m.quesMask = mask
	return nil
}

// QuestionableEnable implements QUEStionable:ENABle?.
func (m *Model) QuestionableEnable() int { return m.quesMask }

// SetQuestionableCondition ORs bits into the raw Questionable condition
// register.
func (m *Model) SetQuestionableCondition(bits int) { m.quesStatus |= bits }

// ClearQuestionableCondition ANDs bits out of the raw Questionable
// condition register.
func (m *Model) ClearQuestionableCondition(bits int) { m.quesStatus &^= bits }

// String renders a compact snapshot of the registers, for logging.
func (m *Model) String() string {
	return fmt.Sprintf("statusreg{sesr=%#x stb_mask=%#x oper=%#x ques=%#x queued=%d}",
		m.sesr, m.stbMask, m.operStatus, m.quesStatus, m.events.Len())
}
