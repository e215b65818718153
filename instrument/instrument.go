// Package instrument wires the SCPI command registry to the
// status-register model and the GPIO pin table, giving a concrete
// command-set for the IEEE-488.2/SCPI instrument this server exposes.
//
// Grounded on original_source/SCPI_Server/scpi_base.py (the mandatory
// command set) and interface_gpio.py (the GPIO subtree and *IDN?).
package instrument

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"scpigpio/gpio"
	"scpigpio/scpi"
	"scpigpio/scpievent"
	"scpigpio/statusreg"
	"scpigpio/x/strx"
)

const firmwareRevision = 1

// Instrument binds one command registry to one status model and one pin
// table behind a single mutex: the device supports no concurrent or
// overlapping command execution, so every line of client input runs to
// completion before the next is accepted.
type Instrument struct {
	mu sync.Mutex

	registry *scpi.Registry
	status   *statusreg.Model
	pins     *gpio.Table

	// TrapHandlerPanics converts a command handler panic into an
	// ExecutionError instead of letting it crash the process. Default
	// false: the original server has no blanket exception guard around
	// command execution, and this instrument preserves that by default.
	TrapHandlerPanics bool
}

// New builds an Instrument driving hw, with every mandatory and GPIO
// command registered and the pin table at its power-on defaults.
func New(hw gpio.HardwareIO) *Instrument {
	ins := &Instrument{
		registry: scpi.NewRegistry(),
		status:   statusreg.New(),
		pins:     gpio.NewTable(hw),
	}
	ins.registerCommands()
	return ins
}

// Exec parses and executes one line of client input (already stripped of
// its terminator) and returns the reply to send back, joining every
// query's formatted result with ';'. Set commands contribute nothing to
// the reply. Faults go to the error/event queue, retrievable with
// SYSTem:ERRor[:NEXT]?.
func (ins *Instrument) Exec(line string) string {
	ins.mu.Lock()
	defer ins.mu.Unlock()

	stmts, parseErr := scpi.Parse(line)
	var outputs []string
	for _, stmt := range stmts {
		result, err := ins.run(stmt)
		if err != nil {
			ins.recordFault(err)
			continue
		}
		if stmt.Query {
			outputs = append(outputs, scpi.Format(result))
		}
	}
	if parseErr != nil {
		ins.recordFault(parseErr)
	}
	return strings.Join(outputs, ";")
}

// run executes one statement, optionally recovering a handler panic per
// TrapHandlerPanics.
func (ins *Instrument) run(stmt scpi.Statement) (result any, err error) {
	if ins.TrapHandlerPanics {
		defer func() {
			if r := recover(); r != nil {
				err = scpievent.ExecutionError(fmt.Sprintf("handler panicked: %v", r))
			}
		}()
	}
	return scpi.Execute(ins.registry, stmt)
}

// recordFault pushes err onto the error/event queue, wrapping it as an
// ExecutionError if it isn't already a typed scpievent.Event.
func (ins *Instrument) recordFault(err error) {
	if ev, ok := err.(scpievent.Event); ok {
		ins.status.PushEvent(ev)
		return
	}
	ins.status.PushEvent(scpievent.ExecutionError(err.Error()))
}

// pin resolves the last channel index in channels (the GPIO subtree's
// channel level) against the pin table.
func (ins *Instrument) pin(channels []int) (*gpio.Pin, error) {
	return ins.pins.Pin(channels[len(channels)-1])
}

// readSerial extracts the board's serial number from /proc/cpuinfo,
// falling back to "?" when it can't be read, matching
// PiGPIO.get_serial's best-effort behaviour.
func readSerial() string {
	data, err := os.ReadFile("/proc/cpuinfo")
	if err != nil {
		return "?"
	}
	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if strings.TrimSpace(key) == "Serial" {
			return strx.Coalesce(strings.TrimSpace(value), "?")
		}
	}
	return "?"
}
