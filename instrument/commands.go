package instrument

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"scpigpio/gpio"
	"scpigpio/scpi"
	"scpigpio/scpievent"
	"scpigpio/x/mathx"
)

// registerCommands adds every command this instrument understands: the
// IEEE-488.2 common commands, the SCPI-mandatory status/system commands,
// SYSTem:HELP:HEADers?, and the GPIO subtree.
func (ins *Instrument) registerCommands() {
	ins.registerCommonCommands()
	ins.registerSystemCommands()
	ins.registerStatusCommands()
	ins.registerGPIOCommands()
}

func (ins *Instrument) registerCommonCommands() {
	must(ins.registry.Add("*CLS", nil, func(args []string, ch []int) error {
		ins.status.Clear()
		return nil
	}, nil))

	must(ins.registry.Add("*ESE",
		func(ch []int) (any, error) { return ins.status.StandardEventStatusEnable(), nil },
		func(args []string, ch []int) error {
			mask, err := parseIntArg(args, "*ESE")
			if err != nil {
				return err
			}
			return ins.status.SetStandardEventStatusEnable(mask)
		}, nil))

	must(ins.registry.Add("*ESR",
		func(ch []int) (any, error) { return ins.status.StandardEventStatus(), nil }, nil, nil))

	must(ins.registry.Add("*IDN",
		func(ch []int) (any, error) {
			return fmt.Sprintf("SQDLab, Raspberry Pi GPIO, %s, V%d", readSerial(), firmwareRevision), nil
		}, nil, nil))

	must(ins.registry.Add("*OPC",
		func(ch []int) (any, error) { return ins.status.OperationComplete(), nil },
		func(args []string, ch []int) error {
			ins.status.SetOperationComplete()
			return nil
		}, nil))

	must(ins.registry.Add("*RST", nil, func(args []string, ch []int) error {
		// no-op by design: status structures survive reset, and this
		// instrument has no other persistent configuration to clear.
		return nil
	}, nil))

	must(ins.registry.Add("*SRE",
		func(ch []int) (any, error) { return ins.status.ServiceRequestEnable(), nil },
		func(args []string, ch []int) error {
			mask, err := parseIntArg(args, "*SRE")
			if err != nil {
				return err
			}
			return ins.status.SetServiceRequestEnable(mask)
		}, nil))

	must(ins.registry.Add("*STB",
		func(ch []int) (any, error) { return ins.status.StatusByte(), nil }, nil, nil))

	must(ins.registry.Add("*TST",
		func(ch []int) (any, error) { return ins.status.SelfTest(), nil }, nil, nil))

	must(ins.registry.Add("*WAI", nil, func(args []string, ch []int) error {
		// the instrument never overlaps commands, so there is nothing
		// to wait for.
		return nil
	}, nil))
}

func (ins *Instrument) registerSystemCommands() {
	errGetter := func(ch []int) (any, error) { return ins.status.NextError().Error(), nil }
	must(ins.registry.Add("SYSTem:ERRor", errGetter, nil, nil))
	must(ins.registry.Add("SYSTem:ERRor:NEXT", errGetter, nil, nil))

	must(ins.registry.Add("SYSTem:VERSion",
		func(ch []int) (any, error) { return "1999.0", nil }, nil, nil))

	must(ins.registry.Add("PRESet", nil, func(args []string, ch []int) error {
		// PRESet maps to the same no-op reset as *RST in the original
		// server.
		return nil
	}, nil))

	must(ins.registry.Add("SYSTem:HELP:HEADers",
		func(ch []int) (any, error) { return ins.headers(), nil }, nil, nil))
}

func (ins *Instrument) registerStatusCommands() {
	operEventGetter := func(ch []int) (any, error) { return ins.status.OperationEvent(), nil }
	must(ins.registry.Add("STATus:OPERation", operEventGetter, nil, nil))
	must(ins.registry.Add("STATus:OPERation:EVENt", operEventGetter, nil, nil))
	must(ins.registry.Add("STATus:OPERation:CONDition",
		func(ch []int) (any, error) { return ins.status.OperationCondition(), nil }, nil, nil))
	must(ins.registry.Add("STATus:OPERation:ENABle",
		func(ch []int) (any, error) { return ins.status.OperationEnable(), nil },
		func(args []string, ch []int) error {
			mask, err := parseIntArg(args, "STATus:OPERation:ENABle")
			if err != nil {
				return err
			}
			return ins.status.SetOperationEnable(mask)
		}, nil))

	// Carried over from the original server as-is: the Questionable
	// subtree is registered without a STATus: prefix.
	quesEventGetter := func(ch []int) (any, error) { return ins.status.QuestionableEvent(), nil }
	must(ins.registry.Add("QUEStionable", quesEventGetter, nil, nil))
	must(ins.registry.Add("QUEStionable:EVENt", quesEventGetter, nil, nil))
	must(ins.registry.Add("QUEStionable:CONDition",
		func(ch []int) (any, error) { return ins.status.QuestionableCondition(), nil }, nil, nil))
	must(ins.registry.Add("QUEStionable:ENABle",
		func(ch []int) (any, error) { return ins.status.QuestionableEnable(), nil },
		func(args []string, ch []int) error {
			mask, err := parseIntArg(args, "QUEStionable:ENABle")
			if err != nil {
				return err
			}
			return ins.status.SetQuestionableEnable(mask)
		}, nil))
}

const pulseDelayCorrection = -190e-6

func (ins *Instrument) registerGPIOCommands() {
	chans := []int{0, 0, 0, gpio.PinCount}

	must(ins.registry.Add("GPIO:MEASure:DIGital:DATA",
		func(ch []int) (any, error) {
			pin, err := ins.pin(ch)
			if err != nil {
				return nil, err
			}
			return pin.ReadValue()
		}, nil, chans))

	must(ins.registry.Add("GPIO:MEASure:DIGital:PULL",
		func(ch []int) (any, error) {
			pin, err := ins.pin(ch)
			if err != nil {
				return nil, err
			}
			return pin.Pull().String(), nil
		},
		func(args []string, ch []int) error {
			raw, err := singleArg(args, "PULL")
			if err != nil {
				return err
			}
			pull, err := parsePull(raw)
			if err != nil {
				return err
			}
			pin, err := ins.pin(ch)
			if err != nil {
				return err
			}
			return pin.SetPull(pull)
		}, chans))

	must(ins.registry.Add("GPIO:SOURce:DIGital:DATA",
		func(ch []int) (any, error) {
			pin, err := ins.pin(ch)
			if err != nil {
				return nil, err
			}
			return pin.Value(), nil
		},
		func(args []string, ch []int) error {
			raw, err := singleArg(args, "DATA")
			if err != nil {
				return err
			}
			value, err := parseBoolArg("DATA", raw)
			if err != nil {
				return err
			}
			pin, err := ins.pin(ch)
			if err != nil {
				return err
			}
			return pin.SetValue(value)
		}, chans))

	must(ins.registry.Add("GPIO:SOURce:DIGital:IO",
		func(ch []int) (any, error) {
			pin, err := ins.pin(ch)
			if err != nil {
				return nil, err
			}
			return pin.Mode().String(), nil
		},
		func(args []string, ch []int) error {
			raw, err := singleArg(args, "direction")
			if err != nil {
				return err
			}
			mode, err := parseMode(raw)
			if err != nil {
				return err
			}
			pin, err := ins.pin(ch)
			if err != nil {
				return err
			}
			return pin.SetMode(mode)
		}, chans))

	must(ins.registry.Add("GPIO:SOURce:DIGital:PULSe", nil,
		func(args []string, ch []int) error {
			return ins.pulsePin(args, ch)
		}, chans))
}

// pulsePin drives a pin to value, holds it for delay seconds, then
// restores its previous value. Grounded on
// PiGPIO.pulse_pin_value.
func (ins *Instrument) pulsePin(args []string, ch []int) error {
	if len(args) != 2 {
		return scpievent.CommandError("PULSe requires a value and a delay argument.")
	}
	value, err := parseBoolArg("DATA", args[0])
	if err != nil {
		return err
	}
	delay, err := strconv.ParseFloat(strings.TrimSpace(args[1]), 64)
	if err != nil {
		return scpievent.QueryError(fmt.Sprintf("unable to convert %q to a number.", args[1]))
	}
	if !mathx.Between(delay, 200e-6, 2.0) {
		return scpievent.QueryError("delay must be between 200us and 2s.")
	}
	pin, err := ins.pin(ch)
	if err != nil {
		return err
	}
	cur := pin.Value()
	if err := pin.SetValue(value); err != nil {
		return err
	}
	time.Sleep(time.Duration((delay + pulseDelayCorrection) * float64(time.Second)))
	return pin.SetValue(cur)
}

// headers renders the full command list the way
// SYSTem:HELP:HEADers? answers it: sorted, one per line, annotated with
// channel ranges and query/set-only suffixes, as an IEEE-488.2 block.
func (ins *Instrument) headers() []byte {
	cmds := ins.registry.All()
	lines := make([]string, 0, len(cmds))
	for _, cmd := range cmds {
		parts := append([]string(nil), cmd.Path...)
		for i, cap := range cmd.Channels {
			if cap != 0 {
				parts[i] = fmt.Sprintf("%s{1:%d}", parts[i], cap)
			}
		}
		name := strings.Join(parts, ":")
		switch {
		case cmd.Getter == nil && cmd.Setter == nil:
			name += "/unknown/"
		case cmd.Getter == nil:
			name += "/nquery"
		case cmd.Setter == nil:
			name += "?/qonly"
		}
		lines = append(lines, name)
	}
	sort.Strings(lines)
	return []byte(strings.Join(lines, "\n"))
}

func must(_ *scpi.Command, err error) {
	if err != nil {
		panic(err)
	}
}

func parseIntArg(args []string, name string) (int, error) {
	if len(args) != 1 {
		return 0, scpievent.CommandError(fmt.Sprintf("%s requires exactly one argument.", name))
	}
	n, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, scpievent.QueryError(fmt.Sprintf("unable to convert %q to an integer.", args[0]))
	}
	return n, nil
}

func singleArg(args []string, name string) (string, error) {
	if len(args) != 1 {
		return "", scpievent.CommandError(fmt.Sprintf("%s requires exactly one argument.", name))
	}
	return args[0], nil
}

func parseBoolArg(name, raw string) (bool, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "0", "LOW", "FALSE":
		return false, nil
	case "1", "HIGH", "TRUE":
		return true, nil
	default:
		return false, scpievent.QueryError(fmt.Sprintf("%s must be one of [0, 1, LOW, HIGH, FALSE, TRUE].", name))
	}
}

func parsePull(raw string) (gpio.Pull, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "UP":
		return gpio.PullUp, nil
	case "DOWN":
		return gpio.PullDown, nil
	case "NONE":
		return gpio.PullOff, nil
	default:
		return 0, scpievent.QueryError("PULL must be one of [UP, DOWN, NONE].")
	}
}

func parseMode(raw string) (gpio.Mode, error) {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "IN":
		return gpio.ModeIn, nil
	case "OUT":
		return gpio.ModeOut, nil
	default:
		return 0, scpievent.QueryError("direction must be one of [IN, OUT].")
	}
}
