package scpi

import (
	"fmt"
	"strings"

	"scpigpio/scpievent"
)

// Execute resolves stmt against reg and invokes the matching command's
// getter or setter. It returns the raw result of a query (nil for a set),
// and an error which is always either a scpievent.Event (for grammar- or
// handler-raised faults) or a Go error wrapping a registry defect.
// Grounded on scpi_base.py:execute.
func Execute(reg *Registry, stmt Statement) (any, error) {
	name := strings.Join(stmt.Mnemonics, ":")
	cmd := reg.Find(name)
	if cmd == nil {
		return nil, scpievent.SyntaxError(fmt.Sprintf("unsupported command %s.", name))
	}

	channels, err := resolveChannels(cmd, stmt.Channels)
	if err != nil {
		return nil, err
	}

	if stmt.Query {
		if cmd.Getter == nil {
			return nil, scpievent.SyntaxError(fmt.Sprintf("%s does not support query", name))
		}
		return cmd.Getter(channels)
	}
	if cmd.Setter == nil {
		return nil, scpievent.SyntaxError(fmt.Sprintf("%s does not support set", name))
	}
	return nil, cmd.Setter(stmt.Args, channels)
}

// resolveChannels checks the channel indices the client supplied against
// cmd's per-level capacities: an index outside 1..capacity, or any index
// supplied where the level admits none, is a SyntaxError. Omitted indices
// at a channel-admitting level default to 1. A command with no channel
// spec at all rejects any supplied index.
func resolveChannels(cmd *Command, supplied []*int) ([]int, error) {
	if cmd.Channels == nil {
		for _, ch := range supplied {
			if ch != nil {
				return nil, scpievent.SyntaxError("unexpected channel index")
			}
		}
		return nil, nil
	}

	channels := make([]int, len(cmd.Channels))
	for i, cap := range cmd.Channels {
		var provided *int
		if i < len(supplied) {
			provided = supplied[i]
		}
		switch {
		case provided != nil && cap == 0:
			return nil, scpievent.SyntaxError("unexpected channel index")
		case provided != nil:
			if *provided < 1 || *provided > cap {
				return nil, scpievent.SyntaxError(fmt.Sprintf("channel index %d out of range 1..%d", *provided, cap))
			}
			channels[i] = *provided
		case cap != 0:
			channels[i] = 1
		default:
			channels[i] = 0
		}
	}
	return channels, nil
}
