package scpi

import (
	"fmt"
	"regexp"
	"strings"
)

// nameFormRe splits a registration mnemonic into its short (all-caps,
// optionally asterisk-prefixed) and long forms. Grounded on the
// name_part_dict regex in scpi_base.py:add_command.
var nameFormRe = regexp.MustCompile(`^(\*?[A-Z]+)[a-z]*$`)

// GetterFunc answers a query. channels holds one resolved 1-based index per
// path level (0 where that level admits no channel); Add pads every
// command's spec to the path depth, so a command registered without a
// channel spec receives all zeroes.
type GetterFunc func(channels []int) (any, error)

// SetterFunc executes a set command with its raw (already comma-split)
// argument strings.
type SetterFunc func(args []string, channels []int) error

// Command is one registered command: its canonical path, its optional
// getter/setter, and the channel capacity at each path level (0 means that
// level admits no numeric suffix).
type Command struct {
	Path     []string
	Getter   GetterFunc
	Setter   SetterFunc
	Channels []int

	re *regexp.Regexp
}

// Registry holds the set of commands the instrument understands. Lookup is
// a first-match linear scan over case-insensitive short/long regexes, the
// same strategy as scpi_base.py:find.
type Registry struct {
	commands []*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry { return &Registry{} }

// Add registers a command under name (colon-separated canonical mnemonics,
// e.g. "SYSTem:ERRor:NEXT"), with an optional getter, optional setter, and
// a channel-capacity list no longer than the path depth (it is padded with
// zeroes). Returns an error if name is malformed or collides with an
// existing registration's short/long form at any level.
func (r *Registry) Add(name string, getter GetterFunc, setter SetterFunc, channels []int) (*Command, error) {
	stmts, err := Parse(name)
	if err != nil {
		return nil, fmt.Errorf("scpi: invalid command name %q: %w", name, err)
	}
	if len(stmts) != 1 {
		return nil, fmt.Errorf("scpi: command name %q must be a single statement", name)
	}
	path := stmts[0].Mnemonics

	if len(channels) > len(path) {
		return nil, fmt.Errorf("scpi: channel spec for %q longer than its path", name)
	}
	padded := make([]int, len(path))
	copy(padded, channels)

	shorts := make([]string, len(path))
	longs := make([]string, len(path))
	for i, part := range path {
		m := nameFormRe.FindStringSubmatch(part)
		if m == nil {
			return nil, fmt.Errorf("scpi: mnemonic %q at level %d is not a valid short/long form", part, i)
		}
		shorts[i] = m[1]
		longs[i] = part
	}

	if err := r.checkCollisions(shorts, longs); err != nil {
		return nil, err
	}

	re, err := buildRegex(shorts, longs)
	if err != nil {
		return nil, err
	}

	cmd := &Command{Path: path, Getter: getter, Setter: setter, Channels: padded, re: re}
	r.commands = append(r.commands, cmd)
	return cmd, nil
}

// checkCollisions rejects a registration if any combination of short/long
// forms across the path already matches a registered command, the way
// add_command enumerates every short/long permutation before accepting a
// new entry.
func (r *Registry) checkCollisions(shorts, longs []string) error {
	depth := len(shorts)
	for mask := 0; mask < (1 << depth); mask++ {
		parts := make([]string, depth)
		for i := 0; i < depth; i++ {
			if mask&(1<<i) != 0 {
				parts[i] = longs[i]
			} else {
				parts[i] = shorts[i]
			}
		}
		candidate := strings.Join(parts, ":")
		if r.Find(candidate) != nil {
			return fmt.Errorf("scpi: command %q collides with an existing registration", candidate)
		}
	}
	return nil
}

// buildRegex compiles a case-insensitive, whole-string regex that matches
// either the short or long form at every path level, colon-joined.
func buildRegex(shorts, longs []string) (*regexp.Regexp, error) {
	levels := make([]string, len(shorts))
	for i := range shorts {
		if shorts[i] == longs[i] {
			levels[i] = regexp.QuoteMeta(shorts[i])
		} else {
			levels[i] = fmt.Sprintf("(?:%s|%s)", regexp.QuoteMeta(longs[i]), regexp.QuoteMeta(shorts[i]))
		}
	}
	pattern := "(?i)^" + strings.Join(levels, ":") + "$"
	return regexp.Compile(pattern)
}

// Find returns the first registered command whose short/long regex matches
// name (a colon-joined mnemonic path with no channel digits), or nil.
func (r *Registry) Find(name string) *Command {
	for _, cmd := range r.commands {
		if cmd.re.MatchString(name) {
			return cmd
		}
	}
	return nil
}

// All returns every registered command, in registration order. Used by
// SYSTem:HELP:HEADers? to enumerate the command tree.
func (r *Registry) All() []*Command {
	out := make([]*Command, len(r.commands))
	copy(out, r.commands)
	return out
}
