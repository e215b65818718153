// Package scpi implements the hierarchical, abbreviatable SCPI command
// grammar: lexing one line of client input into statements, a registry
// mapping canonical mnemonic paths to handlers, and a dispatcher that
// resolves channel indices and invokes the right one.
//
// Grounded throughout on original_source/SCPI_Server/scpi_base.py.
package scpi

import (
	"regexp"
	"strconv"
	"strings"

	"scpigpio/scpievent"
)

var (
	argSplitRe  = regexp.MustCompile(`( *"[^"]*"|[^",]+)(?:,|$)`)
	elementRe0  = regexp.MustCompile(`^(\*?[A-Za-z]+)([0-9]*)$`)
	elementReN  = regexp.MustCompile(`^([A-Za-z]+)([0-9]*)$`)
)

// Statement is one parsed command from a line: the mnemonic path, the
// per-level channel index supplied by the client (nil entries mean "not
// specified"), whether it was issued as a query, and its argument list.
type Statement struct {
	Mnemonics []string
	Channels  []*int
	Query     bool
	Args      []string
}

// Parse splits one already-terminator-stripped line of client input into a
// sequence of statements, threading the sticky base path across
// semicolon-separated pieces. Grounded on scpi_base.py:parse.
//
// When a piece is malformed, Parse returns the statements already
// produced for the pieces before it alongside the error: the caller
// executes those, then records the fault and stops, rather than
// discarding work already done earlier on the line.
func Parse(text string) ([]Statement, error) {
	var base []string
	var out []Statement

	for _, piece := range splitSemicolons(text) {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}

		cmdTok, argStr, hasArgs := splitCommandArgs(piece)
		var args []string
		if hasArgs {
			a, err := splitArgList(argStr)
			if err != nil {
				return out, err
			}
			args = a
		}

		query := false
		if strings.HasSuffix(cmdTok, "?") {
			query = true
			cmdTok = cmdTok[:len(cmdTok)-1]
		}

		// A common (IEEE-488.2 "*"-prefixed) mnemonic addresses the command
		// tree from its root regardless of the sticky base path; anything
		// else is relative to it, with leading or doubled colons rising
		// one level per empty element.
		var full []string
		if strings.HasPrefix(cmdTok, "*") {
			full = strings.Split(cmdTok, ":")
		} else {
			full = make([]string, 0, len(base)+strings.Count(cmdTok, ":")+1)
			full = append(full, base...)
			full = append(full, strings.Split(cmdTok, ":")...)
		}
		full, err := normalizePath(full)
		if err != nil {
			return out, err
		}

		if len(full) > 0 {
			base = append([]string{}, full[:len(full)-1]...)
		} else {
			base = nil
		}

		mnemonics := make([]string, len(full))
		channels := make([]*int, len(full))
		for i, part := range full {
			re := elementReN
			if i == 0 {
				re = elementRe0
			}
			m := re.FindStringSubmatch(part)
			if m == nil {
				return out, scpievent.SyntaxError("in command name")
			}
			mnemonics[i] = m[1]
			if m[2] != "" {
				n, _ := strconv.Atoi(m[2])
				channels[i] = &n
			}
		}

		out = append(out, Statement{Mnemonics: mnemonics, Channels: channels, Query: query, Args: args})
	}
	return out, nil
}

// splitSemicolons splits text on ';', ignoring any ';' enclosed in matched
// double quotes. A trailing ';' with nothing after it yields (and the
// caller drops) an empty final piece, matching the tolerance of the
// original regex-based split.
func splitSemicolons(text string) []string {
	var pieces []string
	var cur strings.Builder
	inQuotes := false
	for _, r := range text {
		switch {
		case r == '"':
			inQuotes = !inQuotes
			cur.WriteRune(r)
		case r == ';' && !inQuotes:
			pieces = append(pieces, cur.String())
			cur.Reset()
		default:
			cur.WriteRune(r)
		}
	}
	pieces = append(pieces, cur.String())
	return pieces
}

// splitCommandArgs splits piece at its first space into a command token and
// a raw argument string.
func splitCommandArgs(piece string) (cmd, argStr string, hasArgs bool) {
	idx := strings.IndexByte(piece, ' ')
	if idx == -1 {
		return strings.TrimSpace(piece), "", false
	}
	return strings.TrimSpace(piece[:idx]), strings.TrimSpace(piece[idx+1:]), true
}

// splitArgList splits a comma-separated argument list, honouring
// double-quoted substrings, and rejects malformed lists with a SyntaxError
// the way a length-accounting check does in scpi_base.py:parse.
func splitArgList(argStr string) ([]string, error) {
	if argStr == "" {
		return nil, nil
	}
	locs := argSplitRe.FindAllStringSubmatchIndex(argStr, -1)
	if locs == nil {
		return nil, scpievent.SyntaxError("in argument list")
	}
	raws := make([]string, len(locs))
	total := 0
	for i, loc := range locs {
		raw := argStr[loc[2]:loc[3]]
		raws[i] = raw
		total += len(raw)
	}
	if total+len(raws)-1 != len(argStr) {
		return nil, scpievent.SyntaxError("in argument list")
	}
	args := make([]string, len(raws))
	for i, raw := range raws {
		args[i] = strings.Trim(raw, `" `)
	}
	return args, nil
}

// normalizePath resolves the empty elements a leading or doubled colon
// produces: an empty element after index 0 rises one level, consuming
// itself and the element before it; at index 0 there is nothing to rise
// from and the command is malformed. Grounded on scpi_base.py:parse.
func normalizePath(parts []string) ([]string, error) {
	idx := 0
	for idx < len(parts) {
		if parts[idx] == "" {
			if idx == 0 {
				return nil, scpievent.SyntaxError("command refers to a level above the root of the command tree")
			}
			parts = append(parts[:idx-1], parts[idx+1:]...)
			idx--
		} else {
			idx++
		}
	}
	return parts, nil
}
