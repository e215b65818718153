package scpi

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders a query result the way it goes out over the wire: bool as
// "1"/"0", integers in decimal, strings verbatim, and []byte as an
// IEEE-488.2 definite-length arbitrary block. Grounded on
// scpi_base.py:format_output.
func Format(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		if x {
			return "1"
		}
		return "0"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case []byte:
		return Block(x)
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// FormatAll joins the formatted results of a batch of statements the way a
// single reply line answers every query on it, in order, separated by ';'.
func FormatAll(results []any) string {
	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = Format(r)
	}
	return strings.Join(parts, ";")
}

// Block encodes data as an IEEE-488.2 definite-length arbitrary block:
// '#', one digit giving the length of the following length field, the
// length field itself in decimal, then the raw bytes.
func Block(data []byte) string {
	lenStr := strconv.Itoa(len(data))
	return fmt.Sprintf("#%d%s%s", len(lenStr), lenStr, data)
}
