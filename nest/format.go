package nest

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders v on a single line for diagnostics.
//
// Maps render as {key: value, ...} with symbol keys bare and text keys
// quoted, sequences as [value, ...], strings quoted, and nil as nil.
func Format(v any) string {
	var b strings.Builder

	formatValue(&b, v)

	return b.String()
}

func formatValue(b *strings.Builder, v any) {
	switch t := v.(type) {
	case nil:
		b.WriteString("nil")

	case *Map:
		if t == nil {
			b.WriteString("nil")

			return
		}

		b.WriteByte('{')

		n := 0
		for k, e := range t.All() {
			if n > 0 {
				b.WriteString(", ")
			}

			b.WriteString(k.String())
			b.WriteString(": ")
			formatValue(b, e)

			n++
		}

		b.WriteByte('}')

	case *Seq:
		if t == nil {
			b.WriteString("nil")

			return
		}

		b.WriteByte('[')

		for i, e := range t.All() {
			if i > 0 {
				b.WriteString(", ")
			}

			formatValue(b, e)
		}

		b.WriteByte(']')

	case string:
		b.WriteString(strconv.Quote(t))

	default:
		fmt.Fprint(b, t)
	}
}
