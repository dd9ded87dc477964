package output

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"twii-miner/core/graph"
	"twii-miner/core/labels"
)

// Quote renders s as a double quoted Lua string literal.
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if c < 0x20 || c == 0x7f {
				fmt.Fprintf(&b, `\%03d`, c)
				continue
			}
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// writer accumulates Lua source one indented line at a time.
type writer struct {
	buf bytes.Buffer
}

func (w *writer) line(depth int, format string, args ...any) {
	w.buf.WriteString(strings.Repeat("    ", depth))
	fmt.Fprintf(&w.buf, format, args...)
	w.buf.WriteByte('\n')
}

func (w *writer) Bytes() []byte {
	return w.buf.Bytes()
}

func hexID(id uint32) string {
	return Quote(graph.FormatID(id))
}

// localeFields renders the non-empty localized fields of one locale as
// `key="text", ` pairs in the order given.
func localeFields(loc labels.Locale, fields []namedLabel) string {
	var b strings.Builder
	for _, f := range fields {
		if f.label.Empty() {
			continue
		}
		fmt.Fprintf(&b, "%s=%s, ", f.name, Quote(f.label.Resolve(loc)))
	}
	return b.String()
}

type namedLabel struct {
	name  string
	label labels.Label
}

func labelTable(l labels.Label) string {
	parts := make([]string, 0, len(labels.All))
	for _, loc := range labels.All {
		parts = append(parts, fmt.Sprintf("%s=%s", loc.Upper(), Quote(l.Resolve(loc))))
	}
	return "{" + strings.Join(parts, ", ") + " }"
}

func mapList(locs []graph.MapLoc) string {
	parts := make([]string, 0, len(locs))
	for _, m := range locs {
		parts = append(parts, fmt.Sprintf("{MapType.%s, %d, %d}", m.Region, m.X, m.Y))
	}
	return "{" + strings.Join(parts, ",") + "}"
}

func idList(ids []uint32) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, hexID(id))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// sortLevel returns the sort level as a Lua number, or "" when the text is not
// numeric.
func sortLevel(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return ""
	}
	return s
}
