package xml

import (
	"strings"
)

// Write serializes events back to an XML byte sequence. It is the inverse
// of Scan: CharData events are escaped, EmptyElement events are rendered
// self-closing, and Other events are copied verbatim.
func Write(events []Event) []byte {
	var b strings.Builder
	for _, ev := range events {
		WriteOne(&b, ev)
	}
	return []byte(b.String())
}

// WriteOne serializes a single event onto b.
func WriteOne(b *strings.Builder, ev Event) {
	switch ev.Kind {
	case Start:
		b.WriteByte('<')
		b.WriteString(ev.Name)
		writeAttrs(b, ev.Attrs)
		b.WriteByte('>')
	case End:
		b.WriteString("</")
		b.WriteString(ev.Name)
		b.WriteByte('>')
	case EmptyElement:
		b.WriteByte('<')
		b.WriteString(ev.Name)
		writeAttrs(b, ev.Attrs)
		b.WriteString("/>")
	case CharData:
		escapeText(b, ev.Text)
	case Other:
		b.WriteString(ev.Raw)
	}
}

func writeAttrs(b *strings.Builder, attrs []Attr) {
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		escapeAttr(b, a.Value)
		b.WriteByte('"')
	}
}

func escapeText(b *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		default:
			b.WriteRune(r)
		}
	}
}

func escapeAttr(b *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '&':
			b.WriteString("&amp;")
		case '<':
			b.WriteString("&lt;")
		case '>':
			b.WriteString("&gt;")
		case '"':
			b.WriteString("&quot;")
		case '\n':
			b.WriteString("&#10;")
		case '\t':
			b.WriteString("&#9;")
		default:
			b.WriteRune(r)
		}
	}
}
