package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

// ParseError reports a byte offset at which the underlying XML reader
// rejected input.
type ParseError struct {
	Offset int64
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("xml parse error at offset %d: %v", e.Offset, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Scan decodes all of src and returns its events in source order. Start,
// End, EmptyElement and CharData events carry decoded (escape-resolved)
// data; everything else round-trips through Other.
//
// Scan reads with (*xml.Decoder).RawToken rather than Token: Token resolves
// element and attribute names against declared xmlns bindings, which is
// exactly what must NOT happen here — the scanner's contract (and every
// downstream position offset) depends on element names coming back exactly
// as written (w:sdt, w15:repeatingSection, a:graphic, ...), never rewritten
// to resolved namespace URIs.
func Scan(src []byte) ([]Event, error) {
	dec := xml.NewDecoder(bytes.NewReader(src))
	dec.Strict = true

	var events []Event
	var open []string // RawToken does not check that end tags match their start tags
	for {
		start := dec.InputOffset()
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Offset: dec.InputOffset(), Err: err}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			open = append(open, rawName(t.Name))
			events = append(events, Event{Kind: Start, Name: rawName(t.Name), Attrs: copyAttrs(t.Attr)})
		case xml.EndElement:
			name := rawName(t.Name)
			if len(open) == 0 || open[len(open)-1] != name {
				return nil, &ParseError{Offset: dec.InputOffset(), Err: fmt.Errorf("unexpected end element </%s>", name)}
			}
			open = open[:len(open)-1]
			events = append(events, Event{Kind: End, Name: name})
		case xml.CharData:
			// RawToken resolves a CDATA section to the same CharData token
			// as plain text, so it cannot be told apart from its value
			// alone. A standalone CDATA section (the whole token's source
			// bytes are exactly one "<![CDATA[...]]>" run, with no
			// surrounding plain text merged in by the decoder) is detected
			// from the raw source and preserved verbatim through Other,
			// per the catch-all's contract; text mixed with a CDATA
			// section falls back to the escaped CharData rendering.
			if raw := src[start:dec.InputOffset()]; isStandaloneCDATA(raw) {
				events = append(events, Event{Kind: Other, Raw: string(raw)})
			} else {
				events = append(events, Event{Kind: CharData, Text: string(t)})
			}
		case xml.Comment:
			events = append(events, Event{Kind: Other, Raw: "<!--" + string(t) + "-->"})
		case xml.ProcInst:
			if t.Target == "xml" {
				events = append(events, Event{Kind: Other, Raw: "<?xml " + string(t.Inst) + "?>"})
			} else {
				events = append(events, Event{Kind: Other, Raw: "<?" + t.Target + " " + string(t.Inst) + "?>"})
			}
		case xml.Directive:
			events = append(events, Event{Kind: Other, Raw: "<!" + string(t) + ">"})
		}
	}

	return collapseEmptyElements(events), nil
}

// collapseEmptyElements turns a Start immediately followed by its matching
// End (with nothing in between) into a single EmptyElement event, matching
// how OOXML writers emit self-closing tags in the source.
func collapseEmptyElements(events []Event) []Event {
	out := make([]Event, 0, len(events))
	for i := 0; i < len(events); i++ {
		ev := events[i]
		if ev.Kind == Start && i+1 < len(events) {
			next := events[i+1]
			if next.Kind == End && next.Name == ev.Name {
				out = append(out, Event{Kind: EmptyElement, Name: ev.Name, Attrs: ev.Attrs})
				i++
				continue
			}
		}
		out = append(out, ev)
	}
	return out
}

// isStandaloneCDATA reports whether raw is exactly one CDATA section with
// nothing else around it.
func isStandaloneCDATA(raw []byte) bool {
	return bytes.HasPrefix(raw, []byte("<![CDATA[")) && bytes.HasSuffix(raw, []byte("]]>"))
}

// rawName reconstructs the "prefix:local" spelling of a name returned by
// RawToken, where Space already holds the literal prefix text (not a
// resolved namespace URI).
func rawName(name xml.Name) string {
	if name.Space == "" {
		return name.Local
	}
	return name.Space + ":" + name.Local
}

func copyAttrs(src []xml.Attr) []Attr {
	if len(src) == 0 {
		return nil
	}
	out := make([]Attr, len(src))
	for i, a := range src {
		out[i] = Attr{Name: rawName(a.Name), Value: a.Value}
	}
	return out
}
