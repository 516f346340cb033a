package docxsdt

import "github.com/xiamaz/docxsdt/pkg/docxsdt/xml"

// stripPart is the Stripper (§4.G): a single pass over the event stream
// that drops the w:sdt/w:sdtContent framing and the entire w:sdtPr
// parameters block (opening tag, everything inside, closing tag), leaving
// the body content behind flat.
func stripPart(events []xml.Event) []xml.Event {
	state := newStateTracker()
	out := make([]xml.Event, 0, len(events))

	for _, ev := range events {
		state.beginEvent()

		drop := false
		switch {
		case ev.Name == "w:sdt" || ev.Name == "w:sdtContent" || ev.Name == "w:sdtPr":
			// Framing element, whether written as Start/End or collapsed
			// to a self-closing EmptyElement by the scanner.
			drop = true
		case state.isAt("w:sdtPr"):
			drop = true
		}

		if !drop {
			out = append(out, ev)
		}

		switch ev.Kind {
		case xml.Start:
			state.open(ev.Name)
		case xml.End:
			state.close(ev.Name)
		}
		state.advance()
	}

	return out
}
