package xml

// Kind identifies the variant of an Event.
type Kind int

const (
	// Start is an opening tag, e.g. <w:sdt>.
	Start Kind = iota
	// End is a closing tag, e.g. </w:sdt>.
	End
	// EmptyElement is a self-closing tag, e.g. <w:tag w:val="Title"/>.
	EmptyElement
	// CharData is unescaped text content.
	CharData
	// Other covers comments, CDATA, processing instructions and the XML
	// declaration — anything that must be preserved verbatim but never
	// participates in SDT structure.
	Other
)

// Attr is a single XML attribute, preserved byte-for-byte as received.
type Attr struct {
	Name  string
	Value string
}

// Event is one tagged variant over the event kinds the scanner emits.
// Every Event owns its data: it never aliases the reader's internal
// buffers, so it can be replayed (written again) long after the scanner
// has advanced past it.
type Event struct {
	Kind Kind

	// Name is the element name for Start, End and EmptyElement events,
	// exactly as it appeared in the source (no namespace rewriting).
	Name string

	// Attrs holds the attributes of a Start or EmptyElement event, in
	// source order.
	Attrs []Attr

	// Text holds the unescaped character data of a CharData event.
	Text string

	// Raw holds the verbatim source bytes of an Other event (comment,
	// CDATA section, processing instruction or declaration), including
	// its delimiters, so it can be re-emitted unchanged.
	Raw string
}

// Attr looks up an attribute by name on a Start or EmptyElement event.
// It returns ("", false) if the attribute is absent.
func (e Event) Attr(name string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}
