package docxsdt

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/xiamaz/docxsdt/pkg/docxsdt/xml"
)

// ladderNamespaces declares the prefixes a replacement fragment is allowed
// to use, so etree can parse it without complaint regardless of which ones
// actually appear.
const ladderNamespaces = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" xmlns:w15="http://schemas.microsoft.com/office/word/2012/wordml" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`

// fragmentHasElement reports whether tag (e.g. "w:p") occurs anywhere in
// fragment, at any depth. §9's documented ladder-peeling behavior decides
// "already wrapped" this way rather than by strict top-level occurrence —
// a fragment with w:p nested inside a w:tbl is still treated as supplying
// w:p. Implementers of the original reference inherited this as a quirk;
// it is preserved here rather than tightened, since tightening it would
// change output for fixtures that depend on it.
func fragmentHasElement(fragment, tag string) bool {
	doc := etree.NewDocument()
	wrapped := "<docxsdt-fragment-root " + ladderNamespaces + ">" + fragment + "</docxsdt-fragment-root>"
	if err := doc.ReadFromString(wrapped); err != nil {
		return strings.Contains(fragment, "<"+tag)
	}
	for _, el := range doc.Root().FindElements(".//*") {
		name := el.Tag
		if el.Space != "" {
			name = el.Space + ":" + el.Tag
		}
		if name == tag {
			return true
		}
	}
	return false
}

// writeContent is write_content (§4.F): it appends the wrapped replacement
// for one position's body into out, re-emitting cached paragraph/run
// property events around whichever ladder tags the fragment does not
// already supply.
func writeContent(out *[]xml.Event, pos *ContentControlPosition, fragment string, allEvents []xml.Event) error {
	fragEvents, err := xml.Scan([]byte(fragment))
	if err != nil {
		return &ParseError{Part: "replacement fragment for tag " + pos.Tag, Cause: err}
	}

	ladder := []string{"w:r", "w:t"}
	if pos.ContainsParagraph {
		ladder = []string{"w:p", "w:r", "w:t"}
	}
	peelLadder(out, ladder, fragment, fragEvents, pos, allEvents)
	return nil
}

func peelLadder(out *[]xml.Event, ladder []string, fragment string, fragEvents []xml.Event, pos *ContentControlPosition, allEvents []xml.Event) {
	if len(ladder) == 0 {
		*out = append(*out, fragEvents...)
		return
	}

	tag := ladder[0]
	if fragmentHasElement(fragment, tag) {
		*out = append(*out, fragEvents...)
		return
	}

	*out = append(*out, xml.Event{Kind: xml.Start, Name: tag})
	switch tag {
	case "w:p":
		if pos.ParagraphParamsStart >= 0 {
			*out = append(*out, allEvents[pos.ParagraphParamsStart:pos.ParagraphParamsEnd]...)
		}
	case "w:r":
		if pos.RunParamsStart >= 0 {
			*out = append(*out, allEvents[pos.RunParamsStart:pos.RunParamsEnd]...)
		}
	}
	peelLadder(out, ladder[1:], fragment, fragEvents, pos, allEvents)
	*out = append(*out, xml.Event{Kind: xml.End, Name: tag})
}

// rootControls returns the positions in data with no containing parent —
// the only positions the main substitution loop dispatches on
// directly. A control nested inside another (the common case being a
// RepeatingSectionItem's fields) is resolved as part of its parent's
// handling, never independently.
func rootControls(data *DocumentData) []*ContentControlPosition {
	var out []*ContentControlPosition
	for _, c := range data.Controls {
		root := true
		for _, other := range data.Controls {
			if other == c {
				continue
			}
			if c.Begin > other.Begin && c.End < other.End {
				root = false
				break
			}
		}
		if root {
			out = append(out, c)
		}
	}
	return out
}

func findContaining(positions []*ContentControlPosition, i int) *ContentControlPosition {
	for _, p := range positions {
		if p.ContentBegin <= i && i < p.ContentEnd {
			return p
		}
	}
	return nil
}

func resolveFlat(mapping map[string]string, tag, missingValue string) string {
	if mapping != nil {
		if v, ok := mapping[tag]; ok {
			return v
		}
	}
	Warn("tag %q not found in mapping, substituting %q", tag, missingValue)
	return missingValue
}

// mapPart is the per-part driver of the Substitution Writer (§4.F): it
// walks the part's events once, replacing each root-level control's body
// with its mapped replacement (or expanding it, for RepeatingSection
// controls), and passes every other event through unchanged.
func mapPart(data *DocumentData, flat map[string]string, repeat map[string][]map[string]string, missingValue string) ([]xml.Event, error) {
	events := data.Events
	roots := rootControls(data)

	out := make([]xml.Event, 0, len(events))
	for i := 0; i < len(events); {
		root := findContaining(roots, i)
		if root == nil {
			out = append(out, events[i])
			i++
			continue
		}
		if i != root.ContentBegin {
			// Defensive: should be unreachable since we always jump to
			// ContentEnd after handling ContentBegin.
			out = append(out, events[i])
			i++
			continue
		}

		out = append(out, events[i]) // keep the opening w:sdtContent
		if root.Kind == RepeatingSection {
			if err := appendRepeatOutput(&out, data, root, repeat, missingValue); err != nil {
				return nil, err
			}
		} else {
			r := resolveFlatForKind(flat, root.Tag, missingValue, root.Kind)
			if err := writeContent(&out, root, r, events); err != nil {
				return nil, err
			}
		}
		i = root.ContentEnd
	}
	return out, nil
}

// appendRepeatOutput implements the RepeatingSection handling described in
// §4.F: the first RepeatingSectionItem child of root serves as a per-row
// template, replayed once per sub-mapping in repeat[root.Tag].
func appendRepeatOutput(out *[]xml.Event, data *DocumentData, root *ContentControlPosition, repeat map[string][]map[string]string, missingValue string) error {
	var item *ContentControlPosition
	for _, c := range data.DirectChildren(root) {
		if c.Kind == RepeatingSectionItem {
			item = c
			break
		}
	}
	if item == nil {
		return nil
	}

	grandchildren := data.DirectChildren(item)
	for _, v := range repeat[root.Tag] {
		if err := replayItem(out, data.Events, item, grandchildren, v, missingValue); err != nil {
			return err
		}
	}
	return nil
}

func replayItem(out *[]xml.Event, events []xml.Event, item *ContentControlPosition, grandchildren []*ContentControlPosition, v map[string]string, missingValue string) error {
	for i := item.Begin; i <= item.End; {
		gc := findContaining(grandchildren, i)
		if gc != nil && i == gc.ContentBegin {
			*out = append(*out, events[i])
			if gc.Kind != RepeatingSection {
				r := resolveFlatForKind(v, gc.Tag, missingValue, gc.Kind)
				if err := writeContent(out, gc, r, events); err != nil {
					return err
				}
			}
			i = gc.ContentEnd
			continue
		}
		*out = append(*out, events[i])
		i++
	}
	return nil
}
