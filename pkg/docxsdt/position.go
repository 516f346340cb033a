package docxsdt

import (
	"github.com/xiamaz/docxsdt/pkg/docxsdt/xml"
)

// Kind identifies the flavor of a Structured Document Tag.
type Kind int

const (
	// Unsupported is the zero value: a control whose w:sdtPr never named
	// a recognized kind before its w:sdt close, at which point the indexer
	// promotes it to RichText.
	Unsupported Kind = iota
	RichText
	Text
	ComboBox
	DropdownList
	Date
	RepeatingSection
	RepeatingSectionItem
)

func (k Kind) String() string {
	switch k {
	case RichText:
		return "RichText"
	case Text:
		return "Text"
	case ComboBox:
		return "ComboBox"
	case DropdownList:
		return "DropdownList"
	case Date:
		return "Date"
	case RepeatingSection:
		return "RepeatingSection"
	case RepeatingSectionItem:
		return "RepeatingSectionItem"
	default:
		return "Unsupported"
	}
}

// kindFromElement maps an empty element name found inside w:sdtPr to its
// Kind, per the enumerated set in §3 of the specification.
func kindFromElement(name string) (Kind, bool) {
	switch name {
	case "w:richText":
		return RichText, true
	case "w:text":
		return Text, true
	case "w:comboBox":
		return ComboBox, true
	case "w:dropDownList":
		return DropdownList, true
	case "w:date":
		return Date, true
	case "w15:repeatingSection":
		return RepeatingSection, true
	case "w15:repeatingSectionItem":
		return RepeatingSectionItem, true
	default:
		return Unsupported, false
	}
}

// ContentControlPosition is the central record of the data model: for one
// SDT, the event offsets of its header, body, paragraph-properties block
// and run-properties block.
//
// All offsets are indices into the DocumentData.Events slice they were
// produced alongside. -1 means "not present". Begin is set when the
// position is created and End once its w:sdt element closes;
// ContentBegin/ContentEnd stay -1 for an SDT that has no w:sdtContent.
type ContentControlPosition struct {
	Kind Kind
	Tag  string

	Begin, End               int
	ContentBegin, ContentEnd int

	ContainsParagraph bool

	ParagraphParamsStart, ParagraphParamsEnd int
	RunParamsStart, RunParamsEnd             int

	// contentOpen/closed/contentClosed track indexing progress; they are
	// not part of the published record but control which position the
	// indexer attributes the next event to.
	contentOpen   bool
	closed        bool
	contentClosed bool
}

func newPosition(begin int) *ContentControlPosition {
	return &ContentControlPosition{
		Kind:                 Unsupported,
		Begin:                begin,
		End:                  -1,
		ContentBegin:         -1,
		ContentEnd:           -1,
		ParagraphParamsStart: -1,
		ParagraphParamsEnd:   -1,
		RunParamsStart:       -1,
		RunParamsEnd:         -1,
	}
}

// DocumentData bundles one part's full event sequence with its ordered,
// immutable position list, produced in a single scanning pass.
type DocumentData struct {
	Events   []xml.Event
	Controls []*ContentControlPosition
}

// ContainedControls returns the positions structurally nested directly and
// transitively inside parent (per §9's offset-containment rule), in Begin
// order. parent itself is never included.
func (d *DocumentData) ContainedControls(parent *ContentControlPosition) []*ContentControlPosition {
	var out []*ContentControlPosition
	for _, c := range d.Controls {
		if c == parent {
			continue
		}
		if c.Begin >= parent.ContentBegin && c.End <= parent.ContentEnd {
			out = append(out, c)
		}
	}
	return out
}

// DirectChildren returns only the positions among ContainedControls(parent)
// that are not themselves nested inside another contained position — i.e.
// the immediate children of parent's content.
func (d *DocumentData) DirectChildren(parent *ContentControlPosition) []*ContentControlPosition {
	all := d.ContainedControls(parent)
	var out []*ContentControlPosition
	for _, c := range all {
		nested := false
		for _, other := range all {
			if other == c {
				continue
			}
			if c.Begin > other.Begin && c.End < other.End {
				nested = true
				break
			}
		}
		if !nested {
			out = append(out, c)
		}
	}
	return out
}
