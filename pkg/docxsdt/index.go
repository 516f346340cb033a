package docxsdt

import (
	"fmt"

	"github.com/xiamaz/docxsdt/pkg/docxsdt/xml"
)

// index is the Control Indexer (§4.E): it walks the event stream once,
// maintaining a stateTracker and the growing position list side by side,
// and returns the finished DocumentData for the part. It enforces the
// global configuration's MaxNestingDepth; callers that need a specific
// bound (the Engine, which carries its own Config) should call
// indexWithMaxDepth directly instead.
//
// It never returns a parse error of its own; malformed structure (e.g. an
// SDT still open at EOF, or nesting beyond the configured bound) is
// returned as a StructuralError, alongside the DocumentData built so far.
func index(events []xml.Event) (*DocumentData, error) {
	return indexWithMaxDepth(events, GetGlobalConfig().MaxNestingDepth)
}

// indexWithMaxDepth is index with an explicit w:sdt nesting bound. A
// maxDepth of 0 or less means unbounded.
func indexWithMaxDepth(events []xml.Event, maxDepth int) (*DocumentData, error) {
	state := newStateTracker()
	var open []*ContentControlPosition // stack of not-yet-closed w:sdt positions, innermost last
	var all []*ContentControlPosition

	innermostAwaitingContent := func() *ContentControlPosition {
		for i := len(open) - 1; i >= 0; i-- {
			if !open[i].contentOpen {
				return open[i]
			}
		}
		return nil
	}
	innermostAwaitingContentClose := func() *ContentControlPosition {
		for i := len(open) - 1; i >= 0; i-- {
			if open[i].contentOpen && !open[i].contentClosed {
				return open[i]
			}
		}
		return nil
	}
	innermostUnclosed := func() *ContentControlPosition {
		if len(open) == 0 {
			return nil
		}
		return open[len(open)-1]
	}
	mostRecent := func() *ContentControlPosition {
		if len(all) == 0 {
			return nil
		}
		return all[len(all)-1]
	}

	for _, ev := range events {
		state.beginEvent()
		i := state.counter

		switch ev.Kind {
		case xml.Start:
			switch ev.Name {
			case "w:sdt":
				if maxDepth > 0 && len(open) >= maxDepth {
					return &DocumentData{Events: events, Controls: all}, &StructuralError{
						Message: fmt.Sprintf("w:sdt nesting exceeds max depth %d", maxDepth),
					}
				}
				pos := newPosition(i)
				all = append(all, pos)
				open = append(open, pos)
			case "w:sdtContent":
				if p := innermostAwaitingContent(); p != nil {
					p.ContentBegin = i
					p.contentOpen = true
				}
			case "w:p":
				if state.isIn("w:sdtContent") {
					if p := mostRecent(); p != nil {
						p.ContainsParagraph = true
					}
				}
			case "w:rPr":
				if state.isIn("w:sdtContent") && state.isIn("w:r") {
					if p := mostRecent(); p != nil && p.RunParamsStart < 0 {
						p.RunParamsStart = i
					}
				}
			case "w:pPr":
				if state.isIn("w:sdtContent") && state.isIn("w:p") {
					if p := mostRecent(); p != nil && p.ParagraphParamsStart < 0 {
						p.ParagraphParamsStart = i
					}
				}
			}
			state.open(ev.Name)

		case xml.End:
			state.close(ev.Name)
			switch ev.Name {
			case "w:sdt":
				if p := innermostUnclosed(); p != nil {
					p.End = i
					p.closed = true
					if p.Kind == Unsupported {
						Warn("sdt tag %q named no recognized kind, coercing to RichText", p.Tag)
						p.Kind = RichText
					}
					open = open[:len(open)-1]
				}
			case "w:sdtContent":
				if p := innermostAwaitingContentClose(); p != nil {
					p.ContentEnd = i
					p.contentClosed = true
				}
			case "w:rPr":
				if state.isIn("w:sdtContent") && state.isIn("w:r") {
					if p := mostRecent(); p != nil && p.RunParamsEnd < 0 && p.RunParamsStart >= 0 {
						p.RunParamsEnd = i + 1
					}
				}
			case "w:pPr":
				if state.isIn("w:sdtContent") && state.isIn("w:p") {
					if p := mostRecent(); p != nil && p.ParagraphParamsEnd < 0 && p.ParagraphParamsStart >= 0 {
						p.ParagraphParamsEnd = i + 1
					}
				}
			}

		case xml.EmptyElement:
			if ev.Name == "w:sdtContent" {
				// A body collapsed to self-closing by the scanner
				// (nothing between Start and End): open and close it in
				// the same step so an empty control still gets a
				// content_begin/content_end pair.
				if p := innermostAwaitingContent(); p != nil {
					p.ContentBegin = i
					p.contentOpen = true
					p.ContentEnd = i
					p.contentClosed = true
				}
			}
			if state.isIn("w:sdtPr") {
				if kind, ok := kindFromElement(ev.Name); ok {
					if p := innermostAwaitingContent(); p != nil {
						p.Kind = kind
					}
				}
				if ev.Name == "w:tag" {
					if val, ok := ev.Attr("w:val"); ok {
						if p := innermostAwaitingContent(); p != nil {
							p.Tag = val
						}
					}
				}
			}
		}

		state.advance()
	}

	if len(open) > 0 {
		return &DocumentData{Events: events, Controls: all}, &StructuralError{
			Message: "unclosed w:sdt at end of document",
		}
	}

	return &DocumentData{Events: events, Controls: all}, nil
}
