// Package docxsdt discovers and rewrites Structured Document Tags (content
// controls) in OOXML WordprocessingML (.docx) packages.
//
// Basic usage:
//
//	engine := docxsdt.New()
//	out, err := engine.Map(archiveBytes, docxsdt.Mapping{
//	    "Title":   "Quarterly Report",
//	    "Author":  "J. Doe",
//	}, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("rendered.docx", out, 0o644)
//
// Map rewrites every content control's body per a flat tag-to-replacement
// mapping, recursing into repeating sections via a repeat mapping. Strip
// removes all content-control framing while keeping the document's visible
// content intact. Describe returns a read-only inventory of the controls a
// template declares, for front-ends that need to build a mapping form
// without already knowing the template's shape.
package docxsdt

import (
	"errors"
	"unicode/utf8"

	"github.com/xiamaz/docxsdt/pkg/docxsdt/xml"
)

// Mapping is a flat tag → replacement-fragment table, as consumed by Map.
type Mapping map[string]string

// RepeatMapping is a tag → list-of-row-mappings table for RepeatingSection
// controls, as consumed by Map.
type RepeatMapping map[string][]map[string]string

// Engine provides the main API for working with content-control documents.
// Use New() for the common case, or NewWithConfig/NewWithOptions to tune
// caching, nesting depth or the missing-tag sentinel.
type Engine struct {
	config *Config
	cache  *DocumentCache
}

// New creates a new engine with the global configuration.
func New() *Engine {
	config := GetGlobalConfig()
	cache, err := NewDocumentCacheWithConfig(config)
	if err != nil {
		cache = nil
	}
	return &Engine{config: config, cache: cache}
}

// NewWithConfig creates a new engine with a custom configuration.
func NewWithConfig(config *Config) *Engine {
	cache, err := NewDocumentCacheWithConfig(config)
	if err != nil {
		cache = nil
	}
	return &Engine{config: config, cache: cache}
}

// Option configures an Engine built via NewWithOptions.
type Option func(*Engine)

// WithConfig returns an option that sets the engine's configuration.
func WithConfig(config *Config) Option {
	return func(e *Engine) { e.config = config }
}

// NewWithOptions creates a new engine with the global configuration
// modified by opts.
func NewWithOptions(opts ...Option) *Engine {
	e := New()
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the engine's configuration.
func (e *Engine) Config() *Config { return e.config }

// Close releases the engine's document cache.
func (e *Engine) Close() {
	if e.cache != nil {
		e.cache.Close()
	}
}

// scanAndIndex runs the SDT Detector, Event Scanner and Control Indexer
// (§4.B-E) over one part, consulting the document cache first.
func (e *Engine) scanAndIndex(partName string, part []byte) (*DocumentData, error) {
	if !ContainsSDT(part) {
		return nil, nil
	}

	if !utf8.Valid(part) {
		return nil, &EncodingError{Part: partName, Cause: errors.New("part is not valid UTF-8")}
	}

	if e.cache != nil {
		if data, ok := e.cache.Get(part); ok {
			return data, nil
		}
	}

	events, err := xml.Scan(part)
	if err != nil {
		if perr, ok := err.(*xml.ParseError); ok {
			return nil, &ParseError{Part: partName, Offset: perr.Offset, Cause: perr.Err}
		}
		return nil, &ParseError{Part: partName, Cause: err}
	}

	data, err := indexWithMaxDepth(events, e.config.MaxNestingDepth)
	if err != nil {
		if se, ok := err.(*StructuralError); ok {
			se.Part = partName
			return data, se
		}
		return data, err
	}

	Debug("part %s: %d bytes scanned, %d events, %d controls found", partName, len(part), len(events), len(data.Controls))

	if e.cache != nil {
		e.cache.Set(part, data)
	}
	return data, nil
}

// Map is the Orchestrator's map operation (§4.H): it rewrites every
// content control's body across the whole archive per flat and repeat,
// returning the rewritten archive bytes.
func (e *Engine) Map(archive []byte, flat Mapping, repeat RepeatMapping) ([]byte, error) {
	blobs, err := ReadBlobsFromBytes(archive)
	if err != nil {
		return nil, err
	}
	order, err := PartOrder(archive)
	if err != nil {
		return nil, err
	}

	missing := e.config.MissingTagValue

	for name, part := range blobs {
		data, err := e.scanAndIndex(name, part)
		if err != nil {
			return nil, err
		}
		if data == nil {
			continue
		}

		rewritten, err := mapPart(data, flat, repeat, missing)
		if err != nil {
			return nil, err
		}
		blobs[name] = xml.Write(rewritten)
	}

	return writeBlobsToBytes(blobs, order)
}

// Strip is the Orchestrator's strip operation (§4.H): it removes all
// content-control framing from the archive, returning plain OOXML.
func (e *Engine) Strip(archive []byte) ([]byte, error) {
	blobs, err := ReadBlobsFromBytes(archive)
	if err != nil {
		return nil, err
	}
	order, err := PartOrder(archive)
	if err != nil {
		return nil, err
	}

	for name, part := range blobs {
		data, err := e.scanAndIndex(name, part)
		if err != nil {
			return nil, err
		}
		if data == nil {
			continue
		}
		blobs[name] = xml.Write(stripPart(data.Events))
	}

	return writeBlobsToBytes(blobs, order)
}

// ControlDescription summarizes one tag's observed usage across a
// template, for front-ends building a mapping UI without prior knowledge
// of the template's shape.
type ControlDescription struct {
	Tag       string
	Kinds     []Kind
	ChildTags []string
	Parts     []string
}

// Describe is the Orchestrator's read-only introspection operation
// (§4.H): it reports, for every distinct tag found across the archive,
// which kinds it appeared as and which child tags it directly contains.
// Unlike Map and Strip it is best-effort: a part that fails to parse is
// reported in the returned error (that part's error alone when only one
// part fails, a MultiError when several do) but does not prevent the rest
// of the archive from being described.
func (e *Engine) Describe(archive []byte) (map[string]*ControlDescription, error) {
	blobs, err := ReadBlobsFromBytes(archive)
	if err != nil {
		return nil, err
	}

	out := make(map[string]*ControlDescription)
	var errs MultiError

	for name, part := range blobs {
		data, err := e.scanAndIndex(name, part)
		if err != nil {
			errs.Add(err)
			continue
		}
		if data == nil {
			continue
		}

		for _, c := range data.Controls {
			desc, ok := out[c.Tag]
			if !ok {
				desc = &ControlDescription{Tag: c.Tag}
				out[c.Tag] = desc
			}
			desc.Parts = appendUniqueString(desc.Parts, name)
			desc.Kinds = appendUniqueKind(desc.Kinds, c.Kind)
			for _, child := range data.DirectChildren(c) {
				desc.ChildTags = appendUniqueString(desc.ChildTags, child.Tag)
			}
		}
	}

	return out, errs.Err()
}

func appendUniqueKind(kinds []Kind, k Kind) []Kind {
	for _, existing := range kinds {
		if existing == k {
			return kinds
		}
	}
	return append(kinds, k)
}

func appendUniqueString(ss []string, s string) []string {
	for _, existing := range ss {
		if existing == s {
			return ss
		}
	}
	return append(ss, s)
}

// DefaultEngine is the global default engine instance.
var DefaultEngine = New()

// Map rewrites content controls using the default engine.
func Map(archive []byte, flat Mapping, repeat RepeatMapping) ([]byte, error) {
	return DefaultEngine.Map(archive, flat, repeat)
}

// Strip removes content-control framing using the default engine.
func Strip(archive []byte) ([]byte, error) {
	return DefaultEngine.Strip(archive)
}

// Describe introspects content controls using the default engine.
func Describe(archive []byte) (map[string]*ControlDescription, error) {
	return DefaultEngine.Describe(archive)
}
