// Package xml provides a streaming event model for OOXML parts.
//
// It is deliberately not a DOM: a document.xml part can run to several
// megabytes, and the content-control indexer only ever needs a forward pass
// over it. Event and the event Kind constants mirror the shape of
// encoding/xml's token stream closely enough that callers familiar with
// encoding/xml tokens will recognize them, but the Event values Scan returns are
// owned (no aliasing into the decoder's internal buffers) so the writer can
// replay a captured sub-range of events long after the scanner has moved
// past them.
package xml
