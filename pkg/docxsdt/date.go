package docxsdt

import (
	"strings"

	"github.com/araddon/dateparse"
)

// normalizeDateValue reformats raw as an ISO-8601 calendar date when it
// parses as one and carries no markup of its own; it is applied only to
// replacement values destined for a Date-kind control. Values that already
// look like an OOXML fragment (containing '<') are left untouched, since
// guessing at a date inside markup risks mangling it instead of the text
// node it names.
func normalizeDateValue(raw string) string {
	if strings.ContainsRune(raw, '<') {
		return raw
	}
	t, err := dateparse.ParseAny(raw)
	if err != nil {
		return raw
	}
	return t.Format("2006-01-02")
}

// resolveFlatForKind looks up tag in mapping (falling back to
// missingValue), applying Date-kind normalization when applicable.
func resolveFlatForKind(mapping map[string]string, tag, missingValue string, kind Kind) string {
	v := resolveFlat(mapping, tag, missingValue)
	if kind == Date {
		return normalizeDateValue(v)
	}
	return v
}
