package docxsdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiamaz/docxsdt/pkg/docxsdt/xml"
)

func renderPart(t *testing.T, src string, flat Mapping, repeat RepeatMapping, missing string) string {
	t.Helper()
	events := mustScan(t, src)
	data, err := index(events)
	require.NoError(t, err)
	out, err := mapPart(data, flat, repeat, missing)
	require.NoError(t, err)
	return string(xml.Write(out))
}

func TestMapPartWrapsBareTextInFullLadder(t *testing.T) {
	src := `<w:sdt><w:sdtPr><w:tag w:val="Name"/><w:text/></w:sdtPr>` +
		`<w:sdtContent><w:p><w:r><w:t>Old</w:t></w:r></w:p></w:sdtContent></w:sdt>`

	got := renderPart(t, src, Mapping{"Name": "New"}, nil, "MISSING")
	assert.Equal(t, `<w:sdt><w:sdtPr><w:tag w:val="Name"/><w:text/></w:sdtPr>`+
		`<w:sdtContent><w:p><w:r><w:t>New</w:t></w:r></w:p></w:sdtContent></w:sdt>`, got)
}

func TestMapPartReemitsRunParamsAroundBareText(t *testing.T) {
	src := `<w:sdt><w:sdtPr><w:tag w:val="Name"/><w:text/></w:sdtPr>` +
		`<w:sdtContent><w:r><w:rPr><w:b/></w:rPr><w:t>Old</w:t></w:r></w:sdtContent></w:sdt>`

	got := renderPart(t, src, Mapping{"Name": "New"}, nil, "MISSING")
	assert.Contains(t, got, `<w:r><w:rPr><w:b/></w:rPr><w:t>New</w:t></w:r>`)
}

func TestMapPartLeavesAlreadyWrappedReplacementVerbatim(t *testing.T) {
	src := `<w:sdt><w:sdtPr><w:tag w:val="Name"/><w:text/></w:sdtPr>` +
		`<w:sdtContent><w:r><w:t>Old</w:t></w:r></w:sdtContent></w:sdt>`

	got := renderPart(t, src, Mapping{"Name": `<w:r><w:t>New</w:t></w:r>`}, nil, "MISSING")
	assert.Contains(t, got, `<w:sdtContent><w:r><w:t>New</w:t></w:r></w:sdtContent>`)
}

func TestMapPartMissingTagResolvesToSentinel(t *testing.T) {
	src := `<w:sdt><w:sdtPr><w:tag w:val="Unknown"/><w:text/></w:sdtPr>` +
		`<w:sdtContent><w:r><w:t>Old</w:t></w:r></w:sdtContent></w:sdt>`

	got := renderPart(t, src, Mapping{}, nil, "MISSING")
	assert.Contains(t, got, `<w:t>MISSING</w:t>`)
}

func TestMapPartUnsupportedKindTreatedAsRichText(t *testing.T) {
	src := `<w:sdt><w:sdtPr><w:tag w:val="Weird"/></w:sdtPr>` +
		`<w:sdtContent><w:r><w:t>Old</w:t></w:r></w:sdtContent></w:sdt>`

	got := renderPart(t, src, Mapping{"Weird": "New"}, nil, "MISSING")
	assert.Contains(t, got, `<w:t>New</w:t>`)
}

func TestMapPartRepeatingSectionExpandsPerRow(t *testing.T) {
	src := `<w:sdt><w:sdtPr><w:tag w:val="Entry"/><w15:repeatingSection/></w:sdtPr><w:sdtContent>` +
		`<w:sdt><w:sdtPr><w15:repeatingSectionItem/></w:sdtPr><w:sdtContent>` +
		`<w:p>` +
		`<w:sdt><w:sdtPr><w:tag w:val="Town"/><w:text/></w:sdtPr><w:sdtContent><w:r><w:t>x</w:t></w:r></w:sdtContent></w:sdt>` +
		`<w:sdt><w:sdtPr><w:tag w:val="Land"/><w:text/></w:sdtPr><w:sdtContent><w:r><w:t>x</w:t></w:r></w:sdtContent></w:sdt>` +
		`</w:p>` +
		`</w:sdtContent></w:sdt>` +
		`</w:sdtContent></w:sdt>`

	repeat := RepeatMapping{
		"Entry": {
			{"Town": "Cottbus", "Land": "Brandenburg"},
			{"Town": "Aachen", "Land": "NRW"},
		},
	}

	got := renderPart(t, src, nil, repeat, "MISSING")
	assert.Contains(t, got, "Cottbus")
	assert.Contains(t, got, "Brandenburg")
	assert.Contains(t, got, "Aachen")
	assert.Contains(t, got, "NRW")

	// The item template appears exactly twice (once per row), not once.
	assert.Equal(t, 2, countOccurrences(got, `w15:repeatingSectionItem`))
}

func TestMapPartRepeatingSectionWithNoRowsEmitsNothing(t *testing.T) {
	src := `<w:sdt><w:sdtPr><w:tag w:val="Entry"/><w15:repeatingSection/></w:sdtPr><w:sdtContent>` +
		`<w:sdt><w:sdtPr><w15:repeatingSectionItem/></w:sdtPr><w:sdtContent>` +
		`<w:sdt><w:sdtPr><w:tag w:val="Town"/><w:text/></w:sdtPr><w:sdtContent><w:r><w:t>x</w:t></w:r></w:sdtContent></w:sdt>` +
		`</w:sdtContent></w:sdt>` +
		`</w:sdtContent></w:sdt>`

	got := renderPart(t, src, nil, RepeatMapping{}, "MISSING")
	assert.Equal(t, `<w:sdt><w:sdtPr><w:tag w:val="Entry"/><w15:repeatingSection/></w:sdtPr>`+
		`<w:sdtContent></w:sdtContent></w:sdt>`, got)
}

func TestMapPartDateKindNormalizesPlainTextValue(t *testing.T) {
	src := `<w:sdt><w:sdtPr><w:tag w:val="Signed"/><w:date/></w:sdtPr>` +
		`<w:sdtContent><w:r><w:t>Old</w:t></w:r></w:sdtContent></w:sdt>`

	got := renderPart(t, src, Mapping{"Signed": "March 3, 2024"}, nil, "MISSING")
	assert.Contains(t, got, "2024-03-03")
}

func countOccurrences(haystack, needle string) int {
	count := 0
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			count++
			i += len(needle) - 1
		}
	}
	return count
}
