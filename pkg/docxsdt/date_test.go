package docxsdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDateValueParsesCommonFormats(t *testing.T) {
	assert.Equal(t, "2024-03-03", normalizeDateValue("March 3, 2024"))
	assert.Equal(t, "2024-03-03", normalizeDateValue("2024-03-03"))
	assert.Equal(t, "2024-03-03", normalizeDateValue("03/03/2024"))
}

func TestNormalizeDateValueLeavesUnparsableTextAlone(t *testing.T) {
	assert.Equal(t, "not a date", normalizeDateValue("not a date"))
}

func TestNormalizeDateValueLeavesMarkupAlone(t *testing.T) {
	frag := `<w:r><w:t>2024-03-03</w:t></w:r>`
	assert.Equal(t, frag, normalizeDateValue(frag))
}

func TestResolveFlatForKindOnlyNormalizesDateKind(t *testing.T) {
	mapping := map[string]string{"Signed": "March 3, 2024", "Name": "March 3, 2024"}
	assert.Equal(t, "2024-03-03", resolveFlatForKind(mapping, "Signed", "MISSING", Date))
	assert.Equal(t, "March 3, 2024", resolveFlatForKind(mapping, "Name", "MISSING", Text))
}
