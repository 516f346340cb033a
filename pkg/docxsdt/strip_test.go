package docxsdt

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xiamaz/docxsdt/pkg/docxsdt/xml"
)

func TestStripPartDropsFramingAndParamsKeepsBody(t *testing.T) {
	src := `<w:p><w:sdt><w:sdtPr><w:tag w:val="Name"/><w:text/></w:sdtPr>` +
		`<w:sdtContent><w:r><w:t>Old</w:t></w:r></w:sdtContent></w:sdt></w:p>`

	got := string(xml.Write(stripPart(mustScan(t, src))))
	assert.Equal(t, `<w:p><w:r><w:t>Old</w:t></w:r></w:p>`, got)
}

func TestStripPartHandlesNestedControls(t *testing.T) {
	src := `<w:sdt><w:sdtPr><w:tag w:val="Outer"/></w:sdtPr><w:sdtContent>` +
		`<w:sdt><w:sdtPr><w:tag w:val="Inner"/><w:text/></w:sdtPr><w:sdtContent><w:r><w:t>x</w:t></w:r></w:sdtContent></w:sdt>` +
		`</w:sdtContent></w:sdt>`

	got := string(xml.Write(stripPart(mustScan(t, src))))
	assert.Equal(t, `<w:r><w:t>x</w:t></w:r>`, got)
}

func TestStripPartLeavesUnrelatedPartsUntouched(t *testing.T) {
	src := `<w:body><w:p><w:r><w:t>Plain</w:t></w:r></w:p></w:body>`

	got := string(xml.Write(stripPart(mustScan(t, src))))
	assert.Equal(t, src, got)
}
