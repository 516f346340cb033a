package docxsdt

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildDocxFixture(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	require.NoError(t, err)
	_, err = w.Write([]byte(documentXML))
	require.NoError(t, err)
	w2, err := zw.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = w2.Write([]byte(`<w:styles/>`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestEngineMapEndToEnd(t *testing.T) {
	doc := `<w:document><w:body><w:p><w:sdt><w:sdtPr><w:tag w:val="Title"/><w:text/></w:sdtPr>` +
		`<w:sdtContent><w:r><w:t>Old</w:t></w:r></w:sdtContent></w:sdt></w:p></w:body></w:document>`
	archive := buildDocxFixture(t, doc)

	engine := New()
	defer engine.Close()

	out, err := engine.Map(archive, Mapping{"Title": "New"}, nil)
	require.NoError(t, err)

	blobs, err := ReadBlobsFromBytes(out)
	require.NoError(t, err)
	assert.Contains(t, string(blobs["word/document.xml"]), "<w:t>New</w:t>")
	assert.Equal(t, `<w:styles/>`, string(blobs["word/styles.xml"]))
}

func TestEngineMapEverythingProducesMissingSentinel(t *testing.T) {
	doc := `<w:sdt><w:sdtPr><w:tag w:val="Title"/><w:text/></w:sdtPr>` +
		`<w:sdtContent><w:r><w:t>Old</w:t></w:r></w:sdtContent></w:sdt>`
	archive := buildDocxFixture(t, doc)

	engine := New()
	defer engine.Close()

	out, err := engine.Map(archive, Mapping{}, nil)
	require.NoError(t, err)

	blobs, err := ReadBlobsFromBytes(out)
	require.NoError(t, err)
	assert.Contains(t, string(blobs["word/document.xml"]), "<w:t>MISSING</w:t>")
}

func TestEngineStripEndToEnd(t *testing.T) {
	doc := `<w:p><w:sdt><w:sdtPr><w:tag w:val="Title"/><w:text/></w:sdtPr>` +
		`<w:sdtContent><w:r><w:t>Old</w:t></w:r></w:sdtContent></w:sdt></w:p>`
	archive := buildDocxFixture(t, doc)

	engine := New()
	defer engine.Close()

	out, err := engine.Strip(archive)
	require.NoError(t, err)

	blobs, err := ReadBlobsFromBytes(out)
	require.NoError(t, err)
	assert.Equal(t, `<w:p><w:r><w:t>Old</w:t></w:r></w:p>`, string(blobs["word/document.xml"]))
}

func TestEngineDescribeReportsTagsKindsAndChildren(t *testing.T) {
	doc := `<w:sdt><w:sdtPr><w:tag w:val="Entry"/><w15:repeatingSection/></w:sdtPr><w:sdtContent>` +
		`<w:sdt><w:sdtPr><w15:repeatingSectionItem/></w:sdtPr><w:sdtContent>` +
		`<w:sdt><w:sdtPr><w:tag w:val="Town"/><w:text/></w:sdtPr><w:sdtContent><w:r><w:t>x</w:t></w:r></w:sdtContent></w:sdt>` +
		`</w:sdtContent></w:sdt>` +
		`</w:sdtContent></w:sdt>`
	archive := buildDocxFixture(t, doc)

	engine := New()
	defer engine.Close()

	desc, err := engine.Describe(archive)
	require.NoError(t, err)

	entry, ok := desc["Entry"]
	require.True(t, ok)
	assert.Equal(t, []Kind{RepeatingSection}, entry.Kinds)
	require.Len(t, entry.ChildTags, 1)
	assert.Equal(t, "", entry.ChildTags[0]) // the item itself carries no tag

	town, ok := desc["Town"]
	require.True(t, ok)
	assert.Equal(t, []Kind{Text}, town.Kinds)
}

func TestEngineMapArchiveErrorOnGarbageInput(t *testing.T) {
	engine := New()
	defer engine.Close()

	_, err := engine.Map([]byte("garbage"), Mapping{}, nil)
	require.Error(t, err)
	assert.True(t, IsArchiveError(err))
}
