package docxsdt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentCacheSetThenGet(t *testing.T) {
	config := DefaultConfig()
	config.CacheMaxCost = 1 << 20
	cache, err := NewDocumentCacheWithConfig(config)
	require.NoError(t, err)
	defer cache.Close()

	part := []byte(`<w:sdt><w:sdtPr><w:tag w:val="Name"/></w:sdtPr><w:sdtContent><w:r><w:t>x</w:t></w:r></w:sdtContent></w:sdt>`)
	events := mustScan(t, string(part))
	data, err := index(events)
	require.NoError(t, err)

	_, ok := cache.Get(part)
	assert.False(t, ok)

	cache.Set(part, data)
	got, ok := cache.Get(part)
	require.True(t, ok)
	assert.Equal(t, len(data.Controls), len(got.Controls))
}

func TestDocumentCacheDistinguishesContent(t *testing.T) {
	config := DefaultConfig()
	config.CacheMaxCost = 1 << 20
	cache, err := NewDocumentCacheWithConfig(config)
	require.NoError(t, err)
	defer cache.Close()

	a := []byte(`<w:p>a</w:p>`)
	b := []byte(`<w:p>b</w:p>`)

	dataA, err := index(mustScan(t, string(a)))
	require.NoError(t, err)
	cache.Set(a, dataA)

	_, ok := cache.Get(b)
	assert.False(t, ok)
}
