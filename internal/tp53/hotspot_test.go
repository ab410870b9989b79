package tp53

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeHotspotFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hotspots.tsv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadHotspots(t *testing.T) {
	path := writeHotspotFile(t,
		"Hugo_Symbol\tCodon\tTumor_Count\n"+
			"TP53\tR175\t500\n"+
			"TP53\tR273\t450\n"+
			"TP53\tQ331\t3\n"+
			"KRAS\tG12\t900\n")

	hs, err := LoadHotspots(path, 0)
	require.NoError(t, err)

	assert.True(t, hs.Contains("TP53", 175))
	assert.True(t, hs.Contains("TP53", 273))
	assert.True(t, hs.Contains("TP53", 331))
	assert.True(t, hs.Contains("KRAS", 12))
	assert.False(t, hs.Contains("TP53", 12))
	assert.False(t, hs.Contains("TP53", 0))
}

func TestLoadHotspots_MinSamples(t *testing.T) {
	path := writeHotspotFile(t,
		"Hugo_Symbol\tCodon\tTumor_Count\n"+
			"TP53\tR175\t500\n"+
			"TP53\tQ331\t3\n")

	hs, err := LoadHotspots(path, 10)
	require.NoError(t, err)

	assert.True(t, hs.Contains("TP53", 175))
	assert.False(t, hs.Contains("TP53", 331), "below the tumor-count floor")
}

func TestLoadHotspots_MissingColumns(t *testing.T) {
	path := writeHotspotFile(t, "Gene\tPosition\nTP53\t175\n")

	_, err := LoadHotspots(path, 0)
	assert.Error(t, err)
}

func TestCodonPosition(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"R175", 175},
		{"G12", 12},
		{"175", 175},
		{"X", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, codonPosition(tt.raw), tt.raw)
	}
}

func TestDefaultActivatingChanges(t *testing.T) {
	a := DefaultActivatingChanges()
	assert.True(t, a.Contains("p.R273C"))
	assert.True(t, a.Contains("p.R248W"))
	assert.False(t, a.Contains("p.R175H"))
	assert.False(t, a.Contains(""))
}
