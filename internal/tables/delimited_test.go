package tables

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReader_HeaderAndRows(t *testing.T) {
	input := "# generated by upstream pipeline\n" +
		"biospecimen_id\tgene\tstatus\n" +
		"BS_A\tTP53\tloss\n" +
		"\n" +
		"BS_B\tTP53\tneutral\n"

	r, err := NewReaderFrom(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, []string{"biospecimen_id", "gene", "status"}, r.Header())

	idx, err := r.Require("biospecimen_id", "status")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, idx)
	assert.Equal(t, 1, r.Optional("gene"))
	assert.Equal(t, -1, r.Optional("missing"))

	fields, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "BS_A", fields[0])

	fields, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "BS_B", fields[0])

	fields, err = r.Next()
	require.NoError(t, err)
	assert.Nil(t, fields)
}

func TestReader_ShortRowsPadded(t *testing.T) {
	r, err := NewReaderFrom(strings.NewReader("a\tb\tc\nx\ty\n"))
	require.NoError(t, err)

	fields, err := r.Next()
	require.NoError(t, err)
	require.Len(t, fields, 3)
	assert.Equal(t, "", fields[2])
}

func TestReader_MissingColumn(t *testing.T) {
	r, err := NewReaderFrom(strings.NewReader("a\tb\n1\t2\n"))
	require.NoError(t, err)

	_, err = r.Require("a", "zzz")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Contains(t, perr.Message, "zzz")
}

func TestReader_EmptyFile(t *testing.T) {
	_, err := NewReaderFrom(strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no header")
}

func TestOpenReader_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.tsv.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write([]byte("biospecimen_id\tscore\nBS_A\t0.9\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	r, err := OpenReader(path)
	require.NoError(t, err)
	defer r.Close()

	fields, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, []string{"BS_A", "0.9"}, fields)
}

func TestParseError_Error(t *testing.T) {
	e := &ParseError{Path: "x.tsv", Line: 7, Message: "bad"}
	assert.Equal(t, "x.tsv: line 7: bad", e.Error())

	e = &ParseError{Line: 3, Message: "bad"}
	assert.Equal(t, "line 3: bad", e.Error())
}
