package fetcher

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildZip(t *testing.T, members map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, content := range members {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestExtractSoleMember(t *testing.T) {
	archive := buildZip(t, map[string]string{"data.csv": "month,make\n"})

	data, err := ExtractMember(archive, "")
	require.NoError(t, err)
	assert.Equal(t, "month,make\n", string(data))
}

func TestExtractNamedMember(t *testing.T) {
	archive := buildZip(t, map[string]string{
		"M11-coe_results.csv":     "coe",
		"M11-coe_results_pqp.csv": "pqp",
	})

	data, err := ExtractMember(archive, "M11-coe_results_pqp.csv")
	require.NoError(t, err)
	assert.Equal(t, "pqp", string(data))
}

func TestExtractMissingMemberIsFatal(t *testing.T) {
	archive := buildZip(t, map[string]string{"other.csv": "x"})

	_, err := ExtractMember(archive, "expected.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected.csv")
}

func TestExtractAmbiguousWithoutName(t *testing.T) {
	archive := buildZip(t, map[string]string{"a.csv": "a", "b.csv": "b"})

	_, err := ExtractMember(archive, "")
	assert.Error(t, err)
}

func TestExtractRejectsGarbage(t *testing.T) {
	_, err := ExtractMember([]byte("not a zip"), "")
	assert.Error(t, err)
}
