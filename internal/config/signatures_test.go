package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSignatureFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "signatures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadSignatures(t *testing.T) {
	path := writeSignatureFile(t, `
signatures:
  - name: dji_remote_id
    ascii: DJI-RID-
    literal: true
  - name: odid_oui
    hex: fa0bbc
`)

	sigs, err := LoadSignatures(path)
	require.NoError(t, err)
	require.Len(t, sigs, 2)

	assert.Equal(t, "dji_remote_id", sigs[0].Name)
	assert.Equal(t, []byte("DJI-RID-"), sigs[0].Bytes)
	assert.True(t, sigs[0].Literal)

	assert.Equal(t, "odid_oui", sigs[1].Name)
	assert.Equal(t, []byte{0xFA, 0x0B, 0xBC}, sigs[1].Bytes)
	assert.False(t, sigs[1].Literal)
}

func TestLoadSignatures_MissingBytes(t *testing.T) {
	path := writeSignatureFile(t, `
signatures:
  - name: empty_marker
    literal: true
`)

	_, err := LoadSignatures(path)
	assert.ErrorContains(t, err, "empty_marker")
}

func TestLoadSignatures_BadHex(t *testing.T) {
	path := writeSignatureFile(t, `
signatures:
  - name: broken
    hex: zz00
`)

	_, err := LoadSignatures(path)
	assert.ErrorContains(t, err, "broken")
}

func TestLoadSignatures_MissingFile(t *testing.T) {
	_, err := LoadSignatures(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
