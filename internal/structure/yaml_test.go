package structure

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadYAMLSynthesisesMissingCB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "structure.yaml")
	contents := `
residues:
  - chain: A
    serial: 250
    name: HIS
    ca: [0.0, 0.0, 0.0]
    n: [1.0, 0.0, 0.0]
    c: [0.0, 1.0, 0.0]
  - chain: A
    serial: 251
    name: GLY
    ca: [5.0, 0.0, 0.0]
    cb: [5.5, 0.5, 0.5]
    n: [4.0, 0.0, 0.0]
    c: [5.0, 1.0, 0.0]
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	s, err := LoadYAML(path)
	require.NoError(t, err)
	require.Equal(t, 2, s.NumResidues())

	idx, ok := s.GetIndex('A', 250)
	require.True(t, ok)
	assert.Equal(t, [3]byte{'H', 'I', 'S'}, s.GetResName(idx))
	assert.NotEqual(t, s.CA(idx), s.CB(idx), "synthetic CB must not collide with CA")

	idx2, ok := s.GetIndex('A', 251)
	require.True(t, ok)
	assert.Equal(t, 5.5, s.CB(idx2).X)
}

func TestLoadYAMLMissingFile(t *testing.T) {
	_, err := LoadYAML(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
