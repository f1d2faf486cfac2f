package indexer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Danialgharaie/folddisco/internal/geomhash"
	"github.com/Danialgharaie/folddisco/internal/logx"
	"github.com/Danialgharaie/folddisco/internal/offsetmap"
)

const threeResidueFixture = `
residues:
  - chain: A
    serial: 57
    name: HIS
    ca: [0.0, 0.0, 0.0]
    n: [1.3, 0.0, 0.0]
    c: [0.0, 1.3, 0.0]
  - chain: A
    serial: 102
    name: SER
    ca: [6.0, 0.0, 0.0]
    n: [5.0, 0.5, 0.0]
    c: [6.0, 1.3, 0.0]
  - chain: A
    serial: 195
    name: ASP
    ca: [3.0, 5.0, 0.0]
    n: [2.5, 4.0, 0.0]
    c: [3.5, 5.5, 1.0]
`

func TestBuildDirectoryPersistsAQueryableIndex(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "triad.yaml"), []byte(threeResidueFixture), 0o644))

	chunkPrefix := filepath.Join(t.TempDir(), "idx")
	stats, err := BuildDirectory(dir, chunkPrefix, Options{
		Tag:            geomhash.FoldDiscoDefault,
		DistanceCutoff: 20.0,
	}, logx.New(logx.LevelError))
	require.NoError(t, err)

	assert.Equal(t, 1, stats.StructuresSeen)
	assert.Greater(t, stats.PairsIndexed, 0)
	assert.Greater(t, stats.DistinctHashes, 0)

	for _, suffix := range []string{".offset", ".value", ".lookup", ".type"} {
		_, err := os.Stat(chunkPrefix + suffix)
		assert.NoError(t, err, "missing %s", suffix)
	}

	typeBytes, err := os.ReadFile(chunkPrefix + ".type")
	require.NoError(t, err)
	assert.Equal(t, "FoldDiscoDefault\n", string(typeBytes))

	loaded, err := offsetmap.Load(chunkPrefix+".offset", true)
	require.NoError(t, err)
	defer loaded.Close()
	assert.Equal(t, uint64(stats.DistinctHashes), loaded.Size())

	postings, err := offsetmap.LoadPostings(chunkPrefix + ".value")
	require.NoError(t, err)
	defer offsetmap.UnmapPostings(postings)
	assert.Equal(t, stats.PairsIndexed, len(postings))
}

func TestBuildDirectoryNoStructures(t *testing.T) {
	dir := t.TempDir()
	chunkPrefix := filepath.Join(t.TempDir(), "idx")
	stats, err := BuildDirectory(dir, chunkPrefix, Options{Tag: geomhash.FoldDiscoDefault, DistanceCutoff: 20.0}, logx.New(logx.LevelError))
	require.NoError(t, err)
	assert.Equal(t, 0, stats.StructuresSeen)
	assert.Equal(t, 0, stats.PairsIndexed)
}
