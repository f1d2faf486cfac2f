package querier

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Danialgharaie/folddisco/internal/geomhash"
	"github.com/Danialgharaie/folddisco/internal/indexer"
	"github.com/Danialgharaie/folddisco/internal/logx"
	"github.com/Danialgharaie/folddisco/internal/query"
	"github.com/Danialgharaie/folddisco/internal/structure"
)

const catalyticTriadFixture = `
residues:
  - chain: B
    serial: 57
    name: HIS
    ca: [0.0, 0.0, 0.0]
    n: [1.3, 0.0, 0.0]
    c: [0.0, 1.3, 0.0]
  - chain: B
    serial: 102
    name: SER
    ca: [6.0, 0.0, 0.0]
    n: [5.0, 0.5, 0.0]
    c: [6.0, 1.3, 0.0]
  - chain: C
    serial: 195
    name: ASP
    ca: [3.0, 5.0, 0.0]
    n: [2.5, 4.0, 0.0]
    c: [3.5, 5.5, 1.0]
`

func buildTestIndex(t *testing.T, tag geomhash.Tag) (string, *structure.CompactStructure) {
	t.Helper()
	dir := t.TempDir()
	fixturePath := filepath.Join(dir, "4cha.yaml")
	require.NoError(t, os.WriteFile(fixturePath, []byte(catalyticTriadFixture), 0o644))

	chunkPrefix := filepath.Join(t.TempDir(), "idx")
	_, err := indexer.BuildDirectory(dir, chunkPrefix, indexer.Options{
		Tag:            tag,
		DistanceCutoff: 20.0,
	}, logx.New(logx.LevelError))
	require.NoError(t, err)

	s, err := structure.LoadYAML(fixturePath)
	require.NoError(t, err)
	return chunkPrefix, s
}

// Scenario 4, spec.md §8: PDBMotifSinCos, file 4cha.pdb, residues
// [(B,57),(B,102),(C,195)], D=[0.5], A=[5,10,15], no substitutions:
// the number of exact entries equals the number of ordered pairs with
// a valid feature, and the structure that produced them is found.
func TestRunFindsTheIndexedStructure(t *testing.T) {
	chunkPrefix, s := buildTestIndex(t, geomhash.PDBMotifSinCos)

	residues, substitutions, err := query.ParseQueryString("B57,B102,C195", 'A')
	require.NoError(t, err)
	require.Len(t, residues, 3)

	result, err := Run(s, residues, substitutions, chunkPrefix, Options{
		Tag:             geomhash.PDBMotifSinCos,
		DistThresholds:  []float32{0.5},
		AngleThresholds: []float32{5, 10, 15},
		DistanceCutoff:  20.0,
	})
	require.NoError(t, err)

	assert.LessOrEqual(t, result.ExactHashes, 6)
	assert.Greater(t, result.ExactHashes, 0)
	assert.Contains(t, result.CandidateHits, uint32(0))
	assert.Greater(t, result.CandidateHits[0], 0)
}

func TestRunNoMatchAgainstEmptyIndex(t *testing.T) {
	dir := t.TempDir()
	chunkPrefix := filepath.Join(t.TempDir(), "idx")
	_, err := indexer.BuildDirectory(dir, chunkPrefix, indexer.Options{
		Tag:            geomhash.PDBMotifSinCos,
		DistanceCutoff: 20.0,
	}, logx.New(logx.LevelError))
	require.NoError(t, err)

	queryDir := t.TempDir()
	fixturePath := filepath.Join(queryDir, "q.yaml")
	require.NoError(t, os.WriteFile(fixturePath, []byte(catalyticTriadFixture), 0o644))
	s, err := structure.LoadYAML(fixturePath)
	require.NoError(t, err)

	residues, substitutions, err := query.ParseQueryString("B57,B102", 'A')
	require.NoError(t, err)
	result, err := Run(s, residues, substitutions, chunkPrefix, Options{
		Tag:            geomhash.PDBMotifSinCos,
		DistanceCutoff: 20.0,
	})
	require.NoError(t, err)
	assert.Empty(t, result.CandidateHits)
}
