package query

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Danialgharaie/folddisco/internal/geomhash"
	"github.com/Danialgharaie/folddisco/internal/structure"
)

func buildTestStructure() *structure.CompactStructure {
	mk := func(serial uint64, chain byte, name [3]byte, x float64) structure.Residue {
		return structure.Residue{
			Serial: serial,
			Chain:  chain,
			Name:   name,
			N:      r3.Vector{X: x, Y: 0, Z: 0},
			CA:     r3.Vector{X: x + 1, Y: 0, Z: 0},
			C:      r3.Vector{X: x + 2, Y: 0, Z: 0},
			CB:     r3.Vector{X: x + 1, Y: 1, Z: 0},
			HasCB:  true,
		}
	}
	return structure.NewCompactStructure([]structure.Residue{
		mk(250, 'A', [3]byte{'A', 'L', 'A'}, 0),
		mk(232, 'A', [3]byte{'G', 'L', 'Y'}, 10),
		mk(269, 'A', [3]byte{'S', 'E', 'R'}, 20),
	})
}

func TestExpandProducesExactHashForEveryPair(t *testing.T) {
	s := buildTestStructure()
	residues, subs, err := ParseQueryString("A250,A232,A269", 'A')
	require.NoError(t, err)
	hashes, indices, _ := Expand(s, residues, subs, Options{
		Tag:            geomhash.PDBMotifSinCos,
		NBinDist:       8,
		NBinAngle:      4,
		DistanceCutoff: 20,
	})
	assert.Len(t, indices, 3)

	exactCount := 0
	for _, hit := range hashes {
		if hit.Exact {
			exactCount++
		}
	}
	// Three residues -> six ordered pairs (i, j) with i != j (spec.md
	// §4.4, §8 Scenario 4), each contributing at most one exact hash;
	// fewer survive if two ordered pairs collide on the same hash.
	assert.Greater(t, exactCount, 0)
	assert.LessOrEqual(t, exactCount, 6)
}

func TestExpandWithToleranceAddsNonExactHashes(t *testing.T) {
	s := buildTestStructure()
	residues, subs, err := ParseQueryString("A250,A232", 'A')
	require.NoError(t, err)
	hashes, _, _ := Expand(s, residues, subs, Options{
		Tag:             geomhash.PDBMotifSinCos,
		NBinDist:        8,
		NBinAngle:       4,
		DistThresholds:  []float32{0.5},
		AngleThresholds: []float32{5.0},
		DistanceCutoff:  20,
	})
	exact, nonExact := 0, 0
	for _, hit := range hashes {
		if hit.Exact {
			exact++
		} else {
			nonExact++
		}
	}
	// Two residues -> two ordered pairs, (i, j) and (j, i); at most one
	// exact hash each.
	assert.Greater(t, exact, 0)
	assert.LessOrEqual(t, exact, 2)
	assert.Greater(t, nonExact, 0)
}

func TestExpandWithSubstitution(t *testing.T) {
	s := buildTestStructure()
	residues, subs, err := ParseQueryString("A250:R,A232:K", 'A')
	require.NoError(t, err)
	hashes, _, _ := Expand(s, residues, subs, Options{
		Tag:            geomhash.PDBMotifSinCos,
		NBinDist:       8,
		NBinAngle:      4,
		DistanceCutoff: 20,
	})
	// Substitution of both i and j: a cartesian product of one
	// substitution each yields exactly one extra (non-exact) hash.
	nonExact := 0
	for _, hit := range hashes {
		if !hit.Exact {
			nonExact++
		}
	}
	assert.GreaterOrEqual(t, nonExact, 1)
}

func TestExpandEmptySelectionUsesAllResidues(t *testing.T) {
	s := buildTestStructure()
	hashes, indices, _ := Expand(s, nil, nil, Options{
		Tag:            geomhash.PDBMotifSinCos,
		NBinDist:       8,
		NBinAngle:      4,
		DistanceCutoff: 20,
	})
	assert.Len(t, indices, 3)
	assert.NotEmpty(t, hashes)
}
