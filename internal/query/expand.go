package query

import (
	"github.com/Danialgharaie/folddisco/internal/feature"
	"github.com/Danialgharaie/folddisco/internal/geomhash"
	"github.com/Danialgharaie/folddisco/internal/structure"
)

// Options controls how Expand perturbs and substitutes a query's
// baseline feature vectors (spec.md §4.4).
type Options struct {
	Tag            geomhash.Tag
	NBinDist       uint32
	NBinAngle      uint32
	DistThresholds []float32
	// AngleThresholds are in degrees, matching the query-string and CLI
	// surface; Expand converts them to radians before perturbing.
	AngleThresholds []float32
	DistanceCutoff  float32
}

// Hit records which residue pair produced a hash and whether it came
// from the pair's exact feature vector or a tolerance/substitution
// perturbation of it.
type Hit struct {
	I, J  int
	Exact bool
}

// ObservedDistance pairs a primary distance with the query-structure
// index it was measured from, for the amino-acid pair it was filed
// under.
type ObservedDistance struct {
	Dist  float32
	Index int
}

// AAPair is an unordered-by-position but directional amino-acid code
// pair key, (code at i, code at j).
type AAPair struct {
	AA1, AA2 int
}

// Expand resolves a parsed residue selection against a structure and
// returns every hash value its pairwise feature vectors, tolerance
// perturbations and amino-acid substitutions produce, along with the
// resolved structure indices and an observed-distance table keyed by
// amino-acid pair (spec.md §4.4, grounded on the reference query-map
// builder's CombinationIterator, which walks every ordered (i, j) with
// i != j rather than only i < j). Only the first (I, J, Exact) recorded
// for a given hash survives. Pairs are expanded one after another, each
// recording its exact hash before its own perturbed ones, so a hash
// already recorded as a neighbour of an earlier pair stays non-exact
// even if a later pair produces it exactly.
func Expand(s *structure.CompactStructure, residues []Residue, substitutions [][]int, opts Options) (map[uint64]Hit, []int, map[AAPair][]ObservedDistance) {
	hashes := make(map[uint64]Hit)
	observed := make(map[AAPair][]ObservedDistance)

	if len(residues) == 0 {
		residues = allResidues(s)
		substitutions = make([][]int, len(residues))
	}

	indices := make([]int, 0, len(residues))
	substitutionMap := make(map[int][]int)
	for i, r := range residues {
		idx, ok := s.GetIndex(r.Chain, r.Serial)
		if !ok {
			continue
		}
		indices = append(indices, idx)
		if i < len(substitutions) && len(substitutions[i]) > 0 {
			substitutionMap[idx] = substitutions[i]
		}
	}

	distIdx := geomhash.DistIndex(opts.Tag)
	angleIdx := geomhash.AngleIndex(opts.Tag)
	aaIdx := geomhash.AminoAcidIndex(opts.Tag)

	var f geomhash.Feature
	for a := range indices {
		for b := range indices {
			if a == b {
				continue
			}
			i, j := indices[a], indices[b]
			if !feature.Extract(s, opts.Tag, i, j, opts.DistanceCutoff, &f) {
				continue
			}

			recordDistance(observed, s, i, j, f)

			base := geomhash.Encode(opts.Tag, f, opts.NBinDist, opts.NBinAngle)
			insertIfAbsent(hashes, base, Hit{i, j, true})

			if len(aaIdx) == 2 {
				expandSubstitutions(hashes, f, opts, i, j, aaIdx, substitutionMap)
			}
			expandTolerance(hashes, f, opts, i, j, distIdx, opts.DistThresholds, false)
			expandTolerance(hashes, f, opts, i, j, angleIdx, opts.AngleThresholds, true)
		}
	}

	return hashes, indices, observed
}

func allResidues(s *structure.CompactStructure) []Residue {
	out := make([]Residue, s.NumResidues())
	for i := 0; i < s.NumResidues(); i++ {
		out[i] = Residue{s.ChainPerResidue(i), s.ResidueSerial(i)}
	}
	return out
}

func recordDistance(observed map[AAPair][]ObservedDistance, s *structure.CompactStructure, i, j int, f geomhash.Feature) {
	pair := AAPair{int(f[0]), int(f[1])}
	observed[pair] = append(observed[pair], ObservedDistance{Dist: f[2], Index: i})
}

func insertIfAbsent(hashes map[uint64]Hit, h uint64, hit Hit) {
	if _, exists := hashes[h]; !exists {
		hashes[h] = hit
	}
}

// expandSubstitutions implements the reference's three substitution
// modes: substitute i only, substitute j only, or (when both residues
// carry a substitution set) their cartesian product — always as
// non-exact hits, since a substituted feature no longer reflects the
// structure as observed.
func expandSubstitutions(hashes map[uint64]Hit, f geomhash.Feature, opts Options, i, j int, aaIdx []int, substitutionMap map[int][]int) {
	aa1Slot, aa2Slot := aaIdx[0], aaIdx[1]
	origAA1, origAA2 := f[aa1Slot], f[aa2Slot]

	subI, hasI := substitutionMap[i]
	subJ, hasJ := substitutionMap[j]

	switch {
	case hasI && hasJ:
		for _, s1 := range subI {
			for _, s2 := range subJ {
				f[aa1Slot] = float32(s1)
				f[aa2Slot] = float32(s2)
				h := geomhash.Encode(opts.Tag, f, opts.NBinDist, opts.NBinAngle)
				insertIfAbsent(hashes, h, Hit{i, j, false})
			}
		}
	case hasI:
		for _, s1 := range subI {
			f[aa1Slot] = float32(s1)
			h := geomhash.Encode(opts.Tag, f, opts.NBinDist, opts.NBinAngle)
			insertIfAbsent(hashes, h, Hit{i, j, false})
		}
	case hasJ:
		for _, s2 := range subJ {
			f[aa2Slot] = float32(s2)
			h := geomhash.Encode(opts.Tag, f, opts.NBinDist, opts.NBinAngle)
			insertIfAbsent(hashes, h, Hit{i, j, false})
		}
	}
	f[aa1Slot], f[aa2Slot] = origAA1, origAA2
}

// expandTolerance perturbs one slot at a time by +/- each threshold in
// thresholds (degrees, if inDegrees, else the feature's native unit)
// and records both perturbed hashes as non-exact hits. Slots are
// perturbed independently, never in combination, matching the
// reference's per-slot near/far pairs.
func expandTolerance(hashes map[uint64]Hit, f geomhash.Feature, opts Options, i, j int, slots []int, thresholds []float32, inDegrees bool) {
	if len(slots) == 0 || len(thresholds) == 0 {
		return
	}
	for _, threshold := range thresholds {
		t := threshold
		if inDegrees {
			t = degToRad(t)
		}
		for _, slot := range slots {
			orig := f[slot]

			f[slot] = orig - t
			near := geomhash.Encode(opts.Tag, f, opts.NBinDist, opts.NBinAngle)
			f[slot] = orig + t
			far := geomhash.Encode(opts.Tag, f, opts.NBinDist, opts.NBinAngle)
			f[slot] = orig

			insertIfAbsent(hashes, near, Hit{i, j, false})
			insertIfAbsent(hashes, far, Hit{i, j, false})
		}
	}
}

func degToRad(d float32) float32 {
	const piOver180 = 3.14159265358979323846 / 180
	return d * piOver180
}
