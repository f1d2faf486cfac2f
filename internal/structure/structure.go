// Package structure defines the CompactStructure contract that
// spec.md §6 says the (out-of-scope) PDB/mmCIF readers produce and the
// feature extractor (internal/feature) consumes. It is not a structure
// file parser; callers build a CompactStructure from already-parsed
// residue records.
package structure

import "github.com/golang/geo/r3"

// Residue holds the backbone atom coordinates and identity the feature
// extractor needs for one residue (spec.md §6 CompactStructure contract).
type Residue struct {
	Serial  uint64
	Chain   byte
	Name    [3]byte
	CA      r3.Vector
	N       r3.Vector
	C       r3.Vector
	HasCB   bool // false for glycine and any residue missing a real Cβ
	CB      r3.Vector
}

// CompactStructure is an immutable, random-access view over a parsed
// structure's residues, exactly the shape C3 (feature extraction)
// needs: per-residue backbone coordinates, identity, serial number and
// chain, plus the total residue count (spec.md §4.3).
type CompactStructure struct {
	residues []Residue
	index    map[chainSerial]int
}

type chainSerial struct {
	chain  byte
	serial uint64
}

// NewCompactStructure builds a CompactStructure from already-extracted
// residue records, synthesising a Cβ for any residue that doesn't carry
// one (glycine, or a record built without side-chain atoms) via the
// standard tetrahedral extrapolation from N, Cα and C.
func NewCompactStructure(residues []Residue) *CompactStructure {
	index := make(map[chainSerial]int, len(residues))
	out := make([]Residue, len(residues))
	for i, r := range residues {
		if !r.HasCB {
			r.CB = syntheticCB(r.N, r.CA, r.C)
			r.HasCB = true
		}
		out[i] = r
		index[chainSerial{r.Chain, r.Serial}] = i
	}
	return &CompactStructure{residues: out, index: index}
}

// syntheticCB reconstructs the Cβ position for a glycine (or any
// residue parsed without a side chain) from its backbone N, Cα and C
// coordinates. This is the standard ideal-geometry extrapolation: the
// Cβ sits roughly tetrahedrally off Cα, opposite the bisector of the
// N-Cα-C angle, at the typical Cα-Cβ bond length of 1.521 Å.
func syntheticCB(n, ca, c r3.Vector) r3.Vector {
	const caCbBondLength = 1.521

	toN := n.Sub(ca).Normalize()
	toC := c.Sub(ca).Normalize()
	bisector := toN.Add(toC).Normalize()
	normal := toN.Cross(toC).Normalize()
	// Rotate away from the bisector, out of the N-Cα-C plane, toward
	// where the side chain sits in L-amino acids.
	direction := bisector.Mul(-0.816).Add(normal.Mul(0.577)).Normalize()
	return ca.Add(direction.Mul(caCbBondLength))
}

// NumResidues is the total residue count in the structure.
func (s *CompactStructure) NumResidues() int { return len(s.residues) }

// ResidueSerial returns the author-provided residue number at index i.
func (s *CompactStructure) ResidueSerial(i int) uint64 { return s.residues[i].Serial }

// ChainPerResidue returns the chain identifier byte at index i.
func (s *CompactStructure) ChainPerResidue(i int) byte { return s.residues[i].Chain }

// GetResName returns the three-letter residue name at index i.
func (s *CompactStructure) GetResName(i int) [3]byte { return s.residues[i].Name }

// GetIndex resolves a (chain, serial) pair to a residue index, mirroring
// spec.md §6's get_index(chain, serial) -> Option<usize>.
func (s *CompactStructure) GetIndex(chain byte, serial uint64) (int, bool) {
	idx, ok := s.index[chainSerial{chain, serial}]
	return idx, ok
}

// CA, CB and N return the backbone atom coordinates at index i.
func (s *CompactStructure) CA(i int) r3.Vector { return s.residues[i].CA }
func (s *CompactStructure) CB(i int) r3.Vector { return s.residues[i].CB }
func (s *CompactStructure) N(i int) r3.Vector  { return s.residues[i].N }

// C returns the backbone carbonyl carbon coordinate at index i, the
// atom Cβ synthesis uses alongside N and Cα; the feature extractor
// itself does not read it.
func (s *CompactStructure) C(i int) r3.Vector { return s.residues[i].C }

// HasRequiredAtoms reports whether residue i is in range and has any
// backbone coordinates at all: it returns false only when Cα, N and C
// are all the zero vector. A residue with just one or two of those
// atoms missing (left at the zero vector) is not detected.
func (s *CompactStructure) HasRequiredAtoms(i int) bool {
	if i < 0 || i >= len(s.residues) {
		return false
	}
	r := s.residues[i]
	return r.CA != (r3.Vector{}) || r.N != (r3.Vector{}) || r.C != (r3.Vector{})
}
