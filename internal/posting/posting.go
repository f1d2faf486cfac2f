// Package posting packs and unpacks the (structure_id, pair_id)
// entries the flat postings array stores against each offset-map hash
// (spec.md §6, "<prefix>.value"). The encoding is an external contract:
// it has no bearing on lookup correctness, only on what a reader must
// agree with a builder about.
package posting

// Posting is a decoded postings-array entry: which structure a hit
// came from, and which residue pair within it.
type Posting struct {
	StructureID uint32
	PairID      uint32
}

// ResidueIndices decodes a PairID into the two residue indices it
// packs, each limited to 16 bits (65536 residues per structure, well
// beyond any real protein chain).
func (p Posting) ResidueIndices() (i, j uint16) {
	return uint16(p.PairID >> 16), uint16(p.PairID)
}

// NewPairID packs two residue indices into a PairID, i in the upper 16
// bits and j in the lower 16 bits.
func NewPairID(i, j uint16) uint32 {
	return uint32(i)<<16 | uint32(j)
}

// Pack encodes a Posting into the u64 the postings array stores:
// structure_id in the upper 32 bits, pair_id in the lower 32 bits.
func Pack(p Posting) uint64 {
	return uint64(p.StructureID)<<32 | uint64(p.PairID)
}

// Unpack reverses Pack.
func Unpack(v uint64) Posting {
	return Posting{
		StructureID: uint32(v >> 32),
		PairID:      uint32(v),
	}
}
