// Package geomhash implements the perfect-hash codec family (spec.md
// §4.2, C2): encoding an ordered residue pair's geometric feature
// vector into a fixed-width integer, and decoding it back. Each
// variant is a closed bit layout; adding one is a closed-world change
// touching the tag, the layout, the slot-index helpers and the feature
// extractor together (spec.md §9).
package geomhash

// Tag identifies a hash variant: its bit layout and feature schema.
type Tag int

const (
	// PDBMotif packs aa1, aa2, a CA distance, a CB distance and a raw
	// angle (plus a redundant angle field quantised at double the bin
	// count, see DESIGN.md) into 32 bits, widths 5,5,4,4,4,4.
	PDBMotif Tag = iota
	// PDBMotifSinCos replaces PDBMotif's raw angle with a (sin, cos)
	// pair, widths 5,5,4,4,4,4.
	PDBMotifSinCos
	// PDBMotifHalf adds a redundant half-bin-count CA distance field
	// ahead of the CB distance and (sin, cos) angle, widths
	// 5,5,4,4,4,4,4 — the authoritative seven-field layout (spec.md §9).
	PDBMotifHalf
	// TrRosetta packs a compressed amino-acid pair code, a Cβ distance
	// and five (sin, cos) angle pairs into 32 tightly-packed bits,
	// widths 9,3,10×2.
	TrRosetta
	// FoldDiscoDefault is the 64-bit variant: aa1, aa2, a Cβ distance
	// and five (sin, cos) angle pairs, widths 5,5,4,10×4. Only the low
	// 54 bits are used; the top 10 bits of the word are always zero, so
	// the field masks do not cover the whole 64-bit word.
	FoldDiscoDefault
	// PointPairFeature packs aa1, aa2, a distance and three (sin, cos)
	// angle pairs into 32 tightly-packed bits, widths 5,5,4,6×3.
	PointPairFeature
)

// Feature is the positional feature vector spec.md §3 describes: slots
// 0 and 1 are amino-acid codes, slot 2 is the primary distance, slot 3
// is a secondary distance or first angle, and slots 4-7 hold additional
// angles. Which slots a variant actually reads is fixed by its
// dist/angle index helpers below.
type Feature [8]float32

const (
	slotAA1 = 0
	slotAA2 = 1
	slotDist = 2
)

// Width returns the bit width of the integer a variant's hash occupies:
// 32 for every variant except FoldDiscoDefault, which is 64.
func Width(tag Tag) int {
	if tag == FoldDiscoDefault {
		return 64
	}
	return 32
}

// DistIndex returns the feature slots holding distances for a variant,
// used by the query expander (spec.md §4.4) to know which slots to
// perturb by a distance tolerance.
func DistIndex(tag Tag) []int {
	switch tag {
	case PDBMotif, PDBMotifSinCos, PDBMotifHalf:
		return []int{2, 3}
	case TrRosetta, FoldDiscoDefault, PointPairFeature:
		return []int{2}
	default:
		return nil
	}
}

// AngleIndex returns the feature slots holding raw (pre sin/cos) angles
// for a variant, used by the query expander to know which slots to
// perturb by an angle tolerance.
func AngleIndex(tag Tag) []int {
	switch tag {
	case PDBMotif, PDBMotifSinCos, PDBMotifHalf:
		return []int{4}
	case TrRosetta, FoldDiscoDefault:
		return []int{3, 4, 5, 6, 7}
	case PointPairFeature:
		return []int{3, 4, 5}
	default:
		return nil
	}
}

// AminoAcidIndex returns the two feature slots holding aa1 and aa2; it
// is the same pair of slots for every variant, even the ones that later
// compress the pair into a single bit field during encode (TrRosetta).
func AminoAcidIndex(tag Tag) []int {
	return []int{slotAA1, slotAA2}
}
