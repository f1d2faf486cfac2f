package geomhash

import (
	"math"

	"github.com/Danialgharaie/folddisco/internal/quant"
)

func mask(bits uint) uint64 {
	return (uint64(1) << bits) - 1
}

func clampAA(v float32) uint32 {
	aa := uint32(int32(v))
	if aa > 31 {
		aa = 31
	}
	return aa
}

// Encode packs a feature vector into its hash, dispatching on tag. It
// never fails: every numeric input is clamped to its valid domain
// before packing (spec.md §4.2 Failure semantics). nbinDist and
// nbinAngle of 0 select each variant's own default bin counts.
func Encode(tag Tag, f Feature, nbinDist, nbinAngle uint32) uint64 {
	switch tag {
	case PDBMotif:
		return encodePDBMotif(f, nbinDist, nbinAngle)
	case PDBMotifSinCos:
		return encodePDBMotifSinCos(f, nbinDist, nbinAngle)
	case PDBMotifHalf:
		return encodePDBMotifHalf(f, nbinDist, nbinAngle)
	case TrRosetta:
		return encodeTrRosetta(f, nbinDist, nbinAngle)
	case FoldDiscoDefault:
		return encodeFoldDiscoDefault(f, nbinDist, nbinAngle)
	case PointPairFeature:
		return encodePointPairFeature(f, nbinDist, nbinAngle)
	default:
		return 0
	}
}

// Decode reproduces the feature vector that produced hash, within one
// bin width per numeric slot (spec.md §4.2, §8 invariant 1). Angles are
// recovered via atan2 and are therefore only unique modulo 2π.
func Decode(tag Tag, hash uint64, nbinDist, nbinAngle uint32) Feature {
	switch tag {
	case PDBMotif:
		return decodePDBMotif(hash, nbinDist, nbinAngle)
	case PDBMotifSinCos:
		return decodePDBMotifSinCos(hash, nbinDist, nbinAngle)
	case PDBMotifHalf:
		return decodePDBMotifHalf(hash, nbinDist, nbinAngle)
	case TrRosetta:
		return decodeTrRosetta(hash, nbinDist, nbinAngle)
	case FoldDiscoDefault:
		return decodeFoldDiscoDefault(hash, nbinDist, nbinAngle)
	case PointPairFeature:
		return decodePointPairFeature(hash, nbinDist, nbinAngle)
	default:
		return Feature{}
	}
}

// IsSymmetric reports whether the residues and the angles that ought to
// coincide under swapping the pair's order are equal after decode
// (spec.md §4.2 Symmetry). The index builder uses this to decide
// whether to insert both orientations of a pair or only one.
func IsSymmetric(tag Tag, hash uint64, nbinDist, nbinAngle uint32) bool {
	f := Decode(tag, hash, nbinDist, nbinAngle)
	switch tag {
	case TrRosetta, FoldDiscoDefault:
		// aa1 == aa2, theta1 == theta2, phi1 == phi2.
		return f[0] == f[1] && f[4] == f[5] && f[6] == f[7]
	case PointPairFeature:
		// aa1 == aa2, and the first two angles coincide.
		return f[0] == f[1] && f[3] == f[4]
	default:
		return f[0] == f[1]
	}
}

func sinCosBins(nbinAngle uint32, fieldBits uint) uint32 {
	return quant.ClampBins(nbinAngle, fieldBits)
}

// --- PDBMotifSinCos: 5,5,4,4,4,4 = 26 bits ---

func encodePDBMotifSinCos(f Feature, nbinDist, nbinAngle uint32) uint64 {
	nd := quant.ClampBins(nbinDist, 4)
	na := quant.ClampBins(nbinAngle, 4)
	aa1 := clampAA(f[slotAA1])
	aa2 := clampAA(f[slotAA2])
	caDist := quant.Discretise(f[2], quant.MinDist, quant.MaxDist, nd)
	cbDist := quant.Discretise(f[3], quant.MinDist, quant.MaxDist, nd)
	sin, cos := float32(math.Sin(float64(f[4]))), float32(math.Cos(float64(f[4])))
	hSin := quant.Discretise(sin, quant.MinSinCos, quant.MaxSinCos, na)
	hCos := quant.Discretise(cos, quant.MinSinCos, quant.MaxSinCos, na)
	return uint64(aa1)<<21 | uint64(aa2)<<16 | uint64(caDist)<<12 |
		uint64(cbDist)<<8 | uint64(hSin)<<4 | uint64(hCos)
}

func decodePDBMotifSinCos(h uint64, nbinDist, nbinAngle uint32) Feature {
	nd := quant.ClampBins(nbinDist, 4)
	na := quant.ClampBins(nbinAngle, 4)
	var f Feature
	f[0] = float32((h >> 21) & mask(5))
	f[1] = float32((h >> 16) & mask(5))
	f[2] = quant.Continuise(uint32((h>>12)&mask(4)), quant.MinDist, quant.MaxDist, nd)
	f[3] = quant.Continuise(uint32((h>>8)&mask(4)), quant.MinDist, quant.MaxDist, nd)
	sin := quant.Continuise(uint32((h>>4)&mask(4)), quant.MinSinCos, quant.MaxSinCos, na)
	cos := quant.Continuise(uint32(h&mask(4)), quant.MinSinCos, quant.MaxSinCos, na)
	f[4] = float32(math.Atan2(float64(sin), float64(cos)))
	return f
}

// --- PDBMotifHalf: authoritative 5,5,4,4,4,4,4 = 30 bits ---

func encodePDBMotifHalf(f Feature, nbinDist, nbinAngle uint32) uint64 {
	nd := quant.ClampBins(nbinDist, 4)
	ndHalf := quant.ClampBins(nd/2, 4)
	na := quant.ClampBins(nbinAngle, 4)
	aa1 := clampAA(f[slotAA1])
	aa2 := clampAA(f[slotAA2])
	caDist := quant.Discretise(f[2], quant.MinDist, quant.MaxDist, nd)
	caDistHalf := quant.Discretise(f[2], quant.MinDist, quant.MaxDist, ndHalf)
	cbDist := quant.Discretise(f[3], quant.MinDist, quant.MaxDist, nd)
	sin, cos := float32(math.Sin(float64(f[4]))), float32(math.Cos(float64(f[4])))
	hSin := quant.Discretise(sin, quant.MinSinCos, quant.MaxSinCos, na)
	hCos := quant.Discretise(cos, quant.MinSinCos, quant.MaxSinCos, na)
	return uint64(aa1)<<25 | uint64(aa2)<<20 | uint64(caDist)<<16 |
		uint64(caDistHalf)<<12 | uint64(cbDist)<<8 | uint64(hSin)<<4 | uint64(hCos)
}

func decodePDBMotifHalf(h uint64, nbinDist, nbinAngle uint32) Feature {
	nd := quant.ClampBins(nbinDist, 4)
	na := quant.ClampBins(nbinAngle, 4)
	var f Feature
	f[0] = float32((h >> 25) & mask(5))
	f[1] = float32((h >> 20) & mask(5))
	f[2] = quant.Continuise(uint32((h>>16)&mask(4)), quant.MinDist, quant.MaxDist, nd)
	// The half-bin field (bits 12-15) is write-only precision; it is
	// never reconstructed on decode, matching the grounded reference.
	f[3] = quant.Continuise(uint32((h>>8)&mask(4)), quant.MinDist, quant.MaxDist, nd)
	sin := quant.Continuise(uint32((h>>4)&mask(4)), quant.MinSinCos, quant.MaxSinCos, na)
	cos := quant.Continuise(uint32(h&mask(4)), quant.MinSinCos, quant.MaxSinCos, na)
	f[4] = float32(math.Atan2(float64(sin), float64(cos)))
	return f
}

// --- PDBMotif: legacy non-sincos variant, 5,5,4,4,4,4 = 26 bits ---
//
// The sixth field is not named by spec.md (it lists five fields against
// six widths). We fill it the way the authoritative PDBMotifHalf fills
// its extra field: a redundant, write-only higher-granularity copy of
// the angle, here at double the bin count. See DESIGN.md.

func encodePDBMotif(f Feature, nbinDist, nbinAngle uint32) uint64 {
	nd := quant.ClampBins(nbinDist, 4)
	na := quant.ClampBins(nbinAngle, 4)
	naFine := quant.ClampBins(na*2, 4)
	aa1 := clampAA(f[slotAA1])
	aa2 := clampAA(f[slotAA2])
	caDist := quant.Discretise(f[2], quant.MinDist, quant.MaxDist, nd)
	cbDist := quant.Discretise(f[3], quant.MinDist, quant.MaxDist, nd)
	angle := quant.Discretise(f[4], float32(-math.Pi), float32(math.Pi), na)
	angleFine := quant.Discretise(f[4], float32(-math.Pi), float32(math.Pi), naFine)
	return uint64(aa1)<<21 | uint64(aa2)<<16 | uint64(caDist)<<12 |
		uint64(cbDist)<<8 | uint64(angle)<<4 | uint64(angleFine)
}

func decodePDBMotif(h uint64, nbinDist, nbinAngle uint32) Feature {
	nd := quant.ClampBins(nbinDist, 4)
	na := quant.ClampBins(nbinAngle, 4)
	var f Feature
	f[0] = float32((h >> 21) & mask(5))
	f[1] = float32((h >> 16) & mask(5))
	f[2] = quant.Continuise(uint32((h>>12)&mask(4)), quant.MinDist, quant.MaxDist, nd)
	f[3] = quant.Continuise(uint32((h>>8)&mask(4)), quant.MinDist, quant.MaxDist, nd)
	f[4] = quant.Continuise(uint32((h>>4)&mask(4)), float32(-math.Pi), float32(math.Pi), na)
	return f
}

// --- TrRosetta: 9,3,10x2 = 32 bits, tightly packed ---

func encodeTrRosetta(f Feature, nbinDist, nbinAngle uint32) uint64 {
	nd := quant.ClampBins(nbinDist, 3)
	na := quant.ClampBins(nbinAngle, 2)
	resPair := aaPairToCode(clampAA(f[0]), clampAA(f[1]))
	hDist := quant.Discretise(f[2], quant.MinDist, quant.MaxDist, nd)
	angles := [5]float32{f[3], f[4], f[5], f[6], f[7]}
	var bits uint64 = uint64(resPair)<<23 | uint64(hDist)<<20
	shift := 18
	for _, a := range angles {
		sin, cos := float32(math.Sin(float64(a))), float32(math.Cos(float64(a)))
		hSin := quant.Discretise(sin, quant.MinSinCos, quant.MaxSinCos, na)
		hCos := quant.Discretise(cos, quant.MinSinCos, quant.MaxSinCos, na)
		bits |= uint64(hSin) << uint(shift)
		bits |= uint64(hCos) << uint(shift-2)
		shift -= 4
	}
	return bits
}

func decodeTrRosetta(h uint64, nbinDist, nbinAngle uint32) Feature {
	nd := quant.ClampBins(nbinDist, 3)
	na := quant.ClampBins(nbinAngle, 2)
	var f Feature
	resPair := uint32((h >> 23) & mask(9))
	aa1, aa2 := codeToAAPair(resPair)
	f[0] = float32(aa1)
	f[1] = float32(aa2)
	f[2] = quant.Continuise(uint32((h>>20)&mask(3)), quant.MinDist, quant.MaxDist, nd)
	shift := 18
	for i := 0; i < 5; i++ {
		sin := quant.Continuise(uint32((h>>uint(shift))&mask(2)), quant.MinSinCos, quant.MaxSinCos, na)
		cos := quant.Continuise(uint32((h>>uint(shift-2))&mask(2)), quant.MinSinCos, quant.MaxSinCos, na)
		f[3+i] = float32(math.Atan2(float64(sin), float64(cos)))
		shift -= 4
	}
	return f
}

// --- FoldDiscoDefault: 5,5,4,10x4, 64-bit word, 54 bits used ---

func encodeFoldDiscoDefault(f Feature, nbinDist, nbinAngle uint32) uint64 {
	nd := quant.ClampBins(nbinDist, 4)
	na := quant.ClampBins(nbinAngle, 4)
	aa1 := uint64(clampAA(f[0]))
	aa2 := uint64(clampAA(f[1]))
	hDist := uint64(quant.Discretise(f[2], quant.MinDist, quant.MaxDist, nd))
	angles := [5]float32{f[3], f[4], f[5], f[6], f[7]}
	bits := aa1<<49 | aa2<<44 | hDist<<40
	shift := 36
	for _, a := range angles {
		sin, cos := float32(math.Sin(float64(a))), float32(math.Cos(float64(a)))
		hSin := quant.Discretise(sin, quant.MinSinCos, quant.MaxSinCos, na)
		hCos := quant.Discretise(cos, quant.MinSinCos, quant.MaxSinCos, na)
		bits |= uint64(hSin) << uint(shift)
		bits |= uint64(hCos) << uint(shift-4)
		shift -= 8
	}
	return bits
}

func decodeFoldDiscoDefault(h uint64, nbinDist, nbinAngle uint32) Feature {
	nd := quant.ClampBins(nbinDist, 4)
	na := quant.ClampBins(nbinAngle, 4)
	var f Feature
	f[0] = float32((h >> 49) & mask(5))
	f[1] = float32((h >> 44) & mask(5))
	f[2] = quant.Continuise(uint32((h>>40)&mask(4)), quant.MinDist, quant.MaxDist, nd)
	shift := 36
	for i := 0; i < 5; i++ {
		sin := quant.Continuise(uint32((h>>uint(shift))&mask(4)), quant.MinSinCos, quant.MaxSinCos, na)
		cos := quant.Continuise(uint32((h>>uint(shift-4))&mask(4)), quant.MinSinCos, quant.MaxSinCos, na)
		f[3+i] = float32(math.Atan2(float64(sin), float64(cos)))
		shift -= 8
	}
	return f
}

// --- PointPairFeature: 5,5,4,6x3 = 32 bits, tightly packed ---

func encodePointPairFeature(f Feature, nbinDist, nbinAngle uint32) uint64 {
	nd := quant.ClampBins(nbinDist, 4)
	na := quant.ClampBins(nbinAngle, 3)
	aa1 := uint64(clampAA(f[0]))
	aa2 := uint64(clampAA(f[1]))
	hDist := uint64(quant.Discretise(f[2], quant.MinDist, quant.MaxDist, nd))
	angles := [3]float32{f[3], f[4], f[5]}
	bits := aa1<<27 | aa2<<22 | hDist<<18
	shift := 15
	for _, a := range angles {
		sin, cos := float32(math.Sin(float64(a))), float32(math.Cos(float64(a)))
		hSin := quant.Discretise(sin, quant.MinSinCos, quant.MaxSinCos, na)
		hCos := quant.Discretise(cos, quant.MinSinCos, quant.MaxSinCos, na)
		bits |= uint64(hSin) << uint(shift)
		bits |= uint64(hCos) << uint(shift-3)
		shift -= 6
	}
	return bits
}

func decodePointPairFeature(h uint64, nbinDist, nbinAngle uint32) Feature {
	nd := quant.ClampBins(nbinDist, 4)
	na := quant.ClampBins(nbinAngle, 3)
	var f Feature
	f[0] = float32((h >> 27) & mask(5))
	f[1] = float32((h >> 22) & mask(5))
	f[2] = quant.Continuise(uint32((h>>18)&mask(4)), quant.MinDist, quant.MaxDist, nd)
	shift := 15
	for i := 0; i < 3; i++ {
		sin := quant.Continuise(uint32((h>>uint(shift))&mask(3)), quant.MinSinCos, quant.MaxSinCos, na)
		cos := quant.Continuise(uint32((h>>uint(shift-3))&mask(3)), quant.MinSinCos, quant.MaxSinCos, na)
		f[3+i] = float32(math.Atan2(float64(sin), float64(cos)))
		shift -= 6
	}
	return f
}
