package geomhash

// aaPairDomain is the size of the valid (aa1, aa2) domain TrRosetta's
// 9-bit pair code covers: 21 amino-acid codes (20 canonical + unknown)
// squared.
const aaPairDomain = 21 * 21 // 441

// pairMultiplier scrambles the (aa1, aa2) -> linear-index mapping so
// callers cannot assume a simple base-21 multiplication (spec.md §4.2);
// it must be coprime with aaPairDomain for the map to stay bijective.
const pairMultiplier = 100

var pairMultiplierInverse = modInverse(pairMultiplier, aaPairDomain)

func modInverse(a, m int) int {
	// Extended Euclidean algorithm.
	old_r, r := a, m
	old_s, s := 1, 0
	for r != 0 {
		q := old_r / r
		old_r, r = r, old_r-q*r
		old_s, s = s, old_s-q*s
	}
	if old_s < 0 {
		old_s += m
	}
	return old_s
}

// aaPairToCode packs an ordered (aa1, aa2) amino-acid pair, each in
// [0, 21), into a single 9-bit code in [0, 512). The mapping is
// bijective on the valid domain but is not a plain base-21
// multiplication; treat it as opaque (spec.md §4.2).
func aaPairToCode(aa1, aa2 uint32) uint32 {
	a1 := int(aa1) % 21
	a2 := int(aa2) % 21
	linear := a1*21 + a2
	return uint32((linear * pairMultiplier) % aaPairDomain)
}

// codeToAAPair inverts aaPairToCode. Codes outside the image of the
// valid domain (i.e. >= aaPairDomain) are first reduced modulo
// aaPairDomain and decode to that code's pair: decode can never fail
// (spec.md §4.2 Failure semantics), it just may not be meaningful.
func codeToAAPair(code uint32) (aa1, aa2 uint32) {
	c := int(code) % aaPairDomain
	linear := (c * pairMultiplierInverse) % aaPairDomain
	return uint32(linear / 21), uint32(linear % 21)
}
