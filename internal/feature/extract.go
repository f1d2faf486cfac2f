// Package feature computes the geometric feature vector (spec.md §4.3,
// C3) for an ordered residue pair, ready to hand to
// internal/geomhash.Encode. It owns all vector geometry: distances,
// planar angles and dihedrals derived from backbone and synthetic Cβ
// coordinates.
package feature

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/Danialgharaie/folddisco/internal/aa"
	"github.com/Danialgharaie/folddisco/internal/geomhash"
	"github.com/Danialgharaie/folddisco/internal/structure"
)

// Extract fills dst with the feature vector for the ordered pair
// (i, j) under tag's geometric convention and reports whether the pair
// passed the distance cutoff and had the required atoms (spec.md §4.3
// edge cases: residues missing required atoms, or farther apart than
// distCutoff, are skipped).
func Extract(s *structure.CompactStructure, tag geomhash.Tag, i, j int, distCutoff float32, dst *geomhash.Feature) bool {
	if i == j {
		return false
	}
	if !s.HasRequiredAtoms(i) || !s.HasRequiredAtoms(j) {
		return false
	}

	caI, caJ := s.CA(i), s.CA(j)
	cbI, cbJ := s.CB(i), s.CB(j)
	nI, nJ := s.N(i), s.N(j)

	cbDist := float32(cbI.Sub(cbJ).Norm())
	if cbDist > distCutoff {
		return false
	}

	aa1 := float32(aa.CodeForName(s.GetResName(i)))
	aa2 := float32(aa.CodeForName(s.GetResName(j)))

	f := geomhash.Feature{}
	f[0] = aa1
	f[1] = aa2

	switch tag {
	case geomhash.PDBMotif, geomhash.PDBMotifSinCos, geomhash.PDBMotifHalf:
		// spec.md §9: primary CA distance, secondary CB distance, one
		// angle describing the Cβ_i-Cβ_j vector's deviation from the
		// Cα_i-Cβ_i side-chain direction.
		f[2] = float32(caI.Sub(caJ).Norm())
		f[3] = cbDist
		f[4] = float32(angleBetween(cbI.Sub(cbJ), cbI.Sub(caI)))

	case geomhash.TrRosetta, geomhash.FoldDiscoDefault:
		// The standard trRosetta inter-residue orientation: one
		// dihedral around the Cβ_i-Cβ_j axis (omega), two dihedrals
		// anchored at each residue's backbone N (theta1, theta2), and
		// two planar angles at each Cβ (phi1, phi2).
		f[2] = cbDist
		f[3] = float32(dihedral(caI, cbI, cbJ, caJ))
		f[4] = float32(dihedral(nI, caI, cbI, cbJ))
		f[5] = float32(dihedral(nJ, caJ, cbJ, cbI))
		f[6] = float32(angleBetween(caI.Sub(cbI), cbJ.Sub(cbI)))
		f[7] = float32(angleBetween(caJ.Sub(cbJ), cbI.Sub(cbJ)))

	case geomhash.PointPairFeature:
		// The classic point-pair feature: the angles between each
		// point's normal (approximated by its Cα->Cβ side-chain
		// direction) and the connecting vector, plus the angle between
		// the two normals.
		d := cbJ.Sub(cbI)
		n1 := cbI.Sub(caI)
		n2 := cbJ.Sub(caJ)
		f[2] = cbDist
		f[3] = float32(angleBetween(n1, d))
		f[4] = float32(angleBetween(n2, d))
		f[5] = float32(angleBetween(n1, n2))
	}

	*dst = f
	return true
}

// angleBetween returns the planar angle, in radians, between two
// vectors via their dot product and norms.
func angleBetween(a, b r3.Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	cos := a.Dot(b) / (na * nb)
	if cos > 1 {
		cos = 1
	} else if cos < -1 {
		cos = -1
	}
	return math.Acos(cos)
}

// dihedral returns the signed dihedral angle, in radians, of the
// p0-p1-p2-p3 torsion, via the standard cross-product/atan2 formula
// that stays well-behaved near 0 and π (unlike acos of the dot
// product between the two plane normals).
func dihedral(p0, p1, p2, p3 r3.Vector) float64 {
	b0 := p0.Sub(p1)
	b1 := p2.Sub(p1)
	b2 := p3.Sub(p2)

	b1n := b1.Normalize()
	v := b0.Sub(b1n.Mul(b0.Dot(b1n)))
	w := b2.Sub(b1n.Mul(b2.Dot(b1n)))

	x := v.Dot(w)
	y := b1n.Cross(v).Dot(w)
	return math.Atan2(y, x)
}
