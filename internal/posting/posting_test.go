package posting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestPackUnpackRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sid := rapid.Uint32().Draw(t, "structureID")
		pid := rapid.Uint32().Draw(t, "pairID")
		p := Posting{StructureID: sid, PairID: pid}
		got := Unpack(Pack(p))
		assert.Equal(t, p, got)
	})
}

func TestPairIDRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		i := uint16(rapid.Uint32Range(0, 65535).Draw(t, "i"))
		j := uint16(rapid.Uint32Range(0, 65535).Draw(t, "j"))
		pid := NewPairID(i, j)
		gotI, gotJ := Posting{PairID: pid}.ResidueIndices()
		assert.Equal(t, i, gotI)
		assert.Equal(t, j, gotJ)
	})
}
