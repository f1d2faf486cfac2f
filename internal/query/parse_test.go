package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryStringBasic(t *testing.T) {
	residues, subs, err := ParseQueryString("A250,B232,C269", 'A')
	require.NoError(t, err)
	assert.Equal(t, []Residue{{'A', 250}, {'B', 232}, {'C', 269}}, residues)
	assert.Equal(t, [][]int{nil, nil, nil}, subs)
}

func TestParseQueryStringWithSpace(t *testing.T) {
	residues, _, err := ParseQueryString("A250, A232, A269", 'A')
	require.NoError(t, err)
	assert.Equal(t, []Residue{{'A', 250}, {'A', 232}, {'A', 269}}, residues)
}

func TestParseQueryStringWithSpaceAndNoChain(t *testing.T) {
	residues, _, err := ParseQueryString("250, 232, 269", 'A')
	require.NoError(t, err)
	assert.Equal(t, []Residue{{'A', 250}, {'A', 232}, {'A', 269}}, residues)
}

func TestParseQueryStringWithAASubstitution(t *testing.T) {
	// R = 1, K = 11, Q = 5
	residues, subs, err := ParseQueryString("A250:R,B232:K,C269:QK", 'A')
	require.NoError(t, err)
	assert.Equal(t, []Residue{{'A', 250}, {'B', 232}, {'C', 269}}, residues)
	assert.Equal(t, [][]int{{1}, {11}, {5, 11}}, subs)

	residues, subs, err = ParseQueryString("250:R,232:K,269:QK", 'A')
	require.NoError(t, err)
	assert.Equal(t, []Residue{{'A', 250}, {'A', 232}, {'A', 269}}, residues)
	assert.Equal(t, [][]int{{1}, {11}, {5, 11}}, subs)
}

func TestParseQueryStringWithRange(t *testing.T) {
	residues, subs, err := ParseQueryString("A250-252,B232-234,C269:Q", 'A')
	require.NoError(t, err)
	assert.Equal(t, []Residue{
		{'A', 250}, {'A', 251}, {'A', 252},
		{'B', 232}, {'B', 233}, {'B', 234},
		{'C', 269},
	}, residues)
	assert.Equal(t, [][]int{nil, nil, nil, nil, nil, nil, {5}}, subs)
}

func TestParseQueryStringEmpty(t *testing.T) {
	residues, subs, err := ParseQueryString("", 'A')
	require.NoError(t, err)
	assert.Empty(t, residues)
	assert.Empty(t, subs)
}

func TestParseQueryStringDefaultChainFallsBackToA(t *testing.T) {
	residues, _, err := ParseQueryString("250", '9')
	require.NoError(t, err)
	assert.Equal(t, []Residue{{'A', 250}}, residues)
}

// spec.md §7: a parse error in the query string must fail the whole
// query with a descriptive message, not silently drop the bad segment.
func TestParseQueryStringMalformedSerialFailsTheWholeQuery(t *testing.T) {
	residues, subs, err := ParseQueryString("A250,Bxyz,A269", 'A')
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bxyz")
	assert.Nil(t, residues)
	assert.Nil(t, subs)
}

func TestParseQueryStringMalformedRangeFailsTheWholeQuery(t *testing.T) {
	residues, subs, err := ParseQueryString("A250-abc", 'A')
	require.Error(t, err)
	assert.Nil(t, residues)
	assert.Nil(t, subs)
}

func TestParseThresholdString(t *testing.T) {
	got, err := ParseThresholdString("0.5, 1.0, 2")
	assert.NoError(t, err)
	assert.Equal(t, []float32{0.5, 1.0, 2}, got)

	got, err = ParseThresholdString("")
	assert.NoError(t, err)
	assert.Nil(t, got)
}
