// Package aa maps amino-acid identities between their three-letter PDB
// codes, one-letter IUPAC codes and the integer domain FoldDisco's hash
// codecs pack into bit fields.
package aa

import "strings"

// Unknown is the code assigned to any residue name absent from the
// canonical table, per spec.md §3 ("20 canonical residues + unknown").
const Unknown = 20

// NumCodes is the size of the amino-acid domain, canonical residues plus Unknown.
const NumCodes = 21

var threeLetterToCode = map[string]int{
	"ALA": 0, "ARG": 1, "ASN": 2, "ASP": 3, "CYS": 4,
	"GLN": 5, "GLU": 6, "GLY": 7, "HIS": 8, "ILE": 9,
	"LEU": 10, "LYS": 11, "MET": 12, "PHE": 13, "PRO": 14,
	"SER": 15, "THR": 16, "TRP": 17, "TYR": 18, "VAL": 19,
}

var codeToThreeLetter = func() [NumCodes]string {
	var table [NumCodes]string
	for name, code := range threeLetterToCode {
		table[code] = name
	}
	table[Unknown] = "UNK"
	return table
}()

// CodeForName returns the integer code for a three-letter residue name.
// Unrecognised names (including "UNK" itself) map to Unknown.
func CodeForName(name [3]byte) int {
	key := strings.ToUpper(string(name[:]))
	if code, ok := threeLetterToCode[key]; ok {
		return code
	}
	return Unknown
}

// NameForCode returns the three-letter residue name for a code, or "UNK"
// for any code outside [0, 19].
func NameForCode(code int) string {
	if code < 0 || code >= len(codeToThreeLetter) || codeToThreeLetter[code] == "" {
		return "UNK"
	}
	return codeToThreeLetter[code]
}

var oneLetterToCode = map[rune]int{
	'A': 0, 'R': 1, 'N': 2, 'D': 3, 'C': 4,
	'Q': 5, 'E': 6, 'G': 7, 'H': 8, 'I': 9,
	'L': 10, 'K': 11, 'M': 12, 'F': 13, 'P': 14,
	'S': 15, 'T': 16, 'W': 17, 'Y': 18, 'V': 19,
}

// Class letters expand to a set of codes rather than a single one. The
// spec (query-string grammar, spec.md §6) leaves the exact ambiguity
// table open; this follows the IUPAC ambiguity conventions: B is
// Asp-or-Asn, Z is Glu-or-Gln, J is Leu-or-Ile, X is any canonical
// residue. See SPEC_FULL.md C0 and DESIGN.md for the decision record.
var classLetterToCodes = map[rune][]int{
	'B': {2, 3},
	'Z': {5, 6},
	'J': {9, 10},
	'X': {0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19},
}

// IsGroupChar reports whether r is a one-letter amino-acid code or class
// letter accepted in a query-string substitution segment.
func IsGroupChar(r rune) bool {
	r = toUpperASCII(r)
	if _, ok := oneLetterToCode[r]; ok {
		return true
	}
	_, ok := classLetterToCodes[r]
	return ok
}

// OneLetterToCodes expands a single letter (amino acid or class) into
// the set of integer codes it denotes. Unrecognised letters yield nil.
func OneLetterToCodes(r rune) []int {
	r = toUpperASCII(r)
	if code, ok := oneLetterToCode[r]; ok {
		return []int{code}
	}
	if codes, ok := classLetterToCodes[r]; ok {
		out := make([]int, len(codes))
		copy(out, codes)
		return out
	}
	return nil
}

func toUpperASCII(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
