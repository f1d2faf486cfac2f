// Package query implements the query-string grammar and hash-set
// expansion described in spec.md §4.4/§6 (C4): turning a
// human-written residue selector into the set of hash values a posting
// lookup should try.
package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Danialgharaie/folddisco/internal/aa"
)

// Residue identifies one selected query residue by chain and
// author-numbered serial.
type Residue struct {
	Chain  byte
	Serial uint64
}

// ParseQueryString parses a comma-separated list of residue selectors
// of the form [chain]residue[-residue][:AAs] into the ordered list of
// residues it names and, in parallel, the amino-acid substitution set
// (if any) requested for each one. defaultChain is used for any segment
// that omits a leading chain letter; it falls back to 'A' if it isn't
// an ASCII letter itself.
//
// A malformed segment fails the whole query with a descriptive error
// rather than being silently dropped (spec.md §7: a query-string parse
// error aborts the query at the expander front-end).
func ParseQueryString(queryString string, defaultChain byte) ([]Residue, [][]int, error) {
	var residues []Residue
	var substitutions [][]int

	if queryString == "" {
		return residues, substitutions, nil
	}
	if !isASCIILetter(defaultChain) {
		defaultChain = 'A'
	}

	stripped := strings.ReplaceAll(queryString, " ", "")
	for _, segment := range strings.Split(stripped, ",") {
		if segment == "" {
			continue
		}
		chain, rest := splitChain(segment, defaultChain)

		rangePart, subst := splitSubstitution(rest)

		start, end, isRange, rangeErr := splitRange(rangePart)
		if rangeErr != nil {
			return nil, nil, fmt.Errorf("query segment %q: %w", segment, rangeErr)
		}
		if isRange {
			for serial := start; serial <= end; serial++ {
				residues = append(residues, Residue{chain, serial})
				substitutions = append(substitutions, subst)
			}
			continue
		}
		serial, err := strconv.ParseUint(rangePart, 10, 64)
		if err != nil {
			return nil, nil, fmt.Errorf("query segment %q: invalid residue serial %q: %w", segment, rangePart, err)
		}
		residues = append(residues, Residue{chain, serial})
		substitutions = append(substitutions, subst)
	}

	return residues, substitutions, nil
}

// splitChain peels a leading ASCII chain letter off segment, or returns
// defaultChain if segment starts with a digit.
//
// NOTE: a chain ID longer than one character is not supported by this
// grammar, matching the grounded reference.
func splitChain(segment string, defaultChain byte) (byte, string) {
	if segment == "" {
		return defaultChain, segment
	}
	first := segment[0]
	if isASCIILetter(first) {
		return first, segment[1:]
	}
	return defaultChain, segment
}

// splitSubstitution splits rest on the first ':' into the residue range
// part and, if present, the expanded set of amino-acid codes the
// substitution suffix names.
func splitSubstitution(rest string) (string, []int) {
	idx := strings.IndexByte(rest, ':')
	if idx < 0 {
		return rest, nil
	}
	rangePart := rest[:idx]
	suffix := rest[idx+1:]

	var codes []int
	for _, r := range suffix {
		if !aa.IsGroupChar(r) {
			continue
		}
		codes = append(codes, aa.OneLetterToCodes(r)...)
	}
	return rangePart, codes
}

// splitRange parses "N-M" into (N, M, true, nil), or reports
// isRange=false if rangePart contains no '-'. A rangePart that does
// contain a '-' but whose endpoints aren't both valid serials is a
// malformed segment, reported as an error rather than silently treated
// as a non-range.
func splitRange(rangePart string) (start, end uint64, isRange bool, err error) {
	dash := strings.IndexByte(rangePart, '-')
	if dash < 0 {
		return 0, 0, false, nil
	}
	s, errS := strconv.ParseUint(rangePart[:dash], 10, 64)
	e, errE := strconv.ParseUint(rangePart[dash+1:], 10, 64)
	if errS != nil {
		return 0, 0, false, fmt.Errorf("invalid range start %q: %w", rangePart[:dash], errS)
	}
	if errE != nil {
		return 0, 0, false, fmt.Errorf("invalid range end %q: %w", rangePart[dash+1:], errE)
	}
	if e < s {
		return 0, 0, false, fmt.Errorf("range end %d is before start %d", e, s)
	}
	return s, e, true, nil
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
