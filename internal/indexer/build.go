// Package indexer drives the indexing data flow spec.md §2 describes:
// directory scan -> parse -> C3 feature extraction -> C2 encoding ->
// sort and run-length-compress -> C5 offset-map build -> persist. The
// directory scan and structure parsing are the external collaborators
// spec.md §1 places out of scope; this package supplies the glue the
// CLI needs to exercise C2-C5 end to end against the YAML structure
// fixtures internal/structure.LoadYAML reads.
package indexer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Danialgharaie/folddisco/internal/feature"
	"github.com/Danialgharaie/folddisco/internal/geomhash"
	"github.com/Danialgharaie/folddisco/internal/logx"
	"github.com/Danialgharaie/folddisco/internal/offsetmap"
	"github.com/Danialgharaie/folddisco/internal/posting"
	"github.com/Danialgharaie/folddisco/internal/structure"
)

// Options controls the feature extraction and encoding every indexed
// residue pair goes through (spec.md §4.2-§4.3).
type Options struct {
	Tag            geomhash.Tag
	NBinDist       uint32
	NBinAngle      uint32
	DistanceCutoff float32
}

// Stats summarises a finished build, surfaced by cmd/folddisco index
// as a report.IndexSummary.
type Stats struct {
	StructuresSeen int
	PairsIndexed   int
	DistinctHashes int
	Capacity       uint64
}

// BuildDirectory scans dir for structure fixtures (spec.md §2's
// "directory scan"/"parse", here concretely `*.yaml` files read via
// structure.LoadYAML), extracts and encodes every residue pair within
// distanceCutoff, and persists the resulting offset map and postings
// array under chunkPrefix (spec.md §4.5, §6). It assigns each
// structure a zero-based sequential id and writes `<prefix>.lookup` and
// `<prefix>.type` alongside the `.offset`/`.value` files.
func BuildDirectory(dir, chunkPrefix string, opts Options, log logx.Logger) (Stats, error) {
	paths, err := structurePaths(dir)
	if err != nil {
		return Stats{}, err
	}

	var allPairs []offsetmap.HashPosting
	var lookup strings.Builder

	for structID, path := range paths {
		s, err := structure.LoadYAML(path)
		if err != nil {
			log.Warn("skipping unreadable structure", "path", path, "err", err)
			continue
		}
		fmt.Fprintf(&lookup, "%d\t%s\n", structID, path)

		pairs := pairsForStructure(s, uint32(structID), opts)
		allPairs = append(allPairs, pairs...)
		log.Debug("extracted structure", "path", path, "n_residues", s.NumResidues(), "n_pairs", len(pairs))
	}

	sort.Slice(allPairs, func(i, j int) bool { return allPairs[i].Hash < allPairs[j].Hash })

	wideKeys := geomhash.WideKeys(opts.Tag)
	m, postings := offsetmap.BuildFromSorted(allPairs, wideKeys)

	if err := m.Dump(chunkPrefix + ".offset"); err != nil {
		return Stats{}, fmt.Errorf("indexer: dump offset map: %w", err)
	}
	if err := offsetmap.DumpPostings(chunkPrefix+".value", postings); err != nil {
		return Stats{}, fmt.Errorf("indexer: dump postings: %w", err)
	}
	if err := os.WriteFile(chunkPrefix+".lookup", []byte(lookup.String()), 0o644); err != nil {
		return Stats{}, fmt.Errorf("indexer: write lookup: %w", err)
	}
	if err := os.WriteFile(chunkPrefix+".type", []byte(geomhash.Name(opts.Tag)+"\n"), 0o644); err != nil {
		return Stats{}, fmt.Errorf("indexer: write type: %w", err)
	}

	return Stats{
		StructuresSeen: len(paths),
		PairsIndexed:   len(allPairs),
		DistinctHashes: int(m.Size()),
		Capacity:       m.Capacity(),
	}, nil
}

// structurePaths returns every `*.yaml`/`*.yml` file directly under
// dir, sorted for a build that is deterministic given the same
// directory contents.
func structurePaths(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// pairsForStructure extracts and encodes every ordered residue pair
// within opts.DistanceCutoff in s, attributing each hash to structID.
// For a pair whose hash is not reported symmetric by the codec
// (spec.md §4.2 Symmetry), both orientations are indexed; the open
// question in spec.md §9 resolves this the same way for every variant,
// not only PointPairFeature (see DESIGN.md).
func pairsForStructure(s *structure.CompactStructure, structID uint32, opts Options) []offsetmap.HashPosting {
	var out []offsetmap.HashPosting
	var f geomhash.Feature
	n := s.NumResidues()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if feature.Extract(s, opts.Tag, i, j, opts.DistanceCutoff, &f) {
				h := geomhash.Encode(opts.Tag, f, opts.NBinDist, opts.NBinAngle)
				out = append(out, offsetmap.HashPosting{
					Hash:    h,
					Posting: posting.Pack(posting.Posting{StructureID: structID, PairID: posting.NewPairID(uint16(i), uint16(j))}),
				})
				if !geomhash.IsSymmetric(opts.Tag, h, opts.NBinDist, opts.NBinAngle) {
					if feature.Extract(s, opts.Tag, j, i, opts.DistanceCutoff, &f) {
						hr := geomhash.Encode(opts.Tag, f, opts.NBinDist, opts.NBinAngle)
						out = append(out, offsetmap.HashPosting{
							Hash:    hr,
							Posting: posting.Pack(posting.Posting{StructureID: structID, PairID: posting.NewPairID(uint16(j), uint16(i))}),
						})
					}
				}
			}
		}
	}
	return out
}
