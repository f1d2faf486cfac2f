// Package querier drives the querying data flow spec.md §2 describes,
// from the point a query structure has been parsed onward: C3 feature
// extraction, C4 expansion, and C5 offset-map lookup across every chunk
// of a (possibly chunked) index. Posting-list intersection and scoring
// are the external ranker's job (spec.md §1 Non-goals); this package
// stops at retrieval, returning per-structure hit counts.
package querier

import (
	"github.com/Danialgharaie/folddisco/internal/geomhash"
	"github.com/Danialgharaie/folddisco/internal/offsetmap"
	"github.com/Danialgharaie/folddisco/internal/posting"
	"github.com/Danialgharaie/folddisco/internal/query"
	"github.com/Danialgharaie/folddisco/internal/structure"
)

// Options mirrors query.Options; it is restated here rather than
// embedded so callers can construct it without importing
// internal/query directly.
type Options struct {
	Tag             geomhash.Tag
	NBinDist        uint32
	NBinAngle       uint32
	DistThresholds  []float32
	AngleThresholds []float32
	DistanceCutoff  float32
}

// Result is the retrieval outcome of one query run: how many hashes
// the expander emitted of each kind, and how many postings (grouped by
// structure id) each expanded hash matched across every index chunk.
type Result struct {
	ExactHashes    int
	NeighborHashes int
	CandidateHits  map[uint32]int
}

// Run expands the query residue selection against s and looks up every
// resulting hash across the chunked index rooted at chunkPrefix
// (spec.md §4.5 Chunking), returning aggregate hit counts per
// structure id. It opens and closes each chunk's memory mapping within
// the call; no mapping outlives Run.
func Run(s *structure.CompactStructure, residues []query.Residue, substitutions [][]int, chunkPrefix string, opts Options) (Result, error) {
	hashes, _, _ := query.Expand(s, residues, substitutions, query.Options{
		Tag:             opts.Tag,
		NBinDist:        opts.NBinDist,
		NBinAngle:       opts.NBinAngle,
		DistThresholds:  opts.DistThresholds,
		AngleThresholds: opts.AngleThresholds,
		DistanceCutoff:  opts.DistanceCutoff,
	})

	result := Result{CandidateHits: make(map[uint32]int)}
	for _, hit := range hashes {
		if hit.Exact {
			result.ExactHashes++
		} else {
			result.NeighborHashes++
		}
	}

	prefixes := offsetmap.ChunkPrefixes(chunkPrefix)
	wideKeys := geomhash.WideKeys(opts.Tag)

	type chunk struct {
		m        *offsetmap.Loaded
		postings []uint64
	}
	var chunks []chunk
	defer func() {
		for _, c := range chunks {
			c.m.Close()
			offsetmap.UnmapPostings(c.postings)
		}
	}()

	for _, prefix := range prefixes {
		m, err := offsetmap.Load(prefix+".offset", wideKeys)
		if err != nil {
			return result, err
		}
		postings, err := offsetmap.LoadPostings(prefix + ".value")
		if err != nil {
			m.Close()
			return result, err
		}
		chunks = append(chunks, chunk{m: m, postings: postings})
	}

	for hash := range hashes {
		for _, c := range chunks {
			v, ok := c.m.Get(hash)
			if !ok {
				continue
			}
			for k := uint64(0); k < v.Length; k++ {
				p := posting.Unpack(c.postings[v.Offset+k])
				result.CandidateHits[p.StructureID]++
			}
		}
	}

	return result, nil
}
