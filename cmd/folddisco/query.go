package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/pflag"

	"github.com/Danialgharaie/folddisco/internal/config"
	"github.com/Danialgharaie/folddisco/internal/geomhash"
	"github.com/Danialgharaie/folddisco/internal/logx"
	"github.com/Danialgharaie/folddisco/internal/query"
	"github.com/Danialgharaie/folddisco/internal/querier"
	"github.com/Danialgharaie/folddisco/internal/report"
	"github.com/Danialgharaie/folddisco/internal/structure"
)

func runQuery(args []string) {
	fs := pflag.NewFlagSet("query", pflag.ExitOnError)

	structPath := fs.StringP("structure", "s", "", "Query structure fixture (*.yaml)")
	residueStr := fs.StringP("residues", "r", "", `Query residue selection, e.g. "A250,B232,C269" or "A250-252,C269:QK"`)
	defaultChain := fs.StringP("chain", "C", "A", "Default chain for residue segments without one")
	chunkPrefix := fs.StringP("index", "i", "", "Index chunk prefix to query")
	hashType := fs.StringP("hash-type", "t", "FoldDiscoDefault", "Hash variant, must match the index being queried")
	nbinDist := fs.Uint32("nbin-dist", 0, "Distance bin count (0 = variant default)")
	nbinAngle := fs.Uint32("nbin-angle", 0, "Angle bin count (0 = variant default)")
	distTol := fs.String("dist-tol", "", "Comma-separated distance tolerances, in Angstroms, e.g. 0.5,1.0")
	angleTol := fs.String("angle-tol", "", "Comma-separated angle tolerances, in degrees, e.g. 5,10,15")
	distCutoff := fs.Float32("distance-cutoff", 20.0, "Residue-pair distance cutoff, in Angstroms")
	configPath := fs.StringP("config", "c", "", "Optional YAML config file supplying flag defaults")
	verbose := fs.BoolP("verbose", "v", false, "Enable debug logging")
	help := fs.Bool("help", false, "Display help text")

	fs.Usage = func() {
		fmt.Println(`Usage: folddisco query --structure <file> --residues <selection> --index <chunk-prefix> [options]`)
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	if *help {
		fs.Usage()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "folddisco query: loading config: %v\n", err)
		os.Exit(1)
	}
	*hashType = config.MergeString(*hashType, string(cfg.HashType), fs.Changed("hash-type"))
	*nbinDist = config.MergeUint32(*nbinDist, cfg.NBinDist, fs.Changed("nbin-dist"))
	*nbinAngle = config.MergeUint32(*nbinAngle, cfg.NBinAngle, fs.Changed("nbin-angle"))
	*distCutoff = config.MergeFloat32(*distCutoff, cfg.DistanceCutoff, fs.Changed("distance-cutoff"))
	*chunkPrefix = config.MergeString(*chunkPrefix, cfg.ChunkPrefix, fs.Changed("index"))

	if *structPath == "" || *residueStr == "" || *chunkPrefix == "" {
		fmt.Fprintln(os.Stderr, "folddisco query: --structure, --residues and --index are required")
		fs.Usage()
		os.Exit(1)
	}

	tag, ok := geomhash.ParseName(*hashType)
	if !ok {
		fmt.Fprintf(os.Stderr, "folddisco query: unknown hash type %q\n", *hashType)
		os.Exit(1)
	}

	distThresholds, err := query.ParseThresholdString(*distTol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "folddisco query: bad --dist-tol: %v\n", err)
		os.Exit(1)
	}
	angleThresholds, err := query.ParseThresholdString(*angleTol)
	if err != nil {
		fmt.Fprintf(os.Stderr, "folddisco query: bad --angle-tol: %v\n", err)
		os.Exit(1)
	}
	if len(cfg.DistThresholds) > 0 && !fs.Changed("dist-tol") {
		distThresholds = cfg.DistThresholds
	}
	if len(cfg.AngleThresholds) > 0 && !fs.Changed("angle-tol") {
		angleThresholds = cfg.AngleThresholds
	}

	chainByte := byte('A')
	if len(*defaultChain) > 0 {
		chainByte = (*defaultChain)[0]
	}

	level := logx.LevelInfo
	if *verbose {
		level = logx.LevelDebug
	}
	log := logx.New(level).With("hash_type", *hashType, "chunk_prefix", *chunkPrefix)

	s, err := structure.LoadYAML(*structPath)
	if err != nil {
		log.Error("loading query structure failed", "err", err)
		os.Exit(1)
	}

	residues, substitutions, err := query.ParseQueryString(*residueStr, chainByte)
	if err != nil {
		fmt.Fprintf(os.Stderr, "folddisco query: bad --residues: %v\n", err)
		os.Exit(1)
	}
	if len(residues) == 0 {
		fmt.Fprintln(os.Stderr, "folddisco query: --residues resolved to no residues")
		os.Exit(1)
	}

	result, err := querier.Run(s, residues, substitutions, *chunkPrefix, querier.Options{
		Tag:             tag,
		NBinDist:        *nbinDist,
		NBinAngle:       *nbinAngle,
		DistThresholds:  distThresholds,
		AngleThresholds: angleThresholds,
		DistanceCutoff:  *distCutoff,
	})
	if err != nil {
		log.Error("query failed", "err", err)
		os.Exit(1)
	}

	fmt.Println(report.RenderQuery(report.QuerySummary{
		HashType:       *hashType,
		ResiduesUsed:   len(residues),
		ExactHashes:    result.ExactHashes,
		NeighborHashes: result.NeighborHashes,
		Candidates:     len(result.CandidateHits),
	}))

	printCandidates(result.CandidateHits)
}

func printCandidates(hits map[uint32]int) {
	type candidate struct {
		StructureID uint32
		Hits        int
	}
	candidates := make([]candidate, 0, len(hits))
	for id, n := range hits {
		candidates = append(candidates, candidate{id, n})
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Hits != candidates[j].Hits {
			return candidates[i].Hits > candidates[j].Hits
		}
		return candidates[i].StructureID < candidates[j].StructureID
	})
	for _, c := range candidates {
		fmt.Printf("structure_id=%d hits=%d\n", c.StructureID, c.Hits)
	}
}
