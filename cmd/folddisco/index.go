package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/Danialgharaie/folddisco/internal/config"
	"github.com/Danialgharaie/folddisco/internal/geomhash"
	"github.com/Danialgharaie/folddisco/internal/indexer"
	"github.com/Danialgharaie/folddisco/internal/logx"
	"github.com/Danialgharaie/folddisco/internal/report"
)

func runIndex(args []string) {
	fs := pflag.NewFlagSet("index", pflag.ExitOnError)

	dir := fs.StringP("dir", "d", "", "Directory of structure fixtures to index (*.yaml/*.yml)")
	chunkPrefix := fs.StringP("out", "o", "", "Output chunk prefix, e.g. index/default")
	hashType := fs.StringP("hash-type", "t", "FoldDiscoDefault", "Hash variant: PDBMotif, PDBMotifSinCos, PDBMotifHalf, TrRosetta, FoldDiscoDefault, PointPairFeature")
	nbinDist := fs.Uint32("nbin-dist", 0, "Distance bin count (0 = variant default)")
	nbinAngle := fs.Uint32("nbin-angle", 0, "Angle bin count (0 = variant default)")
	distCutoff := fs.Float32("distance-cutoff", 20.0, "Residue-pair distance cutoff, in Angstroms")
	configPath := fs.StringP("config", "c", "", "Optional YAML config file supplying flag defaults")
	verbose := fs.BoolP("verbose", "v", false, "Enable debug logging")
	help := fs.Bool("help", false, "Display help text")

	fs.Usage = func() {
		fmt.Println("Usage: folddisco index --dir <structures> --out <chunk-prefix> [options]")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	if *help {
		fs.Usage()
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "folddisco index: loading config: %v\n", err)
		os.Exit(1)
	}
	*hashType = config.MergeString(*hashType, string(cfg.HashType), fs.Changed("hash-type"))
	*nbinDist = config.MergeUint32(*nbinDist, cfg.NBinDist, fs.Changed("nbin-dist"))
	*nbinAngle = config.MergeUint32(*nbinAngle, cfg.NBinAngle, fs.Changed("nbin-angle"))
	*distCutoff = config.MergeFloat32(*distCutoff, cfg.DistanceCutoff, fs.Changed("distance-cutoff"))
	*chunkPrefix = config.MergeString(*chunkPrefix, cfg.ChunkPrefix, fs.Changed("out"))

	if *dir == "" || *chunkPrefix == "" {
		fmt.Fprintln(os.Stderr, "folddisco index: --dir and --out are required")
		fs.Usage()
		os.Exit(1)
	}

	tag, ok := geomhash.ParseName(*hashType)
	if !ok {
		fmt.Fprintf(os.Stderr, "folddisco index: unknown hash type %q\n", *hashType)
		os.Exit(1)
	}

	level := logx.LevelInfo
	if *verbose {
		level = logx.LevelDebug
	}
	log := logx.New(level).With("hash_type", *hashType, "chunk_prefix", *chunkPrefix)

	log.Info("indexing started", "dir", *dir)
	stats, err := indexer.BuildDirectory(*dir, *chunkPrefix, indexer.Options{
		Tag:            tag,
		NBinDist:       *nbinDist,
		NBinAngle:      *nbinAngle,
		DistanceCutoff: *distCutoff,
	}, log)
	if err != nil {
		log.Error("indexing failed", "err", err)
		os.Exit(1)
	}

	fmt.Println(report.RenderIndex(report.IndexSummary{
		ChunkPrefix:    *chunkPrefix,
		HashType:       *hashType,
		StructuresSeen: stats.StructuresSeen,
		PairsIndexed:   stats.PairsIndexed,
		DistinctHashes: stats.DistinctHashes,
		Capacity:       stats.Capacity,
	}))
}
