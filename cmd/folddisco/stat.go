package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/Danialgharaie/folddisco/internal/geomhash"
	"github.com/Danialgharaie/folddisco/internal/offsetmap"
)

func runStat(args []string) {
	fs := pflag.NewFlagSet("stat", pflag.ExitOnError)
	chunkPrefix := fs.StringP("index", "i", "", "Index chunk prefix to inspect")
	help := fs.Bool("help", false, "Display help text")

	fs.Usage = func() {
		fmt.Println("Usage: folddisco stat --index <chunk-prefix>")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	if *help {
		fs.Usage()
		return
	}
	if *chunkPrefix == "" {
		fmt.Fprintln(os.Stderr, "folddisco stat: --index is required")
		fs.Usage()
		os.Exit(1)
	}

	prefixes := offsetmap.ChunkPrefixes(*chunkPrefix)
	fmt.Printf("index %s: %d chunk(s)\n", *chunkPrefix, len(prefixes))

	var totalSize, totalCapacity uint64
	for _, prefix := range prefixes {
		typeBytes, err := os.ReadFile(prefix + ".type")
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %s: reading .type: %v\n", prefix, err)
			os.Exit(1)
		}
		tagName := strings.TrimSpace(string(typeBytes))
		tag, ok := geomhash.ParseName(tagName)
		if !ok {
			fmt.Fprintf(os.Stderr, "  %s: unrecognised hash type %q\n", prefix, tagName)
			os.Exit(1)
		}

		m, err := offsetmap.Load(prefix+".offset", geomhash.WideKeys(tag))
		if err != nil {
			fmt.Fprintf(os.Stderr, "  %s: loading offset map: %v\n", prefix, err)
			os.Exit(1)
		}
		fmt.Printf("  %s: hash_type=%s distinct_hashes=%d capacity=%d\n", prefix, tagName, m.Size(), m.Capacity())
		totalSize += m.Size()
		totalCapacity += m.Capacity()
		m.Close()
	}
	fmt.Printf("total: distinct_hashes=%d capacity=%d\n", totalSize, totalCapacity)
}
