// Command folddisco is the geometric-hash indexing and query engine's
// CLI front end: a single binary dispatching on its first argument to
// the index, query and stat subcommands, each owning its own
// pflag.FlagSet, the way cmd/direwolf dispatches on its mode flags in
// the teacher repo.
package main

import (
	"fmt"
	"os"

	"github.com/Danialgharaie/folddisco/internal/version"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "index":
		runIndex(os.Args[2:])
	case "query":
		runQuery(os.Args[2:])
	case "stat":
		runStat(os.Args[2:])
	case "version", "--version":
		fmt.Println(version.String())
	case "help", "--help", "-h":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "folddisco: unknown subcommand %q\n\n", os.Args[1])
		usage()
		os.Exit(1)
	}
}

func usage() {
	fmt.Println(`folddisco — geometric-hash motif indexing and query engine

Usage:
	folddisco index  [options]   build an inverted index from a directory of structures
	folddisco query  [options]   look up a query motif against a built index
	folddisco stat   [options]   print summary statistics for a built index
	folddisco version            print build version information

Run "folddisco <subcommand> --help" for subcommand-specific options.`)
}
