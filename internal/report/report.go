// Package report renders the end-of-run summaries folddisco's index
// and query subcommands print: a styled terminal banner, in the spirit
// of a tool's final "done" message, built with
// github.com/charmbracelet/lipgloss rather than plain fmt.Printf.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/lestrrat-go/strftime"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
)

// stampPattern formats the "finished:" timestamp of the index-build
// banner, the way the teacher formats timestamped log lines in
// src/tq.go/src/xmit.go.
const stampPattern = "%Y-%m-%dT%H:%M:%S"

// timestamp formats now with the shared stamp pattern, falling back to
// fallback on a formatting error rather than surfacing it in a
// reporting path.
func timestamp(fallback string) string {
	formatted, err := strftime.Format(stampPattern, time.Now())
	if err != nil {
		return fallback
	}
	return formatted
}

// IndexSummary is the result of one index-build run, as handed to
// RenderIndex by cmd/folddisco index.
type IndexSummary struct {
	ChunkPrefix    string
	HashType       string
	StructuresSeen int
	PairsIndexed   int
	DistinctHashes int
	Capacity       uint64
}

// RenderIndex renders an index-build summary banner.
func RenderIndex(s IndexSummary) string {
	title := titleStyle.Render(fmt.Sprintf("folddisco index — %s", s.HashType))
	lines := []string{
		title,
		fmt.Sprintf("%s %s", labelStyle.Render("chunk prefix:"), s.ChunkPrefix),
		fmt.Sprintf("%s %d", labelStyle.Render("structures indexed:"), s.StructuresSeen),
		fmt.Sprintf("%s %d", labelStyle.Render("residue pairs indexed:"), s.PairsIndexed),
		fmt.Sprintf("%s %d", labelStyle.Render("distinct hashes:"), s.DistinctHashes),
		fmt.Sprintf("%s %d", labelStyle.Render("offset-map capacity:"), s.Capacity),
		fmt.Sprintf("%s %s", labelStyle.Render("finished:"), timestamp("n/a")),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}

// QuerySummary is the result of one query run.
type QuerySummary struct {
	HashType       string
	ResiduesUsed   int
	ExactHashes    int
	NeighborHashes int
	Candidates     int
}

// RenderQuery renders a query summary banner.
func RenderQuery(s QuerySummary) string {
	title := titleStyle.Render(fmt.Sprintf("folddisco query — %s", s.HashType))
	lines := []string{
		title,
		fmt.Sprintf("%s %d", labelStyle.Render("residues resolved:"), s.ResiduesUsed),
		fmt.Sprintf("%s %d", labelStyle.Render("exact hashes:"), s.ExactHashes),
		fmt.Sprintf("%s %d", labelStyle.Render("neighbour hashes:"), s.NeighborHashes),
		fmt.Sprintf("%s %d", labelStyle.Render("candidate structures:"), s.Candidates),
	}
	return boxStyle.Render(strings.Join(lines, "\n"))
}
