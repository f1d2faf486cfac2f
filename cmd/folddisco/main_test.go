package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tripeptideFixture = `
residues:
  - chain: B
    serial: 57
    name: HIS
    ca: [0.0, 0.0, 0.0]
    n: [1.3, 0.0, 0.0]
    c: [0.0, 1.3, 0.0]
  - chain: B
    serial: 102
    name: SER
    ca: [6.0, 0.0, 0.0]
    n: [5.0, 0.5, 0.0]
    c: [6.0, 1.3, 0.0]
`

// captureStdout redirects os.Stdout for the duration of fn and returns
// everything written to it.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w
	defer func() { os.Stdout = old }()

	fn()

	require.NoError(t, w.Close())
	var buf bytes.Buffer
	_, err = io.Copy(&buf, r)
	require.NoError(t, err)
	return buf.String()
}

func TestIndexThenQueryRoundTrip(t *testing.T) {
	structDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(structDir, "s.yaml"), []byte(tripeptideFixture), 0o644))

	chunkPrefix := filepath.Join(t.TempDir(), "idx")

	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	indexOut := captureStdout(t, func() {
		os.Args = []string{"folddisco", "index", "--dir", structDir, "--out", chunkPrefix, "--hash-type", "PDBMotifSinCos"}
		main()
	})
	assert.Contains(t, indexOut, "folddisco index")
	assert.Contains(t, indexOut, "PDBMotifSinCos")

	queryOut := captureStdout(t, func() {
		os.Args = []string{"folddisco", "query", "--structure", filepath.Join(structDir, "s.yaml"), "--residues", "B57,B102", "--index", chunkPrefix, "--hash-type", "PDBMotifSinCos"}
		main()
	})
	assert.Contains(t, queryOut, "folddisco query")
	assert.Contains(t, queryOut, "structure_id=0")

	statOut := captureStdout(t, func() {
		os.Args = []string{"folddisco", "stat", "--index", chunkPrefix}
		main()
	})
	assert.Contains(t, statOut, "PDBMotifSinCos")
}

func TestUsagePrintedForHelpSubcommand(t *testing.T) {
	origArgs := os.Args
	defer func() { os.Args = origArgs }()

	out := captureStdout(t, func() {
		os.Args = []string{"folddisco", "help"}
		main()
	})
	assert.True(t, strings.Contains(out, "Usage:"))
}
