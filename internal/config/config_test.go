package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsZeroValue(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadEmptyPathReturnsZeroValue(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadParsesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folddisco.yaml")
	contents := `
hash_type: PDBMotifSinCos
nbin_dist: 20
nbin_angle: 8
distance_cutoff: 15.5
dist_thresholds: [0.5, 1.0]
angle_thresholds: [5, 10]
chunk_prefix: idx/default
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, HashVariant("PDBMotifSinCos"), cfg.HashType)
	assert.Equal(t, uint32(20), cfg.NBinDist)
	assert.Equal(t, uint32(8), cfg.NBinAngle)
	assert.Equal(t, float32(15.5), cfg.DistanceCutoff)
	assert.Equal(t, []float32{0.5, 1.0}, cfg.DistThresholds)
	assert.Equal(t, []float32{5, 10}, cfg.AngleThresholds)
	assert.Equal(t, "idx/default", cfg.ChunkPrefix)
}

func TestMergeHelpersPreferFlagWhenSet(t *testing.T) {
	assert.Equal(t, uint32(5), MergeUint32(5, 20, true))
	assert.Equal(t, uint32(20), MergeUint32(0, 20, false))
	assert.Equal(t, uint32(0), MergeUint32(0, 0, false))

	assert.Equal(t, float32(1.5), MergeFloat32(1.5, 2.5, true))
	assert.Equal(t, float32(2.5), MergeFloat32(0, 2.5, false))

	assert.Equal(t, "a", MergeString("a", "b", true))
	assert.Equal(t, "b", MergeString("", "b", false))
	assert.Equal(t, "", MergeString("", "", false))
}
