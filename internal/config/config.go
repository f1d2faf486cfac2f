// Package config loads the optional YAML defaults file that backs the
// folddisco CLI's index/query flags. It plays the same "flags override
// file" role as the teacher's direwolf.conf (src/config.go), minus the
// audio/radio-specific sections that have no counterpart here.
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// HashVariant names one of the geomhash.Tag variants by its §3 table
// name, as it appears in a config file or a <prefix>.type file.
type HashVariant string

const (
	VariantPDBMotif          HashVariant = "PDBMotif"
	VariantPDBMotifSinCos    HashVariant = "PDBMotifSinCos"
	VariantPDBMotifHalf      HashVariant = "PDBMotifHalf"
	VariantTrRosetta         HashVariant = "TrRosetta"
	VariantFoldDiscoDefault  HashVariant = "FoldDiscoDefault"
	VariantPointPairFeature  HashVariant = "PointPairFeature"
)

// Config holds the defaults an index or query run falls back to when a
// CLI flag isn't given explicitly. Every field mirrors a flag in
// cmd/folddisco; a zero value means "let the flag's own default win".
type Config struct {
	HashType       HashVariant `yaml:"hash_type"`
	NBinDist       uint32      `yaml:"nbin_dist"`
	NBinAngle      uint32      `yaml:"nbin_angle"`
	DistanceCutoff float32     `yaml:"distance_cutoff"`
	DistThresholds []float32   `yaml:"dist_thresholds"`
	AngleThresholds []float32  `yaml:"angle_thresholds"`
	ChunkPrefix    string      `yaml:"chunk_prefix"`
}

// Load reads and parses a YAML config file. A missing file is not an
// error: it returns a zero-value Config, the same as an empty file,
// since every field's zero value means "use the flag default".
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// MergeUint32 returns fileValue if the flag was not set explicitly
// and fileValue is non-zero, otherwise flagValue. This is the "flags
// override file" layering SPEC_FULL.md describes for every numeric knob.
func MergeUint32(flagValue, fileValue uint32, flagWasSet bool) uint32 {
	if flagWasSet || fileValue == 0 {
		return flagValue
	}
	return fileValue
}

// MergeFloat32 is MergeUint32's counterpart for float-valued flags.
func MergeFloat32(flagValue, fileValue float32, flagWasSet bool) float32 {
	if flagWasSet || fileValue == 0 {
		return flagValue
	}
	return fileValue
}

// MergeString is MergeUint32's counterpart for string-valued flags.
func MergeString(flagValue, fileValue string, flagWasSet bool) string {
	if flagWasSet || fileValue == "" {
		return flagValue
	}
	return fileValue
}
