package structure

import (
	"os"

	"github.com/golang/geo/r3"
	"gopkg.in/yaml.v3"
)

type yamlResidue struct {
	Chain  string      `yaml:"chain"`
	Serial uint64      `yaml:"serial"`
	Name   string      `yaml:"name"`
	CA     [3]float64  `yaml:"ca"`
	CB     *[3]float64 `yaml:"cb,omitempty"`
	N      [3]float64  `yaml:"n"`
	C      [3]float64  `yaml:"c"`
}

type yamlStructure struct {
	Residues []yamlResidue `yaml:"residues"`
}

// LoadYAML reads the stand-in structure-fixture format folddisco's CLI
// and tests use in place of a real PDB/mmCIF reader, which spec.md §1
// explicitly places out of scope. Each residue lists its chain,
// author-numbered serial, three-letter name, and backbone atom
// coordinates; "cb" is optional, left to NewCompactStructure's standard
// synthesis when omitted (the same path a real glycine takes).
func LoadYAML(path string) (*CompactStructure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ys yamlStructure
	if err := yaml.Unmarshal(data, &ys); err != nil {
		return nil, err
	}

	residues := make([]Residue, len(ys.Residues))
	for i, yr := range ys.Residues {
		chain := byte('A')
		if len(yr.Chain) > 0 {
			chain = yr.Chain[0]
		}
		var name [3]byte
		copy(name[:], yr.Name)

		r := Residue{
			Serial: yr.Serial,
			Chain:  chain,
			Name:   name,
			CA:     vec(yr.CA),
			N:      vec(yr.N),
			C:      vec(yr.C),
		}
		if yr.CB != nil {
			r.HasCB = true
			r.CB = vec(*yr.CB)
		}
		residues[i] = r
	}
	return NewCompactStructure(residues), nil
}

func vec(v [3]float64) r3.Vector {
	return r3.Vector{X: v[0], Y: v[1], Z: v[2]}
}
