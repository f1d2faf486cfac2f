package geomhash

// Name returns tag's §3 table name, the string written verbatim into
// a `<prefix>.type` file (spec.md §6) and accepted by the CLI's
// --hash-type flag.
func Name(tag Tag) string {
	switch tag {
	case PDBMotif:
		return "PDBMotif"
	case PDBMotifSinCos:
		return "PDBMotifSinCos"
	case PDBMotifHalf:
		return "PDBMotifHalf"
	case TrRosetta:
		return "TrRosetta"
	case FoldDiscoDefault:
		return "FoldDiscoDefault"
	case PointPairFeature:
		return "PointPairFeature"
	default:
		return ""
	}
}

// ParseName is Name's inverse, used to resolve a `<prefix>.type` file's
// contents or a --hash-type flag value back into a Tag.
func ParseName(name string) (Tag, bool) {
	switch name {
	case "PDBMotif":
		return PDBMotif, true
	case "PDBMotifSinCos":
		return PDBMotifSinCos, true
	case "PDBMotifHalf":
		return PDBMotifHalf, true
	case "TrRosetta":
		return TrRosetta, true
	case "FoldDiscoDefault":
		return FoldDiscoDefault, true
	case "PointPairFeature":
		return PointPairFeature, true
	default:
		return 0, false
	}
}

// WideKeys reports whether tag's hashes need 64-bit offset-map keys
// (only FoldDiscoDefault; spec.md §3 Offset map).
func WideKeys(tag Tag) bool {
	return tag == FoldDiscoDefault
}
