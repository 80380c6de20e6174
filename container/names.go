package container

import "strings"

// namesManifestSyntheticName is the name assigned to entry 0 itself, which
// carries the manifest text that names every other entry.
const namesManifestSyntheticName = "NamesBlock.bin"

// assignNames splits the names-manifest blob on newlines, trims whitespace
// from each line, and assigns the result in order to entries[1:]. Surplus
// lines are ignored; a deficit leaves the remaining entries unnamed.
// Entry 0 always receives the synthetic manifest name.
func assignNames(entries []Entry, manifest []byte) {
	if len(entries) == 0 {
		return
	}
	entries[0].Name = namesManifestSyntheticName

	names := splitManifestLines(manifest)
	for i := 1; i < len(entries); i++ {
		if idx := i - 1; idx < len(names) {
			entries[i].Name = names[idx]
		}
	}
}

// splitManifestLines splits on "\n", trims whitespace from each line, and
// drops empty lines.
func splitManifestLines(manifest []byte) []string {
	raw := strings.Split(string(manifest), "\n")
	out := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
	}
	return out
}

// isSngPath reports whether an entry name is the Rocksmith SNG convention:
// it lives under songs/bin/generic/ and ends in .sng.
func isSngPath(name string) bool {
	return strings.Contains(name, "songs/bin/generic/") && strings.HasSuffix(name, ".sng")
}

// IsSngPath is the exported form of isSngPath, used by callers outside this
// package (the archive facade) to decide which entries to run ConvertSng
// over without duplicating the path convention.
func IsSngPath(name string) bool {
	return isSngPath(name)
}
