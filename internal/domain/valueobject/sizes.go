package valueobject

import "strings"

const MaxSizeOverrides = 10

// ResolveSizes picks the size set for an upload request. A client override
// is used when it has 1..MaxSizeOverrides entries and at least one entry is
// non-empty after trimming; otherwise the defaults apply. Order is kept.
func ResolveSizes(override, defaults []string) []string {
	if len(override) == 0 || len(override) > MaxSizeOverrides {
		return copySizes(defaults)
	}

	resolved := make([]string, 0, len(override))
	for _, s := range override {
		if s = strings.TrimSpace(s); s != "" {
			resolved = append(resolved, s)
		}
	}
	if len(resolved) == 0 {
		return copySizes(defaults)
	}
	return resolved
}

// ParseSizeList splits a comma separated list, dropping blanks.
func ParseSizeList(raw string) []string {
	var sizes []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			sizes = append(sizes, s)
		}
	}
	return sizes
}

// ValidSizeName reports whether size can be used as the last segment of a
// variant key without colliding with the original upload.
func ValidSizeName(size string) bool {
	if size == "" || len(size) > 64 {
		return false
	}
	if strings.ContainsAny(size, "/\\?#%") {
		return false
	}
	if size == "." || size == ".." || strings.HasPrefix(size, "original") {
		return false
	}
	return true
}

func copySizes(sizes []string) []string {
	out := make([]string, len(sizes))
	copy(out, sizes)
	return out
}
