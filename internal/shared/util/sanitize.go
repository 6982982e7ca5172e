package util

import "strings"

// SlugFileName lowercases name and replaces every character outside [a-z0-9]
// with '-'. An empty result falls back to def.
func SlugFileName(name, def string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return def
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('-')
	}
	return b.String()
}
