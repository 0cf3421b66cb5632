package naming

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// File extensions for report artifacts. All links produced by a report
// are relative, so the extension is the only part of a file name that
// readers of the report depend on.
const (
	HTML = ".html"
	PNG  = ".png"
	SVG  = ".svg"
	TSV  = ".tsv"
	MD   = ".md"
)

// maxNameLength limits safe names so that "<page>_<picture>_<seq>.png"
// stays well below common filesystem limits.
const maxNameLength = 64

// fallbackName is used when nothing usable survives sanitization.
const fallbackName = "untitled"

// SafeFileName converts s into a name that is safe to use as a file name
// on every common filesystem.
//
// Accents are stripped (é -> e), runs of characters outside [A-Za-z0-9._-]
// collapse into a single underscore, and leading or trailing separators are
// trimmed. An empty result becomes "untitled".
func SafeFileName(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, s)
	if err != nil {
		folded = s
	}

	var b strings.Builder
	lastUnderscore := false
	for _, r := range folded {
		if isSafeRune(r) {
			b.WriteRune(r)
			lastUnderscore = false
			continue
		}
		if !lastUnderscore {
			b.WriteByte('_')
			lastUnderscore = true
		}
	}

	name := strings.Trim(b.String(), "_.-")
	if len(name) > maxNameLength {
		name = strings.TrimRight(name[:maxNameLength], "_.-")
	}
	if name == "" {
		return fallbackName
	}
	return name
}

// PictureBase returns the base name (without extension) for the picture
// with sequence number seq, e.g. "gsea_enrichment_plot_003".
func PictureBase(prefix, name string, seq int) string {
	parts := make([]string, 0, 3)
	if prefix != "" {
		parts = append(parts, SafeFileName(prefix))
	}
	parts = append(parts, SafeFileName(name))
	parts = append(parts, fmt.Sprintf("%03d", seq))
	return strings.Join(parts, "_")
}

func isSafeRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-', r == '.':
		return true
	}
	return false
}
