package domain

import (
	"strings"
	"unicode"
)

const maxTempLabel = 64

// TempFileName returns the scratch file name used to edit or preview a note.
// The short id keeps two notes with the same label from sharing a file.
func TempFileName(n *Node) string {
	return SanitizeLabel(n.label) + "-" + n.id.Short() + ".md"
}

// SanitizeLabel maps a label to something safe as a file name component
func SanitizeLabel(label string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.TrimSpace(label) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == '.':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	out := strings.Trim(b.String(), "-.")
	if out == "" {
		return "note"
	}
	if runes := []rune(out); len(runes) > maxTempLabel {
		out = string(runes[:maxTempLabel])
	}
	return out
}
