// Package input parses the free-text candidate lists and pairing rules
// that organizers paste in from spreadsheets.
package input

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/ubck/survey-cli/internal/model"
)

var nameSeparator = regexp.MustCompile(`[,\n\t]+`)
var pairSeparator = regexp.MustCompile(`[,\n]+`)

// ParseNames splits pasted text into names. Commas, newlines and tabs all
// separate, so a column copied out of a spreadsheet works as-is. Names
// are trimmed, NFC-normalized (Korean text pasted from different sources
// arrives in mixed normalization forms) and empty entries dropped.
func ParseNames(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var names []string
	for _, part := range nameSeparator.Split(raw, -1) {
		name := norm.NFC.String(strings.TrimSpace(part))
		if name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ParsePairs parses pairing rules written one per line or comma-separated
// as "A-B". Only the first hyphen splits, so hyphenated names survive on
// the right-hand side. Malformed chunks are skipped rather than rejected.
func ParsePairs(raw string) []model.PairConstraint {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var pairs []model.PairConstraint
	for _, chunk := range pairSeparator.Split(raw, -1) {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" || !strings.Contains(chunk, "-") {
			continue
		}
		a, b, _ := strings.Cut(chunk, "-")
		a = norm.NFC.String(strings.TrimSpace(a))
		b = norm.NFC.String(strings.TrimSpace(b))
		if a != "" && b != "" {
			pairs = append(pairs, model.PairConstraint{A: a, B: b})
		}
	}
	return pairs
}
