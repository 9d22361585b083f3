package route

import "strings"

// palette is the fixed sector color cycle. Nine colors cover every survey
// area seen so far; beyond that the cycle wraps.
var palette = []string{
	"red", "blue", "green", "purple", "orange",
	"darkblue", "darkgreen", "#301934", "pink",
}

// fallbackColor is used for sectors missing from the color map.
const fallbackColor = "blue"

// Normalizer collapses sub-sector names onto their parent sector so they
// share a color and label. A collapse prefix of "하천6" folds 하천6-1 and
// 하천6-2 into 하천6.
type Normalizer struct {
	Collapse []string
}

// Normalize returns the canonical sector name for a raw attribute value,
// or "" for blank input.
func (n Normalizer) Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	for _, prefix := range n.Collapse {
		if strings.HasPrefix(s, prefix+"-") {
			return prefix
		}
	}
	return s
}

// buildColorMap assigns palette colors to sectors in first-seen order.
// Features must already be in layer order (lines, then polygons, then
// points) so colors stay stable run to run for the same data.
func buildColorMap(features []Feature) map[string]string {
	colors := make(map[string]string)
	next := 0
	for _, f := range features {
		if f.Sector == "" {
			continue
		}
		if _, ok := colors[f.Sector]; ok {
			continue
		}
		colors[f.Sector] = palette[next%len(palette)]
		next++
	}
	return colors
}

// colorFor looks up a sector's color, falling back for unknown sectors.
func colorFor(colors map[string]string, sector string) string {
	if c, ok := colors[sector]; ok {
		return c
	}
	return fallbackColor
}
