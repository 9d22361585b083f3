package model

// PairConstraint is an unordered pairing rule between two people. The same
// type expresses both must-be-together and must-be-apart rules; which list
// it appears in decides the semantics.
type PairConstraint struct {
	A string `json:"a" yaml:"a"`
	B string `json:"b" yaml:"b"`
}

// Pair is a canonical unordered pair key: A and B are sorted so that
// (x, y) and (y, x) collide in map lookups.
type Pair struct {
	A string
	B string
}

// NewPair returns the canonical pair for two names.
func NewPair(a, b string) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{A: a, B: b}
}
