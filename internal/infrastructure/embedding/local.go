package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"

	"recruit-engine/internal/domain/matching"
)

const defaultLocalDimensions = 256

// Local is a deterministic hashed bag-of-words embedder. Whole tokens and
// their character trigrams are hashed into signed buckets, so texts sharing
// words or word stems come out similar. It needs no network and is meant for
// development and offline runs.
type Local struct {
	dims int
}

func NewLocal(dims int) *Local {
	if dims <= 0 {
		dims = defaultLocalDimensions
	}
	return &Local{dims: dims}
}

func (l *Local) Embed(ctx context.Context, texts []string) ([]matching.Vector, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]matching.Vector, 0, len(texts))
	for _, t := range texts {
		out = append(out, l.vector(t))
	}
	return out, nil
}

func (l *Local) vector(text string) matching.Vector {
	acc := make([]float64, l.dims)
	for _, tok := range tokenize(text) {
		l.add(acc, "w:"+tok, 1)
		padded := "^" + tok + "$"
		runes := []rune(padded)
		for i := 0; i+3 <= len(runes); i++ {
			l.add(acc, "g:"+string(runes[i:i+3]), 0.5)
		}
	}

	var norm float64
	for _, v := range acc {
		norm += v * v
	}
	vec := make(matching.Vector, l.dims)
	if norm == 0 {
		return vec
	}
	norm = math.Sqrt(norm)
	for i, v := range acc {
		vec[i] = float32(v / norm)
	}
	return vec
}

func (l *Local) add(acc []float64, feature string, weight float64) {
	h := fnv.New64a()
	_, _ = h.Write([]byte(feature))
	sum := h.Sum64()
	bucket := int(sum % uint64(l.dims))
	if sum>>63 == 1 {
		weight = -weight
	}
	acc[bucket] += weight
}

// tokenize lowercases and splits on anything that is not a letter, digit,
// '+' or '#', so "C++" and "C#" survive as tokens.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
}
