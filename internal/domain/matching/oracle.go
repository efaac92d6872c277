package matching

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// ErrOracleFailure marks every error caused by the similarity oracle, including
// timeouts. Callers test for it with errors.Is.
var ErrOracleFailure = errors.New("similarity oracle failure")

type Vector []float32

// Oracle embeds texts. Implementations must return exactly one vector per input
// text, in input order, all of the same dimension.
type Oracle interface {
	Embed(ctx context.Context, texts []string) ([]Vector, error)
}

// Cosine returns the cosine similarity of a and b in [-1,1]. Zero vectors have
// similarity 0 with everything.
func Cosine(a, b Vector) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	if sim > 1 {
		return 1
	}
	if sim < -1 {
		return -1
	}
	return sim
}

// embedUnique embeds the distinct values of texts in a single oracle call and
// returns them keyed by text.
func (e *Engine) embedUnique(ctx context.Context, op string, texts ...string) (map[string]Vector, error) {
	uniq := make([]string, 0, len(texts))
	seen := make(map[string]struct{}, len(texts))
	for _, t := range texts {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		uniq = append(uniq, t)
	}

	vecs, err := e.oracle.Embed(ctx, uniq)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOracleFailure, op, err)
	}
	if len(vecs) != len(uniq) {
		return nil, fmt.Errorf("%w: %s: got %d vectors for %d texts", ErrOracleFailure, op, len(vecs), len(uniq))
	}

	out := make(map[string]Vector, len(uniq))
	dim := -1
	for i, v := range vecs {
		if len(v) == 0 {
			return nil, fmt.Errorf("%w: %s: empty vector for input %d", ErrOracleFailure, op, i)
		}
		if dim >= 0 && len(v) != dim {
			return nil, fmt.Errorf("%w: %s: dimension mismatch %d != %d", ErrOracleFailure, op, len(v), dim)
		}
		dim = len(v)
		out[uniq[i]] = v
	}
	return out, nil
}
