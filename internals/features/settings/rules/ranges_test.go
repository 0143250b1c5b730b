package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// literalOverlap is the three-clause form used by the band editor:
// starts inside, ends inside, or encloses.
func literalOverlap(a, b Range) bool {
	return (a.FromKm >= b.FromKm && a.FromKm < b.ToKm) ||
		(a.ToKm > b.FromKm && a.ToKm <= b.ToKm) ||
		(a.FromKm <= b.FromKm && a.ToKm >= b.ToKm)
}

func TestRangeValid(t *testing.T) {
	assert.True(t, Range{0, 10}.Valid())
	assert.False(t, Range{10, 10}.Valid())
	assert.False(t, Range{12, 10}.Valid())
}

func TestOverlapsAdjacentBands(t *testing.T) {
	a := Range{0, 10}
	b := Range{10, 20}
	assert.False(t, a.Overlaps(b))
	assert.False(t, b.Overlaps(a))
	assert.True(t, a.Overlaps(Range{9.5, 11}))
	assert.True(t, Range{2, 3}.Overlaps(a))
}

func TestOverlapsMatchesLiteralPredicate(t *testing.T) {
	points := []float64{0, 0.5, 1, 2, 2.5, 3, 4, 5}
	existing := Range{1, 4}
	for _, from := range points {
		for _, to := range points {
			c := Range{from, to}
			if !c.Valid() {
				continue
			}
			assert.Equalf(t, literalOverlap(c, existing), c.Overlaps(existing),
				"candidate [%v,%v) vs [%v,%v)", from, to, existing.FromKm, existing.ToKm)
			assert.Equalf(t, c.Overlaps(existing), existing.Overlaps(c),
				"symmetry [%v,%v)", from, to)
		}
	}
}

func TestContainsHalfOpen(t *testing.T) {
	r := Range{10, 20}
	assert.True(t, r.Contains(10))
	assert.True(t, r.Contains(19.99))
	assert.False(t, r.Contains(20))
	assert.False(t, r.Contains(9.99))
}

func TestFindOverlap(t *testing.T) {
	bands := []Range{{0, 10}, {10, 20}, {30, 40}}
	assert.Equal(t, -1, FindOverlap(Range{20, 30}, bands))
	assert.Equal(t, 1, FindOverlap(Range{15, 25}, bands))
	assert.Equal(t, 0, FindOverlap(Range{5, 35}, bands))
	assert.Equal(t, -1, FindOverlap(Range{0, 1}, nil))
}
