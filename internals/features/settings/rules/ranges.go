package rules

// Range is a half-open kilometre band [FromKm, ToKm).
type Range struct {
	FromKm float64
	ToKm   float64
}

func (r Range) Valid() bool { return r.FromKm < r.ToKm }

// Overlaps reports whether two half-open bands share any point.
// Adjacent bands ([0,10) and [10,20)) do not overlap.
func (r Range) Overlaps(o Range) bool {
	return r.FromKm < o.ToKm && o.FromKm < r.ToKm
}

// Contains reports whether km falls inside the band.
func (r Range) Contains(km float64) bool {
	return r.FromKm <= km && km < r.ToKm
}

// FindOverlap returns the index of the first existing band overlapping candidate, or -1.
func FindOverlap(candidate Range, existing []Range) int {
	for i, e := range existing {
		if candidate.Overlaps(e) {
			return i
		}
	}
	return -1
}
