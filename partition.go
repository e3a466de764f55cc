package fractal

// Range is a half-open index range [Start, End).
type Range struct {
	Start, End int
}

// Len returns the number of indices in r.
func (r Range) Len() int {
	return r.End - r.Start
}

// Partition returns the slice of [0, total) owned by worker id out of n.
// The ranges of ids 0..n-1 cover [0, total) exactly once, also when total
// is not a multiple of n.
func Partition(id, n, total int) Range {
	start := id * total / n
	end := (id + 1) * total / n
	if end > total {
		end = total
	}
	return Range{Start: start, End: end}
}
