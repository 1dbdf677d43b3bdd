package geometry

import gmath "grinder/pkg/math"

// LinearScan is the un-accelerated Intersector: it tests every primitive
// in order and keeps whichever one updates hit. Useful as the --no-bvh
// fallback and as a correctness baseline for the BVH.
type LinearScan struct {
	Prims []Primitive
}

func (l LinearScan) Intersect(ray gmath.Ray, hit *Hit) bool {
	found := false
	for _, p := range l.Prims {
		if p.Intersect(ray, hit) {
			found = true
		}
	}
	return found
}
