package math

import gomath "math"

// AABB is an axis-aligned bounding box. The empty AABB has Min at +Inf and
// Max at -Inf in every component, so expanding it with any point or box
// yields that point or box.
type AABB struct {
	Min, Max Vector3
}

// EmptyAABB returns the empty-box sentinel.
func EmptyAABB() AABB {
	inf := gomath.Inf(1)
	return AABB{
		Min: Vector3{inf, inf, inf},
		Max: Vector3{-inf, -inf, -inf},
	}
}

func (b AABB) ExpandPoint(p Vector3) AABB {
	return AABB{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

func (b AABB) ExpandAABB(o AABB) AABB {
	return AABB{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

func (b AABB) Center() Vector3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// SurfaceArea returns the box's surface area, used by callers that want an
// SAH-style cost metric; zero for a degenerate or empty box.
func (b AABB) SurfaceArea() float64 {
	d := b.Max.Sub(b.Min)
	if d.X < 0 || d.Y < 0 || d.Z < 0 {
		return 0
	}
	return 2 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

// Intersect performs the slab test: for each axis, a ray parallel to that
// axis's slab (|dir| < 1e-8) either fails outright (origin outside the
// slab) or is skipped; otherwise the two plane intersections are computed,
// ordered, and intersected with the running [tmin, tmax] interval. Returns
// the surviving interval and whether it is non-empty within the
// caller-supplied [tmin, tmax].
func (b AABB) Intersect(r Ray, tmin, tmax float64) (float64, float64, bool) {
	const parallelEps = 1e-8

	axis := func(o, d, lo, hi float64, tmin, tmax float64) (float64, float64, bool) {
		if gomath.Abs(d) < parallelEps {
			if o < lo || o > hi {
				return tmin, tmax, false
			}
			return tmin, tmax, true
		}
		t0 := (lo - o) / d
		t1 := (hi - o) / d
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tmin {
			tmin = t0
		}
		if t1 < tmax {
			tmax = t1
		}
		return tmin, tmax, tmax > tmin
	}

	var ok bool
	tmin, tmax, ok = axis(r.Origin.X, r.Direction.X, b.Min.X, b.Max.X, tmin, tmax)
	if !ok {
		return tmin, tmax, false
	}
	tmin, tmax, ok = axis(r.Origin.Y, r.Direction.Y, b.Min.Y, b.Max.Y, tmin, tmax)
	if !ok {
		return tmin, tmax, false
	}
	tmin, tmax, ok = axis(r.Origin.Z, r.Direction.Z, b.Min.Z, b.Max.Z, tmin, tmax)
	if !ok {
		return tmin, tmax, false
	}
	return tmin, tmax, tmax > tmin
}
