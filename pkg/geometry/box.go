package geometry

import (
	gomath "math"

	"grinder/pkg/material"
	gmath "grinder/pkg/math"
	"grinder/pkg/texture"
)

// Box is an oriented bounding box: a center, three half-extents and a
// rotation matrix carrying the box's local axes into world space.
type Box struct {
	NameStr  string
	Center   gmath.Vector3
	Half     gmath.Vector3 // half-extents along the box's local axes
	Rotation gmath.Matrix3 // object-to-world
	Albedo   gmath.Vector3
	Material material.Material
	Texture  *texture.Texture
}

func (b *Box) Name() string { return b.NameStr }

func (b *Box) Centroid() gmath.Vector3 { return b.Center }

// Bounds conservatively encloses the rotated box by expanding an AABB over
// its eight world-space corners.
func (b *Box) Bounds() gmath.AABB {
	box := gmath.EmptyAABB()
	for _, sx := range []float64{-1, 1} {
		for _, sy := range []float64{-1, 1} {
			for _, sz := range []float64{-1, 1} {
				local := gmath.Vector3{X: sx * b.Half.X, Y: sy * b.Half.Y, Z: sz * b.Half.Z}
				world := b.Center.Add(b.Rotation.MulVec(local))
				box = box.ExpandPoint(world)
			}
		}
	}
	return box
}

// Intersect runs a six-slab test along the box's three rotated axes.
func (b *Box) Intersect(ray gmath.Ray, hit *Hit) bool {
	halves := [3]float64{b.Half.X, b.Half.Y, b.Half.Z}
	toCenter := b.Center.Sub(ray.Origin)

	tMin, tMax := gomath.Inf(-1), gomath.Inf(1)
	var bestNormal gmath.Vector3
	haveNormal := false

	for i := 0; i < 3; i++ {
		axis := b.Rotation.Column(i)
		half := halves[i]
		e := axis.Dot(toCenter)
		f := axis.Dot(ray.Direction)

		if gomath.Abs(f) < 1e-6 {
			if gomath.Abs(e) > half {
				return false
			}
			continue
		}

		t1 := (e - half) / f
		t2 := (e + half) / f
		n1, n2 := axis.Neg(), axis
		if t1 > t2 {
			t1, t2 = t2, t1
			n1, n2 = n2, n1
		}
		if t1 > tMin {
			tMin = t1
			bestNormal = n1
			haveNormal = true
		}
		if t2 < tMax {
			tMax = t2
		}
		if tMin > tMax {
			return false
		}
	}

	if !haveNormal {
		return false
	}

	t := tMin
	if t <= epsilon {
		t = tMax
	}
	if t <= epsilon || t >= hit.T {
		return false
	}

	pos := ray.At(t)
	local := b.Rotation.Transpose().MulVec(pos.Sub(b.Center))
	localN := gmath.Vector3{
		X: local.X / b.Half.X,
		Y: local.Y / b.Half.Y,
		Z: local.Z / b.Half.Z,
	}

	u, v := boxFaceUV(bestNormal, b.Rotation, localN)

	hit.Hit = true
	hit.T = t
	hit.Pos = pos
	hit.Normal = bestNormal
	hit.Albedo = b.Albedo
	hit.Material = b.Material
	hit.U, hit.V = u, v
	hit.Texture = b.Texture
	return true
}

// boxFaceUV picks the dominant axis of the world-space entering normal,
// maps it back to the local axis it came from, and reads the other two
// normalized local components as (u, v) in [0, 1].
func boxFaceUV(worldNormal gmath.Vector3, rot gmath.Matrix3, local gmath.Vector3) (float64, float64) {
	dominant := 0
	best := gomath.Abs(worldNormal.Dot(rot.Column(0)))
	for i := 1; i < 3; i++ {
		d := gomath.Abs(worldNormal.Dot(rot.Column(i)))
		if d > best {
			best = d
			dominant = i
		}
	}

	var a, bcomp float64
	switch dominant {
	case 0: // +-X face
		a, bcomp = local.Z, local.Y
	case 1: // +-Y face
		a, bcomp = local.X, local.Z
	default: // +-Z face
		a, bcomp = local.X, local.Y
	}
	return 0.5 + 0.5*gmath.Clamp(a, -1, 1), 0.5 + 0.5*gmath.Clamp(bcomp, -1, 1)
}
