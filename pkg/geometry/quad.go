package geometry

import (
	gomath "math"

	"grinder/pkg/material"
	gmath "grinder/pkg/math"
	"grinder/pkg/texture"
)

// Quad is a planar quadrilateral given by four corners in CCW order,
// treated as the two triangles (0,1,2) and (0,2,3).
type Quad struct {
	NameStr  string
	Corners  [4]gmath.Vector3
	Albedo   gmath.Vector3
	Material material.Material
	Texture  *texture.Texture
}

func (q *Quad) Name() string { return q.NameStr }

func (q *Quad) Centroid() gmath.Vector3 {
	sum := gmath.Vector3{}
	for _, c := range q.Corners {
		sum = sum.Add(c)
	}
	return sum.Mul(0.25)
}

func (q *Quad) Bounds() gmath.AABB {
	b := gmath.EmptyAABB()
	for _, c := range q.Corners {
		b = b.ExpandPoint(c)
	}
	return b
}

// faceNormal returns the unit geometric normal of the quad's plane,
// flipped to face against the incident ray.
func (q *Quad) faceNormal(rayDir gmath.Vector3) gmath.Vector3 {
	e1 := q.Corners[1].Sub(q.Corners[0])
	e2 := q.Corners[2].Sub(q.Corners[0])
	n := e1.Cross(e2).Normalize()
	if n.Dot(rayDir) > 0 {
		n = n.Neg()
	}
	return n
}

// Intersect tests both triangles of the quad against the ray, accepting
// the first one whose barycentric coordinates land inside it.
func (q *Quad) Intersect(ray gmath.Ray, hit *Hit) bool {
	if q.intersectTriangle(ray, hit, q.Corners[0], q.Corners[1], q.Corners[2]) {
		return true
	}
	return q.intersectTriangle(ray, hit, q.Corners[0], q.Corners[2], q.Corners[3])
}

func (q *Quad) intersectTriangle(ray gmath.Ray, hit *Hit, v0, v1, v2 gmath.Vector3) bool {
	e1 := v1.Sub(v0)
	e2 := v2.Sub(v0)
	pvec := ray.Direction.Cross(e2)
	det := e1.Dot(pvec)
	if gomath.Abs(det) < epsilon {
		return false
	}
	invDet := 1.0 / det

	tvec := ray.Origin.Sub(v0)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return false
	}

	qvec := tvec.Cross(e1)
	v := ray.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return false
	}

	t := e2.Dot(qvec) * invDet
	if t <= epsilon || t >= hit.T {
		return false
	}

	pos := ray.At(t)
	n := q.faceNormal(ray.Direction)

	edgeU := q.Corners[1].Sub(q.Corners[0])
	edgeV := q.Corners[3].Sub(q.Corners[0])
	localU := pos.Sub(q.Corners[0]).Dot(edgeU) / edgeU.LengthSquared()
	localV := pos.Sub(q.Corners[0]).Dot(edgeV) / edgeV.LengthSquared()

	hit.Hit = true
	hit.T = t
	hit.Pos = pos
	hit.Normal = n
	hit.Albedo = q.Albedo
	hit.Material = q.Material
	hit.U, hit.V = localU, localV
	hit.Texture = q.Texture
	return true
}
