package geometry

import (
	gomath "math"

	"grinder/pkg/material"
	gmath "grinder/pkg/math"
	"grinder/pkg/texture"
)

// Sphere is a center+radius primitive. UV follows the standard
// longitude/latitude parameterization of the unit outward normal.
type Sphere struct {
	NameStr  string
	Center   gmath.Vector3
	Radius   float64
	Albedo   gmath.Vector3
	Material material.Material
	Texture  *texture.Texture
}

func (s *Sphere) Name() string { return s.NameStr }

func (s *Sphere) Centroid() gmath.Vector3 { return s.Center }

func (s *Sphere) Bounds() gmath.AABB {
	r := gmath.Vector3{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return gmath.AABB{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

// Intersect solves |O + t*D - C|^2 = r^2 for the smaller positive root
// and fills hit if it beats the current closest-so-far cursor.
func (s *Sphere) Intersect(ray gmath.Ray, hit *Hit) bool {
	oc := ray.Origin.Sub(s.Center)
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * oc.Dot(ray.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return false
	}
	sq := gomath.Sqrt(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)

	t := t0
	if t <= epsilon {
		t = t1
	}
	if t <= epsilon || t >= hit.T {
		return false
	}

	pos := ray.At(t)
	n := pos.Sub(s.Center).Div(s.Radius)
	u := 0.5 + gomath.Atan2(n.Z, n.X)/(2*gomath.Pi)
	v := 0.5 - gomath.Asin(gmath.Clamp(n.Y, -1, 1))/gomath.Pi

	hit.Hit = true
	hit.T = t
	hit.Pos = pos
	hit.Normal = n
	hit.Albedo = s.Albedo
	hit.Material = s.Material
	hit.U, hit.V = u, v
	hit.Texture = s.Texture
	return true
}
