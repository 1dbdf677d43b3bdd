// Package geometry implements the primitive library and the BVH
// acceleration structure built over it.
package geometry

import (
	gomath "math"

	"grinder/pkg/material"
	gmath "grinder/pkg/math"
	"grinder/pkg/texture"
)

// Hit is the closest-so-far cursor threaded through a ray query. Callers
// seed Hit.T to +Inf (NewHit) before the first intersection test; every
// primitive must reject candidates with t >= Hit.T so a chain of tests
// across many primitives converges on the single nearest one.
type Hit struct {
	Hit      bool
	T        float64
	Pos      gmath.Vector3
	Normal   gmath.Vector3
	Albedo   gmath.Vector3
	Material material.Material
	U, V     float64
	Texture  *texture.Texture
}

// NewHit returns a Hit ready to be passed into a chain of intersection
// calls: no hit yet, cursor at +Inf.
func NewHit() Hit {
	return Hit{T: gomath.Inf(1)}
}

// Primitive is the polymorphic interface implemented by Sphere, Quad and
// Box. Intersect mutates hit in place and returns whether it improved the
// closest-so-far cursor; Bounds returns the primitive's AABB.
type Primitive interface {
	Intersect(ray gmath.Ray, hit *Hit) bool
	Bounds() gmath.AABB
	Centroid() gmath.Vector3
	Name() string
}

const epsilon = 1e-6

// BaseColor resolves a hit's shading color: the texture sample if the hit
// carries one, otherwise the primitive's flat albedo.
func (h Hit) BaseColor() gmath.Vector3 {
	if h.Texture != nil {
		return h.Texture.Sample(h.U, h.V)
	}
	return h.Albedo
}
