// Package tracer implements the recursive Whitted-style specular
// recursion on top of the shading package's direct lighting.
package tracer

import (
	gomath "math"

	"grinder/pkg/geometry"
	gmath "grinder/pkg/math"
	"grinder/pkg/scene"
	"grinder/pkg/shading"
)

// MaxDepth bounds the reflection/refraction recursion. depth never exceeds
// MaxDepth+1, and a single recursion chain makes at most MaxDepth+1
// intersection queries (the call at depth MaxDepth+1 returns black at once).
const MaxDepth = 5

const reflBias = 1e-4

// Intersector is satisfied by *geometry.BVH (and by a linear scan over
// scene.Primitives, for tests that compare the two).
type Intersector interface {
	Intersect(ray gmath.Ray, hit *geometry.Hit) bool
}

// Tracer binds together everything a trace call needs: the scene (for
// lights/background/camera), an accelerator for ray queries and the
// number of shadow samples the shader should take per light.
type Tracer struct {
	Scene         *scene.Scene
	Accel         Intersector
	ShadowSamples int
}

// Trace evaluates the color seen along ray at the given recursion depth.
func (tr *Tracer) Trace(ray gmath.Ray, depth int, rng *gmath.XorShift32) gmath.Vector3 {
	if depth > MaxDepth {
		return gmath.Vector3{}
	}

	hit := geometry.NewHit()
	if !tr.Accel.Intersect(ray, &hit) {
		return tr.Scene.Background
	}

	color := shading.Shade(hit, tr.Scene, tr.Accel, rng, tr.ShadowSamples)

	if hit.Material.Reflectivity > 0 {
		r := hit.Material.Reflectivity
		reflDir := ray.Direction.Reflect(hit.Normal).Normalize()
		reflOrigin := hit.Pos.Add(hit.Normal.Mul(reflBias))
		reflColor := tr.Trace(gmath.Ray{Origin: reflOrigin, Direction: reflDir}, depth+1, rng)
		color = color.Mul(1 - r).Add(reflColor.Mul(r))
	}

	if hit.Material.Refractivity > 0 {
		if refrColor, ok := tr.refract(ray, hit, depth, rng); ok {
			t := hit.Material.Refractivity
			color = color.Mul(1 - t).Add(refrColor.Mul(t))
		}
	}

	return color
}

// refract applies Snell's law; ok is false on total internal reflection,
// in which case the caller adds no refractive contribution.
func (tr *Tracer) refract(ray gmath.Ray, hit geometry.Hit, depth int, rng *gmath.XorShift32) (gmath.Vector3, bool) {
	eta := hit.Material.IOR
	n := hit.Normal
	cosi := -gmath.Clamp(ray.Direction.Dot(n), -1, 1)
	if cosi < 0 {
		cosi = -cosi
		n = n.Neg()
		eta = 1 / eta
	}

	k := 1 - eta*eta*(1-cosi*cosi)
	if k < 0 {
		return gmath.Vector3{}, false
	}

	refrDir := ray.Direction.Mul(eta).Add(n.Mul(eta*cosi - gomath.Sqrt(k))).Normalize()
	refrOrigin := hit.Pos.Sub(hit.Normal.Mul(reflBias))
	return tr.Trace(gmath.Ray{Origin: refrOrigin, Direction: refrDir}, depth+1, rng), true
}
