// Package shading implements direct lighting: ambient term, per-light
// Blinn-Phong with stochastic soft shadows.
package shading

import (
	gomath "math"

	"grinder/pkg/geometry"
	gmath "grinder/pkg/math"
	"grinder/pkg/scene"
)

// Occluder is the subset of geometry.BVH's surface this package needs for
// shadow testing, satisfied by *geometry.BVH.
type Occluder interface {
	Intersect(ray gmath.Ray, hit *geometry.Hit) bool
}

const shadowBias = 1e-4

// Shade computes the direct-lighting color at a hit point: an ambient
// term plus, for each light, an average over shadowSamples stochastic
// samples of Blinn-Phong diffuse and specular, attenuated by distance and
// shadow occlusion.
func Shade(h geometry.Hit, sc *scene.Scene, occluder Occluder, rng *gmath.XorShift32, shadowSamples int) gmath.Vector3 {
	base := h.BaseColor()
	result := sc.Ambient.MulV(base)

	for _, light := range sc.Lights {
		var accumulated gmath.Vector3
		valid := 0

		for i := 0; i < shadowSamples; i++ {
			lightPos := sampleLightPosition(light, rng)

			toLight := lightPos.Sub(h.Pos)
			dist := toLight.Length()
			if dist < 1e-12 {
				continue
			}
			lightDir := toLight.Div(dist)

			shadowOrigin := h.Pos.Add(h.Normal.Mul(1e-4))
			shadowRay := gmath.Ray{Origin: shadowOrigin, Direction: lightDir}
			shadowHit := geometry.NewHit()
			occluded := occluder.Intersect(shadowRay, &shadowHit) && shadowHit.T < dist-shadowBias
			if occluded {
				continue
			}

			view := sc.Camera.Position.Sub(h.Pos).Normalize()
			half := lightDir.Add(view).Normalize()
			diffuse := gomath.Max(0, h.Normal.Dot(lightDir))
			specular := gomath.Pow(gomath.Max(0, h.Normal.Dot(half)), h.Material.Shininess)
			atten := 1 / (1 + 0.1*dist)

			contribution := base.Mul(diffuse * light.Intensity * atten).
				Add(gmath.Vector3{X: 1, Y: 1, Z: 1}.Mul(specular * light.Intensity * atten))
			accumulated = accumulated.Add(contribution)
			valid++
		}

		if valid > 0 {
			result = result.Add(accumulated.Div(float64(valid)))
		}
	}

	return result
}

// sampleLightPosition draws a point near the light: a uniform disk sample
// in the world XY plane for an area light (Radius > 0), or a small
// jittered offset for a delta light, so even point lights cast soft edges.
func sampleLightPosition(light scene.PointLight, rng *gmath.XorShift32) gmath.Vector3 {
	if light.Radius > 0 {
		r := gomath.Sqrt(rng.Float64()) * light.Radius
		theta := rng.Float64Range(0, 2*gomath.Pi)
		return light.Position.Add(gmath.Vector3{X: r * gomath.Cos(theta), Y: r * gomath.Sin(theta), Z: 0})
	}
	const jitter = 0.025
	return light.Position.Add(gmath.Vector3{
		X: rng.Float64Range(-jitter, jitter),
		Y: rng.Float64Range(-jitter, jitter),
		Z: rng.Float64Range(-jitter, jitter),
	})
}

// DistributionGGX is the Trowbridge-Reitz normal distribution function.
// It is not called anywhere in the baseline Blinn-Phong shading path;
// Material.Roughness is parsed and stored but has no effect on the
// rendered image.
func DistributionGGX(n, h gmath.Vector3, roughness float64) float64 {
	a := roughness * roughness
	a2 := a * a
	nDotH := gomath.Max(n.Dot(h), 0)
	nDotH2 := nDotH * nDotH

	denom := nDotH2*(a2-1) + 1
	denom = gomath.Pi * denom * denom
	return a2 / gomath.Max(denom, 1e-7)
}
