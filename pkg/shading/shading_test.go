package shading

import (
	"testing"

	"grinder/pkg/camera"
	"grinder/pkg/geometry"
	"grinder/pkg/material"
	gmath "grinder/pkg/math"
	"grinder/pkg/scene"
)

type noOccluder struct{}

func (noOccluder) Intersect(ray gmath.Ray, hit *geometry.Hit) bool { return false }

func testScene() *scene.Scene {
	return &scene.Scene{
		Camera:  camera.New(camera.Camera{Position: gmath.Vector3{}, Gaze: gmath.Vector3{X: 0, Y: 0, Z: -1}, ResX: 10, ResY: 10}),
		Ambient: gmath.Vector3{X: 0.1, Y: 0.1, Z: 0.1},
		Lights: []scene.PointLight{
			{Name: "L", Position: gmath.Vector3{X: 0, Y: 5, Z: 0}, Intensity: 1},
		},
	}
}

func TestShadeUnoccludedHasDiffuseContribution(t *testing.T) {
	h := geometry.Hit{
		Pos:      gmath.Vector3{X: 0, Y: 0, Z: -5},
		Normal:   gmath.Vector3{X: 0, Y: 1, Z: 0},
		Albedo:   gmath.Vector3{X: 1, Y: 0, Z: 0},
		Material: material.Default(),
	}
	rng := gmath.NewXorShift32(7)
	result := Shade(h, testScene(), noOccluder{}, rng, 1)

	if result.X <= 0.1 {
		t.Errorf("shaded red channel = %v, want > ambient 0.1 (diffuse should contribute)", result.X)
	}
	if result.Y > 0.2 || result.Z > 0.2 {
		t.Errorf("shaded = %v, want green/blue small for a red-albedo diffuse surface (only a narrow specular highlight contributes white)", result)
	}
}

type alwaysOccluded struct{}

func (alwaysOccluded) Intersect(ray gmath.Ray, hit *geometry.Hit) bool {
	hit.T = 0.01
	return true
}

func TestShadeFullyOccludedIsAmbientOnly(t *testing.T) {
	h := geometry.Hit{
		Pos:      gmath.Vector3{X: 0, Y: 0, Z: -5},
		Normal:   gmath.Vector3{X: 0, Y: 1, Z: 0},
		Albedo:   gmath.Vector3{X: 1, Y: 0, Z: 0},
		Material: material.Default(),
	}
	rng := gmath.NewXorShift32(7)
	result := Shade(h, testScene(), alwaysOccluded{}, rng, 1)
	want := gmath.Vector3{X: 0.1, Y: 0, Z: 0}
	if diff := result.Sub(want).Length(); diff > 1e-9 {
		t.Errorf("fully occluded shade = %v, want ambient-only %v", result, want)
	}
}
