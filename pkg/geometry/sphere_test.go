package geometry

import (
	"testing"

	"grinder/pkg/material"
	gmath "grinder/pkg/math"
)

func TestSphereIntersectHitsNearestRoot(t *testing.T) {
	s := &Sphere{
		NameStr:  "s",
		Center:   gmath.Vector3{X: 0, Y: 0, Z: 5},
		Radius:   1,
		Albedo:   gmath.Vector3{X: 1, Y: 0, Z: 0},
		Material: material.Default(),
	}
	ray := gmath.Ray{Origin: gmath.Vector3{}, Direction: gmath.Vector3{X: 0, Y: 0, Z: 1}}
	hit := NewHit()

	if !s.Intersect(ray, &hit) {
		t.Fatal("expected hit")
	}
	if diff := hit.T - 4; diff < -1e-9 || diff > 1e-9 {
		t.Errorf("t = %v, want 4", hit.T)
	}
	wantNormal := gmath.Vector3{X: 0, Y: 0, Z: -1}
	if diff := hit.Normal.Sub(wantNormal).Length(); diff > 1e-9 {
		t.Errorf("normal = %v, want %v", hit.Normal, wantNormal)
	}
}

func TestSphereIntersectMiss(t *testing.T) {
	s := &Sphere{Center: gmath.Vector3{X: 10, Y: 0, Z: 0}, Radius: 1}
	ray := gmath.Ray{Origin: gmath.Vector3{}, Direction: gmath.Vector3{X: 0, Y: 0, Z: 1}}
	hit := NewHit()
	if s.Intersect(ray, &hit) {
		t.Fatal("expected miss")
	}
}

func TestSphereIntersectRespectsClosestSoFar(t *testing.T) {
	s := &Sphere{Center: gmath.Vector3{X: 0, Y: 0, Z: 5}, Radius: 1}
	ray := gmath.Ray{Origin: gmath.Vector3{}, Direction: gmath.Vector3{X: 0, Y: 0, Z: 1}}
	hit := NewHit()
	hit.T = 2 // a closer hit is already recorded

	if s.Intersect(ray, &hit) {
		t.Fatal("expected rejection: candidate t=4 is not closer than hit.T=2")
	}
}

func TestSphereBounds(t *testing.T) {
	s := &Sphere{Center: gmath.Vector3{X: 1, Y: 2, Z: 3}, Radius: 2}
	b := s.Bounds()
	want := gmath.AABB{Min: gmath.Vector3{X: -1, Y: 0, Z: 1}, Max: gmath.Vector3{X: 3, Y: 4, Z: 5}}
	if b != want {
		t.Errorf("Bounds = %v, want %v", b, want)
	}
}
