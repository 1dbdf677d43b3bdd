package geometry

import (
	"testing"

	gmath "grinder/pkg/math"
)

func scatteredSpheres(n int, rng *gmath.XorShift32) []Primitive {
	prims := make([]Primitive, n)
	for i := 0; i < n; i++ {
		center := gmath.Vector3{
			X: rng.Float64Range(-10, 10),
			Y: rng.Float64Range(-10, 10),
			Z: rng.Float64Range(-10, 10),
		}
		prims[i] = &Sphere{NameStr: "s", Center: center, Radius: 0.3}
	}
	return prims
}

func linearIntersect(prims []Primitive, ray gmath.Ray) Hit {
	hit := NewHit()
	for _, p := range prims {
		p.Intersect(ray, &hit)
	}
	return hit
}

func TestBVHSoundnessAgainstLinearScan(t *testing.T) {
	rng := gmath.NewXorShift32(1)
	prims := scatteredSpheres(500, rng)
	bvh := BuildBVH(prims)

	for i := 0; i < 200; i++ {
		origin := gmath.Vector3{X: rng.Float64Range(-20, 20), Y: rng.Float64Range(-20, 20), Z: rng.Float64Range(-20, 20)}
		dir := gmath.Vector3{X: rng.Float64Range(-1, 1), Y: rng.Float64Range(-1, 1), Z: rng.Float64Range(-1, 1)}.Normalize()
		ray := gmath.Ray{Origin: origin, Direction: dir}

		want := linearIntersect(prims, ray)
		got := NewHit()
		bvh.Intersect(ray, &got)

		if want.Hit != got.Hit {
			t.Fatalf("ray %d: linear hit=%v bvh hit=%v", i, want.Hit, got.Hit)
		}
		if want.Hit {
			if diff := want.T - got.T; diff < -1e-6 || diff > 1e-6 {
				t.Errorf("ray %d: linear t=%v bvh t=%v", i, want.T, got.T)
			}
		}
	}
}

func TestBVHEnclosure(t *testing.T) {
	rng := gmath.NewXorShift32(2)
	prims := scatteredSpheres(200, rng)
	bvh := BuildBVH(prims)

	var walk func(idx int)
	walk = func(idx int) {
		node := bvh.Nodes[idx]
		if node.Count > 0 {
			for i := node.First; i < node.First+node.Count; i++ {
				pb := bvh.Prims[bvh.PrimIndices[i]].Bounds()
				if !enclosed(node.Box, pb) {
					t.Errorf("node %d does not enclose primitive bounds %v", idx, pb)
				}
			}
			return
		}
		walk(node.Left)
		walk(node.Right)
	}
	walk(0)
}

func enclosed(outer, inner gmath.AABB) bool {
	const eps = 1e-9
	return inner.Min.X >= outer.Min.X-eps && inner.Min.Y >= outer.Min.Y-eps && inner.Min.Z >= outer.Min.Z-eps &&
		inner.Max.X <= outer.Max.X+eps && inner.Max.Y <= outer.Max.Y+eps && inner.Max.Z <= outer.Max.Z+eps
}

func TestBVHEmptySceneMisses(t *testing.T) {
	bvh := BuildBVH(nil)
	ray := gmath.Ray{Origin: gmath.Vector3{}, Direction: gmath.Vector3{X: 0, Y: 0, Z: 1}}
	hit := NewHit()
	if bvh.Intersect(ray, &hit) {
		t.Fatal("expected miss on empty BVH")
	}
}
