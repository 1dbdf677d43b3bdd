// Package scene aggregates everything a render needs once loading
// finishes: the primitive list, lights, camera and background/ambient
// colors. A Scene is immutable for the lifetime of a render.
package scene

import (
	"grinder/pkg/camera"
	"grinder/pkg/geometry"
	gmath "grinder/pkg/math"
)

// PointLight is a point or, when Radius > 0, a disk light sampled in the
// world XY plane. Intensity is scaled by 1/1000 at load time so scene
// authors can write ordinary-looking wattage-like numbers.
type PointLight struct {
	Name      string
	Position  gmath.Vector3
	Intensity float64
	Radius    float64
}

// Scene is the immutable aggregate a BVH is built over and a render reads
// from for the duration of an image.
type Scene struct {
	Primitives []geometry.Primitive
	Lights     []PointLight
	Camera     camera.Camera
	Background gmath.Vector3
	Ambient    gmath.Vector3
}
