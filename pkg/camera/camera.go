// Package camera implements the thin-lens camera model: a pinhole camera
// extended with an aperture disk for depth of field and a shutter interval
// for motion blur.
package camera

import (
	gomath "math"

	gmath "grinder/pkg/math"
)

// Camera holds the configuration loaded from a scene file plus the
// orthonormal basis and lens radius derived from it once at load time.
type Camera struct {
	Position      gmath.Vector3
	Gaze          gmath.Vector3 // look direction, not required to be unit length
	FocalLength   float64       // meters
	SensorWidth   float64       // meters
	SensorHeight  float64       // meters
	ResX, ResY    int
	ShutterSpeed  float64 // seconds; 0 disables motion blur
	Velocity      gmath.Vector3
	Aperture      float64 // f-number; <= 0 disables depth of field
	FocusDistance float64 // meters

	Forward, Right, Up gmath.Vector3
	LensRadius         float64
}

// New derives the camera's orthonormal basis and lens radius from its raw
// configuration. The up-seed is world Z, unless the gaze is nearly
// vertical (|forward.Z| > 0.999), in which case world Y is used instead to
// avoid a degenerate cross product.
func New(c Camera) Camera {
	forward := c.Gaze.Normalize()

	upSeed := gmath.Vector3{X: 0, Y: 0, Z: 1}
	if gomath.Abs(forward.Z) > 0.999 {
		upSeed = gmath.Vector3{X: 0, Y: 1, Z: 0}
	}
	right := forward.Cross(upSeed).Normalize()
	up := right.Cross(forward).Normalize()

	lensRadius := 0.0
	if c.Aperture > 0 {
		lensRadius = c.FocalLength / (2 * c.Aperture)
	}

	c.Forward, c.Right, c.Up = forward, right, up
	c.LensRadius = lensRadius
	return c
}

// sensorOffset maps a pixel center to its (sx, sy) offset on the sensor
// plane, in the camera's local right/up units.
func (c Camera) sensorOffset(px, py float64) (float64, float64) {
	ndcX := (px+0.5)/float64(c.ResX) - 0.5
	ndcY := 0.5 - (py+0.5)/float64(c.ResY)
	return ndcX * c.SensorWidth, ndcY * c.SensorHeight
}

// PixelToRay forms the primary ray through the center of pixel (px, py)
// with no lens or shutter effects applied.
func (c Camera) PixelToRay(px, py float64) gmath.Ray {
	sx, sy := c.sensorOffset(px, py)
	dir := c.Forward.Mul(c.FocalLength).Add(c.Right.Mul(sx)).Add(c.Up.Mul(sy)).Normalize()
	return gmath.Ray{Origin: c.Position, Direction: dir}
}

// PixelToRayWithEffects additionally applies motion blur (via timeOffset
// and the camera's velocity) and depth of field (via lensPos, sampled by
// SampleLensPosition): rays originating away from the optical center are
// bent to still pass through the sharp point on the focal plane.
func (c Camera) PixelToRayWithEffects(px, py, timeOffset float64, lensPos gmath.Vector3) gmath.Ray {
	sx, sy := c.sensorOffset(px, py)
	sensorPoint := c.Forward.Mul(c.FocalLength).Add(c.Right.Mul(sx)).Add(c.Up.Mul(sy))

	camPos := c.Position
	if timeOffset != 0 && c.Velocity.Length() > 0 {
		camPos = camPos.Add(c.Velocity.Mul(timeOffset))
	}

	if c.LensRadius > 0 && lensPos != c.Position {
		originalDir := sensorPoint.Normalize()
		tFocus := c.FocusDistance / originalDir.Dot(c.Forward)
		focusPoint := camPos.Add(originalDir.Mul(tFocus))
		return gmath.Ray{Origin: lensPos, Direction: focusPoint.Sub(lensPos).Normalize()}
	}
	return gmath.Ray{Origin: camPos, Direction: sensorPoint.Normalize()}
}

// SampleLensPosition draws a point within a disk of radius LensRadius,
// centered at Position in the (Right, Up) plane. The radius and the angle
// are each drawn uniformly, so samples are denser toward the center than
// an area-uniform disk sample.
func (c Camera) SampleLensPosition(rng *gmath.XorShift32) gmath.Vector3 {
	if c.LensRadius <= 0 {
		return c.Position
	}
	r := rng.Float64Range(0, c.LensRadius)
	theta := rng.Float64Range(0, 2*gomath.Pi)
	return c.Position.Add(c.Right.Mul(r * gomath.Cos(theta))).Add(c.Up.Mul(r * gomath.Sin(theta)))
}

// GetTimeOffset draws a shutter time offset in [0, ShutterSpeed), or
// returns 0 if the shutter is disabled.
func (c Camera) GetTimeOffset(rng *gmath.XorShift32) float64 {
	if c.ShutterSpeed <= 0 {
		return 0
	}
	return rng.Float64Range(0, c.ShutterSpeed)
}
