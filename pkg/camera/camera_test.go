package camera

import (
	"testing"

	gmath "grinder/pkg/math"
)

func testCamera() Camera {
	return New(Camera{
		Position:      gmath.Vector3{X: 0, Y: 0, Z: 0},
		Gaze:          gmath.Vector3{X: 0, Y: 0, Z: -1},
		FocalLength:   0.05,
		SensorWidth:   0.036,
		SensorHeight:  0.024,
		ResX:          200,
		ResY:          100,
		Aperture:      0,
		FocusDistance: 5,
	})
}

func TestCameraBasisOrthonormal(t *testing.T) {
	c := testCamera()
	const eps = 1e-9

	if diff := c.Forward.Length() - 1; diff < -eps || diff > eps {
		t.Errorf("|forward| = %v, want 1", c.Forward.Length())
	}
	if diff := c.Right.Length() - 1; diff < -eps || diff > eps {
		t.Errorf("|right| = %v, want 1", c.Right.Length())
	}
	if diff := c.Up.Length() - 1; diff < -eps || diff > eps {
		t.Errorf("|up| = %v, want 1", c.Up.Length())
	}
	if d := c.Right.Dot(c.Up); d < -eps || d > eps {
		t.Errorf("right.up = %v, want 0", d)
	}
	if d := c.Right.Dot(c.Forward); d < -eps || d > eps {
		t.Errorf("right.forward = %v, want 0", d)
	}
	if d := c.Up.Dot(c.Forward); d < -eps || d > eps {
		t.Errorf("up.forward = %v, want 0", d)
	}
}

func TestCameraBasisNearVerticalGaze(t *testing.T) {
	c := New(Camera{
		Position: gmath.Vector3{}, Gaze: gmath.Vector3{X: 0, Y: 0, Z: -1},
		FocalLength: 0.05, SensorWidth: 0.036, SensorHeight: 0.024, ResX: 10, ResY: 10,
	})
	if c.Right.Length() == 0 {
		t.Fatal("right vector degenerated for near-vertical gaze")
	}
}

func TestPrimaryRayThroughPixelCenter(t *testing.T) {
	c := testCamera()
	ray := c.PixelToRay(float64(c.ResX)/2-0.5, float64(c.ResY)/2-0.5)
	if diff := ray.Direction.Sub(c.Forward).Length(); diff > 1e-6 {
		t.Errorf("center ray direction = %v, want %v", ray.Direction, c.Forward)
	}
}

func TestDepthOfFieldRoundTripWhenApertureDisabled(t *testing.T) {
	c := testCamera() // Aperture == 0 above
	plain := c.PixelToRay(10, 20)
	withEffects := c.PixelToRayWithEffects(10, 20, 0, c.Position)

	if diff := plain.Origin.Sub(withEffects.Origin).Length(); diff > 1e-12 {
		t.Errorf("origin mismatch: %v vs %v", plain.Origin, withEffects.Origin)
	}
	if diff := plain.Direction.Sub(withEffects.Direction).Length(); diff > 1e-12 {
		t.Errorf("direction mismatch: %v vs %v", plain.Direction, withEffects.Direction)
	}
}
