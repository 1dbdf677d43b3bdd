// Package math implements the 3D vector, ray and AABB primitives the rest
// of grinder builds on. The stdlib math package is imported as gomath
// throughout so that Vector3 methods can live under the same package name.
package math

import gomath "math"

// Vector3 is an ordered triple of finite float64s. It is used
// interchangeably for points, directions and normals, matching the data
// model's single Vector3 type.
type Vector3 struct {
	X, Y, Z float64
}

// Zero is the zero vector.
var Zero = Vector3{}

func (a Vector3) Add(b Vector3) Vector3 {
	return Vector3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func (a Vector3) Sub(b Vector3) Vector3 {
	return Vector3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func (a Vector3) Mul(s float64) Vector3 {
	return Vector3{a.X * s, a.Y * s, a.Z * s}
}

func (a Vector3) Div(s float64) Vector3 {
	return Vector3{a.X / s, a.Y / s, a.Z / s}
}

// MulV returns the componentwise (Hadamard) product of a and b.
func (a Vector3) MulV(b Vector3) Vector3 {
	return Vector3{a.X * b.X, a.Y * b.Y, a.Z * b.Z}
}

func (a Vector3) Neg() Vector3 {
	return Vector3{-a.X, -a.Y, -a.Z}
}

func (a Vector3) Dot(b Vector3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func (a Vector3) Cross(b Vector3) Vector3 {
	return Vector3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vector3) LengthSquared() float64 {
	return a.Dot(a)
}

func (a Vector3) Length() float64 {
	return gomath.Sqrt(a.LengthSquared())
}

// Normalize returns a unit vector in the direction of a, or the zero
// vector if a is shorter than 1e-12.
func (a Vector3) Normalize() Vector3 {
	l := a.Length()
	if l < 1e-12 {
		return Vector3{}
	}
	return a.Div(l)
}

func (a Vector3) Min(b Vector3) Vector3 {
	return Vector3{gomath.Min(a.X, b.X), gomath.Min(a.Y, b.Y), gomath.Min(a.Z, b.Z)}
}

func (a Vector3) Max(b Vector3) Vector3 {
	return Vector3{gomath.Max(a.X, b.X), gomath.Max(a.Y, b.Y), gomath.Max(a.Z, b.Z)}
}

// Lerp linearly interpolates between a and b at parameter t.
func (a Vector3) Lerp(b Vector3, t float64) Vector3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Reflect reflects a (typically an incident direction) about normal n.
func (a Vector3) Reflect(n Vector3) Vector3 {
	return a.Sub(n.Mul(2 * a.Dot(n)))
}

// Component returns the axis-th coordinate (0=X, 1=Y, 2=Z), for code that
// picks an axis at runtime (e.g. BVH split selection).
func (a Vector3) Component(axis int) float64 {
	switch axis {
	case 0:
		return a.X
	case 1:
		return a.Y
	default:
		return a.Z
	}
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
