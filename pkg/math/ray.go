package math

// Ray is an origin and a direction. Direction need not be unit length for
// intersection contracts, but primary rays produced by the camera are
// normalized.
type Ray struct {
	Origin    Vector3
	Direction Vector3
}

func (r Ray) At(t float64) Vector3 {
	return r.Origin.Add(r.Direction.Mul(t))
}
