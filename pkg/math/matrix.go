package math

import gomath "math"

// Matrix3 is a row-major 3x3 matrix, used as the object-to-world rotation
// of an oriented box.
type Matrix3 struct {
	M [3][3]float64
}

// Identity3 returns the 3x3 identity matrix.
func Identity3() Matrix3 {
	var r Matrix3
	for i := 0; i < 3; i++ {
		r.M[i][i] = 1
	}
	return r
}

// MulVec applies the matrix to v: r = M * v.
func (m Matrix3) MulVec(v Vector3) Vector3 {
	return Vector3{
		X: m.M[0][0]*v.X + m.M[0][1]*v.Y + m.M[0][2]*v.Z,
		Y: m.M[1][0]*v.X + m.M[1][1]*v.Y + m.M[1][2]*v.Z,
		Z: m.M[2][0]*v.X + m.M[2][1]*v.Y + m.M[2][2]*v.Z,
	}
}

// Transpose returns the matrix transpose, which doubles as the inverse for
// the orthonormal rotation matrices this type is used for.
func (m Matrix3) Transpose() Matrix3 {
	var r Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r.M[i][j] = m.M[j][i]
		}
	}
	return r
}

func (m Matrix3) mul(o Matrix3) Matrix3 {
	var r Matrix3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var sum float64
			for k := 0; k < 3; k++ {
				sum += m.M[i][k] * o.M[k][j]
			}
			r.M[i][j] = sum
		}
	}
	return r
}

// Column returns the i-th column of the matrix as a vector; for a
// rotation matrix this is the corresponding world-space box axis.
func (m Matrix3) Column(i int) Vector3 {
	return Vector3{X: m.M[0][i], Y: m.M[1][i], Z: m.M[2][i]}
}

// EulerZYX builds the rotation matrix R = Rz * Ry * Rx from angles given
// in radians, matching the box rotation convention of the scene format
// (degrees on disk, converted to radians before this call).
func EulerZYX(rx, ry, rz float64) Matrix3 {
	cx, sx := gomath.Cos(rx), gomath.Sin(rx)
	cy, sy := gomath.Cos(ry), gomath.Sin(ry)
	cz, sz := gomath.Cos(rz), gomath.Sin(rz)

	rxM := Matrix3{M: [3][3]float64{
		{1, 0, 0},
		{0, cx, -sx},
		{0, sx, cx},
	}}
	ryM := Matrix3{M: [3][3]float64{
		{cy, 0, sy},
		{0, 1, 0},
		{-sy, 0, cy},
	}}
	rzM := Matrix3{M: [3][3]float64{
		{cz, -sz, 0},
		{sz, cz, 0},
		{0, 0, 1},
	}}

	return rzM.mul(ryM).mul(rxM)
}
