package math

import "testing"

func TestVector3Add(t *testing.T) {
	got := Vector3{1, 2, 3}.Add(Vector3{4, 5, 6})
	want := Vector3{5, 7, 9}
	if got != want {
		t.Errorf("Add = %v, want %v", got, want)
	}
}

func TestVector3Dot(t *testing.T) {
	got := Vector3{1, 2, 3}.Dot(Vector3{4, 5, 6})
	if got != 32 {
		t.Errorf("Dot = %v, want 32", got)
	}
}

func TestVector3Cross(t *testing.T) {
	got := Vector3{1, 0, 0}.Cross(Vector3{0, 1, 0})
	want := Vector3{0, 0, 1}
	if got != want {
		t.Errorf("Cross = %v, want %v", got, want)
	}
}

func TestVector3Normalize(t *testing.T) {
	got := Vector3{3, 4, 0}.Normalize()
	want := Vector3{0.6, 0.8, 0}
	if diff := got.Sub(want).Length(); diff > 1e-9 {
		t.Errorf("Normalize = %v, want %v", got, want)
	}
}

func TestVector3NormalizeZero(t *testing.T) {
	got := Vector3{0, 0, 0}.Normalize()
	if got != (Vector3{}) {
		t.Errorf("Normalize(zero) = %v, want zero vector", got)
	}
}

func TestVector3Reflect(t *testing.T) {
	incident := Vector3{1, -1, 0}
	normal := Vector3{0, 1, 0}
	got := incident.Reflect(normal)
	want := Vector3{1, 1, 0}
	if diff := got.Sub(want).Length(); diff > 1e-9 {
		t.Errorf("Reflect = %v, want %v", got, want)
	}
}
