package math

import (
	"math"
	"testing"
)

func TestIdentity(t *testing.T) {
	m := Identity()
	// Diagonal should be 1
	if m[0] != 1 || m[5] != 1 || m[10] != 1 || m[15] != 1 {
		t.Error("Identity diagonal should be 1")
	}
	// Off-diagonal should be 0
	if m[1] != 0 || m[4] != 0 {
		t.Error("Identity off-diagonal should be 0")
	}
}

func TestMulIdentity(t *testing.T) {
	m := Translate(1, 2, 3)
	result := m.Mul(Identity())

	for i := 0; i < 16; i++ {
		if result[i] != m[i] {
			t.Errorf("M * I should equal M, element %d: got %f, want %f", i, result[i], m[i])
		}
	}
}

func TestTranslate(t *testing.T) {
	m := Translate(5, 10, 15)

	// Translation lives in column 4 (indices 12, 13, 14)
	if m[12] != 5 || m[13] != 10 || m[14] != 15 {
		t.Errorf("Translate: got (%f, %f, %f), want (5, 10, 15)", m[12], m[13], m[14])
	}
}

func TestTransformVec3(t *testing.T) {
	tests := []struct {
		name string
		m    Mat4
		in   Vec3
		want Vec3
	}{
		{"translate", Translate(10, 20, 30), Vec3{1, 2, 3}, Vec3{11, 22, 33}},
		{"scale", Scale(2, 2, 2), Vec3{1, 2, 3}, Vec3{2, 4, 6}},
		{"identity", Identity(), Vec3{-1, 0.5, 7}, Vec3{-1, 0.5, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.m.TransformVec3(tt.in)
			if got != tt.want {
				t.Errorf("TransformVec3: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestRotateY90(t *testing.T) {
	m := RotateY(float32(math.Pi / 2))
	result := m.TransformVec3(Vec3{1, 0, 0})

	// After 90 degree Y rotation, (1,0,0) becomes approximately (0,0,-1)
	if abs(result.X) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+1) > 0.001 {
		t.Errorf("RotateY 90: got %v, want (0, 0, -1)", result)
	}
}

func TestRotateXFlattensPlane(t *testing.T) {
	// A plane in XY rotated -90 degrees about X lies on the ground.
	m := RotateX(float32(-math.Pi / 2))
	result := m.TransformVec3(Vec3{0.5, 0.5, 0})

	if abs(result.X-0.5) > 0.001 || abs(result.Y) > 0.001 || abs(result.Z+0.5) > 0.001 {
		t.Errorf("RotateX -90: got %v, want (0.5, 0, -0.5)", result)
	}
}

func TestComposeOrder(t *testing.T) {
	// Scale is applied first, then translation.
	m := Compose(Vec3{1, 0, 0}, Vec3{}, Vec3{2, 3, 4})
	got := m.TransformVec3(Vec3{1, 1, 1})
	want := Vec3{3, 3, 4}
	if got != want {
		t.Errorf("Compose: got %v, want %v", got, want)
	}
}

func TestComposeWithoutRotationIsExact(t *testing.T) {
	m := Compose(Vec3{0.25, -1, 0.75}, Vec3{}, Vec3{1.7, 1, 0.3})
	want := Translate(0.25, -1, 0.75).Mul(Scale(1.7, 1, 0.3))
	if m != want {
		t.Errorf("Compose without rotation: got %v, want %v", m, want)
	}
}

func TestTransformDirectionIgnoresTranslation(t *testing.T) {
	m := Translate(5, 5, 5)
	got := m.TransformDirection(Vec3{0, 1, 0})
	if got != (Vec3{0, 1, 0}) {
		t.Errorf("TransformDirection: got %v, want (0, 1, 0)", got)
	}
}

func TestLookAt(t *testing.T) {
	eye := Vec3{0, 0, 5}
	m := LookAt(eye, Vec3{}, Vec3{0, 1, 0})

	// The eye maps to the view-space origin.
	p := m.TransformVec3(eye)
	if abs(p.X) > 0.0001 || abs(p.Y) > 0.0001 || abs(p.Z) > 0.0001 {
		t.Errorf("LookAt eye: got %v, want origin", p)
	}
	// The target sits in front of the camera (negative Z).
	c := m.TransformVec3(Vec3{})
	if c.Z >= 0 {
		t.Errorf("LookAt target Z: got %f, want negative", c.Z)
	}
}

func TestOrthoMapsVolumeToClip(t *testing.T) {
	m := Ortho(-2, 2, -1, 1, 1, 11)

	near := m.MulVec4(Vec4{2, 1, -1, 1})
	if abs(near.X-1) > 0.0001 || abs(near.Y-1) > 0.0001 || abs(near.Z+1) > 0.0001 {
		t.Errorf("Ortho near corner: got %v, want (1, 1, -1)", near)
	}
	far := m.MulVec4(Vec4{-2, -1, -11, 1})
	if abs(far.X+1) > 0.0001 || abs(far.Y+1) > 0.0001 || abs(far.Z-1) > 0.0001 {
		t.Errorf("Ortho far corner: got %v, want (-1, -1, 1)", far)
	}
}

func abs(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
