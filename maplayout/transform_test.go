package maplayout

import (
	"math"
	"testing"
)

func vecNear(t *testing.T, what string, got, want Vec3) {
	t.Helper()

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-9 {
			t.Fatalf("%s = %v, want %v", what, got, want)
		}
	}
}

func TestPositionFromUE(t *testing.T) {
	vecNear(t, "positionFromUE(1000, 2000, 300)",
		positionFromUE(1000, 2000, 300), Vec3{10, -20, 3})

	// The Y flip must not leave a negative zero behind.
	got := positionFromUE(0, 0, 0)
	if math.Signbit(got[1]) {
		t.Fatalf("positionFromUE(0, 0, 0) = %v, want positive zeros", got)
	}
}

func TestEulerFromRotator(t *testing.T) {
	vecNear(t, "eulerFromRotator(30, 90, -45)",
		eulerFromRotator(30, 90, -45),
		Vec3{radians(-45), radians(-30), radians(-90)})

	vecNear(t, "eulerFromRotator(0, 0, 0)",
		eulerFromRotator(0, 0, 0), Vec3{})
}

func TestEulerFromQuat(t *testing.T) {
	s := math.Sqrt2 / 2

	tests := []struct {
		name       string
		x, y, z, w float64
		want       Vec3
	}{
		{"identity", 0, 0, 0, 1, Vec3{}},
		{"zero quat", 0, 0, 0, 0, Vec3{}},
		{"90 deg about X", s, 0, 0, s, Vec3{-math.Pi / 2, 0, 0}},
		{"90 deg about Y", 0, s, 0, s, Vec3{0, math.Pi / 2, 0}},
		{"90 deg about Z", 0, 0, s, s, Vec3{0, 0, -math.Pi / 2}},
		{"unnormalized 180 deg about Z", 0, 0, 2, 0, Vec3{0, 0, -math.Pi}},
	}

	for _, tt := range tests {
		got := eulerFromQuat(tt.x, tt.y, tt.z, tt.w)
		vecNear(t, "eulerFromQuat("+tt.name+")", got, tt.want)
	}
}

func TestEulerFromQuatGimbalKeepsTotalRotation(t *testing.T) {
	// 90° about Y composed with 30° about X puts Y at the gimbal limit;
	// the X component must absorb the remaining rotation.
	sy, cy := math.Sin(math.Pi/4), math.Cos(math.Pi/4)
	sx, cx := math.Sin(math.Pi/12), math.Cos(math.Pi/12)

	// q = qY * qX, engine order.
	x := cy * sx
	y := sy * cx
	z := -sy * sx
	w := cy * cx

	got := eulerFromQuat(x, y, z, w)
	vecNear(t, "eulerFromQuat(gimbal)", got, Vec3{-math.Pi / 6, math.Pi / 2, 0})
}

func TestSplitObjectPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/Game/Env/SM_Rock.2", "/Game/Env/SM_Rock"},
		{"/Game/Env/SM_Rock.SM_Rock", "/Game/Env/SM_Rock"},
		{"/Game/Env/SM_Rock", "/Game/Env/SM_Rock"},
		{"/Game/Env/SM_Rock.Part.0", "/Game/Env/SM_Rock"},
		{"/Game/./Env/SM_Rock.0", "/Game/./Env/SM_Rock"},
		{"/Game/Env.Old/SM_Rock.0", "/Game/Env.Old/SM_Rock"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := SplitObjectPath(tt.input); got != tt.expected {
			t.Fatalf("SplitObjectPath(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestAssetPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"/Game/Env/SM_Rock.2", "Game/Env/SM_Rock.uasset"},
		{"Game/Env/SM_Rock.0", "Game/Env/SM_Rock.uasset"},
		{"/Game/Env//SM_Rock.0", "Game/Env/SM_Rock.uasset"},
		{"/Game/./Env/SM_Rock.0", "Game/Env/SM_Rock.uasset"},
	}

	for _, tt := range tests {
		if got := AssetPath(tt.input); got != tt.expected {
			t.Fatalf("AssetPath(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
