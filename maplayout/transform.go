package maplayout

import "math"

// Vec3 is an XYZ triple. Marshals as a plain three-element array.
type Vec3 [3]float64

// Transform is a placement in scene units: meters for positions, radians
// for rotations (XYZ euler order), unitless scale. Unreal's centimeters
// and degree rotators are converted on decode so consumers never see
// engine units.
type Transform struct {
	Pos   Vec3 `json:"pos"`
	Euler Vec3 `json:"euler"`
	Scale Vec3 `json:"scale"`
}

// Identity returns the no-op transform.
func Identity() Transform {
	return Transform{Scale: Vec3{1, 1, 1}}
}

// v3 builds a Vec3, stripping the negative zeros the axis flips below
// produce so identity transforms render as plain zeros.
func v3(x, y, z float64) Vec3 {
	v := Vec3{x, y, z}
	for i, c := range v {
		if c == 0 {
			v[i] = 0
		}
	}

	return v
}

// positionFromUE converts an engine-space location to scene space:
// centimeters to meters, Y axis flipped for the handedness change.
func positionFromUE(x, y, z float64) Vec3 {
	return v3(x/100, y/-100, z/100)
}

// eulerFromRotator converts an engine rotator (degrees) to an XYZ euler
// in radians. Pitch and Yaw flip sign with the handedness change;
// the rotator's Roll/Pitch/Yaw map onto X/Y/Z.
func eulerFromRotator(pitch, yaw, roll float64) Vec3 {
	return v3(radians(roll), radians(-pitch), radians(-yaw))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// eulerFromQuat decomposes a rotation quaternion into an XYZ euler and
// applies the same handedness flip instanced placements get: the X and Z
// angles are negated. A zero quaternion yields the zero euler.
func eulerFromQuat(x, y, z, w float64) Vec3 {
	n := math.Sqrt(x*x + y*y + z*z + w*w)
	if n == 0 {
		return Vec3{}
	}

	x, y, z, w = x/n, y/n, z/n, w/n

	// Rotation matrix entries for M = Rz * Ry * Rx.
	m00 := 1 - 2*(y*y+z*z)
	m10 := 2 * (x*y + w*z)
	m11 := 1 - 2*(x*x+z*z)
	m12 := 2 * (y*z - w*x)
	m20 := 2 * (x*z - w*y)
	m21 := 2 * (y*z + w*x)
	m22 := 1 - 2*(x*x+y*y)

	sy := -m20
	if sy > 1 {
		sy = 1
	} else if sy < -1 {
		sy = -1
	}

	ey := math.Asin(sy)

	var ex, ez float64
	if math.Abs(sy) < 1-1e-9 {
		ex = math.Atan2(m21, m22)
		ez = math.Atan2(m10, m00)
	} else {
		// Gimbal lock: Y is at ±90°, X and Z act on the same axis.
		// Fold the whole remaining rotation into X.
		ex = math.Atan2(-m12, m11)
	}

	return v3(-ex, ey, -ez)
}
