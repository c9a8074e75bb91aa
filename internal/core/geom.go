// Package core provides the geometry and screen primitives shared by the
// dice game and the platform layer. It has no external dependencies so the
// game logic stays pure and testable.
package core

import "math"

// Vec3 is a point or direction in table space. Y points up.
type Vec3 struct {
	X, Y, Z float64
}

// V3 is shorthand for Vec3{x, y, z}.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float64 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Len returns the Euclidean length of v.
func (v Vec3) Len() float64 {
	return math.Sqrt(v.Dot(v))
}

// Distance returns the Euclidean distance between v and o.
func (v Vec3) Distance(o Vec3) float64 {
	return v.Sub(o).Len()
}

// Horizontal returns the length of v projected onto the XZ plane.
func (v Vec3) Horizontal() float64 {
	return math.Hypot(v.X, v.Z)
}

// Pose is the position and orientation of a camera or anchor.
// ZAxis is the pose's local +Z axis in table space; a camera looks along -ZAxis.
type Pose struct {
	Position Vec3
	ZAxis    Vec3
}

// Forward returns the direction the pose looks at.
func (p Pose) Forward() Vec3 {
	return p.ZAxis.Scale(-1)
}

// LookingDown returns a camera pose at pos tilted down by pitch radians
// and turned by yaw radians around the vertical axis.
func LookingDown(pos Vec3, yaw, pitch float64) Pose {
	// Forward = (-sin(yaw)cos(pitch), -sin(pitch), -cos(yaw)cos(pitch)).
	fwd := Vec3{
		X: -math.Sin(yaw) * math.Cos(pitch),
		Y: -math.Sin(pitch),
		Z: -math.Cos(yaw) * math.Cos(pitch),
	}
	return Pose{Position: pos, ZAxis: fwd.Scale(-1)}
}

// RotateEuler rotates v by Euler angles applied X, then Y, then Z.
func RotateEuler(v, euler Vec3) Vec3 {
	sx, cx := math.Sincos(euler.X)
	sy, cy := math.Sincos(euler.Y)
	sz, cz := math.Sincos(euler.Z)

	// X
	v = Vec3{v.X, v.Y*cx - v.Z*sx, v.Y*sx + v.Z*cx}
	// Y
	v = Vec3{v.X*cy + v.Z*sy, v.Y, -v.X*sy + v.Z*cy}
	// Z
	return Vec3{v.X*cz - v.Y*sz, v.X*sz + v.Y*cz, v.Z}
}

// InverseRotateEuler undoes RotateEuler for the same angles.
func InverseRotateEuler(v, euler Vec3) Vec3 {
	sx, cx := math.Sincos(-euler.X)
	sy, cy := math.Sincos(-euler.Y)
	sz, cz := math.Sincos(-euler.Z)

	v = Vec3{v.X*cz - v.Y*sz, v.X*sz + v.Y*cz, v.Z}
	v = Vec3{v.X*cy + v.Z*sy, v.Y, -v.X*sy + v.Z*cy}
	return Vec3{v.X, v.Y*cx - v.Z*sx, v.Y*sx + v.Z*cx}
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
