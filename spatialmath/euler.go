package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// EulerAngles are three rotations in radians about the fixed (extrinsic) world
// axes, applied in x, y, z order. The equivalent rotation matrix is Rz*Ry*Rx.
type EulerAngles struct {
	X float64
	Y float64
	Z float64
}

// NewEulerAngles returns an EulerAngles with no rotation.
func NewEulerAngles() *EulerAngles {
	return &EulerAngles{}
}

// Quaternion returns the rotation quaternion equivalent of the Euler angles.
func (ea *EulerAngles) Quaternion() quat.Number {
	qx := quat.Number{Real: math.Cos(ea.X / 2), Imag: math.Sin(ea.X / 2)}
	qy := quat.Number{Real: math.Cos(ea.Y / 2), Jmag: math.Sin(ea.Y / 2)}
	qz := quat.Number{Real: math.Cos(ea.Z / 2), Kmag: math.Sin(ea.Z / 2)}
	return quat.Mul(qz, quat.Mul(qy, qx))
}

// QuatToEulerAngles converts a rotation unit quaternion to fixed-axis euler angles.
// See the following wikipedia page for the formulas used here:
// https://en.wikipedia.org/wiki/Conversion_between_quaternions_and_Euler_angles#Quaternion_to_Euler_angles_conversion
func QuatToEulerAngles(q quat.Number) *EulerAngles {
	w := q.Real
	x := q.Imag
	y := q.Jmag
	z := q.Kmag

	sinY := 2 * (w*y - x*z)
	// Account for floating point error
	if sinY > 1 {
		sinY = 1
	}
	if sinY < -1 {
		sinY = -1
	}

	return &EulerAngles{
		X: math.Atan2(2*(w*x+y*z), 1-2*(x*x+y*y)),
		Y: math.Asin(sinY),
		Z: math.Atan2(2*(w*z+y*x), 1-2*(y*y+z*z)),
	}
}

// Component returns the angle about the given axis.
func (ea *EulerAngles) Component(a Axis) float64 {
	switch a {
	case AxisX:
		return ea.X
	case AxisY:
		return ea.Y
	case AxisZ:
		return ea.Z
	}
	return 0
}

// SetComponent sets the angle about the given axis.
func (ea *EulerAngles) SetComponent(a Axis, value float64) {
	switch a {
	case AxisX:
		ea.X = value
	case AxisY:
		ea.Y = value
	case AxisZ:
		ea.Z = value
	}
}
