// Package spatialmath defines the spatial mathematical operations used by the
// kinematics engine: rigid transforms backed by dual quaternions, fixed-axis
// Euler angles, and conversions to a 4x4 affine matrix view.
package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// Axis identifies one of the three rotation axes of a joint.
type Axis int

// The three rotation axes, in the order they occupy configuration vector slots.
const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	}
	return "?"
}

// Transform represents a rigid transformation (rotation and translation) in 3D.
type Transform struct {
	Quat dualquat.Number
}

// NewTransform returns a pointer to a new Transform whose dual quaternion is the identity.
// Since the real part of a dual quaternion should be a unit quaternion, not all zeroes,
// this should be used instead of &Transform{}.
func NewTransform() *Transform {
	return &Transform{dualquat.Number{
		Real: quat.Number{Real: 1},
		Dual: quat.Number{},
	}}
}

// NewTransformFromPoint returns a pure translation to the given point.
func NewTransformFromPoint(pt r3.Vector) *Transform {
	t := NewTransform()
	t.SetTranslation(pt.X, pt.Y, pt.Z)
	return t
}

// NewTransformFromOrientation returns a pure rotation from fixed-axis Euler angles.
func NewTransformFromOrientation(ea *EulerAngles) *Transform {
	return &Transform{dualquat.Number{
		Real: ea.Quaternion(),
		Dual: quat.Number{},
	}}
}

// NewTransformFromPose returns a transform rotating by the given Euler angles
// about a frame located at the given point.
func NewTransformFromPose(pt r3.Vector, ea *EulerAngles) *Transform {
	t := &Transform{dualquat.Number{
		Real: ea.Quaternion(),
		Dual: quat.Number{},
	}}
	t.SetTranslation(pt.X, pt.Y, pt.Z)
	return t
}

// Clone returns a Transform object identical to this one.
func (t *Transform) Clone() *Transform {
	// No need for deep copies here, dualquats are primitives all the way down
	return &Transform{t.Quat}
}

// Rotation returns the rotation quaternion.
func (t *Transform) Rotation() quat.Number {
	return t.Quat.Real
}

// Orientation returns the rotation expressed as fixed-axis Euler angles.
func (t *Transform) Orientation() *EulerAngles {
	return QuatToEulerAngles(t.Quat.Real)
}

// Point returns the translation component as a vector.
func (t *Transform) Point() r3.Vector {
	cart := dualquat.Mul(t.Quat, dualquat.Conj(t.Quat))
	return r3.Vector{X: cart.Dual.Imag, Y: cart.Dual.Jmag, Z: cart.Dual.Kmag}
}

// SetTranslation correctly sets the translation quaternion against the rotation.
func (t *Transform) SetTranslation(x, y, z float64) {
	t.Quat.Dual = quat.Number{Real: 0, Imag: x / 2, Jmag: y / 2, Kmag: z / 2}
	t.Quat.Dual = quat.Mul(t.Quat.Dual, t.Quat.Real)
}

// Compose returns the transform resulting from applying b in the frame of a.
func Compose(a, b *Transform) *Transform {
	by := b.Quat
	// Ensure we are multiplying by a unit dual quaternion
	if vecLen := quat.Abs(by.Real); vecLen != 1 {
		by.Real = quat.Scale(1/vecLen, by.Real)
	}
	return &Transform{dualquat.Mul(a.Quat, by)}
}

// TransformPoint applies the transform to the given point.
func (t *Transform) TransformPoint(pt r3.Vector) r3.Vector {
	p := quat.Number{Imag: pt.X, Jmag: pt.Y, Kmag: pt.Z}
	rotated := quat.Mul(quat.Mul(t.Quat.Real, p), quat.Conj(t.Quat.Real))
	return r3.Vector{X: rotated.Imag, Y: rotated.Jmag, Z: rotated.Kmag}.Add(t.Point())
}

// Matrix returns the 4x4 affine matrix equivalent of the transform, with the
// rotation block in the upper left and the translation in the fourth column.
func (t *Transform) Matrix() mgl64.Mat4 {
	q := t.Quat.Real
	m := mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}.Normalize().Mat4()
	pt := t.Point()
	m.SetCol(3, mgl64.Vec4{pt.X, pt.Y, pt.Z, 1})
	return m
}

// RotationAxis returns the world-space direction of the given local rotation
// axis, i.e. the corresponding column of the rotation block of Matrix().
func (t *Transform) RotationAxis(a Axis) r3.Vector {
	col := t.Matrix().Col(int(a))
	return r3.Vector{X: col.X(), Y: col.Y(), Z: col.Z()}
}

// R3VectorAlmostEqual compares two vectors and returns if the difference between them is less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return a.Sub(b).Norm() < epsilon
}
