package armature

import (
	"strings"

	"github.com/hiwafa/rock-climbing-robot/spatialmath"
)

// Node name markers that make a node an actuated joint. Nodes carrying
// neither marker contribute no degrees of freedom.
const (
	TripleAxisMarker = "3dof"
	SingleAxisMarker = "1dof"
)

// JointKind discriminates the two joint variants.
type JointKind int

// SingleAxis joints rotate about one fixed axis; TripleAxis joints rotate
// about all three.
const (
	SingleAxis JointKind = iota
	TripleAxis
)

// UpAxis selects the vertical-axis convention of the host scene, which
// determines the rotation axis of single-axis joints.
type UpAxis int

// ZUp is the default convention; YUp is the alternate used by hosts whose
// scenes treat Y as vertical.
const (
	ZUp UpAxis = iota
	YUp
)

// A Joint describes one actuated node: its name, arity, and, for single-axis
// joints, the axis it rotates about. Descriptors are built once at indexing
// time so the hot loops never re-inspect node names.
type Joint struct {
	Name string
	Kind JointKind
	Axis spatialmath.Axis
}

// IsJointName reports whether the node name carries a DOF marker.
func IsJointName(name string) bool {
	return strings.Contains(name, TripleAxisMarker) || strings.Contains(name, SingleAxisMarker)
}

// JointFromName derives a joint descriptor from a node name, returning false
// for names carrying no marker.
func JointFromName(name string, up UpAxis) (Joint, bool) {
	switch {
	case strings.Contains(name, TripleAxisMarker):
		return Joint{Name: name, Kind: TripleAxis}, true
	case strings.Contains(name, SingleAxisMarker):
		axis := spatialmath.AxisZ
		if up == YUp {
			axis = spatialmath.AxisY
		}
		return Joint{Name: name, Kind: SingleAxis, Axis: axis}, true
	}
	return Joint{}, false
}

// DoF returns the number of degrees of freedom the joint carries.
func (j Joint) DoF() int {
	if j.Kind == TripleAxis {
		return 3
	}
	return 1
}

// Axes returns the joint's rotation axes in configuration vector order.
func (j Joint) Axes() []spatialmath.Axis {
	if j.Kind == TripleAxis {
		return []spatialmath.Axis{spatialmath.AxisX, spatialmath.AxisY, spatialmath.AxisZ}
	}
	return []spatialmath.Axis{j.Axis}
}
