package armature

import (
	"github.com/hiwafa/rock-climbing-robot/spatialmath"
)

// DOFLabel names one degree of freedom: a joint and one of its rotation axes.
type DOFLabel struct {
	Joint string
	Axis  spatialmath.Axis
}

// Index is the bijection between DOF labels and configuration vector slots.
// Joints are enumerated in ascending name order, with triple-axis joints
// expanding to x, y, z at three consecutive slots. An Index is immutable
// after construction.
type Index struct {
	joints []Joint
	byName map[string]Joint
	labels []DOFLabel
	slots  map[DOFLabel]int
}

// NewIndex enumerates the tree's joints under the given up-axis convention.
// Nodes without a recognized marker contribute nothing. This is intentional,
// not every scene node is actuated.
func NewIndex(t *Tree, up UpAxis) *Index {
	idx := &Index{
		byName: map[string]Joint{},
		slots:  map[DOFLabel]int{},
	}
	for _, name := range t.Names() {
		joint, ok := JointFromName(name, up)
		if !ok {
			continue
		}
		idx.joints = append(idx.joints, joint)
		idx.byName[name] = joint
		for _, axis := range joint.Axes() {
			label := DOFLabel{Joint: name, Axis: axis}
			idx.slots[label] = len(idx.labels)
			idx.labels = append(idx.labels, label)
		}
	}
	return idx
}

// DOF returns the total number of degrees of freedom.
func (idx *Index) DOF() int {
	return len(idx.labels)
}

// Slot returns the vector slot of the given joint axis.
func (idx *Index) Slot(joint string, axis spatialmath.Axis) (int, bool) {
	i, ok := idx.slots[DOFLabel{Joint: joint, Axis: axis}]
	return i, ok
}

// Label is the reverse lookup, from vector slot to DOF label.
func (idx *Index) Label(i int) (DOFLabel, bool) {
	if i < 0 || i >= len(idx.labels) {
		return DOFLabel{}, false
	}
	return idx.labels[i], true
}

// Joints returns the joint descriptors in enumeration order.
func (idx *Index) Joints() []Joint {
	return append([]Joint{}, idx.joints...)
}

// Joint looks up a joint descriptor by name.
func (idx *Index) Joint(name string) (Joint, bool) {
	j, ok := idx.byName[name]
	return j, ok
}
