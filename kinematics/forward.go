package kinematics

import (
	"github.com/hiwafa/rock-climbing-robot/armature"
	"github.com/hiwafa/rock-climbing-robot/spatialmath"
)

// Evaluate computes world transforms for every node in the tree as if the
// given configuration were applied, without mutating the tree. Joints the
// config does not name keep their current rotations; entries naming joints
// absent from the tree are ignored.
func (e *Engine) Evaluate(cfg armature.Config) (PoseMap, error) {
	vec := e.currentVector()
	if err := e.index.ApplyConfig(vec, cfg); err != nil {
		return nil, err
	}
	return e.evalVector(vec, nil), nil
}

// currentVector encodes the tree's current joint rotations as a full
// configuration vector.
func (e *Engine) currentVector() []armature.Input {
	vec := e.index.ZeroVector()
	for _, joint := range e.index.Joints() {
		node, ok := e.tree.Node(joint.Name)
		if !ok {
			continue
		}
		for _, axis := range joint.Axes() {
			if slot, ok := e.index.Slot(joint.Name, axis); ok {
				vec[slot] = armature.Input{Value: node.Rotation.Component(axis)}
			}
		}
	}
	return vec
}

// evalVector composes world transforms top-down from the static topology and
// the given full configuration vector. The shared tree is never touched, so
// evaluation is reentrant and needs no save/restore protocol. A non-nil base
// places the tree root in an arbitrary reference frame.
func (e *Engine) evalVector(vec []armature.Input, base *spatialmath.Transform) PoseMap {
	if base == nil {
		base = spatialmath.NewTransform()
	}
	poses := make(PoseMap)
	var walk func(n *armature.Node, parentWorld *spatialmath.Transform)
	walk = func(n *armature.Node, parentWorld *spatialmath.Transform) {
		rotation := n.Rotation
		if joint, ok := e.index.Joint(n.Name); ok {
			for _, axis := range joint.Axes() {
				if slot, ok := e.index.Slot(n.Name, axis); ok {
					rotation.SetComponent(axis, vec[slot].Value)
				}
			}
		}
		world := spatialmath.Compose(parentWorld, spatialmath.NewTransformFromPose(n.Translation, &rotation))
		poses[n.Name] = world
		for _, child := range n.Children {
			walk(child, world)
		}
	}
	walk(e.tree.Root(), base)
	return poses
}
