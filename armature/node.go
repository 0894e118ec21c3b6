// Package armature models the joint tree of an articulated figure: named
// nodes with local rotations, joint descriptors derived from node naming
// conventions, and the indexing scheme that maps joint degrees of freedom to
// slots in a flat configuration vector.
package armature

import (
	"github.com/golang/geo/r3"

	"github.com/hiwafa/rock-climbing-robot/spatialmath"
)

// Node is a single element of the joint tree. The host application owns the
// tree; the engine holds a non-owning reference and mutates Rotation in place.
type Node struct {
	// Name uniquely identifies the node within its tree.
	Name string

	// Translation is the fixed local offset from the parent node.
	Translation r3.Vector

	// Rotation is the node's local joint rotation.
	Rotation spatialmath.EulerAngles

	Children []*Node

	world *spatialmath.Transform
}

// NewNode creates a node at the given offset from its parent.
func NewNode(name string, translation r3.Vector) *Node {
	return &Node{Name: name, Translation: translation}
}

// Attach adds child nodes and returns the receiver for chaining.
func (n *Node) Attach(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// LocalTransform returns the node's transform relative to its parent: the
// fixed translation followed by the current local rotation.
func (n *Node) LocalTransform() *spatialmath.Transform {
	return spatialmath.NewTransformFromPose(n.Translation, &n.Rotation)
}

// WorldTransform returns the node's cached world transform. It is nil until
// the first propagation and stale after any rotation change until the next.
func (n *Node) WorldTransform() *spatialmath.Transform {
	return n.world
}
