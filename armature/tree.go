package armature

import (
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/hiwafa/rock-climbing-robot/spatialmath"
)

var errNilRoot = errors.New("cannot build a tree from a nil root node")

// Tree wraps a host-supplied node hierarchy with name lookup, parent links,
// world-transform propagation, and cached chain extraction. Topology is fixed
// after construction; only node rotations change.
type Tree struct {
	root   *Node
	nodes  map[string]*Node
	parent map[string]*Node
	chains map[string][]string
}

// NewTree validates the hierarchy rooted at the given node and indexes it.
// Node names must be unique within the tree.
func NewTree(root *Node) (*Tree, error) {
	if root == nil {
		return nil, errNilRoot
	}
	t := &Tree{
		root:   root,
		nodes:  map[string]*Node{},
		parent: map[string]*Node{},
		chains: map[string][]string{},
	}
	var errAll error
	var walk func(n *Node)
	walk = func(n *Node) {
		if _, ok := t.nodes[n.Name]; ok {
			multierr.AppendInto(&errAll, errors.Errorf("duplicate node name %q", n.Name))
			return
		}
		t.nodes[n.Name] = n
		for _, child := range n.Children {
			t.parent[child.Name] = n
			walk(child)
		}
	}
	walk(root)
	if errAll != nil {
		return nil, errAll
	}
	return t, nil
}

// Root returns the root node.
func (t *Tree) Root() *Node {
	return t.root
}

// Node looks up a node by name.
func (t *Tree) Node(name string) (*Node, bool) {
	n, ok := t.nodes[name]
	return n, ok
}

// Names returns all node names in ascending order.
func (t *Tree) Names() []string {
	names := make([]string, 0, len(t.nodes))
	for name := range t.nodes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Propagate recomputes every node's cached world transform parent-to-child,
// composing the given base transform ahead of the root. A nil base means the
// tree is rooted at the world origin.
func (t *Tree) Propagate(base *spatialmath.Transform) {
	if base == nil {
		base = spatialmath.NewTransform()
	}
	var walk func(n *Node, parentWorld *spatialmath.Transform)
	walk = func(n *Node, parentWorld *spatialmath.Transform) {
		n.world = spatialmath.Compose(parentWorld, n.LocalTransform())
		for _, child := range n.Children {
			walk(child, n.world)
		}
	}
	walk(t.root, base)
}

// Chain returns the ordered joint names from the base of the tree to the
// given effector: the effector's ancestors, excluding the root, filtered to
// recognized joint names, base joint first. An effector absent from the tree
// yields the singleton chain containing just its name. Results are cached,
// as chains depend only on topology.
func (t *Tree) Chain(effector string) []string {
	if cached, ok := t.chains[effector]; ok {
		return append([]string{}, cached...)
	}
	var chain []string
	if _, ok := t.nodes[effector]; !ok {
		chain = []string{effector}
	} else {
		for n := t.parent[effector]; n != nil && n != t.root; n = t.parent[n.Name] {
			if IsJointName(n.Name) {
				chain = append(chain, n.Name)
			}
		}
		// reverse into root-to-effector order
		for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
			chain[i], chain[j] = chain[j], chain[i]
		}
	}
	t.chains[effector] = chain
	return append([]string{}, chain...)
}
