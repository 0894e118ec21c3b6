// Package kinematics animates an articulated figure: it solves, each frame,
// for the joint angles that place a designated end effector at a target point
// in space. It contains the forward-kinematics evaluator, the cyclic
// coordinate descent inverse-kinematics solver, and a finite-difference
// Jacobian estimator.
package kinematics

import (
	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/hiwafa/rock-climbing-robot/armature"
	"github.com/hiwafa/rock-climbing-robot/spatialmath"
)

var errNilRoot = errors.New("cannot build an engine without a joint tree")

// DefaultRestBias bends the elbows and knees slightly so the figure hangs in
// a natural resting stance instead of a fully extended pose. Joints absent
// from the tree are skipped.
var DefaultRestBias = armature.Config{
	"elbow_l_1dof": {{Value: 0.35}},
	"elbow_r_1dof": {{Value: -0.35}},
	"knee_l_1dof":  {{Value: -0.35}},
	"knee_r_1dof":  {{Value: 0.35}},
}

// PoseMap is a snapshot of every node's world transform at one instant, as
// produced by one forward-kinematics evaluation.
type PoseMap map[string]*spatialmath.Transform

// Clone returns a deep copy of the pose map.
func (pm PoseMap) Clone() PoseMap {
	out := make(PoseMap, len(pm))
	for name, tf := range pm {
		out[name] = tf.Clone()
	}
	return out
}

// Engine solves pose-to-target placement over a host-owned joint tree. It is
// the sole in-process mutator of node rotations; callers in a concurrent
// setting must serialize access per solve call.
type Engine struct {
	tree   *armature.Tree
	index  *armature.Index
	up     armature.UpAxis
	logger golog.Logger

	home      armature.Config
	homePoses PoseMap
}

// Option configures an Engine at construction.
type Option func(*engineOptions)

type engineOptions struct {
	up       armature.UpAxis
	restBias armature.Config
}

// WithUpAxis selects the vertical-axis convention; the default is ZUp.
func WithUpAxis(up armature.UpAxis) Option {
	return func(o *engineOptions) {
		o.up = up
	}
}

// WithRestBias replaces DefaultRestBias as the stance applied at construction.
func WithRestBias(bias armature.Config) Option {
	return func(o *engineOptions) {
		o.restBias = bias
	}
}

// NewEngine builds the configuration index over the given tree and captures
// the home configuration and its forward-kinematics snapshot.
func NewEngine(root *armature.Node, logger golog.Logger, opts ...Option) (*Engine, error) {
	if root == nil {
		return nil, errNilRoot
	}
	options := engineOptions{up: armature.ZUp, restBias: DefaultRestBias}
	for _, opt := range opts {
		opt(&options)
	}

	tree, err := armature.NewTree(root)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		tree:   tree,
		index:  armature.NewIndex(tree, options.up),
		up:     options.up,
		logger: logger,
	}
	if err := e.SetConfig(options.restBias); err != nil {
		return nil, errors.Wrap(err, "applying rest bias")
	}
	e.home = e.CurrentConfig()
	homePoses, err := e.Evaluate(e.home)
	if err != nil {
		return nil, err
	}
	e.homePoses = homePoses
	logger.Debugf("engine built over %d joints, %d degrees of freedom", len(e.index.Joints()), e.index.DOF())
	return e, nil
}

// Index returns the engine's configuration index.
func (e *Engine) Index() *armature.Index {
	return e.index
}

// UpAxis returns the vertical-axis convention the engine was built with.
func (e *Engine) UpAxis() armature.UpAxis {
	return e.up
}

// Home returns the configuration captured at construction.
func (e *Engine) Home() armature.Config {
	return e.home.Clone()
}

// HomePoses returns the forward-kinematics snapshot of the home configuration,
// used by hosts to locate each effector's rest offset from the tree root.
func (e *Engine) HomePoses() PoseMap {
	return e.homePoses.Clone()
}

// Chain returns the root-to-effector joint sequence for the given effector.
func (e *Engine) Chain(effector string) []string {
	return e.tree.Chain(effector)
}

// CurrentConfig reads the current rotations of every indexed joint.
func (e *Engine) CurrentConfig() armature.Config {
	cfg := make(armature.Config, len(e.index.Joints()))
	for _, joint := range e.index.Joints() {
		node, ok := e.tree.Node(joint.Name)
		if !ok {
			continue
		}
		vals := make([]armature.Input, 0, joint.DoF())
		for _, axis := range joint.Axes() {
			vals = append(vals, armature.Input{Value: node.Rotation.Component(axis)})
		}
		cfg[joint.Name] = vals
	}
	return cfg
}

// SetConfig applies the given joint values to their nodes' local rotations
// and propagates world transforms. Untouched joints are unaffected, and
// unknown joint names are ignored.
func (e *Engine) SetConfig(cfg armature.Config) error {
	var errAll error
	for name, vals := range cfg {
		joint, ok := e.index.Joint(name)
		if !ok {
			continue
		}
		if len(vals) != joint.DoF() {
			multierr.AppendInto(&errAll, errors.Errorf("joint %q expects %d values, got %d", name, joint.DoF(), len(vals)))
			continue
		}
		node, ok := e.tree.Node(name)
		if !ok {
			continue
		}
		for k, axis := range joint.Axes() {
			node.Rotation.SetComponent(axis, vals[k].Value)
		}
	}
	e.tree.Propagate(nil)
	return errAll
}
