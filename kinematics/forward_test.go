package kinematics

import (
	"math"
	"testing"

	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"
	"go.viam.com/test"

	"github.com/hiwafa/rock-climbing-robot/armature"
	"github.com/hiwafa/rock-climbing-robot/spatialmath"
)

func TestEvaluatePositions(t *testing.T) {
	logger := golog.NewTestLogger(t)
	engine, err := NewEngine(testPlanarArm(), logger)
	test.That(t, err, test.ShouldBeNil)

	poses, err := engine.Evaluate(armature.Config{
		"base_1dof": armature.FloatsToInputs([]float64{math.Pi / 2}),
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(poses["root"].Point(), r3.Vector{}, 1e-9), test.ShouldBeTrue)
	test.That(t, spatialmath.R3VectorAlmostEqual(poses["tip"].Point(), r3.Vector{Y: 1}, 1e-9), test.ShouldBeTrue)
}

func TestEvaluateDoesNotMutateTree(t *testing.T) {
	logger := golog.NewTestLogger(t)
	root := testPlanarArm()
	engine, err := NewEngine(root, logger)
	test.That(t, err, test.ShouldBeNil)

	before := engine.CurrentConfig()
	tipBefore := root.Children[0].Children[0].WorldTransform().Point()

	_, err = engine.Evaluate(armature.Config{
		"base_1dof": armature.FloatsToInputs([]float64{1.2}),
	})
	test.That(t, err, test.ShouldBeNil)

	// queryable state is identical to what it was before the call
	test.That(t, armature.ConfigAlmostEqual(engine.CurrentConfig(), before, 1e-12), test.ShouldBeTrue)
	tipAfter := root.Children[0].Children[0].WorldTransform().Point()
	test.That(t, spatialmath.R3VectorAlmostEqual(tipAfter, tipBefore, 1e-12), test.ShouldBeTrue)
}

func TestEvaluateOverlaysCurrentState(t *testing.T) {
	logger := golog.NewTestLogger(t)
	engine, err := NewEngine(testPlanarArm(), logger)
	test.That(t, err, test.ShouldBeNil)

	err = engine.SetConfig(armature.Config{
		"base_1dof": armature.FloatsToInputs([]float64{math.Pi / 2}),
	})
	test.That(t, err, test.ShouldBeNil)

	// an empty config evaluates the tree as it currently stands
	poses, err := engine.Evaluate(armature.Config{})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(poses["tip"].Point(), r3.Vector{Y: 1}, 1e-9), test.ShouldBeTrue)
}

func TestEvaluateUnknownJointIgnored(t *testing.T) {
	logger := golog.NewTestLogger(t)
	engine, err := NewEngine(testPlanarArm(), logger)
	test.That(t, err, test.ShouldBeNil)

	poses, err := engine.Evaluate(armature.Config{
		"phantom_1dof": armature.FloatsToInputs([]float64{2}),
	})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, spatialmath.R3VectorAlmostEqual(poses["tip"].Point(), r3.Vector{X: 1}, 1e-9), test.ShouldBeTrue)
}

func TestEvaluateSnapshotCoversAllNodes(t *testing.T) {
	logger := golog.NewTestLogger(t)
	engine, err := NewEngine(testClimber(), logger)
	test.That(t, err, test.ShouldBeNil)

	poses, err := engine.Evaluate(engine.Home())
	test.That(t, err, test.ShouldBeNil)
	for _, name := range []string{"root", "chest", "hips", "shoulder_l_3dof", "elbow_r_1dof", "hand_l", "hand_r", "foot_l", "foot_r"} {
		test.That(t, poses[name], test.ShouldNotBeNil)
	}
	test.That(t, poses, test.ShouldHaveLength, 15)
}
