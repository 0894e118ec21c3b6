package kinematics

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/hiwafa/rock-climbing-robot/armature"
	"github.com/hiwafa/rock-climbing-robot/spatialmath"
)

var errZeroEpsilon = errors.New("jacobian perturbation epsilon must be nonzero")

// Jacobian estimates the sensitivity of a node's world position to each
// configuration degree of freedom by finite differences: row i of the
// returned DOF-by-3 matrix is the node's position after perturbing slot i by
// epsilon, differenced against referencePosition and divided by epsilon.
// It never mutates the tree and is not used by the solver; it is provided as
// a reusable numerical utility.
func (e *Engine) Jacobian(
	cfg armature.Config,
	nodeName string,
	referencePosition r3.Vector,
	epsilon float64,
	base *spatialmath.Transform,
) (*mat.Dense, error) {
	if epsilon == 0 {
		return nil, errZeroEpsilon
	}
	if _, ok := e.tree.Node(nodeName); !ok {
		return nil, errors.Errorf("node %q is not present in the tree", nodeName)
	}
	dof := e.index.DOF()
	if dof == 0 {
		return nil, errors.New("tree has no degrees of freedom")
	}

	vec := e.currentVector()
	if err := e.index.ApplyConfig(vec, cfg); err != nil {
		return nil, err
	}

	jacobian := mat.NewDense(dof, 3, nil)
	perturbed := make([]armature.Input, dof)
	for i := 0; i < dof; i++ {
		copy(perturbed, vec)
		perturbed[i].Value += epsilon

		poses := e.evalVector(perturbed, base)
		delta := poses[nodeName].Point().Sub(referencePosition).Mul(1 / epsilon)
		jacobian.SetRow(i, []float64{delta.X, delta.Y, delta.Z})
	}
	return jacobian, nil
}
