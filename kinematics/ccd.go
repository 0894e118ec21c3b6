package kinematics

import (
	"context"
	"math"

	"github.com/golang/geo/r3"

	"github.com/hiwafa/rock-climbing-robot/armature"
	"github.com/hiwafa/rock-climbing-robot/spatialmath"
)

const (
	defaultStepSize      = 0.5
	defaultTolerance     = 1e-4
	defaultMaxIterations = 100

	// Below this squared length a projection onto the plane perpendicular to a
	// rotation axis is too short to define an angle, and the joint cannot
	// influence the correction around that axis.
	degenerateProjection = 1e-4
)

// SolveParams tune one solver call. Zero fields fall back to the defaults.
type SolveParams struct {
	// StepSize scales each angular correction. Under-relaxed steps below 1
	// trade convergence speed for stability.
	StepSize float64

	// Tolerance is compared against the squared distance between effector and
	// target.
	Tolerance float64

	// MaxIterations bounds the number of full sweeps over the chain.
	MaxIterations int
}

// DefaultSolveParams returns the tuning used by the animation loop.
func DefaultSolveParams() SolveParams {
	return SolveParams{
		StepSize:      defaultStepSize,
		Tolerance:     defaultTolerance,
		MaxIterations: defaultMaxIterations,
	}
}

// Solution is the result of one solver call. Non-convergence is not an error;
// callers assess the residual and iteration count themselves.
type Solution struct {
	// Configuration is the final configuration in named form.
	Configuration armature.Config

	// Residual is the remaining vector from effector to target.
	Residual r3.Vector

	// Iterations is the number of full chain sweeps actually used.
	Iterations int

	// Poses is the transform map from the last forward-kinematics evaluation.
	Poses PoseMap
}

// Solve runs cyclic coordinate descent from the seed configuration until the
// effector's squared distance to the target drops below tolerance or the
// iteration bound is reached. The chain is visited in reverse, effector-nearest
// joint first, which converges faster for end-heavy corrections, and each DOF
// update is applied greedily with an immediate forward-kinematics refresh
// rather than batched per sweep. The only returned error is cancellation.
func (e *Engine) Solve(
	ctx context.Context,
	seed armature.Config,
	effector string,
	target r3.Vector,
	base *spatialmath.Transform,
	params SolveParams,
) (*Solution, error) {
	if params.StepSize == 0 {
		params.StepSize = defaultStepSize
	}
	if params.Tolerance == 0 {
		params.Tolerance = defaultTolerance
	}
	if params.MaxIterations <= 0 {
		params.MaxIterations = defaultMaxIterations
	}

	chain := e.tree.Chain(effector)
	vec := e.currentVector()
	if err := e.index.ApplyConfig(vec, seed); err != nil {
		return nil, err
	}

	poses := e.evalVector(vec, base)
	if _, ok := poses[effector]; !ok {
		e.logger.Debugw("effector not present in tree, solve cannot progress", "effector", effector)
	}
	residual := target.Sub(effectorPoint(poses, effector, base))

	iterations := 0
	for residual.Norm2() > params.Tolerance && iterations < params.MaxIterations {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		for i := len(chain) - 1; i >= 0; i-- {
			joint, ok := e.index.Joint(chain[i])
			if !ok {
				continue
			}
			for _, axis := range joint.Axes() {
				poses = e.evalVector(vec, base)
				jointPose, ok := poses[joint.Name]
				if !ok {
					continue
				}
				jointPos := jointPose.Point()
				worldAxis := jointPose.RotationAxis(axis)

				toEffector := effectorPoint(poses, effector, base).Sub(jointPos)
				toTarget := target.Sub(jointPos)

				projEffector := toEffector.Sub(worldAxis.Mul(toEffector.Dot(worldAxis)))
				projTarget := toTarget.Sub(worldAxis.Mul(toTarget.Dot(worldAxis)))
				if projEffector.Norm2() < degenerateProjection || projTarget.Norm2() < degenerateProjection {
					// rotation about this axis cannot shorten the residual here
					continue
				}
				projEffector = projEffector.Normalize()
				projTarget = projTarget.Normalize()

				dot := projEffector.Dot(projTarget)
				if dot > 1 {
					dot = 1
				}
				if dot < -1 {
					dot = -1
				}
				angle := math.Atan2(worldAxis.Dot(projEffector.Cross(projTarget)), dot)

				if slot, ok := e.index.Slot(joint.Name, axis); ok {
					vec[slot].Value += params.StepSize * angle
				}
			}
		}

		poses = e.evalVector(vec, base)
		residual = target.Sub(effectorPoint(poses, effector, base))
		iterations++
	}

	cfg, err := e.index.ConfigFromVector(vec)
	if err != nil {
		return nil, err
	}
	return &Solution{
		Configuration: cfg,
		Residual:      residual,
		Iterations:    iterations,
		Poses:         poses,
	}, nil
}

// effectorPoint reads the effector's world position from a pose map, falling
// back to the reference frame origin when the effector is not in the tree.
func effectorPoint(poses PoseMap, effector string, base *spatialmath.Transform) r3.Vector {
	if pose, ok := poses[effector]; ok {
		return pose.Point()
	}
	if base != nil {
		return base.Point()
	}
	return r3.Vector{}
}
