package armature

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/hiwafa/rock-climbing-robot/utils"
)

// Input wraps one joint angle in radians.
type Input struct {
	Value float64
}

// FloatsToInputs wraps a slice of floats in Inputs.
func FloatsToInputs(floats []float64) []Input {
	inputs := make([]Input, len(floats))
	for i, f := range floats {
		inputs[i] = Input{f}
	}
	return inputs
}

// InputsToFloats unwraps Inputs to raw floats.
func InputsToFloats(inputs []Input) []float64 {
	floats := make([]float64, len(inputs))
	for i, f := range inputs {
		floats[i] = f.Value
	}
	return floats
}

// Config maps joint names to their angle values: one Input for a single-axis
// joint, three (x, y, z) for a triple-axis joint. Partial configs naming only
// a subset of joints are valid inputs to every mutation operation.
type Config map[string][]Input

// Clone returns a deep copy of the config.
func (cfg Config) Clone() Config {
	out := make(Config, len(cfg))
	for name, vals := range cfg {
		out[name] = append([]Input{}, vals...)
	}
	return out
}

// ZeroVector returns a configuration vector with every slot at zero.
func (idx *Index) ZeroVector() []Input {
	return make([]Input, idx.DOF())
}

// ApplyConfig overlays the given partial config onto the vector in place.
// Joints absent from the index are ignored. An entry whose arity does not
// match its joint is skipped and reported.
func (idx *Index) ApplyConfig(vec []Input, cfg Config) error {
	if len(vec) != idx.DOF() {
		return errors.Errorf("vector length %d does not match %d degrees of freedom", len(vec), idx.DOF())
	}
	var errAll error
	for name, vals := range cfg {
		joint, ok := idx.byName[name]
		if !ok {
			continue
		}
		if len(vals) != joint.DoF() {
			multierr.AppendInto(&errAll, errors.Errorf("joint %q expects %d values, got %d", name, joint.DoF(), len(vals)))
			continue
		}
		for k, axis := range joint.Axes() {
			slot := idx.slots[DOFLabel{Joint: name, Axis: axis}]
			vec[slot] = vals[k]
		}
	}
	return errAll
}

// VectorFromConfig encodes a config as a full vector, with unnamed joints at zero.
func (idx *Index) VectorFromConfig(cfg Config) ([]Input, error) {
	vec := idx.ZeroVector()
	if err := idx.ApplyConfig(vec, cfg); err != nil {
		return nil, err
	}
	return vec, nil
}

// ConfigFromVector decodes a full vector back into named form.
func (idx *Index) ConfigFromVector(vec []Input) (Config, error) {
	if len(vec) != idx.DOF() {
		return nil, errors.Errorf("vector length %d does not match %d degrees of freedom", len(vec), idx.DOF())
	}
	cfg := make(Config, len(idx.joints))
	slot := 0
	for _, joint := range idx.joints {
		cfg[joint.Name] = append([]Input{}, vec[slot:slot+joint.DoF()]...)
		slot += joint.DoF()
	}
	return cfg, nil
}

// InterpolateConfig returns a config the given fraction of the way from one
// config to another. Joints present only in `from` keep their values.
func InterpolateConfig(from, to Config, by float64) Config {
	out := make(Config, len(from))
	for name, fromVals := range from {
		toVals, ok := to[name]
		if !ok || len(toVals) != len(fromVals) {
			out[name] = append([]Input{}, fromVals...)
			continue
		}
		vals := make([]Input, len(fromVals))
		for i, f := range fromVals {
			vals[i] = Input{f.Value + (toVals[i].Value-f.Value)*by}
		}
		out[name] = vals
	}
	return out
}

// ConfigAlmostEqual reports whether two configs name the same joints with
// values within epsilon of each other.
func ConfigAlmostEqual(a, b Config, epsilon float64) bool {
	if len(a) != len(b) {
		return false
	}
	for name, aVals := range a {
		bVals, ok := b[name]
		if !ok || len(aVals) != len(bVals) {
			return false
		}
		for i := range aVals {
			if !utils.Float64AlmostEqual(aVals[i].Value, bVals[i].Value, epsilon) {
				return false
			}
		}
	}
	return true
}
