package armature

import (
	"testing"

	"go.viam.com/test"
)

func TestVectorConfigRoundTrip(t *testing.T) {
	idx := NewIndex(testIndexTree(t), ZUp)
	cfg := Config{
		"a_1dof": FloatsToInputs([]float64{0.1}),
		"b_3dof": FloatsToInputs([]float64{0.2, 0.3, 0.4}),
		"c_1dof": FloatsToInputs([]float64{0.5}),
	}
	vec, err := idx.VectorFromConfig(cfg)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, InputsToFloats(vec), test.ShouldResemble, []float64{0.1, 0.2, 0.3, 0.4, 0.5})

	back, err := idx.ConfigFromVector(vec)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ConfigAlmostEqual(back, cfg, 1e-12), test.ShouldBeTrue)
}

func TestApplyConfigPartial(t *testing.T) {
	idx := NewIndex(testIndexTree(t), ZUp)
	vec, err := idx.VectorFromConfig(Config{
		"b_3dof": FloatsToInputs([]float64{1, 2, 3}),
	})
	test.That(t, err, test.ShouldBeNil)

	// a later partial application only touches the joints it names
	err = idx.ApplyConfig(vec, Config{"a_1dof": FloatsToInputs([]float64{9})})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, InputsToFloats(vec), test.ShouldResemble, []float64{9, 1, 2, 3, 0})
}

func TestApplyConfigUnknownJointIgnored(t *testing.T) {
	idx := NewIndex(testIndexTree(t), ZUp)
	vec := idx.ZeroVector()
	err := idx.ApplyConfig(vec, Config{"ghost_1dof": FloatsToInputs([]float64{1})})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, InputsToFloats(vec), test.ShouldResemble, []float64{0, 0, 0, 0, 0})
}

func TestApplyConfigArityMismatch(t *testing.T) {
	idx := NewIndex(testIndexTree(t), ZUp)
	vec := idx.ZeroVector()
	err := idx.ApplyConfig(vec, Config{
		"a_1dof": FloatsToInputs([]float64{1, 2, 3}),
		"c_1dof": FloatsToInputs([]float64{0.5}),
	})
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "a_1dof")
	// the well-formed entry still lands
	test.That(t, vec[4].Value, test.ShouldEqual, 0.5)
}

func TestVectorLengthMismatch(t *testing.T) {
	idx := NewIndex(testIndexTree(t), ZUp)
	_, err := idx.ConfigFromVector(make([]Input, 2))
	test.That(t, err, test.ShouldNotBeNil)
	err = idx.ApplyConfig(make([]Input, 2), Config{})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestInterpolateConfig(t *testing.T) {
	from := Config{
		"a_1dof": FloatsToInputs([]float64{0}),
		"b_3dof": FloatsToInputs([]float64{0, 1, 2}),
	}
	to := Config{
		"a_1dof": FloatsToInputs([]float64{1}),
		"b_3dof": FloatsToInputs([]float64{2, 1, 0}),
	}
	mid := InterpolateConfig(from, to, 0.5)
	test.That(t, ConfigAlmostEqual(mid, Config{
		"a_1dof": FloatsToInputs([]float64{0.5}),
		"b_3dof": FloatsToInputs([]float64{1, 1, 1}),
	}, 1e-12), test.ShouldBeTrue)
}

func TestConfigClone(t *testing.T) {
	cfg := Config{"a_1dof": FloatsToInputs([]float64{1})}
	clone := cfg.Clone()
	clone["a_1dof"][0].Value = 2
	test.That(t, cfg["a_1dof"][0].Value, test.ShouldEqual, 1.0)
}
