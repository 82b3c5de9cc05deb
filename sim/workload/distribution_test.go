package workload

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleMean(t *testing.T, s LengthSampler, n int) float64 {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	var sum int64
	for i := 0; i < n; i++ {
		v := s.Sample(rng)
		require.GreaterOrEqual(t, v, int64(1))
		sum += v
	}
	return float64(sum) / float64(n)
}

func TestGaussianSampler_MeanMatchesParam(t *testing.T) {
	s, err := NewLengthSampler(DistSpec{
		Type:   "gaussian",
		Params: map[string]float64{"mean": 50, "std_dev": 10, "min": 1, "max": 200},
	})
	require.NoError(t, err)
	assert.InEpsilon(t, 50, sampleMean(t, s, 10000), 0.05)
}

func TestGaussianSampler_ClampedToRange(t *testing.T) {
	s, err := NewLengthSampler(DistSpec{
		Type:   "gaussian",
		Params: map[string]float64{"mean": 50, "std_dev": 100, "min": 10, "max": 90},
	})
	require.NoError(t, err)
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10000; i++ {
		v := s.Sample(rng)
		if v < 10 || v > 90 {
			t.Fatalf("sample %d: %d outside [10, 90]", i, v)
		}
	}
}

func TestGaussianSampler_MinAboveMax_Rejected(t *testing.T) {
	_, err := NewLengthSampler(DistSpec{
		Type:   "gaussian",
		Params: map[string]float64{"mean": 5, "std_dev": 1, "min": 9, "max": 3},
	})
	assert.Error(t, err)
}

func TestExponentialSampler_MeanMatchesParam(t *testing.T) {
	s, err := NewLengthSampler(DistSpec{Type: "exponential", Params: map[string]float64{"mean": 40}})
	require.NoError(t, err)
	assert.InEpsilon(t, 40, sampleMean(t, s, 20000), 0.05)
}

func TestConstantSampler_FloorsAtOne(t *testing.T) {
	s, err := NewLengthSampler(DistSpec{Type: "constant", Params: map[string]float64{"value": 0}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), s.Sample(nil))

	s, err = NewLengthSampler(DistSpec{Type: "constant", Params: map[string]float64{"value": 6}})
	require.NoError(t, err)
	assert.Equal(t, int64(6), s.Sample(nil))
}

func TestNewLengthSampler_MissingParam(t *testing.T) {
	_, err := NewLengthSampler(DistSpec{Type: "gaussian", Params: map[string]float64{"mean": 5}})
	assert.ErrorContains(t, err, "std_dev")
}

func TestNewLengthSampler_UnknownType(t *testing.T) {
	_, err := NewLengthSampler(DistSpec{Type: "zipf"})
	assert.Error(t, err)
}
