package analytics

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestADF_StationaryProcessRejectsUnitRoot(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	series := make([]float64, 400)
	y := 0.0
	for i := range series {
		y = 0.5*y + rng.NormFloat64()
		series[i] = y
	}

	stat, pValue, usedLag, err := ADF(series)

	assert.NoError(t, err)
	assert.Less(t, stat, -2.86, "AR(1) with phi=0.5 should be deep in the rejection region")
	assert.Less(t, pValue, 0.05)
	assert.GreaterOrEqual(t, usedLag, 0)
}

func TestADF_DriftingRandomWalkKeepsUnitRoot(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	series := make([]float64, 400)
	y := 100.0
	for i := range series {
		y += 0.5 + rng.NormFloat64()
		series[i] = y
	}

	stationaryP := func() float64 {
		stationary := make([]float64, 400)
		srcRng := rand.New(rand.NewSource(1))
		v := 0.0
		for i := range stationary {
			v = 0.5*v + srcRng.NormFloat64()
			stationary[i] = v
		}
		_, p, _, err := ADF(stationary)
		assert.NoError(t, err)
		return p
	}()

	_, pValue, _, err := ADF(series)

	assert.NoError(t, err)
	assert.Greater(t, pValue, 0.05)
	assert.Greater(t, pValue, stationaryP)
}

func TestADF_ShortSeriesRejected(t *testing.T) {
	series := make([]float64, MinADFObservations-1)
	for i := range series {
		series[i] = float64(i % 3)
	}

	_, _, _, err := ADF(series)
	assert.Error(t, err)
}

func TestADF_ConstantSeriesErrors(t *testing.T) {
	series := make([]float64, 50)
	for i := range series {
		series[i] = 42
	}

	_, _, _, err := ADF(series)
	assert.Error(t, err)
}

func TestMackinnonP(t *testing.T) {
	testCases := []struct {
		name     string
		tau      float64
		assertFn func(t *testing.T, p float64)
	}{
		{
			name: "classic 5 percent critical value",
			tau:  -2.86,
			assertFn: func(t *testing.T, p float64) {
				assert.InDelta(t, 0.05, p, 0.005)
			},
		},
		{
			name: "1 percent critical value",
			tau:  -3.43,
			assertFn: func(t *testing.T, p float64) {
				assert.InDelta(t, 0.01, p, 0.003)
			},
		},
		{
			name: "far above the upper bound saturates at one",
			tau:  5,
			assertFn: func(t *testing.T, p float64) {
				assert.Equal(t, 1.0, p)
			},
		},
		{
			name: "far below the lower bound saturates at zero",
			tau:  -25,
			assertFn: func(t *testing.T, p float64) {
				assert.Equal(t, 0.0, p)
			},
		},
		{
			name: "near zero tau is clearly non-stationary",
			tau:  0,
			assertFn: func(t *testing.T, p float64) {
				assert.Greater(t, p, 0.9)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.assertFn(t, mackinnonP(tc.tau))
		})
	}

	t.Run("monotone in tau across the polynomial switch", func(t *testing.T) {
		prev := mackinnonP(-6)
		for tau := -5.5; tau <= 1.0; tau += 0.5 {
			p := mackinnonP(tau)
			assert.GreaterOrEqual(t, p, prev, "tau=%v", tau)
			prev = p
		}
	})
}
