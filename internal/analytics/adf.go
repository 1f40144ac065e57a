package analytics

import (
	"math"

	pkgerrors "github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// MinADFObservations is the smallest series the unit-root test accepts.
const MinADFObservations = 20

// MacKinnon (1994) approximation for the constant-only Dickey-Fuller
// distribution. Outside [tauMin, tauMax] the p-value saturates at 0 or 1;
// inside, Phi of a polynomial in tau, with the polynomial switching at
// tauStar.
const (
	adfTauMax  = 2.74
	adfTauMin  = -18.83
	adfTauStar = -1.61
)

var (
	adfTauSmallP = []float64{2.1659, 1.4412, 0.038269}
	adfTauLargeP = []float64{1.7339, 0.93202, -0.12745, -0.010368}
)

// ADF runs an Augmented Dickey-Fuller unit-root test with a constant term.
// The lag order is picked by AIC over 0..Schwert's rule-of-thumb maximum,
// all candidates fitted on a common sample. Returns the tau statistic, its
// MacKinnon approximate p-value and the lag the final regression used.
func ADF(series []float64) (adfStat, pValue float64, usedLag int, err error) {
	n := len(series)
	if n < MinADFObservations {
		return 0, 0, 0, pkgerrors.Errorf("adf: need at least %d observations, got %d", MinADFObservations, n)
	}

	diff := make([]float64, n-1)
	for i := range diff {
		diff[i] = series[i+1] - series[i]
	}

	maxLag := int(12 * math.Pow(float64(n)/100, 0.25))
	if limit := (n-1)/2 - 2; maxLag > limit {
		maxLag = limit
	}
	if maxLag < 0 {
		maxLag = 0
	}

	bestLag := 0
	bestAIC := math.Inf(1)
	for lag := 0; lag <= maxLag; lag++ {
		fit, fitErr := fitDickeyFuller(series, diff, lag, maxLag)
		if fitErr != nil {
			continue
		}
		if fit.aic < bestAIC {
			bestAIC = fit.aic
			bestLag = lag
		}
	}
	if math.IsInf(bestAIC, 1) {
		return 0, 0, 0, pkgerrors.New("adf: no candidate regression could be fitted")
	}

	// refit the winner on its full available sample
	fit, err := fitDickeyFuller(series, diff, bestLag, bestLag)
	if err != nil {
		return 0, 0, 0, err
	}

	tau := fit.tau
	return tau, mackinnonP(tau), bestLag, nil
}

type dickeyFullerFit struct {
	tau float64
	aic float64
}

// fitDickeyFuller regresses diff[t] on a constant, the lagged level
// series[t] and lag previous differences, using observations t in
// [start, len(diff)). start >= lag lets AIC candidates share one sample.
func fitDickeyFuller(series, diff []float64, lag, start int) (*dickeyFullerFit, error) {
	k := 2 + lag
	nobs := len(diff) - start
	if start < lag || nobs <= k {
		return nil, pkgerrors.Errorf("adf: %d observations cannot support %d regressors", nobs, k)
	}

	x := mat.NewDense(nobs, k, nil)
	y := mat.NewVecDense(nobs, nil)
	for row := 0; row < nobs; row++ {
		t := start + row
		y.SetVec(row, diff[t])
		x.Set(row, 0, 1)
		x.Set(row, 1, series[t])
		for j := 1; j <= lag; j++ {
			x.Set(row, 1+j, diff[t-j])
		}
	}

	var qr mat.QR
	qr.Factorize(x)
	var beta mat.VecDense
	if err := qr.SolveVecTo(&beta, false, y); err != nil {
		return nil, pkgerrors.Wrap(err, "adf: regression solve")
	}

	resid := mat.NewVecDense(nobs, nil)
	resid.MulVec(x, &beta)
	resid.SubVec(y, resid)
	ssr := mat.Dot(resid, resid)
	if ssr <= 0 || math.IsNaN(ssr) {
		return nil, pkgerrors.New("adf: degenerate residual sum of squares")
	}

	var gram, gramInv mat.Dense
	gram.Mul(x.T(), x)
	if err := gramInv.Inverse(&gram); err != nil {
		return nil, pkgerrors.Wrap(err, "adf: singular design matrix")
	}
	sigma2 := ssr / float64(nobs-k)
	se := math.Sqrt(sigma2 * gramInv.At(1, 1))
	if se == 0 || math.IsNaN(se) {
		return nil, pkgerrors.New("adf: zero standard error on level coefficient")
	}

	return &dickeyFullerFit{
		tau: beta.AtVec(1) / se,
		aic: float64(nobs)*math.Log(ssr/float64(nobs)) + 2*float64(k),
	}, nil
}

func mackinnonP(tau float64) float64 {
	switch {
	case tau > adfTauMax:
		return 1
	case tau < adfTauMin:
		return 0
	}
	coeffs := adfTauLargeP
	if tau <= adfTauStar {
		coeffs = adfTauSmallP
	}
	z := 0.0
	pow := 1.0
	for _, c := range coeffs {
		z += c * pow
		pow *= tau
	}
	return distuv.UnitNormal.CDF(z)
}
