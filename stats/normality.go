package stats

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"
)

// ShapiroWilkResult represents the result of a Shapiro-Wilk normality test.
type ShapiroWilkResult struct {
	Statistic float64 // the W statistic
	PValue    float64
	N         int
	// LargeSample is set when n exceeds 5000, beyond which the p-value
	// approximation loses validity. The statistic is still computed; the
	// diagnostics runner surfaces the caveat.
	LargeSample bool
}

// shapiroWilkMaxN is the sample size above which Royston's p-value
// approximation is no longer considered reliable.
const shapiroWilkMaxN = 5000

// ShapiroWilk performs the Shapiro-Wilk test for normality on the residual
// values, ignoring time order. The implementation follows Royston's
// AS R94 algorithm: normal order-statistic scores with polynomial-corrected
// tail weights, and a normalizing transformation of W for the p-value.
// Requires at least 3 observations.
func ShapiroWilk(values []float64) (*ShapiroWilkResult, error) {
	n := len(values)
	if n < 3 {
		return nil, invalidInputf("Shapiro-Wilk requires at least 3 observations, got %d", n)
	}
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, invalidInputf("non-finite value %v at index %d", v, i)
		}
	}

	x := make([]float64, n)
	copy(x, values)
	sort.Float64s(x)

	if x[n-1] == x[0] {
		return nil, invalidInputf("series has zero range")
	}

	weights := shapiroWeights(n)

	mean := 0.0
	for _, v := range x {
		mean += v
	}
	mean /= float64(n)

	num := 0.0
	den := 0.0
	for i, v := range x {
		num += weights[i] * v
		d := v - mean
		den += d * d
	}
	w := num * num / den
	if w > 1 {
		w = 1
	}

	return &ShapiroWilkResult{
		Statistic:   w,
		PValue:      shapiroPValue(w, n),
		N:           n,
		LargeSample: n > shapiroWilkMaxN,
	}, nil
}

// shapiroWeights computes the order-statistic weights a_i of AS R94.
func shapiroWeights(n int) []float64 {
	normal := distuv.Normal{Mu: 0, Sigma: 1}

	// Blom scores of the expected normal order statistics.
	m := make([]float64, n)
	mm := 0.0
	for i := 0; i < n; i++ {
		m[i] = normal.Quantile((float64(i+1) - 0.375) / (float64(n) + 0.25))
		mm += m[i] * m[i]
	}

	a := make([]float64, n)
	if n == 3 {
		a[0] = -math.Sqrt(0.5)
		a[2] = math.Sqrt(0.5)
		return a
	}

	rsn := math.Sqrt(mm)
	u := 1 / math.Sqrt(float64(n))

	// Royston's polynomial corrections for the two largest weights.
	an := m[n-1]/rsn + u*(0.221157+u*(-0.147981+u*(-2.071190+u*(4.434685+u*-2.706056))))
	var an1, phi float64
	if n > 5 {
		an1 = m[n-2]/rsn + u*(0.042981+u*(-0.293762+u*(-1.752461+u*(5.682633+u*-3.582633))))
		phi = (mm - 2*m[n-1]*m[n-1] - 2*m[n-2]*m[n-2]) /
			(1 - 2*an*an - 2*an1*an1)
	} else {
		phi = (mm - 2*m[n-1]*m[n-1]) / (1 - 2*an*an)
	}
	sp := math.Sqrt(phi)

	for i := range a {
		a[i] = m[i] / sp
	}
	a[n-1] = an
	a[0] = -an
	if n > 5 {
		a[n-2] = an1
		a[1] = -an1
	}
	return a
}

// shapiroPValue applies Royston's normalizing transformations of W.
func shapiroPValue(w float64, n int) float64 {
	normal := distuv.Normal{Mu: 0, Sigma: 1}

	switch {
	case n == 3:
		// Exact small-sample distribution.
		p := 6 / math.Pi * (math.Asin(math.Sqrt(w)) - math.Asin(math.Sqrt(0.75)))
		return math.Max(0, math.Min(1, p))
	case n <= 11:
		fn := float64(n)
		gamma := -2.273 + 0.459*fn
		if gamma-math.Log(1-w) <= 0 {
			return 0
		}
		y := -math.Log(gamma - math.Log(1-w))
		mu := 0.5440 + fn*(-0.39978+fn*(0.025054+fn*-0.0006714))
		sigma := math.Exp(1.3822 + fn*(-0.77857+fn*(0.062767+fn*-0.0020322)))
		return normal.Survival((y - mu) / sigma)
	default:
		ln := math.Log(float64(n))
		y := math.Log(1 - w)
		mu := -1.5861 + ln*(-0.31082+ln*(-0.083751+ln*0.0038915))
		sigma := math.Exp(-0.4803 + ln*(-0.082676+ln*0.0030302))
		return normal.Survival((y - mu) / sigma)
	}
}

// DAgostinoResult represents the result of a D'Agostino-Pearson K^2
// normality test.
type DAgostinoResult struct {
	Statistic float64 // K^2 = Z1^2 + Z2^2
	PValue    float64
	ZSkewness float64
	ZKurtosis float64
	N         int
}

// DAgostinoPearson performs the D'Agostino-Pearson omnibus normality test,
// combining the D'Agostino skewness z-score and the Anscombe-Glynn kurtosis
// z-score into a chi-squared statistic with 2 degrees of freedom. Requires
// at least 8 observations for the skewness transformation to be defined.
func DAgostinoPearson(values []float64) (*DAgostinoResult, error) {
	n := len(values)
	if n < 8 {
		return nil, invalidInputf("D'Agostino-Pearson requires at least 8 observations, got %d", n)
	}

	mean := 0.0
	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, invalidInputf("non-finite value %v at index %d", v, i)
		}
		mean += v
	}
	mean /= float64(n)

	// Biased central moments, as used by the reference transformations.
	var m2, m3, m4 float64
	for _, v := range values {
		d := v - mean
		d2 := d * d
		m2 += d2
		m3 += d2 * d
		m4 += d2 * d2
	}
	m2 /= float64(n)
	m3 /= float64(n)
	m4 /= float64(n)

	if m2 == 0 {
		return nil, invalidInputf("series has zero variance")
	}

	z1 := skewnessZ(m3/math.Pow(m2, 1.5), n)
	z2, err := kurtosisZ(m4/(m2*m2), n)
	if err != nil {
		return nil, err
	}

	k2 := z1*z1 + z2*z2
	chi2 := distuv.ChiSquared{K: 2}

	return &DAgostinoResult{
		Statistic: k2,
		PValue:    chi2.Survival(k2),
		ZSkewness: z1,
		ZKurtosis: z2,
		N:         n,
	}, nil
}

// skewnessZ transforms sample skewness g1 to a standard normal deviate
// (D'Agostino 1970).
func skewnessZ(g1 float64, n int) float64 {
	fn := float64(n)
	y := g1 * math.Sqrt((fn+1)*(fn+3)/(6*(fn-2)))
	beta2 := 3 * (fn*fn + 27*fn - 70) * (fn + 1) * (fn + 3) /
		((fn - 2) * (fn + 5) * (fn + 7) * (fn + 9))
	w2 := -1 + math.Sqrt(2*(beta2-1))
	delta := 1 / math.Sqrt(0.5*math.Log(w2))
	alpha := math.Sqrt(2 / (w2 - 1))
	if y == 0 {
		return 0
	}
	return delta * math.Log(y/alpha+math.Sqrt((y/alpha)*(y/alpha)+1))
}

// kurtosisZ transforms sample kurtosis b2 to a standard normal deviate
// (Anscombe & Glynn 1983).
func kurtosisZ(b2 float64, n int) (float64, error) {
	fn := float64(n)
	e := 3 * (fn - 1) / (fn + 1)
	variance := 24 * fn * (fn - 2) * (fn - 3) / ((fn + 1) * (fn + 1) * (fn + 3) * (fn + 5))
	x := (b2 - e) / math.Sqrt(variance)

	sqrtBeta1 := 6 * (fn*fn - 5*fn + 2) / ((fn + 7) * (fn + 9)) *
		math.Sqrt(6*(fn+3)*(fn+5)/(fn*(fn-2)*(fn-3)))
	a := 6 + 8/sqrtBeta1*(2/sqrtBeta1+math.Sqrt(1+4/(sqrtBeta1*sqrtBeta1)))

	denom := 1 + x*math.Sqrt(2/(a-4))
	if denom == 0 {
		return 0, invalidInputf("kurtosis transformation undefined")
	}
	term1 := 1 - 2/(9*a)
	term2 := math.Cbrt((1 - 2/a) / denom)
	return (term1 - term2) / math.Sqrt(2/(9*a)), nil
}
