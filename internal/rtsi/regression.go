package rtsi

import "math"

// linregress fits y = slope*x + intercept by ordinary least squares over
// x = 0..n-1, returning slope, intercept, R², and the two-sided p-value
// for the null hypothesis slope=0 (Student's t-test on the slope
// coefficient), mirroring scipy.stats.linregress's outputs.
func linregress(y []float64) (slope, intercept, rSquared, pValue float64) {
	n := len(y)
	if n < 2 {
		return 0, 0, 0, 1
	}

	var sumX, sumY float64
	for i, v := range y {
		sumX += float64(i)
		sumY += v
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var sxx, sxy, syy float64
	for i, v := range y {
		dx := float64(i) - meanX
		dy := v - meanY
		sxx += dx * dx
		sxy += dx * dy
		syy += dy * dy
	}

	if sxx == 0 {
		return 0, meanY, 0, 1
	}

	slope = sxy / sxx
	intercept = meanY - slope*meanX

	if syy == 0 {
		// Degenerate: every y identical. Slope is necessarily 0.
		return 0, meanY, 0, 1
	}

	r := sxy / math.Sqrt(sxx*syy)
	rSquared = r * r

	if n <= 2 {
		return slope, intercept, rSquared, 1
	}

	// Standard error of the slope and a two-sided t-test p-value.
	var sse float64
	for i, v := range y {
		pred := slope*float64(i) + intercept
		resid := v - pred
		sse += resid * resid
	}
	dof := float64(n - 2)
	if dof <= 0 {
		return slope, intercept, rSquared, 1
	}
	mse := sse / dof
	seSlope := math.Sqrt(mse / sxx)
	if seSlope == 0 {
		return slope, intercept, rSquared, 0
	}
	t := slope / seSlope
	pValue = twoSidedTTestP(t, dof)
	return slope, intercept, rSquared, pValue
}

// twoSidedTTestP approximates the two-sided p-value for a t-statistic
// with the given degrees of freedom using the regularized incomplete
// beta function (the standard closed form for Student's t CDF).
func twoSidedTTestP(t, dof float64) float64 {
	x := dof / (dof + t*t)
	p := incompleteBeta(x, dof/2, 0.5)
	if p > 1 {
		p = 1
	}
	if p < 0 {
		p = 0
	}
	return p
}

// incompleteBeta computes the regularized incomplete beta function
// I_x(a, b) via a continued-fraction expansion (Numerical Recipes'
// betacf), used here only to derive Student's t two-sided p-value.
func incompleteBeta(x, a, b float64) float64 {
	if x <= 0 {
		return 0
	}
	if x >= 1 {
		return 1
	}
	lbeta := lgamma(a+b) - lgamma(a) - lgamma(b) + a*math.Log(x) + b*math.Log(1-x)
	front := math.Exp(lbeta)

	if x < (a+1)/(a+b+2) {
		return front * betacf(x, a, b) / a
	}
	return 1 - front*betacf(1-x, b, a)/b
}

func lgamma(x float64) float64 {
	v, _ := math.Lgamma(x)
	return v
}

func betacf(x, a, b float64) float64 {
	const maxIter = 200
	const epsilon = 3e-12
	const fpMin = 1e-300

	qab := a + b
	qap := a + 1
	qam := a - 1
	c := 1.0
	d := 1 - qab*x/qap
	if math.Abs(d) < fpMin {
		d = fpMin
	}
	d = 1 / d
	h := d

	for m := 1; m <= maxIter; m++ {
		fm := float64(m)
		m2 := 2 * fm

		aa := fm * (b - fm) * x / ((qam + m2) * (a + m2))
		d = 1 + aa*d
		if math.Abs(d) < fpMin {
			d = fpMin
		}
		c = 1 + aa/c
		if math.Abs(c) < fpMin {
			c = fpMin
		}
		d = 1 / d
		h *= d * c

		aa = -(a + fm) * (qab + fm) * x / ((a + m2) * (qap + m2))
		d = 1 + aa*d
		if math.Abs(d) < fpMin {
			d = fpMin
		}
		c = 1 + aa/c
		if math.Abs(c) < fpMin {
			c = fpMin
		}
		d = 1 / d
		del := d * c
		h *= del

		if math.Abs(del-1) < epsilon {
			break
		}
	}
	return h
}
