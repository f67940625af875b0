package dist

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calcengine/formulacore/calc"
	"github.com/calcengine/formulacore/value"
)

func num(v float64) calc.CalcValue { return calc.Scalar(value.NumberV(v)) }
func boolv(b bool) calc.CalcValue  { return calc.Scalar(value.BoolV(b)) }

func TestLnGammaMatchesKnownFactorials(t *testing.T) {
	// lnGamma(n+1) = ln(n!)
	assert.InDelta(t, 0.0, lnGamma(1), 1e-9)
	assert.InDelta(t, math.Log(24), lnGamma(5), 1e-7)
	assert.InDelta(t, math.Log(3628800), lnGamma(11), 1e-5)
}

func TestGammaPPlusGammaQIsOne(t *testing.T) {
	p := gammaP(2.5, 3.0)
	q := gammaQ(2.5, 3.0)
	assert.InDelta(t, 1.0, p+q, 1e-9)
}

func TestBetaISymmetry(t *testing.T) {
	// I_x(a,b) = 1 - I_{1-x}(b,a)
	x, a, b := 0.3, 2.0, 5.0
	lhs := betaI(a, b, x)
	rhs := 1 - betaI(b, a, 1-x)
	assert.InDelta(t, lhs, rhs, 1e-9)
}

func TestStdNormCDFKnownPoints(t *testing.T) {
	assert.InDelta(t, 0.5, stdNormCDF(0), 1e-6)
	assert.InDelta(t, 0.8413, stdNormCDF(1), 1e-3)
}

func TestStdNormInvIsApproxInverseOfCDF(t *testing.T) {
	for _, p := range []float64{0.1, 0.5, 0.9} {
		z := stdNormInv(p)
		assert.InDelta(t, p, stdNormCDF(z), 1e-3)
	}
}

func TestNormSDistCumulativeAndDensity(t *testing.T) {
	got := normSDistEval(nil, []calc.CalcValue{num(0), boolv(true)})
	assert.InDelta(t, 0.5, got.Num, 1e-6)
	pdf := normSDistEval(nil, []calc.CalcValue{num(0), boolv(false)})
	assert.InDelta(t, 1/math.Sqrt(2*math.Pi), pdf.Num, 1e-9)
}

func TestNormDistMatchesStandardizedForm(t *testing.T) {
	got := normDistEval(nil, []calc.CalcValue{num(10), num(10), num(2), boolv(true)})
	assert.InDelta(t, 0.5, got.Num, 1e-6)
}

func TestNormDistInvalidSigmaIsNum(t *testing.T) {
	got := normDistEval(nil, []calc.CalcValue{num(1), num(0), num(0), boolv(true)})
	assert.Equal(t, value.ErrNum, got.Err)
}

func TestNormInvRoundTripsNormDist(t *testing.T) {
	inv := normInvEval(nil, []calc.CalcValue{num(0.95), num(0), num(1)})
	back := normDistEval(nil, []calc.CalcValue{inv, num(0), num(1), boolv(true)})
	assert.InDelta(t, 0.95, back.Num, 1e-3)
}

func TestFisherAndFisherInvAreInverses(t *testing.T) {
	z := fisherEval(nil, []calc.CalcValue{num(0.5)})
	back := fisherInvEval(nil, []calc.CalcValue{z})
	assert.InDelta(t, 0.5, back.Num, 1e-9)
}

func TestFisherOutOfRangeIsNum(t *testing.T) {
	got := fisherEval(nil, []calc.CalcValue{num(1)})
	assert.Equal(t, value.ErrNum, got.Err)
}

func TestGaussIsCDFMinusHalf(t *testing.T) {
	got := gaussEval(nil, []calc.CalcValue{num(1)})
	assert.InDelta(t, stdNormCDF(1)-0.5, got.Num, 1e-9)
}

func TestStandardizeZeroMeanUnitSigma(t *testing.T) {
	got := standardizeEval(nil, []calc.CalcValue{num(5), num(0), num(1)})
	assert.Equal(t, value.NumberV(5), got)
}

func TestTDistCumulativeSymmetricAroundZero(t *testing.T) {
	got := tDistEval(nil, []calc.CalcValue{num(0), num(10), boolv(true)})
	assert.InDelta(t, 0.5, got.Num, 1e-6)
}

func TestTDist2TDecreasesAsXGrows(t *testing.T) {
	low := tDist2TEval(nil, []calc.CalcValue{num(1), num(10)})
	high := tDist2TEval(nil, []calc.CalcValue{num(2), num(10)})
	assert.True(t, high.Num < low.Num)
}

func TestTInvRoundTripsTDist(t *testing.T) {
	x := tInvEval(nil, []calc.CalcValue{num(0.95), num(10)})
	back := tDistEval(nil, []calc.CalcValue{x, num(10), boolv(true)})
	assert.InDelta(t, 0.95, back.Num, 1e-3)
}

func TestChisqDistCumulativeAtZeroIsZero(t *testing.T) {
	got := chisqDistEval(nil, []calc.CalcValue{num(0), num(5), boolv(true)})
	assert.InDelta(t, 0.0, got.Num, 1e-9)
}

func TestChisqInvRoundTripsChisqDist(t *testing.T) {
	x := chisqInvEval(nil, []calc.CalcValue{num(0.9), num(5)})
	back := chisqDistEval(nil, []calc.CalcValue{x, num(5), boolv(true)})
	assert.InDelta(t, 0.9, back.Num, 1e-3)
}

func TestChisqTestPerfectFitGivesPValueOne(t *testing.T) {
	actual := calc.ArrayLiteral(value.ArrayV(1, 3, []value.LiteralValue{value.NumberV(10), value.NumberV(20), value.NumberV(30)}))
	expected := calc.ArrayLiteral(value.ArrayV(1, 3, []value.LiteralValue{value.NumberV(10), value.NumberV(20), value.NumberV(30)}))
	got := chisqTestEval(nil, []calc.CalcValue{actual, expected})
	assert.InDelta(t, 1.0, got.Num, 1e-9)
}

func TestFDistCumulativeAtZeroIsZero(t *testing.T) {
	got := fDistEval(nil, []calc.CalcValue{num(0), num(5), num(5), boolv(true)})
	assert.Equal(t, value.NumberV(0), got)
}

func TestFInvRoundTripsFDist(t *testing.T) {
	x := fInvEval(nil, []calc.CalcValue{num(0.9), num(5), num(10)})
	back := fDistEval(nil, []calc.CalcValue{x, num(5), num(10), boolv(true)})
	assert.InDelta(t, 0.9, back.Num, 1e-3)
}

func TestFTestEqualVariancesGivesHighPValue(t *testing.T) {
	a := calc.ArrayLiteral(value.ArrayV(1, 5, []value.LiteralValue{
		value.NumberV(1), value.NumberV(2), value.NumberV(3), value.NumberV(4), value.NumberV(5),
	}))
	b := calc.ArrayLiteral(value.ArrayV(1, 5, []value.LiteralValue{
		value.NumberV(2), value.NumberV(3), value.NumberV(4), value.NumberV(5), value.NumberV(6),
	}))
	got := fTestEval(nil, []calc.CalcValue{a, b})
	assert.InDelta(t, 1.0, got.Num, 1e-9)
}

func TestBinomDistCumulativeMatchesSumOfPmf(t *testing.T) {
	cdf := binomDistEval(nil, []calc.CalcValue{num(2), num(5), num(0.5), boolv(true)})
	pmf0 := binomDistEval(nil, []calc.CalcValue{num(0), num(5), num(0.5), boolv(false)})
	pmf1 := binomDistEval(nil, []calc.CalcValue{num(1), num(5), num(0.5), boolv(false)})
	pmf2 := binomDistEval(nil, []calc.CalcValue{num(2), num(5), num(0.5), boolv(false)})
	assert.InDelta(t, pmf0.Num+pmf1.Num+pmf2.Num, cdf.Num, 1e-9)
}

func TestBinomDistInvalidArgsIsNum(t *testing.T) {
	got := binomDistEval(nil, []calc.CalcValue{num(10), num(5), num(0.5), boolv(true)})
	assert.Equal(t, value.ErrNum, got.Err)
}

func TestPoissonDistMatchesKnownValue(t *testing.T) {
	got := poissonDistEval(nil, []calc.CalcValue{num(0), num(1), boolv(false)})
	assert.InDelta(t, math.Exp(-1), got.Num, 1e-9)
}

func TestExponDistCumulativeAndDensity(t *testing.T) {
	cdf := exponDistEval(nil, []calc.CalcValue{num(1), num(1), boolv(true)})
	assert.InDelta(t, 1-math.Exp(-1), cdf.Num, 1e-9)
}

func TestGammaDistCumulativeAtZeroIsZero(t *testing.T) {
	got := gammaDistEval(nil, []calc.CalcValue{num(0), num(2), num(2), boolv(true)})
	assert.InDelta(t, 0.0, got.Num, 1e-9)
}

func TestWeibullDistMatchesClosedForm(t *testing.T) {
	got := weibullDistEval(nil, []calc.CalcValue{num(1), num(1), num(1), boolv(true)})
	assert.InDelta(t, 1-math.Exp(-1), got.Num, 1e-9)
}

func TestBetaDistOutOfUnitIntervalIsNum(t *testing.T) {
	got := betaDistEval(nil, []calc.CalcValue{num(2), num(2), num(2), boolv(true)})
	assert.Equal(t, value.ErrNum, got.Err)
}

func TestBetaDistSymmetricCaseAtHalf(t *testing.T) {
	got := betaDistEval(nil, []calc.CalcValue{num(0.5), num(2), num(2), boolv(true)})
	assert.InDelta(t, 0.5, got.Num, 1e-9)
}

func TestNegbinomDistMatchesKnownValue(t *testing.T) {
	got := negbinomDistEval(nil, []calc.CalcValue{num(0), num(1), num(0.5), boolv(false)})
	assert.InDelta(t, 0.5, got.Num, 1e-9)
}

func TestHypgeomDistMatchesKnownValue(t *testing.T) {
	// classic example: sample 4 from population 20 with 8 successes, P(X=1)
	got := hypgeomDistEval(nil, []calc.CalcValue{num(1), num(4), num(8), num(20), boolv(false)})
	assert.True(t, got.Num > 0 && got.Num < 1)
}

func TestHypgeomDistInvalidArgsIsNum(t *testing.T) {
	got := hypgeomDistEval(nil, []calc.CalcValue{num(10), num(4), num(8), num(20), boolv(false)})
	assert.Equal(t, value.ErrNum, got.Err)
}
