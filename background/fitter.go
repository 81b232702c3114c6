// Package background fits a polynomial background model to a time/energy
// histogram and interpolates it over a source interval.
//
// The Fitter consumes the histogram plus one or more background time
// selections, fits a per-channel polynomial of the requested order to the
// observed count rates at the selected bin centers, and evaluates the
// model's mean rate over any time interval as a BackgroundSpectrum. The
// result converts to a persistable record via pha.BakFromData.
package background

import (
	"fmt"
	"math"

	"github.com/spexlab/spex/errs"
	"github.com/spexlab/spex/primitives"
)

// Fitter fits an independent polynomial to each energy channel's count
// rate history over the background time selections.
type Fitter struct {
	bins       *primitives.TimeEnergyBins
	selections []primitives.Range

	order  int
	coeffs [][]float64 // per channel, low-order first
	sigma  []float64   // per channel RMS fit residual
	fitted bool
}

// NewFitter creates a fitter over the histogram bins. The selections name
// the background intervals; with none given, every time bin participates.
func NewFitter(bins *primitives.TimeEnergyBins, selections ...primitives.Range) (*Fitter, error) {
	if bins == nil {
		return nil, errs.ErrNilSpectrumData
	}
	for _, s := range selections {
		if s.Lo >= s.Hi {
			return nil, errs.ErrInvertedInterval
		}
	}

	return &Fitter{bins: bins, selections: selections}, nil
}

// selectedBins returns the indices of time bins overlapping any selection.
func (f *Fitter) selectedBins() []int {
	var rows []int
	for i := 0; i < f.bins.NumTimes(); i++ {
		if len(f.selections) == 0 {
			rows = append(rows, i)
			continue
		}
		bin := f.bins.TimeBin(i)
		for _, s := range f.selections {
			if bin.Overlaps(s) {
				rows = append(rows, i)
				break
			}
		}
	}

	return rows
}

// Fit fits a polynomial of the given order to every channel. The selected
// bins must outnumber the polynomial coefficients.
func (f *Fitter) Fit(order int) error {
	if order < 0 {
		return fmt.Errorf("%w: polynomial order must be non-negative, got %d", errs.ErrInvalidValue, order)
	}

	rows := f.selectedBins()
	if len(rows) < order+1 {
		return fmt.Errorf("%w: %d selected bins cannot constrain a degree %d polynomial",
			errs.ErrInvalidValue, len(rows), order)
	}

	centers := f.bins.BinCenters()
	times := make([]float64, len(rows))
	for i, r := range rows {
		times[i] = centers[r]
	}

	numChans := f.bins.NumChans()
	f.coeffs = make([][]float64, numChans)
	f.sigma = make([]float64, numChans)
	for ch := 0; ch < numChans; ch++ {
		allRates := f.bins.ChannelRates(ch)
		rates := make([]float64, len(rows))
		for i, r := range rows {
			rates[i] = allRates[r]
		}

		coeffs, err := polyfit(times, rates, order)
		if err != nil {
			return err
		}
		f.coeffs[ch] = coeffs

		var ss float64
		for i, t := range times {
			d := rates[i] - polyval(coeffs, t)
			ss += d * d
		}
		f.sigma[ch] = math.Sqrt(ss / float64(len(rows)))
	}

	f.order = order
	f.fitted = true

	return nil
}

// Coefficients returns the fitted polynomial coefficients of channel ch,
// low-order first.
func (f *Fitter) Coefficients(ch int) []float64 {
	out := make([]float64, len(f.coeffs[ch]))
	copy(out, f.coeffs[ch])

	return out
}

// Interpolate evaluates the fitted model's mean rate over (tstart, tstop)
// for every channel and returns it as a background spectrum whose exposure
// is the interval duration. Modeled rates below zero are clamped to zero.
func (f *Fitter) Interpolate(tstart, tstop float64) (*primitives.BackgroundSpectrum, error) {
	if !f.fitted {
		return nil, fmt.Errorf("%w: fit must run before interpolation", errs.ErrInvalidValue)
	}
	if tstart >= tstop {
		return nil, errs.ErrInvertedInterval
	}

	numChans := f.bins.NumChans()
	rates := make([]float64, numChans)
	uncert := make([]float64, numChans)
	for ch := 0; ch < numChans; ch++ {
		rate := polymean(f.coeffs[ch], tstart, tstop)
		if rate < 0 {
			rate = 0
		}
		rates[ch] = rate
		uncert[ch] = f.sigma[ch]
	}

	eb := f.bins.Ebounds()

	return primitives.NewBackgroundSpectrum(rates, uncert, eb.LowEdges(), eb.HighEdges(), tstop-tstart)
}

// polyval evaluates a polynomial with low-order-first coefficients at x.
func polyval(coeffs []float64, x float64) float64 {
	var y float64
	for i := len(coeffs) - 1; i >= 0; i-- {
		y = y*x + coeffs[i]
	}

	return y
}

// polymean is the analytic mean of the polynomial over [a, b]: the
// integral divided by the interval width.
func polymean(coeffs []float64, a, b float64) float64 {
	var integral float64
	pa, pb := a, b
	for k, c := range coeffs {
		integral += c * (pb - pa) / float64(k+1)
		pa *= a
		pb *= b
	}

	return integral / (b - a)
}

// polyfit solves the least-squares polynomial of the given order through
// the (x, y) samples via the normal equations.
func polyfit(x, y []float64, order int) ([]float64, error) {
	m := order + 1

	// A[j][k] = sum x^(j+k), rhs[j] = sum y * x^j
	powerSums := make([]float64, 2*m-1)
	rhs := make([]float64, m)
	for i, xi := range x {
		p := 1.0
		for k := range powerSums {
			powerSums[k] += p
			if k < m {
				rhs[k] += y[i] * p
			}
			p *= xi
		}
	}

	a := make([][]float64, m)
	for j := range a {
		a[j] = make([]float64, m)
		for k := range a[j] {
			a[j][k] = powerSums[j+k]
		}
	}

	return solve(a, rhs)
}

// solve performs Gaussian elimination with partial pivoting on a
// symmetric positive system.
func solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	for col := 0; col < n; col++ {
		pivot := col
		for row := col + 1; row < n; row++ {
			if math.Abs(a[row][col]) > math.Abs(a[pivot][col]) {
				pivot = row
			}
		}
		if math.Abs(a[pivot][col]) == 0 {
			return nil, fmt.Errorf("%w: degenerate bin centers, normal equations are singular", errs.ErrInvalidValue)
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for row := col + 1; row < n; row++ {
			factor := a[row][col] / a[col][col]
			for k := col; k < n; k++ {
				a[row][k] -= factor * a[col][k]
			}
			b[row] -= factor * b[col]
		}
	}

	x := make([]float64, n)
	for row := n - 1; row >= 0; row-- {
		sum := b[row]
		for k := row + 1; k < n; k++ {
			sum -= a[row][k] * x[k]
		}
		x[row] = sum / a[row][row]
	}

	return x, nil
}
