// Package simulate provides the closed-form pulse and background profiles
// used to synthesize count-rate content for time/energy histograms.
//
// Each profile is a pure mapping from an ordered sequence of time samples
// and scalar parameters to a same-length sequence of amplitudes. Profiles
// carry no state and have no failure modes beyond standard numeric domain
// behavior: out-of-domain parameters (for example a non-positive Norris
// decay timescale) yield non-finite samples rather than an error.
package simulate

import "math"

// Tophat is a rectangular pulse of the given amplitude over
// [tstart, tstop]; zero elsewhere.
func Tophat(times []float64, amp, tstart, tstop float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		if t >= tstart && t <= tstop {
			out[i] = amp
		}
	}

	return out
}

// Norris is the empirical fast-rise exponential-decay pulse shape. The
// pulse is zero at and before tstart; rise and decay are the
// characteristic timescales in seconds.
func Norris(times []float64, amp, tstart, rise, decay float64) []float64 {
	out := make([]float64, len(times))
	peak := amp * math.Exp(2.0*math.Sqrt(rise/decay))
	for i, t := range times {
		if t <= tstart {
			continue
		}
		dt := t - tstart
		out[i] = peak * math.Exp(-rise/dt-dt/decay)
	}

	return out
}

// Gaussian is a Gaussian pulse with the given amplitude, centroid and
// standard deviation.
func Gaussian(times []float64, amp, centroid, sigma float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		d := t - centroid
		out[i] = amp * math.Exp(-d*d/(2.0*sigma*sigma))
	}

	return out
}

// Triangular is a triangular pulse rising linearly from tstart to amp at
// tpeak, then falling linearly to zero at tstop.
func Triangular(times []float64, amp, tstart, tpeak, tstop float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		switch {
		case t < tstart || t > tstop:
		case t <= tpeak:
			out[i] = amp * (t - tstart) / (tpeak - tstart)
		default:
			out[i] = amp * (tstop - t) / (tstop - tpeak)
		}
	}

	return out
}

// Constant is a flat background of the given amplitude.
func Constant(times []float64, amp float64) []float64 {
	out := make([]float64, len(times))
	for i := range out {
		out[i] = amp
	}

	return out
}

// Linear is a first-order polynomial background.
func Linear(times []float64, c0, c1 float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = c0 + c1*t
	}

	return out
}

// Quadratic is a second-order polynomial background.
func Quadratic(times []float64, c0, c1, c2 float64) []float64 {
	out := make([]float64, len(times))
	for i, t := range times {
		out[i] = c0 + t*(c1+t*c2)
	}

	return out
}
