// Package metrics summarizes filtered planes: sample statistics, PSNR
// against a reference and total variation, the figures used to judge how
// much a filter smoothed and how much it kept.
package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-guided/gf/core"
)

// Stats holds per-channel plane statistics.
type Stats struct {
	Samples int
	Mean    float64
	StdDev  float64 // unbiased sample standard deviation
	Min     float64
	MinPos  int
	Max     float64
	MaxPos  int
	Range   float64 // max - min
}

// Calculate computes the statistics of samples.
func Calculate(samples []float64) Stats {
	if len(samples) == 0 {
		return Stats{}
	}
	mean, std := stat.MeanStdDev(samples, nil)
	if len(samples) == 1 {
		std = 0
	}
	minPos, maxPos := floats.MinIdx(samples), floats.MaxIdx(samples)
	return Stats{
		Samples: len(samples),
		Mean:    mean,
		StdDev:  std,
		Min:     samples[minPos],
		MinPos:  minPos,
		Max:     samples[maxPos],
		MaxPos:  maxPos,
		Range:   samples[maxPos] - samples[minPos],
	}
}

// Plane returns one Stats per channel of p.
func Plane(p *core.Plane) ([]Stats, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	out := make([]Stats, p.Channels)
	for c := range out {
		ch, err := p.Channel(c)
		if err != nil {
			return nil, err
		}
		out[c] = Calculate(ch.Pix)
	}
	return out, nil
}

// MSE returns the mean squared difference of got and ref.
func MSE(got, ref []float64) (float64, error) {
	if len(got) != len(ref) {
		return 0, fmt.Errorf("%w: got %d samples, reference %d", core.ErrInvalidDimensions, len(got), len(ref))
	}
	if len(got) == 0 {
		return 0, nil
	}
	d := floats.Distance(got, ref, 2)
	return d * d / float64(len(got)), nil
}

// PSNR returns the peak signal-to-noise ratio of got against ref in dB for
// the given peak value. Identical inputs give +Inf.
func PSNR(got, ref []float64, peak float64) (float64, error) {
	if !(peak > 0) {
		return 0, fmt.Errorf("%w: peak must be > 0: %v", core.ErrInvalidParameter, peak)
	}
	mse, err := MSE(got, ref)
	if err != nil {
		return 0, err
	}
	if mse == 0 {
		return math.Inf(1), nil
	}
	return 10 * math.Log10(peak*peak/mse), nil
}

// TotalVariation returns the mean absolute difference between horizontally
// and vertically adjacent samples of a single-channel plane. Smoothing
// lowers it; a constant plane has 0.
func TotalVariation(p *core.Plane) (float64, error) {
	if err := p.Validate(); err != nil {
		return 0, err
	}
	if p.Channels != 1 {
		return 0, fmt.Errorf("%w: %d channels, want 1", core.ErrInvalidDimensions, p.Channels)
	}
	var sum float64
	var pairs int
	for y := 0; y < p.Height; y++ {
		row := p.Pix[y*p.Width : (y+1)*p.Width]
		for x := 1; x < p.Width; x++ {
			sum += math.Abs(row[x] - row[x-1])
		}
		pairs += p.Width - 1
		if y > 0 {
			prev := p.Pix[(y-1)*p.Width : y*p.Width]
			for x := range row {
				sum += math.Abs(row[x] - prev[x])
			}
			pairs += p.Width
		}
	}
	if pairs == 0 {
		return 0, nil
	}
	return sum / float64(pairs), nil
}
