package main

import (
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/cwbudde/algo-guided/gf/core"
	"github.com/cwbudde/algo-guided/gf/metrics"
)

func report(w io.Writer, o *options, j *job, out *core.Plane) error {
	in := j.input(o.mode)
	cfg := o.cfg
	if _, err := fmt.Fprintf(w, "mode %s, %dx%d, radius %d, feathering %g, iterations %d, blending %s, downscale %d\n\n",
		o.mode, in.Width, in.Height, cfg.Radius, cfg.Feathering, cfg.Iterations, cfg.Blending, cfg.Downscale); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Plane\tChannel\tMean\tStdDev\tMin\tMax\tTV\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(tw, "-----\t-------\t----\t------\t---\t---\t--\n"); err != nil {
		return err
	}
	for _, row := range []struct {
		name string
		p    *core.Plane
	}{{"input", in}, {"output", out}} {
		if err := writeRows(tw, row.name, row.p); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	ref, label := j.ref, "reference"
	if ref == nil || ref.Channels != out.Channels {
		ref, label = in, "input"
	}
	peak := 1.0
	if st, err := metrics.Plane(ref); err == nil {
		for _, s := range st {
			peak = math.Max(peak, s.Max)
		}
	}
	psnr, err := metrics.PSNR(out.Pix, ref.Pix, peak)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "\nPSNR vs %s: %.2f dB\n", label, psnr)
	return err
}

func writeRows(w io.Writer, name string, p *core.Plane) error {
	stats, err := metrics.Plane(p)
	if err != nil {
		return err
	}
	for c, s := range stats {
		ch, err := p.Channel(c)
		if err != nil {
			return err
		}
		tv, err := metrics.TotalVariation(ch)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s\t%d\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\n",
			name, c, s.Mean, s.StdDev, s.Min, s.Max, tv); err != nil {
			return err
		}
	}
	return nil
}
