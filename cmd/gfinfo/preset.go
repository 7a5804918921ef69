package main

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-guided/gf/coeffs"
	"github.com/cwbudde/algo-guided/gf/guided"
)

// preset is the YAML form of a filter configuration. Absent keys keep the
// library defaults.
type preset struct {
	Mode         string   `yaml:"mode"`
	Radius       *int     `yaml:"radius"`
	Feathering   *float64 `yaml:"feathering"`
	Iterations   *int     `yaml:"iterations"`
	Blending     string   `yaml:"blending"`
	Downscale    *int     `yaml:"downscale"`
	Quantization *float64 `yaml:"quantization"`
	QuantizeMin  *float64 `yaml:"quantize_min"`
	QuantizeMax  *float64 `yaml:"quantize_max"`
	ScratchLimit *int64   `yaml:"scratch_limit"`
}

func loadPreset(path string) (preset, error) {
	f, err := os.Open(path)
	if err != nil {
		return preset{}, fmt.Errorf("open preset: %w", err)
	}
	defer f.Close()
	return decodePreset(f)
}

func decodePreset(r io.Reader) (preset, error) {
	var p preset
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil && err != io.EOF {
		return preset{}, fmt.Errorf("decode preset: %w", err)
	}
	return p, nil
}

// apply writes the preset's values over cfg.
func (p preset) apply(cfg *guided.Config) error {
	if p.Radius != nil {
		cfg.Radius = *p.Radius
	}
	if p.Feathering != nil {
		cfg.Feathering = *p.Feathering
	}
	if p.Iterations != nil {
		cfg.Iterations = *p.Iterations
	}
	if p.Blending != "" {
		b, err := coeffs.ParseBlending(p.Blending)
		if err != nil {
			return err
		}
		cfg.Blending = b
	}
	if p.Downscale != nil {
		cfg.Downscale = *p.Downscale
	}
	if p.Quantization != nil {
		cfg.Quantization = *p.Quantization
	}
	if p.QuantizeMin != nil {
		cfg.QuantizeMin = *p.QuantizeMin
	}
	if p.QuantizeMax != nil {
		cfg.QuantizeMax = *p.QuantizeMax
	}
	if p.ScratchLimit != nil {
		cfg.ScratchLimit = *p.ScratchLimit
	}
	return nil
}
