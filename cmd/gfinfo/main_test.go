package main

import (
	"bytes"
	"go/parser"
	"go/token"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/cwbudde/algo-guided/gf/coeffs"
	"github.com/cwbudde/algo-guided/gf/core"
	"github.com/cwbudde/algo-guided/gf/guided"
)

func TestDecodePreset(t *testing.T) {
	const src = `
mode: eigf
radius: 5
feathering: 0.5
iterations: 3
blending: GeoMean
downscale: 2
quantization: 0.25
quantize_min: 0.001
quantize_max: 4
scratch_limit: 1048576
`
	p, err := decodePreset(strings.NewReader(src))
	if err != nil {
		t.Fatal(err)
	}
	if p.Mode != "eigf" {
		t.Fatalf("mode = %q, want eigf", p.Mode)
	}

	cfg := guided.DefaultConfig()
	if err := p.apply(&cfg); err != nil {
		t.Fatal(err)
	}
	want := guided.Config{
		Radius:       5,
		Feathering:   0.5,
		Iterations:   3,
		Blending:     coeffs.Geomean,
		Downscale:    2,
		Quantization: 0.25,
		QuantizeMin:  0.001,
		QuantizeMax:  4,
		ScratchLimit: 1 << 20,
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodePresetKeepsDefaults(t *testing.T) {
	p, err := decodePreset(strings.NewReader("radius: 2\n"))
	if err != nil {
		t.Fatal(err)
	}
	cfg := guided.DefaultConfig()
	if err := p.apply(&cfg); err != nil {
		t.Fatal(err)
	}
	want := guided.DefaultConfig()
	want.Radius = 2
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	empty, err := decodePreset(strings.NewReader(""))
	if err != nil {
		t.Fatalf("empty preset: %v", err)
	}
	if empty.Radius != nil || empty.Mode != "" {
		t.Fatalf("empty preset = %+v", empty)
	}
}

func TestDecodePresetErrors(t *testing.T) {
	if _, err := decodePreset(strings.NewReader("radius: 2\nsmoothness: 3\n")); err == nil {
		t.Fatal("expected error for unknown key")
	}
	if _, err := decodePreset(strings.NewReader("radius: [1, 2]\n")); err == nil {
		t.Fatal("expected error for malformed value")
	}

	p, err := decodePreset(strings.NewReader("blending: cubic\n"))
	if err != nil {
		t.Fatal(err)
	}
	cfg := guided.DefaultConfig()
	if err := p.apply(&cfg); err == nil {
		t.Fatal("expected error for unknown blending")
	}
}

func TestFlagsOverridePreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.yaml")
	if err := os.WriteFile(path, []byte("mode: eigf\nradius: 5\nfeathering: 0.5\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var stderr bytes.Buffer
	o, err := parseArgs([]string{"-preset", path, "-radius", "3", "-blending", "geomean"}, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	if o.mode != "eigf" {
		t.Fatalf("mode = %q, want eigf from preset", o.mode)
	}
	if o.cfg.Radius != 3 || o.cfg.Feathering != 0.5 || o.cfg.Blending != coeffs.Geomean {
		t.Fatalf("config = %+v", o.cfg)
	}

	o, err = parseArgs([]string{"-preset", path, "-mode", "Chroma"}, &stderr)
	if err != nil {
		t.Fatal(err)
	}
	if o.mode != "chroma" {
		t.Fatalf("mode = %q, want chroma from flag", o.mode)
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	p, err := core.NewPlane(4, 3, 3)
	if err != nil {
		t.Fatal(err)
	}
	for k := range p.Pix {
		p.Pix[k] = 0.05 + 0.9*float64(k)/float64(len(p.Pix))
	}

	tests := []struct {
		ext string
		tol func(want float64) float64
	}{
		{".png", func(float64) float64 { return 1e-3 }},
		{".tif", func(float64) float64 { return 1e-3 }},
		{".hdr", func(want float64) float64 { return 0.01 }},
	}
	for _, tt := range tests {
		t.Run(tt.ext, func(t *testing.T) {
			var buf bytes.Buffer
			if err := encodePlane(&buf, tt.ext, p); err != nil {
				t.Fatalf("encode: %v", err)
			}
			img, err := decodeImage(&buf, tt.ext)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			pic, err := newPicture(img)
			if err != nil {
				t.Fatal(err)
			}
			if pic.rgb.Width != 4 || pic.rgb.Height != 3 {
				t.Fatalf("size = %dx%d, want 4x3", pic.rgb.Width, pic.rgb.Height)
			}
			for k, want := range p.Pix {
				if got := pic.rgb.Pix[k]; math.Abs(got-want) > tt.tol(want) {
					t.Fatalf("sample %d = %v, want %v", k, got, want)
				}
			}
			for k, lum := range pic.lum.Pix {
				if !(lum > 0) || lum > 1 {
					t.Fatalf("luminance %d = %v, want in (0, 1]", k, lum)
				}
			}
		})
	}
}

func TestEncodePlaneRejectsUnknownFormat(t *testing.T) {
	p, _ := core.NewPlane(1, 1, 1)
	var buf bytes.Buffer
	if err := encodePlane(&buf, ".bmp", p); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunSynthetic(t *testing.T) {
	for _, mode := range []string{"classic", "eigf", "chroma"} {
		t.Run(mode, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run([]string{"-mode", mode, "-size", "24", "-radius", "3"}, &stdout, &stderr)
			if code != 0 {
				t.Fatalf("exit code %d, stderr: %s", code, stderr.String())
			}
			out := stdout.String()
			for _, want := range []string{"mode " + mode, "input", "output", "PSNR vs reference"} {
				if !strings.Contains(out, want) {
					t.Fatalf("report lacks %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestRunWritesImage(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"out.png", "out.hdr"} {
		path := filepath.Join(dir, name)
		var stdout, stderr bytes.Buffer
		if code := run([]string{"-size", "16", "-radius", "2", "-out", path}, &stdout, &stderr); code != 0 {
			t.Fatalf("%s: exit code %d, stderr: %s", name, code, stderr.String())
		}

		var in bytes.Buffer
		if code := run([]string{"-radius", "2", path}, &in, &stderr); code != 0 {
			t.Fatalf("%s: reading back: exit code %d, stderr: %s", name, code, stderr.String())
		}
		if !strings.Contains(in.String(), "16x16") || !strings.Contains(in.String(), "PSNR vs input") {
			t.Fatalf("%s: unexpected report:\n%s", name, in.String())
		}
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{"help", []string{"-h"}, 0},
		{"unknown flag", []string{"-colour"}, 2},
		{"two images", []string{"a.png", "b.png"}, 2},
		{"bad size", []string{"-size", "0"}, 2},
		{"bad blending", []string{"-blending", "cubic"}, 2},
		{"bad feathering", []string{"-feathering", "0"}, 2},
		{"bad radius", []string{"-radius", "0"}, 2},
		{"missing preset", []string{"-preset", filepath.Join(t.TempDir(), "none.yaml")}, 2},
		{"unknown mode", []string{"-mode", "median", "-size", "8"}, 1},
		{"missing image", []string{filepath.Join(t.TempDir(), "none.png")}, 1},
		{"bad output", []string{"-size", "8", "-out", filepath.Join(t.TempDir(), "out.bmp")}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if got := run(tt.args, &stdout, &stderr); got != tt.want {
				t.Fatalf("exit code = %d, want %d (stderr: %s)", got, tt.want, stderr.String())
			}
		})
	}
}

func TestWritePlaneRejectsFormatBeforeCreating(t *testing.T) {
	p, _ := core.NewPlane(2, 2, 1)
	path := filepath.Join(t.TempDir(), "out.bmp")
	if err := writePlane(path, p); err == nil {
		t.Fatal("expected error")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("Stat(%s) error = %v, want not-exist", path, err)
	}
}

func TestCommandDoesNotLinkTestHelpers(t *testing.T) {
	files, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatal(err)
	}
	fset := token.NewFileSet()
	for _, name := range files {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, name, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatal(err)
		}
		for _, imp := range f.Imports {
			path, _ := strconv.Unquote(imp.Path.Value)
			if path == "testing" || strings.HasSuffix(path, "/internal/testutil") {
				t.Fatalf("%s imports %s", name, path)
			}
		}
	}
}
