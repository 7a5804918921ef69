package main

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
	"golang.org/x/image/tiff"

	"github.com/cwbudde/algo-guided/gf/core"
)

// radiance exposes a linear plane with one or three channels as an
// hdr.Image.
type radiance struct {
	p *core.Plane
}

func (r radiance) ColorModel() color.Model { return hdrcolor.RGBModel }
func (r radiance) Bounds() image.Rectangle { return image.Rect(0, 0, r.p.Width, r.p.Height) }
func (r radiance) At(x, y int) color.Color { return r.HDRAt(x, y) }
func (r radiance) Size() int               { return r.p.Pixels() }

func (r radiance) HDRAt(x, y int) hdrcolor.Color {
	red, green, blue := r.rgb(x, y)
	return hdrcolor.RGB{R: red, G: green, B: blue}
}

func (r radiance) rgb(x, y int) (float64, float64, float64) {
	if r.p.Channels < 3 {
		v := r.p.At(x, y, 0)
		return v, v, v
	}
	return r.p.At(x, y, 0), r.p.At(x, y, 1), r.p.At(x, y, 2)
}

// display converts the radiance to an sRGB-encoded 16-bit image, clipping
// out-of-gamut values.
func (r radiance) display() *image.RGBA64 {
	img := image.NewRGBA64(r.Bounds())
	for y := 0; y < r.p.Height; y++ {
		for x := 0; x < r.p.Width; x++ {
			c := colorful.LinearRgb(r.rgb(x, y)).Clamped()
			img.Set(x, y, c)
		}
	}
	return img
}

// outputFormat returns the lower-case extension of path, or an error when
// no encoder handles it.
func outputFormat(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".hdr", ".pic", ".rgbe", ".tif", ".tiff", ".png":
		return ext, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (want .hdr, .tif or .png)", ext)
	}
}

func writePlane(path string, p *core.Plane) error {
	ext, err := outputFormat(path)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if err := encodePlane(f, ext, p); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func encodePlane(w io.Writer, ext string, p *core.Plane) error {
	img := radiance{p: p}
	switch ext {
	case ".hdr", ".pic", ".rgbe":
		return rgbe.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img.display(), &tiff.Options{Compression: tiff.Deflate})
	case ".png":
		return png.Encode(w, img.display())
	default:
		return fmt.Errorf("unsupported output format %q", ext)
	}
}
