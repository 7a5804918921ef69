package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/mdouchement/hdr"
	"github.com/mdouchement/hdr/codec/rgbe"
	"github.com/mdouchement/hdr/hdrcolor"
	"golang.org/x/image/tiff"

	"github.com/cwbudde/algo-guided/gf/core"
)

// picture is a decoded input: linear RGB, its luminance and its xy
// chromaticity relative to the D65 white point.
type picture struct {
	rgb  *core.Plane
	lum  *core.Plane
	u, v *core.Plane
}

const (
	whiteX = 0.3127
	whiteY = 0.3290
)

func loadPicture(path string) (*picture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	img, err := decodeImage(f, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return newPicture(img)
}

func decodeImage(r io.Reader, ext string) (image.Image, error) {
	switch ext {
	case ".hdr", ".pic", ".rgbe":
		return rgbe.Decode(r)
	case ".tif", ".tiff":
		return tiff.Decode(r)
	default:
		img, _, err := image.Decode(r)
		return img, err
	}
}

// newPicture converts img to linear planes. HDR images keep their
// unbounded radiance; display-referred images are linearized from sRGB.
func newPicture(img image.Image) (*picture, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	p := &picture{}
	var err error
	if p.rgb, err = core.NewPlane(w, h, 3); err != nil {
		return nil, err
	}
	if p.lum, err = core.NewPlane(w, h, 1); err != nil {
		return nil, err
	}
	p.u, _ = core.NewPlane(w, h, 1)
	p.v, _ = core.NewPlane(w, h, 1)

	hi, isHDR := img.(hdr.Image)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var r, g, bl, lum float64
			if isHDR {
				c := hi.HDRAt(b.Min.X+x, b.Min.Y+y)
				rgb := hdrcolor.RGBModel.Convert(c).(hdrcolor.RGB)
				r, g, bl, _ = rgb.HDRRGBA()
				xyz := hdrcolor.XYZModel.Convert(c).(hdrcolor.Color)
				_, lum, _, _ = xyz.HDRXYZA()
			} else {
				c, _ := colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y))
				r, g, bl = c.LinearRgb()
			}
			cx, cy, yy := colorful.LinearRgb(r, g, bl).Xyy()
			if !isHDR {
				lum = yy
			}
			p.rgb.Set(x, y, 0, r)
			p.rgb.Set(x, y, 1, g)
			p.rgb.Set(x, y, 2, bl)
			p.lum.Set(x, y, 0, core.FloorMin(lum))
			p.u.Set(x, y, 0, cx-whiteX)
			p.v.Set(x, y, 0, cy-whiteY)
		}
	}
	return p, nil
}
