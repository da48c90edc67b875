package viewer

import (
	"image"
	"image/color"
	"math"
)

// zImage is an RGBA target with a depth buffer. Smaller depth is closer.
type zImage struct {
	img    *image.RGBA
	zbuf   []float64
	width  int
	height int
}

func newZImage(width, height int, background color.RGBA) *zImage {
	z := &zImage{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		zbuf:   make([]float64, width*height),
		width:  width,
		height: height,
	}
	for i := range z.zbuf {
		z.zbuf[i] = math.Inf(1)
	}
	for i := 0; i < len(z.img.Pix); i += 4 {
		z.img.Pix[i+0] = background.R
		z.img.Pix[i+1] = background.G
		z.img.Pix[i+2] = background.B
		z.img.Pix[i+3] = background.A
	}
	return z
}

// fillTriangle scan converts a projected triangle, interpolating depth
// linearly along the edges and across each scanline.
func (z *zImage) fillTriangle(a, b, c [3]float64, col color.RGBA) {
	// Sort by y
	if a[1] > b[1] {
		a, b = b, a
	}
	if b[1] > c[1] {
		b, c = c, b
	}
	if a[1] > b[1] {
		a, b = b, a
	}

	yStart := int(math.Max(0, math.Ceil(a[1])))
	yEnd := int(math.Min(float64(z.height-1), c[1]))

	for y := yStart; y <= yEnd; y++ {
		fy := float64(y)

		// The long edge a-c spans every scanline; the short side switches
		// from a-b to b-c at b.
		xl, zl := edgeAt(a, c, fy)
		var xr, zr float64
		if fy < b[1] {
			xr, zr = edgeAt(a, b, fy)
		} else {
			xr, zr = edgeAt(b, c, fy)
		}
		if xl > xr {
			xl, xr = xr, xl
			zl, zr = zr, zl
		}

		xStart := int(math.Max(0, math.Ceil(xl)))
		xEnd := int(math.Min(float64(z.width-1), xr))
		for x := xStart; x <= xEnd; x++ {
			t := 0.0
			if xr != xl {
				t = (float64(x) - xl) / (xr - xl)
			}
			depth := zl + t*(zr-zl)

			idx := y*z.width + x
			if depth < z.zbuf[idx] {
				z.zbuf[idx] = depth
				z.img.SetRGBA(x, y, col)
			}
		}
	}
}

// edgeAt intersects the edge p-q with the scanline y.
func edgeAt(p, q [3]float64, y float64) (float64, float64) {
	if q[1] == p[1] {
		return p[0], p[2]
	}
	t := (y - p[1]) / (q[1] - p[1])
	return p[0] + t*(q[0]-p[0]), p[2] + t*(q[2]-p[2])
}
