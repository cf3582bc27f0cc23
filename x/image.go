package x

import (
	"fmt"
	"image"
	"image/color"
	"io"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Image is a decoded bitmap that can draw itself scaled into a rectangle.
type Image interface {
	Bounds() image.Rectangle
	Draw(dst *image.RGBA, r image.Rectangle)
}

type nativeImage struct {
	in *image.RGBA
}

// ImageRead decodes any of gif, jpeg, png, bmp, tiff or webp.
func ImageRead(r io.Reader) (Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode image: empty %s", format)
	}

	return NewImage(img), nil
}

// NewImage wraps img, converting it to RGBA once so scaling takes the fast
// path.
func NewImage(img image.Image) Image {
	if v, ok := img.(*image.RGBA); ok {
		return &nativeImage{in: v}
	}

	b := img.Bounds()
	in := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(in, in.Bounds(), img, b.Min, draw.Src)
	return &nativeImage{in: in}
}

func (n *nativeImage) Bounds() image.Rectangle { return n.in.Bounds() }

func (n *nativeImage) Draw(dst *image.RGBA, r image.Rectangle) {
	if r.Empty() || !r.Overlaps(dst.Bounds()) {
		return
	}
	draw.ApproxBiLinear.Scale(dst, r, n.in, n.in.Bounds(), draw.Src, nil)
}

// Rasterize renders src scaled into content on a size canvas filled with bg
// and returns it in the server's pixel layout.
func Rasterize(src Image, size image.Point, content image.Rectangle, bg color.RGBA) *BGRA {
	canvas := image.NewRGBA(image.Rectangle{Max: size})
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	if src != nil {
		src.Draw(canvas, content)
	}

	return ToBGRA(canvas)
}
