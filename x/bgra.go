package x

import (
	"image"
	"image/color"
)

// BGRA is the ZPixmap layout of 24 and 32 bit depth visuals on little
// endian servers.
type BGRA struct {
	Rect   image.Rectangle
	Pix    []byte
	Stride int
}

func NewBGRA(r image.Rectangle) *BGRA {
	return &BGRA{
		Rect:   r,
		Pix:    make([]uint8, 4*r.Dx()*r.Dy()),
		Stride: 4 * r.Dx(),
	}
}

// ToBGRA swaps the red and blue channels of src.
func ToBGRA(src *image.RGBA) *BGRA {
	b := src.Bounds()
	dst := NewBGRA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		s := src.Pix[src.PixOffset(b.Min.X, y):]
		d := dst.Pix[dst.PixOffset(b.Min.X, y):]
		for i := 0; i < b.Dx()*4; i += 4 {
			d[i+0] = s[i+2]
			d[i+1] = s[i+1]
			d[i+2] = s[i+0]
			d[i+3] = s[i+3]
		}
	}
	return dst
}

func (i *BGRA) ColorModel() color.Model { return color.RGBAModel }
func (i *BGRA) Bounds() image.Rectangle { return i.Rect }

func (i *BGRA) PixOffset(x, y int) int {
	return (y-i.Rect.Min.Y)*i.Stride + (x-i.Rect.Min.X)*4
}

func (i *BGRA) At(x, y int) color.Color {
	if !(image.Pt(x, y).In(i.Rect)) {
		return color.RGBA{}
	}
	o := i.PixOffset(x, y)
	s := i.Pix[o : o+4 : o+4]
	return color.RGBA{s[2], s[1], s[0], s[3]}
}
