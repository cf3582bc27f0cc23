package x

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func uniform(r image.Rectangle, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func closeTo(a, b uint8) bool {
	d := int(a) - int(b)
	return d >= -1 && d <= 1
}

func TestImageRead(t *testing.T) {
	var buf bytes.Buffer
	src := uniform(image.Rect(0, 0, 40, 20), color.NRGBA{R: 255, A: 255})
	if err := png.Encode(&buf, src); err != nil {
		t.Fatal(err)
	}

	img, err := ImageRead(&buf)
	if err != nil {
		t.Fatalf("ImageRead: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 40, 20) {
		t.Errorf("bounds: got %v", img.Bounds())
	}

	if _, err := ImageRead(bytes.NewReader([]byte("not an image"))); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestNewImageNormalizesOrigin(t *testing.T) {
	img := NewImage(uniform(image.Rect(5, 5, 15, 25), color.White))
	if img.Bounds() != image.Rect(0, 0, 10, 20) {
		t.Errorf("got %v, want 10x20 at origin", img.Bounds())
	}
}

func TestRasterize(t *testing.T) {
	red := NewImage(uniform(image.Rect(0, 0, 8, 4), color.NRGBA{R: 255, A: 255}))
	bg := color.RGBA{B: 255, A: 255}

	out := Rasterize(red, image.Pt(4, 2), image.Rect(1, 0, 3, 1), bg)
	if out.Bounds() != image.Rect(0, 0, 4, 2) {
		t.Fatalf("bounds: got %v", out.Bounds())
	}

	tests := []struct {
		p    image.Point
		want color.RGBA
	}{
		{image.Pt(0, 0), bg},
		{image.Pt(1, 0), color.RGBA{R: 255, A: 255}},
		{image.Pt(2, 0), color.RGBA{R: 255, A: 255}},
		{image.Pt(3, 0), bg},
		{image.Pt(1, 1), bg},
	}
	for _, tt := range tests {
		got := out.At(tt.p.X, tt.p.Y).(color.RGBA)
		if !closeTo(got.R, tt.want.R) || !closeTo(got.G, tt.want.G) ||
			!closeTo(got.B, tt.want.B) || got.A != tt.want.A {
			t.Errorf("pixel %v: got %v, want %v", tt.p, got, tt.want)
		}
	}

	o := out.PixOffset(1, 0)
	if out.Pix[o] != 0 || out.Pix[o+2] < 254 {
		t.Errorf("expected BGRA byte order, got %v", out.Pix[o:o+4])
	}
}

func TestRasterizeClipsOverflow(t *testing.T) {
	red := NewImage(uniform(image.Rect(0, 0, 10, 10), color.NRGBA{R: 255, A: 255}))
	out := Rasterize(red, image.Pt(4, 4), image.Rect(-10, -10, 20, 20), color.RGBA{A: 255})
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if c := out.At(x, y).(color.RGBA); c.R < 254 {
				t.Fatalf("pixel (%d,%d) not covered: %v", x, y, c)
			}
		}
	}
}

func TestRasterizeWithoutImage(t *testing.T) {
	out := Rasterize(nil, image.Pt(2, 2), image.Rect(0, 0, 2, 2), color.RGBA{G: 255, A: 255})
	if c := out.At(1, 1).(color.RGBA); c != (color.RGBA{G: 255, A: 255}) {
		t.Errorf("got %v, want background", c)
	}
}

func TestToBGRA(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	copy(src.Pix, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	got := ToBGRA(src).Pix
	want := []byte{3, 2, 1, 4, 7, 6, 5, 8}
	if !bytes.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
