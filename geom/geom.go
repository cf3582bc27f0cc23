// Package geom holds the float geometry used to fit an image into a
// viewport and to keep it centered while zooming.
package geom

import (
	"image"
	"math"
)

type Size struct {
	W, H float64
}

func Sz(w, h float64) Size { return Size{W: w, H: h} }

// SizeOf returns the dimensions of r.
func SizeOf(r image.Rectangle) Size {
	return Size{W: float64(r.Dx()), H: float64(r.Dy())}
}

func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

func (s Size) Scale(f float64) Size { return Size{W: s.W * f, H: s.H * f} }

// Aspect is width over height, 0 for an empty size.
func (s Size) Aspect() float64 {
	if s.Empty() {
		return 0
	}
	return s.W / s.H
}

type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

type Rect struct {
	Origin Point
	Size   Size
}

func (r Rect) Max() Point {
	return Point{X: r.Origin.X + r.Size.W, Y: r.Origin.Y + r.Size.H}
}

func (r Rect) Translate(p Point) Rect {
	r.Origin = r.Origin.Add(p)
	return r
}

// Image rounds r to integer pixel coordinates.
func (r Rect) Image() image.Rectangle {
	m := r.Max()
	return image.Rect(
		int(math.Round(r.Origin.X)),
		int(math.Round(r.Origin.Y)),
		int(math.Round(m.X)),
		int(math.Round(m.Y)),
	)
}

type Orientation byte

const (
	Portrait Orientation = iota
	Landscape
)

func (o Orientation) String() string {
	if o == Landscape {
		return "landscape"
	}
	return "portrait"
}

// Rotate returns the orientation after a quarter turn.
func (o Orientation) Rotate() Orientation {
	if o == Landscape {
		return Portrait
	}
	return Landscape
}

// OrientationOf reports Landscape for sizes wider than tall.
func OrientationOf(s Size) Orientation {
	if s.W > s.H {
		return Landscape
	}
	return Portrait
}
