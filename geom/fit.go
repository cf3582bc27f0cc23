package geom

import "math"

// DefaultMaxZoom is how far past the fitted size a viewer may zoom.
const DefaultMaxZoom = 3.0

// Fit scales img to fit inside viewport while preserving its aspect ratio.
// One side of the result equals the matching viewport side, the other never
// exceeds it. A degenerate img yields the zero Size.
func Fit(viewport, img Size) Size {
	if img.Empty() || viewport.Empty() {
		return Size{}
	}

	h := viewport.W / img.W * img.H
	w := viewport.H / img.H * img.W
	if w > viewport.W {
		w = viewport.W
	} else {
		h = viewport.H
	}

	return Size{W: w, H: h}
}

// Zoom is the zoom state of a viewport.
type Zoom struct {
	Min, Max float64
	Scale    float64
}

// Bounds computes the zoom state for content of size fitted shown in
// viewport. Min is the scale at which the content fills the viewport on its
// tighter axis, Max is maxFactor times that. The scale starts at Min.
func Bounds(viewport, fitted Size, maxFactor float64) Zoom {
	if fitted.Empty() {
		return Zoom{}
	}
	if maxFactor < 1 {
		maxFactor = DefaultMaxZoom
	}

	s := math.Min(viewport.W/fitted.W, viewport.H/fitted.H)
	return Zoom{Min: s, Max: s * maxFactor, Scale: s}
}

// Clamp bounds s to [Min, Max].
func (z Zoom) Clamp(s float64) float64 {
	if s < z.Min {
		return z.Min
	}
	if s > z.Max {
		return z.Max
	}
	return s
}

// Center returns the origin that centers content inside viewport along each
// axis where content is smaller, and pins it to 0 where it fills or
// overflows.
func Center(viewport, content Size) Point {
	var p Point
	if content.W < viewport.W {
		p.X = (viewport.W - content.W) / 2
	}
	if content.H < viewport.H {
		p.Y = (viewport.H - content.H) / 2
	}
	return p
}

// Offset positions a frame of size fitted inside container. Portrait
// containers center it vertically, landscape ones horizontally.
func Offset(container, fitted Size, o Orientation) Point {
	if o == Landscape {
		return Point{X: (container.W - fitted.W) / 2}
	}
	return Point{Y: (container.H - fitted.H) / 2}
}

// ClampScroll keeps a scroll offset within the scrollable range of content
// inside viewport.
func ClampScroll(off Point, viewport, content Size) Point {
	off.X = clamp(off.X, 0, math.Max(0, content.W-viewport.W))
	off.Y = clamp(off.Y, 0, math.Max(0, content.H-viewport.H))
	return off
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
