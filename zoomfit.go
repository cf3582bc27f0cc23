// Package zoomfit lays out a single image inside a zoomable, pannable
// viewport. The image is fitted to the container on every layout pass and
// kept centered while the zoom level changes.
package zoomfit

import (
	"image"

	"github.com/frizinak/zoomfit/geom"
)

// Image is anything with intrinsic pixel bounds.
type Image interface {
	Bounds() image.Rectangle
}

// Bounds is what a host delivers on every layout event: the container size
// and the orientation it is shown in.
type Bounds struct {
	Size        geom.Size
	Orientation geom.Orientation
}

// BoundsOf derives the orientation from the aspect of r.
func BoundsOf(r image.Rectangle) Bounds {
	s := geom.SizeOf(r)
	return Bounds{Size: s, Orientation: geom.OrientationOf(s)}
}

// State is a snapshot of the controller geometry.
type State struct {
	Container   geom.Size
	Orientation geom.Orientation

	// Frame is the viewport rectangle inside the container.
	Frame geom.Rect
	// Fitted is the image size at scale 1.
	Fitted geom.Size
	// Surface is the image rectangle inside the scrollable content at the
	// current scale.
	Surface geom.Rect
	Zoom    geom.Zoom
	Scroll  geom.Point
}

// Visible returns the surface rectangle in viewport coordinates, after
// scrolling. It may extend past the viewport.
func (s State) Visible() geom.Rect {
	return s.Surface.Translate(geom.Point{}.Sub(s.Scroll))
}

type Option func(*Controller)

// WithMaxZoom sets how far past the fitted size the image may be zoomed.
func WithMaxZoom(f float64) Option {
	return func(c *Controller) {
		if f >= 1 {
			c.maxZoom = f
		}
	}
}

// Controller owns the viewport and image surface geometry. It is driven by
// host events and must only be used from a single goroutine.
type Controller struct {
	img     geom.Size
	hasImg  bool
	maxZoom float64

	st      State
	laidOut bool

	subs   []*subscription
	nextID int
}

type subscription struct {
	id int
	fn func(State)
}

// New creates a controller for img. An image without area is treated as
// absent.
func New(img Image, opts ...Option) *Controller {
	c := NewEmpty(opts...)
	if img == nil {
		return c
	}

	s := geom.SizeOf(img.Bounds())
	if !s.Empty() {
		c.img, c.hasImg = s, true
	}

	return c
}

// NewEmpty creates a controller without an image. Every layout is a no-op.
func NewEmpty(opts ...Option) *Controller {
	c := &Controller{maxZoom: geom.DefaultMaxZoom}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Controller) HasImage() bool { return c.hasImg }

// State returns the geometry as of the last layout or zoom change.
func (c *Controller) State() State { return c.st }

// Subscribe registers fn to be called after every layout and every zoom or
// pan change. Calling the returned func unregisters it.
func (c *Controller) Subscribe(fn func(State)) (cancel func()) {
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, &subscription{id: id, fn: fn})

	return func() {
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

func (c *Controller) ViewLoaded(b Bounds) { c.Layout(b) }
func (c *Controller) WillLayout(b Bounds) { c.Layout(b) }
func (c *Controller) DidLayout(b Bounds)  { c.Layout(b) }

// Layout fits the image into b, positions the viewport frame inside the
// container, resets the zoom to its minimum and recenters the surface.
func (c *Controller) Layout(b Bounds) {
	if !c.hasImg || b.Size.Empty() {
		return
	}

	fitted := geom.Fit(b.Size, c.img)
	st := State{
		Container:   b.Size,
		Orientation: b.Orientation,
		Frame: geom.Rect{
			Origin: geom.Offset(b.Size, fitted, b.Orientation),
			Size:   fitted,
		},
		Fitted:  fitted,
		Surface: geom.Rect{Size: fitted},
	}

	st.Zoom = geom.Bounds(st.Frame.Size, st.Surface.Size, c.maxZoom)
	c.st = st
	c.laidOut = true
	c.centerContent()
	c.notify()
}

// SetZoom changes the zoom scale, clamped to the zoom bounds. The image
// point under the middle of the viewport stays put where scrolling allows.
func (c *Controller) SetZoom(scale float64) {
	if !c.laidOut {
		return
	}

	frame, prev := c.st.Frame.Size, c.st.Surface
	focus := c.st.Scroll.Add(geom.Pt(frame.W/2, frame.H/2)).Sub(prev.Origin)
	fx, fy := focus.X/prev.Size.W, focus.Y/prev.Size.H

	c.st.Zoom.Scale = c.st.Zoom.Clamp(scale)
	c.centerContent()

	s := c.st.Surface
	c.st.Scroll = geom.ClampScroll(
		geom.Pt(s.Origin.X+fx*s.Size.W-frame.W/2, s.Origin.Y+fy*s.Size.H-frame.H/2),
		frame,
		s.Size,
	)
	c.notify()
}

// ZoomBy multiplies the current zoom scale by f.
func (c *Controller) ZoomBy(f float64) { c.SetZoom(c.st.Zoom.Scale * f) }

// ResetZoom returns to the fitted scale.
func (c *Controller) ResetZoom() { c.SetZoom(c.st.Zoom.Min) }

// Pan moves the scroll offset by (dx, dy) viewport units. The offset never
// leaves the scrollable range of the surface.
func (c *Controller) Pan(dx, dy float64) {
	if !c.laidOut {
		return
	}

	c.st.Scroll = geom.ClampScroll(
		c.st.Scroll.Add(geom.Pt(dx, dy)),
		c.st.Frame.Size,
		c.st.Surface.Size,
	)
	c.notify()
}

// centerContent resizes the surface for the current scale and centers it
// along each axis where it is smaller than the viewport.
func (c *Controller) centerContent() {
	size := c.st.Fitted.Scale(c.st.Zoom.Scale)
	c.st.Surface = geom.Rect{
		Origin: geom.Center(c.st.Frame.Size, size),
		Size:   size,
	}
	c.st.Scroll = geom.ClampScroll(c.st.Scroll, c.st.Frame.Size, size)
}

func (c *Controller) notify() {
	subs := make([]*subscription, len(c.subs))
	copy(subs, c.subs)
	for _, s := range subs {
		s.fn(c.st)
	}
}
