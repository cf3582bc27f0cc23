package zoomfit

import (
	"image"
	"math"
	"testing"

	"github.com/frizinak/zoomfit/geom"
)

func bounds(w, h float64) Bounds {
	s := geom.Sz(w, h)
	return Bounds{Size: s, Orientation: geom.OrientationOf(s)}
}

func rect(w, h int) image.Rectangle { return image.Rect(0, 0, w, h) }

func TestLayoutPortrait(t *testing.T) {
	c := New(rect(400, 200))
	c.ViewLoaded(bounds(300, 600))
	st := c.State()

	if st.Fitted != geom.Sz(300, 150) {
		t.Fatalf("fitted: got %v, want 300x150", st.Fitted)
	}
	if st.Frame.Origin != geom.Pt(0, 225) || st.Frame.Size != st.Fitted {
		t.Errorf("frame: got %+v, want origin (0,225) size 300x150", st.Frame)
	}
	if st.Zoom != (geom.Zoom{Min: 1, Max: 3, Scale: 1}) {
		t.Errorf("zoom: got %+v", st.Zoom)
	}
	if st.Surface.Origin != (geom.Point{}) || st.Surface.Size != st.Fitted {
		t.Errorf("surface: got %+v, want fitted size at origin", st.Surface)
	}
}

func TestLayoutLandscape(t *testing.T) {
	c := New(rect(200, 400))
	c.WillLayout(bounds(600, 300))
	st := c.State()

	if st.Fitted != geom.Sz(150, 300) {
		t.Fatalf("fitted: got %v, want 150x300", st.Fitted)
	}
	if st.Frame.Origin != geom.Pt(225, 0) {
		t.Errorf("frame origin: got %v, want (225,0)", st.Frame.Origin)
	}
	if st.Orientation != geom.Landscape {
		t.Errorf("orientation: got %v", st.Orientation)
	}
}

func TestRotationRefits(t *testing.T) {
	c := New(rect(400, 200))
	c.DidLayout(bounds(300, 600))
	c.ZoomBy(2)
	if c.State().Zoom.Scale != 2 {
		t.Fatalf("zoom before rotation: got %v, want 2", c.State().Zoom.Scale)
	}

	c.DidLayout(bounds(600, 300))
	st := c.State()
	if st.Fitted != geom.Sz(600, 300) {
		t.Errorf("fitted after rotation: got %v, want 600x300", st.Fitted)
	}
	if st.Zoom.Scale != st.Zoom.Min {
		t.Errorf("zoom after rotation: got %v, want min %v", st.Zoom.Scale, st.Zoom.Min)
	}
	if st.Scroll != (geom.Point{}) {
		t.Errorf("scroll after rotation: got %v, want origin", st.Scroll)
	}
}

func TestNoImageIsNoop(t *testing.T) {
	for name, c := range map[string]*Controller{
		"empty":      NewEmpty(),
		"nil":        New(nil),
		"degenerate": New(rect(0, 100)),
	} {
		calls := 0
		c.Subscribe(func(State) { calls++ })
		c.ViewLoaded(bounds(300, 600))
		c.SetZoom(2)
		c.Pan(10, 10)

		if c.HasImage() {
			t.Errorf("%s: HasImage should be false", name)
		}
		if calls != 0 {
			t.Errorf("%s: got %d notifications, want 0", name, calls)
		}
		if c.State() != (State{}) {
			t.Errorf("%s: state changed: %+v", name, c.State())
		}
	}
}

func TestZoomIsClamped(t *testing.T) {
	c := New(rect(400, 200))
	c.ViewLoaded(bounds(300, 600))

	c.SetZoom(10)
	if got := c.State().Zoom.Scale; got != 3 {
		t.Errorf("got %v, want max 3", got)
	}
	c.SetZoom(0.1)
	if got := c.State().Zoom.Scale; got != 1 {
		t.Errorf("got %v, want min 1", got)
	}
	c.ZoomBy(1.5)
	c.ResetZoom()
	if got := c.State().Zoom.Scale; got != 1 {
		t.Errorf("after reset got %v, want 1", got)
	}
}

func TestMaxZoomOption(t *testing.T) {
	c := New(rect(400, 200), WithMaxZoom(5))
	c.ViewLoaded(bounds(300, 600))
	if got := c.State().Zoom.Max; got != 5 {
		t.Errorf("got %v, want 5", got)
	}

	c = New(rect(400, 200), WithMaxZoom(0.5))
	c.ViewLoaded(bounds(300, 600))
	if got := c.State().Zoom.Max; got != geom.DefaultMaxZoom {
		t.Errorf("invalid option: got %v, want %v", got, geom.DefaultMaxZoom)
	}
}

func TestZoomCentersContent(t *testing.T) {
	c := New(rect(400, 200))
	c.ViewLoaded(bounds(300, 600))

	// Scale the surface under the viewport size to exercise centering.
	c.st.Zoom.Min = 0.5
	c.SetZoom(0.5)
	st := c.State()
	if st.Surface.Size != geom.Sz(150, 75) {
		t.Fatalf("surface size: got %v, want 150x75", st.Surface.Size)
	}
	if st.Surface.Origin != geom.Pt(75, 37.5) {
		t.Errorf("surface origin: got %v, want (75,37.5)", st.Surface.Origin)
	}

	c.SetZoom(2)
	st = c.State()
	if st.Surface.Origin != (geom.Point{}) {
		t.Errorf("overflowing surface origin: got %v, want origin", st.Surface.Origin)
	}
}

func TestZoomKeepsFocus(t *testing.T) {
	c := New(rect(400, 200))
	c.ViewLoaded(bounds(300, 600))
	c.SetZoom(2)

	st := c.State()
	want := geom.Pt(150, 75)
	if st.Scroll != want {
		t.Errorf("scroll: got %v, want %v", st.Scroll, want)
	}

	v := st.Visible()
	mid := geom.Pt(st.Frame.Size.W/2-v.Origin.X, st.Frame.Size.H/2-v.Origin.Y)
	if math.Abs(mid.X/v.Size.W-0.5) > 1e-9 || math.Abs(mid.Y/v.Size.H-0.5) > 1e-9 {
		t.Errorf("viewport middle maps to %v of the image, want the middle", mid)
	}
}

func TestPanIsClamped(t *testing.T) {
	c := New(rect(400, 200))
	c.ViewLoaded(bounds(300, 600))

	c.Pan(50, 50)
	if got := c.State().Scroll; got != (geom.Point{}) {
		t.Errorf("pan at min zoom: got %v, want origin", got)
	}

	c.SetZoom(3)
	c.Pan(-1000, -1000)
	if got := c.State().Scroll; got != (geom.Point{}) {
		t.Errorf("pan past top-left: got %v", got)
	}
	c.Pan(1000, 1000)
	if got := c.State().Scroll; got != geom.Pt(600, 300) {
		t.Errorf("pan past bottom-right: got %v, want (600,300)", got)
	}

	c.SetZoom(1)
	if got := c.State().Scroll; got != (geom.Point{}) {
		t.Errorf("zoom out should clamp scroll: got %v", got)
	}
}

func TestSubscribe(t *testing.T) {
	c := New(rect(400, 200))
	var order []int
	c.Subscribe(func(State) { order = append(order, 1) })
	cancel := c.Subscribe(func(State) { order = append(order, 2) })

	c.ViewLoaded(bounds(300, 600))
	c.ZoomBy(1.25)
	cancel()
	c.Pan(1, 1)

	want := []int{1, 2, 1, 2, 1}
	if len(order) != len(want) {
		t.Fatalf("got %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got %v, want %v", order, want)
		}
	}
}

func TestSubscriberSeesState(t *testing.T) {
	c := New(rect(400, 200))
	var got State
	c.Subscribe(func(s State) { got = s })
	c.ViewLoaded(bounds(300, 600))
	c.ZoomBy(2)

	if got != c.State() {
		t.Errorf("subscriber state %+v differs from %+v", got, c.State())
	}
}

func TestBoundsOf(t *testing.T) {
	b := BoundsOf(image.Rect(10, 10, 610, 310))
	if b.Size != geom.Sz(600, 300) || b.Orientation != geom.Landscape {
		t.Errorf("got %+v", b)
	}
}
