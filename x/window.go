package x

import (
	"image"
	"image/color"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
)

// Event is what Next observed.
type Event byte

const (
	EventNone Event = iota
	EventExpose
	EventRotate
)

// DelViewport closes a viewport by name. Identical to calling Close on it.
func (h *Host) DelViewport(name string) {
	h.sem.RLock()
	w := h.viewports[name]
	h.sem.RUnlock()
	if w != nil {
		w.Close()
	}
}

func (h *Host) DelAllViewports() {
	h.sem.RLock()
	l := make([]string, 0, len(h.viewports))
	for name := range h.viewports {
		l = append(l, name)
	}
	h.sem.RUnlock()
	for _, name := range l {
		h.DelViewport(name)
	}
}

func (h *Host) delViewport(name string) {
	h.sem.Lock()
	delete(h.viewports, name)
	h.sem.Unlock()
}

// Viewport creates a new viewport if one doesn't already exist by that name.
func (h *Host) Viewport(name string) *Viewport {
	h.sem.Lock()
	defer h.sem.Unlock()
	w, ok := h.viewports[name]
	if !ok {
		w = &Viewport{h: h, name: name, bg: color.RGBA{A: 255}}
		h.viewports[name] = w
	}

	return w
}

// Next processes a single X event. Expose events redraw all viewports,
// RandR screen changes are reported as EventRotate. This method blocks
// until an event is received when block is true.
func (h *Host) Next(block bool) (Event, error) {
	var evt xgb.Event
	var err error
	if block {
		evt, err = h.x.WaitForEvent()
		if evt == nil && err == nil {
			return EventNone, ErrClosed
		}
	} else {
		evt, err = h.x.PollForEvent()
	}
	if err != nil {
		return EventNone, err
	}

	switch evt.(type) {
	case xproto.ExposeEvent:
		h.sem.RLock()
		for _, w := range h.viewports {
			w.Render()
		}
		h.sem.RUnlock()
		return EventExpose, nil
	case randr.ScreenChangeNotifyEvent:
		return EventRotate, nil
	}

	return EventNone, nil
}

type state byte

const (
	stateMapped state = 1 << iota
	stateCreated
)

// Viewport is a child window of the host showing part of an image.
type Viewport struct {
	sem  sync.Mutex
	h    *Host
	name string
	wnd  xproto.Window

	state   state
	frame   image.Rectangle
	content image.Rectangle
	src     Image
	bg      color.RGBA
	img     *BGRA
	pixmap  xproto.Pixmap
	gc      xproto.Gcontext

	change bool
}

// Close frees resources on the X server. The viewport must not be used
// anymore.
func (w *Viewport) Close() {
	w.sem.Lock()
	w.src = nil
	if w.is(stateCreated) {
		xproto.DestroyWindow(w.h.x, w.wnd)
		w.wnd = 0
		w.state &= ^stateCreated
	}
	w.freePixmap()
	w.sem.Unlock()

	w.h.delViewport(w.name)
}

func (w *Viewport) Show() {
	w.sem.Lock()
	defer w.sem.Unlock()
	if w.is(stateMapped) {
		return
	}

	w.state |= stateMapped
	if w.is(stateCreated) {
		xproto.MapWindow(w.h.x, w.wnd)
	}

	w.draw()
}

func (w *Viewport) Render() {
	w.sem.Lock()
	defer w.sem.Unlock()
	w.draw()
}

func (w *Viewport) SetImage(img Image) {
	w.sem.Lock()
	w.src = img
	w.change = true
	w.sem.Unlock()
}

// SetBackground sets the color of viewport areas the image doesn't cover.
func (w *Viewport) SetBackground(c color.Color) {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	w.sem.Lock()
	w.change = w.change || w.bg != rgba
	w.bg = rgba
	w.sem.Unlock()
}

// Present places the viewport at frame (parent window coordinates) and
// draws the image scaled into content (viewport coordinates). content may
// extend past the frame, it is clipped.
func (w *Viewport) Present(frame, content image.Rectangle) {
	w.sem.Lock()
	defer w.sem.Unlock()
	if frame == w.frame && content == w.content {
		w.draw()
		return
	}

	w.change = true
	w.frame, w.content = frame, content
	w.draw()
}

func (w *Viewport) is(s state) bool { return w.state&s != 0 }

func (w *Viewport) freePixmap() {
	if w.pixmap != 0 {
		xproto.FreePixmap(w.h.x, w.pixmap)
		w.pixmap = 0
	}
	if w.gc != 0 {
		xproto.FreeGC(w.h.x, w.gc)
		w.gc = 0
	}
}

func (w *Viewport) createWindow() {
	wnd, _ := xproto.NewWindowId(w.h.x)
	w.wnd = wnd
	xproto.CreateWindow(
		w.h.x,
		w.h.depth,
		w.wnd,
		w.h.wnd,
		int16(w.frame.Min.X),
		int16(w.frame.Min.Y),
		uint16(w.frame.Dx()),
		uint16(w.frame.Dy()),
		0,
		xproto.WindowClassInputOutput,
		w.h.visual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{bgPixel(w.bg), xproto.EventMaskExposure},
	)
	w.state |= stateCreated
}

func (w *Viewport) configureWindow() {
	xproto.ConfigureWindow(
		w.h.x,
		w.wnd,
		xproto.ConfigWindowX|xproto.ConfigWindowY|
			xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
		[]uint32{
			uint32(int32(w.frame.Min.X)),
			uint32(int32(w.frame.Min.Y)),
			uint32(w.frame.Dx()),
			uint32(w.frame.Dy()),
		},
	)
}

func (w *Viewport) rasterize() {
	w.img = Rasterize(w.src, w.frame.Size(), w.content, w.bg)

	if !w.is(stateCreated) {
		w.createWindow()
	} else {
		w.configureWindow()
	}

	w.freePixmap()
	width, height := uint16(w.img.Rect.Dx()), uint16(w.img.Rect.Dy())
	w.pixmap, _ = xproto.NewPixmapId(w.h.x)
	w.gc, _ = xproto.NewGcontextId(w.h.x)
	xproto.CreatePixmap(
		w.h.x,
		w.h.depth,
		w.pixmap,
		xproto.Drawable(w.wnd),
		width,
		height,
	)
	xproto.CreateGC(w.h.x, w.gc, xproto.Drawable(w.pixmap), 0, nil)
	w.h.putImage(w.img, xproto.Drawable(w.pixmap), w.gc)

	if w.is(stateMapped) {
		xproto.MapWindow(w.h.x, w.wnd)
	}
}

func (w *Viewport) draw() {
	if w.src == nil || !w.is(stateMapped) || w.frame.Empty() {
		return
	}

	if w.change || !w.is(stateCreated) {
		w.change = false
		w.rasterize()
	}

	xproto.CopyArea(
		w.h.x,
		xproto.Drawable(w.pixmap),
		xproto.Drawable(w.wnd),
		w.gc,
		0,
		0,
		0,
		0,
		uint16(w.frame.Dx()),
		uint16(w.frame.Dy()),
	)
}

func bgPixel(c color.RGBA) uint32 {
	return uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

const maxRequest = 1<<16 - 1

// putImage uploads img in bands small enough for a single request.
func (h *Host) putImage(img *BGRA, pixmap xproto.Drawable, gc xproto.Gcontext) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return
	}

	stride := width * 4
	lines := maxRequest / stride
	if lines == 0 {
		lines = 1
	}
	for y := 0; y < height; y += lines {
		n := lines
		if y+n > height {
			n = height - y
		}
		xproto.PutImage(
			h.x,
			xproto.ImageFormatZPixmap,
			pixmap,
			gc,
			uint16(width),
			uint16(n),
			0, int16(y),
			0, h.depth,
			img.Pix[y*stride:(y+n)*stride],
		)
	}
}
