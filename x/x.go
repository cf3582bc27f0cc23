package x

import (
	"errors"
	"fmt"
	"image"
	"os"
	"strconv"
	"sync"

	"github.com/containerd/console"
	"github.com/jezek/xgb"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"

	"github.com/frizinak/zoomfit"
	"github.com/frizinak/zoomfit/geom"
)

var (
	ErrNoWindow = errors.New("no parent window")
	ErrClosed   = errors.New("X server connection closed")
)

// Host is the X11 window viewports are embedded in, usually the terminal
// the program runs in.
type Host struct {
	sem sync.RWMutex

	x    *xgb.Conn
	wnd  xproto.Window
	root xproto.Window

	console console.Console

	viewports map[string]*Viewport

	depth  byte
	visual xproto.Visualid
	randr  bool
}

// NewFromEnv embeds into the terminal window named by $WINDOWID.
func NewFromEnv() (*Host, error) { return New(os.Getenv("WINDOWID")) }

// New connects to the X server and uses windowID (decimal or 0x-prefixed
// hex) as parent window.
func New(windowID string) (*Host, error) {
	if windowID == "" {
		return nil, ErrNoWindow
	}

	wnd, err := strconv.ParseUint(windowID, 0, 32)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s' is not a valid X window id", ErrNoWindow, windowID)
	}

	x, err := xgb.NewConn()
	if err != nil {
		return nil, fmt.Errorf("connect to X server: %w", err)
	}

	screen := xproto.Setup(x).DefaultScreen(x)
	return &Host{
		x:         x,
		wnd:       xproto.Window(wnd),
		root:      screen.Root,
		depth:     screen.RootDepth,
		visual:    screen.RootVisual,
		randr:     randr.Init(x) == nil,
		viewports: make(map[string]*Viewport),
	}, nil
}

func (h *Host) Close() {
	h.DelAllViewports()
	h.x.Close()
}

// Console returns the terminal on stdin.
func (h *Host) Console() (console.Console, error) {
	if h.console != nil {
		return h.console, nil
	}

	c, err := console.ConsoleFromFile(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("stdin is not a terminal: %w", err)
	}
	h.console = c
	return c, nil
}

// Geometry returns the parent window area in its own coordinates.
func (h *Host) Geometry() (image.Rectangle, error) {
	d, err := xproto.GetGeometry(h.x, xproto.Drawable(h.wnd)).Reply()
	if err != nil {
		return image.Rectangle{}, fmt.Errorf("parent geometry: %w", err)
	}

	return image.Rect(0, 0, int(d.Width), int(d.Height)), nil
}

// Bounds returns the parent geometry, oriented by its aspect ratio.
func (h *Host) Bounds() (zoomfit.Bounds, error) {
	r, err := h.Geometry()
	if err != nil {
		return zoomfit.Bounds{}, err
	}

	return zoomfit.BoundsOf(r), nil
}

// Orientation reports the orientation of the default screen as rotated by
// RandR. ok is false when RandR is unavailable.
func (h *Host) Orientation() (o geom.Orientation, ok bool) {
	if !h.randr {
		return
	}

	info, err := randr.GetScreenInfo(h.x, h.root).Reply()
	if err != nil || int(info.SizeID) >= len(info.Sizes) {
		return
	}

	s := info.Sizes[info.SizeID]
	natural := geom.Sz(float64(s.Width), float64(s.Height))
	return orientation(natural, uint16(info.Rotation)), true
}

// WatchScreen requests RandR screen change notifications so rotations are
// reported by Next.
func (h *Host) WatchScreen() error {
	if !h.randr {
		return errors.New("RandR extension unavailable")
	}

	return randr.SelectInputChecked(
		h.x,
		h.root,
		randr.NotifyMaskScreenChange,
	).Check()
}

// orientation rotates the natural orientation of a screen by the RandR
// rotation bits.
func orientation(natural geom.Size, rotation uint16) geom.Orientation {
	o := geom.OrientationOf(natural)
	if rotation&(randr.RotationRotate90|randr.RotationRotate270) != 0 {
		o = o.Rotate()
	}
	return o
}
