package main

import (
	"github.com/frizinak/zoomfit"
)

type action byte

const (
	actNone action = iota
	actZoomIn
	actZoomOut
	actReset
	actLeft
	actRight
	actUp
	actDown
	actQuit
)

// keyParser turns raw terminal bytes into actions, including the
// ESC [ A..D arrow sequences.
type keyParser struct {
	esc int
}

func (p *keyParser) feed(b byte) action {
	switch p.esc {
	case 1:
		if b == '[' || b == 'O' {
			p.esc = 2
			return actNone
		}
		p.esc = 0
	case 2:
		p.esc = 0
		switch b {
		case 'A':
			return actUp
		case 'B':
			return actDown
		case 'C':
			return actRight
		case 'D':
			return actLeft
		}
		return actNone
	}

	switch b {
	case 27:
		p.esc = 1
	case 3, 'q':
		return actQuit
	case '+', '=':
		return actZoomIn
	case '-', '_':
		return actZoomOut
	case '0':
		return actReset
	case 'h':
		return actLeft
	case 'j':
		return actDown
	case 'k':
		return actUp
	case 'l':
		return actRight
	}

	return actNone
}

// apply performs a on c. Pan directions move the view, not the image.
func apply(c *zoomfit.Controller, a action, zoomStep, panStep float64) {
	switch a {
	case actZoomIn:
		c.ZoomBy(zoomStep)
	case actZoomOut:
		c.ZoomBy(1 / zoomStep)
	case actReset:
		c.ResetZoom()
	case actLeft:
		c.Pan(-panStep, 0)
	case actRight:
		c.Pan(panStep, 0)
	case actUp:
		c.Pan(0, -panStep)
	case actDown:
		c.Pan(0, panStep)
	}
}
