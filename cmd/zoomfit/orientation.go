package main

import (
	"fmt"

	"github.com/frizinak/zoomfit"
	"github.com/frizinak/zoomfit/geom"
)

// orientationMode decides which orientation accompanies the container
// bounds on layout.
type orientationMode string

const (
	orientAuto      orientationMode = "auto"
	orientScreen    orientationMode = "screen"
	orientPortrait  orientationMode = "portrait"
	orientLandscape orientationMode = "landscape"
)

func parseOrientation(s string) (orientationMode, error) {
	switch m := orientationMode(s); m {
	case orientAuto, orientScreen, orientPortrait, orientLandscape:
		return m, nil
	}
	return "", fmt.Errorf("unknown orientation '%s' (auto, screen, portrait, landscape)", s)
}

// orient overrides the orientation of b. screen is consulted only in
// screen mode; when it reports nothing the aspect of b is kept.
func (m orientationMode) orient(b zoomfit.Bounds, screen func() (geom.Orientation, bool)) zoomfit.Bounds {
	switch m {
	case orientPortrait:
		b.Orientation = geom.Portrait
	case orientLandscape:
		b.Orientation = geom.Landscape
	case orientScreen:
		if screen == nil {
			break
		}
		if o, ok := screen(); ok {
			b.Orientation = o
		}
	}
	return b
}
