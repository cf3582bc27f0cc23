package main

import (
	"context"
	"fmt"
	"image"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/frizinak/zoomfit"
	"github.com/frizinak/zoomfit/geom"
	"github.com/frizinak/zoomfit/img"
)

var (
	fitViewport    string
	fitImage       string
	fitOrientation string
	fitZoom        float64
	fitPan         string
	fitMaxZoom     float64
)

var fitCmd = &cobra.Command{
	Use:   "fit --viewport WxH (--image WxH | <uri>)",
	Short: "Print the layout of an image in a viewport without showing it",
	Long: `fit runs the same layout the viewer does and prints the result as YAML:
the viewport frame inside the container, the fitted image size, the zoom
bounds and the image surface inside the viewport.

Examples:
  zoomfit fit --viewport 300x600 --image 400x200
  zoomfit fit --viewport 1920x1080 photo.jpg --zoom 2 --pan 100,50`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFit,
}

func init() {
	fitCmd.Flags().StringVar(&fitViewport, "viewport", "", "container size WxH (required)")
	fitCmd.Flags().StringVar(&fitImage, "image", "", "image size WxH instead of reading an image")
	fitCmd.Flags().StringVar(&fitOrientation, "orientation", string(orientAuto), "auto, portrait or landscape")
	fitCmd.Flags().Float64Var(&fitZoom, "zoom", 0, "zoom scale to apply after layout")
	fitCmd.Flags().StringVar(&fitPan, "pan", "", "scroll by DX,DY after zooming")
	fitCmd.Flags().Float64Var(&fitMaxZoom, "max-zoom", 0, "maximum zoom factor (overrides config)")
	_ = fitCmd.MarkFlagRequired("viewport")

	rootCmd.AddCommand(fitCmd)
}

type rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"width"`
	H float64 `yaml:"height"`
}

type report struct {
	Container   rect    `yaml:"container"`
	Orientation string  `yaml:"orientation"`
	Frame       rect    `yaml:"frame"`
	Fitted      rect    `yaml:"fitted"`
	Surface     rect    `yaml:"surface"`
	Scroll      rect    `yaml:"scroll"`
	MinZoom     float64 `yaml:"min_zoom"`
	MaxZoom     float64 `yaml:"max_zoom"`
	Zoom        float64 `yaml:"zoom"`
}

func newReport(st zoomfit.State) report {
	r := func(g geom.Rect) rect {
		return rect{X: g.Origin.X, Y: g.Origin.Y, W: g.Size.W, H: g.Size.H}
	}
	return report{
		Container:   r(geom.Rect{Size: st.Container}),
		Orientation: st.Orientation.String(),
		Frame:       r(st.Frame),
		Fitted:      r(geom.Rect{Size: st.Fitted}),
		Surface:     r(st.Surface),
		Scroll:      rect{X: st.Scroll.X, Y: st.Scroll.Y},
		MinZoom:     st.Zoom.Min,
		MaxZoom:     st.Zoom.Max,
		Zoom:        st.Zoom.Scale,
	}
}

func runFit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-zoom") {
		cfg.MaxZoom = fitMaxZoom
	}

	viewport, err := parseSize(fitViewport)
	if err != nil {
		return fmt.Errorf("--viewport: %w", err)
	}
	mode, err := parseOrientation(fitOrientation)
	if err != nil {
		return err
	}
	if mode == orientScreen {
		return fmt.Errorf("orientation '%s' needs a screen, use view", mode)
	}

	var size geom.Size
	switch {
	case fitImage != "" && len(args) != 0:
		return fmt.Errorf("give either --image or an image uri, not both")
	case fitImage != "":
		if size, err = parseSize(fitImage); err != nil {
			return fmt.Errorf("--image: %w", err)
		}
	case len(args) == 1:
		sources := img.NewManager([]img.Handler{img.HTTPH, img.FileH}, cfg.CacheDir)
		defer sources.Cleanup()
		if size, err = imageSize(cmd.Context(), sources, args[0]); err != nil {
			return err
		}
	default:
		return fmt.Errorf("an image size or uri is required")
	}

	ctrl := zoomfit.New(
		image.Rect(0, 0, int(size.W), int(size.H)),
		zoomfit.WithMaxZoom(cfg.MaxZoom),
	)
	b := zoomfit.Bounds{Size: viewport, Orientation: geom.OrientationOf(viewport)}
	ctrl.ViewLoaded(mode.orient(b, nil))

	if fitZoom != 0 {
		ctrl.SetZoom(fitZoom)
	}
	if fitPan != "" {
		dx, dy, err := parsePair(fitPan, ",")
		if err != nil {
			return fmt.Errorf("--pan: %w", err)
		}
		ctrl.Pan(dx, dy)
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	defer enc.Close()
	return enc.Encode(newReport(ctrl.State()))
}

func imageSize(ctx context.Context, m *img.Manager, uri string) (geom.Size, error) {
	rc, err := m.Open(ctx, uri)
	if err != nil {
		return geom.Size{}, err
	}
	defer rc.Close()

	c, _, err := image.DecodeConfig(rc)
	if err != nil {
		return geom.Size{}, fmt.Errorf("decode image: %w", err)
	}
	return geom.Sz(float64(c.Width), float64(c.Height)), nil
}

// parseSize parses WxH with positive integer sides.
func parseSize(s string) (geom.Size, error) {
	w, h, err := parsePair(s, "x")
	if err != nil {
		return geom.Size{}, err
	}
	if w <= 0 || h <= 0 || w != float64(int(w)) || h != float64(int(h)) {
		return geom.Size{}, fmt.Errorf("'%s' is not a WxH size", s)
	}
	return geom.Sz(w, h), nil
}

func parsePair(s, sep string) (float64, float64, error) {
	a, b, ok := strings.Cut(strings.ToLower(s), sep)
	if !ok {
		return 0, 0, fmt.Errorf("'%s' should look like A%sB", s, sep)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(a), 64)
	if err != nil {
		return 0, 0, err
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(b), 64)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
