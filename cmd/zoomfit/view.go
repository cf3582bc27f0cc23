package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/frizinak/zoomfit"
	"github.com/frizinak/zoomfit/img"
	"github.com/frizinak/zoomfit/x"
)

var (
	viewWindow      string
	viewMaxZoom     float64
	viewOrientation string
)

var viewCmd = &cobra.Command{
	Use:   "view <uri>",
	Short: "Show an image (file path, file:// or http(s) URL)",
	Args:  cobra.ExactArgs(1),
	RunE:  runView,
}

func addViewFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&viewWindow, "window", "w", "", "parent X window id (default: $WINDOWID)")
	cmd.Flags().Float64Var(&viewMaxZoom, "max-zoom", 0, "maximum zoom factor (overrides config)")
	cmd.Flags().StringVar(&viewOrientation, "orientation", string(orientAuto), "auto (window aspect), screen (RandR rotation), portrait or landscape")
}

func init() {
	addViewFlags(viewCmd)
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-zoom") {
		cfg.MaxZoom = viewMaxZoom
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return err
	}
	mode, err := parseOrientation(viewOrientation)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM)
	defer stop()

	sources := img.NewManager([]img.Handler{img.HTTPH, img.FileH}, cfg.CacheDir)
	defer func() {
		if err := sources.Cleanup(); err != nil {
			log.Print(err)
		}
	}()

	src, err := readImage(ctx, sources, args[0])
	if err != nil {
		return err
	}

	windowID := viewWindow
	if windowID == "" {
		windowID = os.Getenv("WINDOWID")
	}
	host, err := x.New(windowID)
	if err != nil {
		return err
	}
	defer host.Close()

	if err := host.WatchScreen(); err != nil {
		log.Printf("screen rotation not tracked: %v", err)
	}

	vp := host.Viewport("image")
	vp.SetImage(src)
	vp.SetBackground(bg)

	ctrl := zoomfit.New(src, zoomfit.WithMaxZoom(cfg.MaxZoom))
	ctrl.Subscribe(func(st zoomfit.State) {
		vp.Present(st.Frame.Image(), st.Visible().Image())
	})

	term, err := host.Console()
	if err != nil {
		return err
	}
	if err := term.SetRaw(); err != nil {
		return fmt.Errorf("raw terminal: %w", err)
	}
	defer term.Reset()

	hostBounds := func() (zoomfit.Bounds, error) {
		b, err := host.Bounds()
		if err != nil {
			return b, err
		}
		return mode.orient(b, host.Orientation), nil
	}

	bounds, err := hostBounds()
	if err != nil {
		return err
	}
	ctrl.ViewLoaded(bounds)
	vp.Show()
	relayout := func(b zoomfit.Bounds) {
		ctrl.WillLayout(b)
		ctrl.DidLayout(b)
	}
	relayout(bounds)

	fatal := make(chan error, 2)
	keys := make(chan byte)
	go readKeys(os.Stdin, keys, fatal)

	rotated := make(chan struct{}, 1)
	go func() {
		for {
			evt, err := host.Next(true)
			if errors.Is(err, x.ErrClosed) {
				fatal <- err
				return
			}
			if err != nil {
				log.Print(err)
				continue
			}
			if evt == x.EventRotate {
				select {
				case rotated <- struct{}{}:
				default:
				}
			}
		}
	}()

	tick := time.NewTicker(cfg.PollInterval)
	defer tick.Stop()

	var keyp keyParser
	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-fatal:
			return err
		case <-rotated:
			if b, err := hostBounds(); err == nil {
				bounds = b
				relayout(bounds)
			}
		case <-tick.C:
			b, err := hostBounds()
			if err != nil {
				log.Print(err)
				continue
			}
			if b != bounds {
				bounds = b
				relayout(bounds)
			}
		case k := <-keys:
			a := keyp.feed(k)
			if a == actQuit {
				return nil
			}
			apply(ctrl, a, cfg.ZoomStep, cfg.PanStep)
		}
	}
}

func readImage(ctx context.Context, m *img.Manager, uri string) (x.Image, error) {
	rc, err := m.Open(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return x.ImageRead(rc)
}

func readKeys(r io.Reader, keys chan<- byte, fatal chan<- error) {
	in := bufio.NewReader(r)
	for {
		b, err := in.ReadByte()
		if err != nil {
			fatal <- err
			return
		}
		keys <- b
	}
}
