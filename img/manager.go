// Package img resolves image URIs to local files.
package img

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sync"
)

var ErrNoHandler = errors.New("no handler")

// Handler resolves u to a local path. supported is false when the handler
// does not deal with u at all. temp marks files the manager should remove
// on Cleanup.
type Handler interface {
	Get(ctx context.Context, u *url.URL, dir string) (supported bool, temp bool, path string, err error)
}

type Manager struct {
	rw       sync.RWMutex
	handlers []Handler
	temp     []string
	dir      string
	mkdir    sync.Once
	mkdirErr error
}

// NewManager creates a manager downloading into dir, $TMPDIR/zoomfit when
// empty.
func NewManager(handlers []Handler, dir string) *Manager {
	if handlers == nil {
		handlers = make([]Handler, 0)
	}

	if dir == "" {
		dir = filepath.Join(os.TempDir(), "zoomfit")
	}

	return &Manager{handlers: handlers, dir: dir}
}

func (m *Manager) Register(h Handler) {
	m.rw.Lock()
	m.handlers = append(m.handlers, h)
	m.rw.Unlock()
}

func (m *Manager) Dir() string { return m.dir }

// Do resolves uri with the first handler that supports it.
func (m *Manager) Do(ctx context.Context, uri string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", err
	}

	m.rw.RLock()
	handlers := make([]Handler, len(m.handlers))
	copy(handlers, m.handlers)
	m.rw.RUnlock()

	m.mkdir.Do(func() { m.mkdirErr = os.MkdirAll(m.dir, 0700) })
	if m.mkdirErr != nil {
		return "", fmt.Errorf("cache dir: %w", m.mkdirErr)
	}

	for _, h := range handlers {
		ok, temp, val, err := h.Get(ctx, u, m.dir)
		if !ok {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("%w: '%s'", err, uri)
		}

		if temp {
			m.rw.Lock()
			m.temp = append(m.temp, val)
			m.rw.Unlock()
		}

		return val, nil
	}

	return "", fmt.Errorf("%w: '%s'", ErrNoHandler, uri)
}

// Open resolves uri and opens the resulting file.
func (m *Manager) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	path, err := m.Do(ctx, uri)
	if err != nil {
		return nil, err
	}

	return os.Open(path)
}

// Cleanup removes downloaded files.
func (m *Manager) Cleanup() error {
	m.rw.Lock()
	temp := m.temp
	m.temp = nil
	m.rw.Unlock()

	var gerr error
	for _, f := range temp {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			gerr = err
		}
	}

	return gerr
}
