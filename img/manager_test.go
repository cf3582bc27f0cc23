package img

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestFileHandler(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")
	if err := os.WriteFile(path, []byte("png"), 0600); err != nil {
		t.Fatal(err)
	}

	m := NewManager([]Handler{FileH}, t.TempDir())
	ctx := context.Background()

	got, err := m.Do(ctx, path)
	if err != nil {
		t.Fatalf("Do(%q): %v", path, err)
	}
	if got != path {
		t.Errorf("got %q, want %q", got, path)
	}

	if got, err := m.Do(ctx, "file://"+path); err != nil || got != path {
		t.Errorf("file URI: got %q, %v", got, err)
	}

	if _, err := m.Do(ctx, dir); err == nil {
		t.Error("expected error for directory")
	}
	if _, err := m.Do(ctx, filepath.Join(dir, "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestNoHandler(t *testing.T) {
	m := NewManager([]Handler{FileH}, t.TempDir())
	_, err := m.Do(context.Background(), "https://example.com/a.png")
	if !errors.Is(err, ErrNoHandler) {
		t.Errorf("got %v, want ErrNoHandler", err)
	}
}

func TestHTTPHandler(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		hits++
		io.WriteString(w, "image bytes")
	}))
	defer srv.Close()

	dir := t.TempDir()
	m := NewManager([]Handler{NewHTTPHandler(srv.Client()), FileH}, dir)
	ctx := context.Background()

	rc, err := m.Open(ctx, srv.URL+"/a.png")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	data, _ := io.ReadAll(rc)
	rc.Close()
	if string(data) != "image bytes" {
		t.Errorf("got %q", data)
	}

	path, err := m.Do(ctx, srv.URL+"/a.png")
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if hits != 1 {
		t.Errorf("expected cached download, got %d requests", hits)
	}
	if filepath.Dir(path) != dir {
		t.Errorf("download outside cache dir: %q", path)
	}

	if _, err := m.Do(ctx, srv.URL+"/missing.png"); err == nil {
		t.Error("expected error for 404")
	}

	if err := m.Cleanup(); err != nil {
		t.Fatalf("Cleanup: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("downloaded file not removed: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache dir not empty after cleanup: %v", entries)
	}
}

func TestHTTPHandlerCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "x")
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	m := NewManager([]Handler{NewHTTPHandler(srv.Client())}, t.TempDir())
	if _, err := m.Do(ctx, srv.URL+"/a.png"); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}
