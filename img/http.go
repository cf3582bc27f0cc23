package img

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
)

type httpHandler struct {
	client *http.Client
}

// NewHTTPHandler downloads http and https URLs with client, or
// http.DefaultClient when nil.
func NewHTTPHandler(client *http.Client) Handler {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpHandler{client: client}
}

func (h *httpHandler) Get(ctx context.Context, u *url.URL, dir string) (ok bool, temp bool, file string, err error) {
	if u.Scheme != "http" && u.Scheme != "https" {
		return
	}

	ok, temp = true, true
	hash := sha256.Sum256([]byte(u.String()))
	file = filepath.Join(dir, base64.RawURLEncoding.EncodeToString(hash[:]))
	if stat, _ := os.Stat(file); stat != nil {
		return
	}
	err = h.get(ctx, u, file)
	return
}

func (h *httpHandler) get(ctx context.Context, u *url.URL, dest string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}

	res, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fmt.Errorf("unexpected status %s", res.Status)
	}

	// Only complete downloads appear under dest.
	f, err := os.CreateTemp(filepath.Dir(dest), ".part-*")
	if err != nil {
		return err
	}
	defer os.Remove(f.Name())

	if _, err = io.Copy(f, res.Body); err != nil {
		f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}

	return os.Rename(f.Name(), dest)
}

var HTTPH = NewHTTPHandler(nil)
