// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package corpus

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pdiddy/book-summarizer/internal/httputil"
	"github.com/pdiddy/book-summarizer/pkg/types"
)

const (
	defaultMirror    = "http://aleph.gutenberg.org"
	defaultUserAgent = "book-summarizer/1.0"
)

// MirrorURL returns the zip archive URL of a book on a Gutenberg mirror.
// Every digit of the identifier except the last is a directory level, so
// book 1342 lives at <mirror>/1/3/4/1342/1342.zip.
func MirrorURL(mirror string, id int) string {
	if mirror == "" {
		mirror = defaultMirror
	}
	digits := strconv.Itoa(id)
	var b strings.Builder
	b.WriteString(strings.TrimSuffix(mirror, "/"))
	for _, d := range digits[:len(digits)-1] {
		b.WriteByte('/')
		b.WriteRune(d)
	}
	fmt.Fprintf(&b, "/%s/%s.zip", digits, digits)
	return b.String()
}

// Downloader fetches raw books from a Project Gutenberg mirror.
type Downloader struct {
	cfg     types.DownloadConfig
	layout  Layout
	limiter *rate.Limiter
	retry   *httputil.Retrier
}

// NewDownloader creates a Downloader. A RequestsPerSecond of zero disables
// rate limiting. Retries of busy responses are logged to log.
func NewDownloader(client *http.Client, cfg types.DownloadConfig, layout Layout, log *zap.Logger) *Downloader {
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &Downloader{
		cfg:     cfg,
		layout:  layout,
		limiter: rate.NewLimiter(limit, 1),
		retry:   &httputil.Retrier{Client: client, MaxRetries: cfg.MaxRetries, Log: log},
	}
}

// Fetch downloads and unzips book id into the raw books directory. It skips
// the download when the raw book already exists; skipped reports that case.
func (d *Downloader) Fetch(ctx context.Context, id int) (skipped bool, err error) {
	dest := d.layout.RawBook(id)
	if _, err := os.Stat(dest); err == nil {
		return true, nil
	}

	if err := d.limiter.Wait(ctx); err != nil {
		return false, err
	}

	url := MirrorURL(d.cfg.Mirror, id)
	data, err := d.get(ctx, url)
	if err != nil {
		return false, fmt.Errorf("downloading book %d: %w", id, err)
	}

	text, err := unzipBook(data, id)
	if err != nil {
		return false, fmt.Errorf("unpacking book %d: %w", id, err)
	}

	if err := writeFileAtomic(dest, text); err != nil {
		return false, fmt.Errorf("saving book %d: %w", id, err)
	}
	return false, nil
}

func (d *Downloader) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	ua := d.cfg.UserAgent
	if ua == "" {
		ua = defaultUserAgent
	}
	req.Header.Set("User-Agent", ua)

	resp, err := d.retry.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}

// unzipBook returns the <id>.txt member of a Gutenberg archive. Some
// archives nest it under an <id>/ directory.
func unzipBook(data []byte, id int) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	name := textName(id)
	nested := strconv.Itoa(id) + "/" + name
	for _, f := range zr.File {
		if f.Name != name && f.Name != nested {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("archive has no %s", name)
}

// writeFileAtomic writes to a temporary file and renames it on success.
func writeFileAtomic(dest string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
