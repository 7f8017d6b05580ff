// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire downloads paper PDFs into a local directory.
package acquire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/httputil"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// maxNameLen bounds the filename stem derived from a title.
const maxNameLen = 150

var unsafeNameRe = regexp.MustCompile(`[^A-Za-z0-9_.-]+`)

// Downloader fetches PDFs into Dir.
type Downloader struct {
	Client    *http.Client
	UserAgent string
	Dir       string
	Logger    *zap.Logger
}

// FileName returns the PDF filename for a title: spaces become
// underscores and characters unsafe in a path are dropped.
//
//	FileName("Attention Is All: You Need") == "Attention_Is_All_You_Need.pdf"
func FileName(title string) string {
	stem := strings.Join(strings.Fields(title), "_")
	stem = unsafeNameRe.ReplaceAllString(stem, "")
	stem = strings.Trim(stem, "._-")
	if len(stem) > maxNameLen {
		stem = stem[:maxNameLen]
	}
	if stem == "" {
		stem = "paper"
	}
	return stem + ".pdf"
}

// PDFURL returns the paper's PDF link, deriving it from the abstract link
// when the feed carried none.
func PDFURL(p types.Paper) string {
	if p.PDFURL != "" {
		return p.PDFURL
	}
	if strings.Contains(p.Link, "/abs/") {
		return strings.Replace(p.Link, "/abs/", "/pdf/", 1)
	}
	return ""
}

// Download saves the paper's PDF and returns its path. When the file
// already exists the download is skipped and skipped is true.
func (d *Downloader) Download(ctx context.Context, p types.Paper) (path string, skipped bool, err error) {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	path = filepath.Join(d.Dir, FileName(p.Title))
	if _, err := os.Stat(path); err == nil {
		logger.Debug("pdf already downloaded", zap.String("path", path))
		return path, true, nil
	}

	url := PDFURL(p)
	if url == "" {
		return "", false, fmt.Errorf("no PDF link for %q", p.Title)
	}
	if err := os.MkdirAll(d.Dir, 0o755); err != nil {
		return "", false, fmt.Errorf("creating directory %s: %w", d.Dir, err)
	}
	if err := d.fetch(ctx, url, path, logger); err != nil {
		return "", false, fmt.Errorf("downloading %s: %w", url, err)
	}
	logger.Info("pdf downloaded", zap.String("url", url), zap.String("path", path))
	return path, false, nil
}

// fetch writes url to destPath through a temporary file, renaming it into
// place on success.
func (d *Downloader) fetch(ctx context.Context, url, destPath string, logger *zap.Logger) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if d.UserAgent != "" {
		req.Header.Set("User-Agent", d.UserAgent)
	}
	req.Header.Set("Accept", "application/pdf")

	resp, err := (&httputil.Retrier{Client: d.Client, Logger: logger}).Do(ctx, req)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".acquire-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
