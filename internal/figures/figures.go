// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package figures extracts embedded images from a paper PDF and tags them as
// diagrams for the report.
package figures

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// rawImage is one embedded image as found in the PDF.
type rawImage struct {
	Page int
	Obj  int
	Ext  string
	Data io.Reader
}

// readImages lists the images of a PDF. Declared as a var so tests can
// substitute a fake source.
var readImages = func(rs io.ReadSeeker) ([]rawImage, error) {
	pages, err := api.ExtractImagesRaw(rs, nil, model.NewDefaultConfiguration())
	if err != nil {
		return nil, err
	}
	var out []rawImage
	for i, page := range pages {
		for objNr, img := range page {
			if img.Thumb {
				continue
			}
			pageNr := img.PageNr
			if pageNr == 0 {
				pageNr = i + 1
			}
			out = append(out, rawImage{Page: pageNr, Obj: objNr, Ext: img.FileType, Data: img})
		}
	}
	return out, nil
}

// Dir returns the image directory for a PDF: the path without ".pdf" plus
// "_images".
func Dir(pdfPath string) string {
	return strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + "_images"
}

// Extractor writes the images of a PDF next to it.
type Extractor struct {
	Logger *zap.Logger
}

// Extract saves every image in pdfPath as Dir(pdfPath)/pageN_imgM.ext and
// returns one diagram per image, tagged with types.DiagramSection. Images
// are numbered from 1 within each page in object order.
func (e *Extractor) Extract(pdfPath string) ([]types.Diagram, error) {
	logger := e.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	f, err := os.Open(pdfPath)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", pdfPath, err)
	}
	defer f.Close()

	images, err := readImages(f)
	if err != nil {
		return nil, fmt.Errorf("reading images from %s: %w", pdfPath, err)
	}
	if len(images) == 0 {
		return nil, nil
	}
	sort.Slice(images, func(i, j int) bool {
		if images[i].Page != images[j].Page {
			return images[i].Page < images[j].Page
		}
		return images[i].Obj < images[j].Obj
	})

	dir := Dir(pdfPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", dir, err)
	}

	var diagrams []types.Diagram
	page, index := 0, 0
	for _, img := range images {
		if img.Page != page {
			page, index = img.Page, 0
		}
		index++

		ext := strings.ToLower(img.Ext)
		if ext == "" {
			ext = "png"
		}
		path := filepath.Join(dir, fmt.Sprintf("page%d_img%d.%s", page, index, ext))
		if err := writeImage(path, img.Data); err != nil {
			logger.Warn("skipping image", zap.String("pdf", pdfPath), zap.Int("page", page), zap.Error(err))
			continue
		}
		diagrams = append(diagrams, types.Diagram{
			ImagePath: path,
			Caption:   fmt.Sprintf("Diagram from page %d, image %d", page, index),
			Section:   types.DiagramSection,
		})
	}
	logger.Debug("extracted diagrams", zap.String("pdf", pdfPath), zap.Int("count", len(diagrams)))
	return diagrams, nil
}

func writeImage(path string, r io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
