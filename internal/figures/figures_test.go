// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package figures

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-assistant/pkg/types"
)

func fakeImages(t *testing.T, images []rawImage, err error) {
	t.Helper()
	old := readImages
	readImages = func(io.ReadSeeker) ([]rawImage, error) { return images, err }
	t.Cleanup(func() { readImages = old })
}

func TestDir(t *testing.T) {
	assert.Equal(t, "downloads/Deep_Nets_images", Dir("downloads/Deep_Nets.pdf"))
	assert.Equal(t, "x_images", Dir("x"))
}

func TestExtract(t *testing.T) {
	pdf := filepath.Join(t.TempDir(), "Deep_Nets.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4"), 0o644))

	fakeImages(t, []rawImage{
		{Page: 2, Obj: 9, Ext: "jpg", Data: strings.NewReader("p2-a")},
		{Page: 1, Obj: 7, Ext: "PNG", Data: strings.NewReader("p1-b")},
		{Page: 1, Obj: 3, Ext: "png", Data: strings.NewReader("p1-a")},
	}, nil)

	diagrams, err := (&Extractor{}).Extract(pdf)
	require.NoError(t, err)
	require.Len(t, diagrams, 3)

	dir := Dir(pdf)
	want := []types.Diagram{
		{ImagePath: filepath.Join(dir, "page1_img1.png"), Caption: "Diagram from page 1, image 1", Section: types.DiagramSection},
		{ImagePath: filepath.Join(dir, "page1_img2.png"), Caption: "Diagram from page 1, image 2", Section: types.DiagramSection},
		{ImagePath: filepath.Join(dir, "page2_img1.jpg"), Caption: "Diagram from page 2, image 1", Section: types.DiagramSection},
	}
	assert.Equal(t, want, diagrams)

	data, err := os.ReadFile(diagrams[0].ImagePath)
	require.NoError(t, err)
	assert.Equal(t, "p1-a", string(data))
}

func TestExtractNoImages(t *testing.T) {
	pdf := filepath.Join(t.TempDir(), "empty.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4"), 0o644))
	fakeImages(t, nil, nil)

	diagrams, err := (&Extractor{}).Extract(pdf)
	require.NoError(t, err)
	assert.Empty(t, diagrams)
	assert.NoDirExists(t, Dir(pdf))
}

func TestExtractErrors(t *testing.T) {
	_, err := (&Extractor{}).Extract(filepath.Join(t.TempDir(), "missing.pdf"))
	assert.Error(t, err)

	pdf := filepath.Join(t.TempDir(), "bad.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("junk"), 0o644))
	boom := errors.New("corrupt xref")
	fakeImages(t, nil, boom)
	_, err = (&Extractor{}).Extract(pdf)
	assert.ErrorIs(t, err, boom)
}
