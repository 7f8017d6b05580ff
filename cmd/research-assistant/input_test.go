// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/research-assistant/pkg/types"
)

func TestSplitBlocks(t *testing.T) {
	got := splitBlocks("Summary: one\nstill one\n\n  \n\nQuality Review: two\n\n\n")
	assert.Equal(t, []string{"Summary: one\nstill one", "Quality Review: two"}, got)
	assert.Empty(t, splitBlocks("\n \n"))
}

func TestReadTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tables.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
Methodology:
  columns:
    - name: Model
      values: [A, B]
    - name: Score
      values: ["0.9", "0.8"]
`), 0o644))

	tables, err := readTables(path)
	require.NoError(t, err)
	require.Contains(t, tables, "Methodology")
	assert.Equal(t, []string{"Model", "Score"}, tables["Methodology"].Header())
	assert.Equal(t, [][]string{{"A", "0.9"}, {"B", "0.8"}}, tables["Methodology"].Rows())

	none, err := readTables("")
	require.NoError(t, err)
	assert.Nil(t, none)

	_, err = readTables(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestReadDiagrams(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagrams.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
- image_path: out/page1_img1.png
  caption: Architecture
  section: Methodology
`), 0o644))

	diagrams, err := readDiagrams(path)
	require.NoError(t, err)
	assert.Equal(t, []types.Diagram{{ImagePath: "out/page1_img1.png", Caption: "Architecture", Section: "Methodology"}}, diagrams)

	require.NoError(t, os.WriteFile(path, []byte("image_path: [unterminated"), 0o644))
	_, err = readDiagrams(path)
	assert.Error(t, err)
}

func TestQueryArg(t *testing.T) {
	newCmd := func() *cobra.Command {
		c := &cobra.Command{}
		c.Flags().String("query", "", "")
		return c
	}

	c := newCmd()
	require.NoError(t, c.Flags().Set("query", " graph networks "))
	q, err := queryArg(c, []string{"ignored"})
	require.NoError(t, err)
	assert.Equal(t, "graph networks", q)

	q, err = queryArg(newCmd(), []string{"AI", "agents"})
	require.NoError(t, err)
	assert.Equal(t, "AI agents", q)

	_, err = queryArg(newCmd(), nil)
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcdefg...", truncate("abcdefghijklmnop", 10))
}
