// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// readInput reads the named file, or stdin for "" and "-".
func readInput(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}

// splitLines splits text into lines the way assemble.Build does.
func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

var blockSepRe = regexp.MustCompile(`\n[ \t]*\n`)

// splitBlocks splits text on blank lines and drops empty blocks.
func splitBlocks(text string) []string {
	var out []string
	for _, b := range blockSepRe.Split(text, -1) {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// readTables loads a YAML map of section heading to table. An empty path
// yields no tables.
func readTables(path string) (map[string]types.Table, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tables: %w", err)
	}
	var tables map[string]types.Table
	if err := yaml.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("parsing tables %s: %w", path, err)
	}
	return tables, nil
}

// readDiagrams loads a YAML list of diagrams. An empty path yields none.
func readDiagrams(path string) ([]types.Diagram, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading diagrams: %w", err)
	}
	var diagrams []types.Diagram
	if err := yaml.Unmarshal(data, &diagrams); err != nil {
		return nil, fmt.Errorf("parsing diagrams %s: %w", path, err)
	}
	return diagrams, nil
}
