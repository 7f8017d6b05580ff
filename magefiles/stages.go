//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

func bin() string {
	return filepath.Join(binDir, binName)
}

// query reads the research topic from $QUERY.
func query() (string, error) {
	q := os.Getenv("QUERY")
	if q == "" {
		return "", fmt.Errorf("set QUERY to a research topic, e.g. QUERY=\"graph neural networks\" mage digest")
	}
	return q, nil
}

// Search prints arXiv results for $QUERY.
func Search() error {
	mg.Deps(Build)
	q, err := query()
	if err != nil {
		return err
	}
	return sh.RunV(bin(), "search", "--query", q)
}

// Digest runs the full pipeline for $QUERY and writes the report under output/.
func Digest() error {
	mg.Deps(Init, Build)
	q, err := query()
	if err != nil {
		return err
	}
	return sh.RunV(bin(), "digest", "--query", q)
}

// Serve starts the web form on $ADDR (default :8080).
func Serve() error {
	mg.Deps(Init, Build)
	args := []string{"serve"}
	if addr := os.Getenv("ADDR"); addr != "" {
		args = append(args, "--addr", addr)
	}
	return sh.RunV(bin(), args...)
}
