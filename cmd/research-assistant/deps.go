// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"

	"github.com/pdiddy/research-assistant/internal/acquire"
	"github.com/pdiddy/research-assistant/internal/figures"
	"github.com/pdiddy/research-assistant/internal/llm"
	"github.com/pdiddy/research-assistant/internal/pipeline"
	"github.com/pdiddy/research-assistant/internal/render"
	"github.com/pdiddy/research-assistant/internal/search"
	"github.com/pdiddy/research-assistant/internal/store"
)

func httpClient() *http.Client {
	return &http.Client{Timeout: cfg.Search.Timeout}
}

func arxivClient() *search.ArxivClient {
	return &search.ArxivClient{
		Client:    httpClient(),
		UserAgent: cfg.Search.UserAgent,
		Logger:    logger,
	}
}

// pipelineDeps wires the digest collaborators. The caller closes the store.
func pipelineDeps() (pipeline.Deps, *store.Store, error) {
	gen, err := llm.NewClient(cfg.AI, nil, logger)
	if err != nil {
		return pipeline.Deps{}, nil, err
	}
	st, err := store.Open(cfg.Store)
	if err != nil {
		return pipeline.Deps{}, nil, err
	}
	deps := pipeline.Deps{
		Search:   arxivClient(),
		Analyst:  &llm.Agents{Gen: gen},
		Renderer: render.NewPDFRenderer(logger),
		Store:    st,
		Logger:   logger,
	}
	if cfg.Report.Diagrams {
		deps.Downloader = &acquire.Downloader{
			Client:    httpClient(),
			UserAgent: cfg.Search.UserAgent,
			Dir:       cfg.Report.DownloadDir,
			Logger:    logger,
		}
		deps.Figures = &figures.Extractor{Logger: logger}
	}
	return deps, st, nil
}
