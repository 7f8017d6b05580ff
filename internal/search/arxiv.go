// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search finds papers on arXiv for a free-text topic.
package search

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/httputil"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// DefaultMaxResults is used when a search asks for zero or fewer results.
const DefaultMaxResults = 5

// ArxivClient queries the arXiv Atom API.
type ArxivClient struct {
	Client    *http.Client
	UserAgent string
	Logger    *zap.Logger
}

// Search returns up to maxResults papers for query, ordered by relevance.
// It never fails: an empty query, a transport error, a non-200 response, or
// an unparsable feed is logged and yields an empty slice.
func (c *ArxivClient) Search(ctx context.Context, query string, maxResults int) []types.Paper {
	logger := c.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}

	papers, err := c.search(ctx, query, maxResults, logger)
	if err != nil {
		logger.Warn("arXiv search failed", zap.String("query", query), zap.Error(err))
		return []types.Paper{}
	}
	logger.Debug("arXiv search", zap.String("query", query), zap.Int("results", len(papers)))
	return papers
}

func (c *ArxivClient) search(ctx context.Context, query string, maxResults int, logger *zap.Logger) ([]types.Paper, error) {
	q := buildArxivQuery(query)
	if q == "" {
		return nil, fmt.Errorf("empty query")
	}

	params := url.Values{
		"search_query": {q},
		"start":        {"0"},
		"max_results":  {strconv.Itoa(maxResults)},
		"sortBy":       {"relevance"},
		"sortOrder":    {"descending"},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, arxivAPIBase+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	retrier := &httputil.Retrier{Client: c.Client, Logger: logger}
	resp, err := retrier.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	papers := make([]types.Paper, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		if p, ok := entry.paper(); ok {
			papers = append(papers, p)
		}
	}
	if len(papers) > maxResults {
		papers = papers[:maxResults]
	}
	return papers, nil
}

// buildArxivQuery ANDs every whitespace-separated term over all fields.
func buildArxivQuery(query string) string {
	terms := strings.Fields(query)
	for i, t := range terms {
		terms[i] = "all:" + t
	}
	return strings.Join(terms, " AND ")
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
	Links     []arxivLink   `xml:"link"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}

type arxivLink struct {
	Href  string `xml:"href,attr"`
	Rel   string `xml:"rel,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

// paper converts an entry. Entries without an arXiv id or title are
// dropped.
func (e arxivEntry) paper() (types.Paper, bool) {
	id := extractArxivID(e.ID)
	title := strings.Join(strings.Fields(e.Title), " ")
	if id == "" || title == "" {
		return types.Paper{}, false
	}

	p := types.Paper{
		ID:      id,
		Title:   title,
		Summary: strings.TrimSpace(e.Summary),
		Link:    strings.TrimSpace(e.ID),
	}
	for _, a := range e.Authors {
		p.Authors = append(p.Authors, strings.TrimSpace(a.Name))
	}
	for _, l := range e.Links {
		switch {
		case l.Title == "pdf" || l.Type == "application/pdf":
			p.PDFURL = l.Href
		case l.Rel == "alternate" && l.Href != "":
			p.Link = l.Href
		}
	}
	if t, err := time.Parse(time.RFC3339, e.Published); err == nil {
		p.Published = t
	}
	return p, true
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" -> "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := strings.TrimSpace(idURL[idx+len(prefix):])

	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
