// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package assemble

import (
	"sort"
	"strings"

	"github.com/pdiddy/research-assistant/pkg/types"
)

// diagramPool hands out diagrams by section. An image path is handed out at
// most once per assembly, even when several diagrams or sections share it.
type diagramPool struct {
	all  []types.Diagram
	seen map[string]bool
}

func newDiagramPool(diagrams []types.Diagram) *diagramPool {
	all := make([]types.Diagram, len(diagrams))
	copy(all, diagrams)
	return &diagramPool{all: all, seen: make(map[string]bool)}
}

// claim returns, in input order, the unclaimed diagrams whose section equals
// heading ignoring case. Diagrams without an image path are never claimed.
func (p *diagramPool) claim(heading string) []types.Diagram {
	var out []types.Diagram
	for _, d := range p.all {
		if d.ImagePath == "" || p.seen[d.ImagePath] {
			continue
		}
		if !strings.EqualFold(d.Section, heading) {
			continue
		}
		p.seen[d.ImagePath] = true
		out = append(out, d)
	}
	return out
}

func (p *diagramPool) unclaimed() []types.Diagram {
	var out []types.Diagram
	for _, d := range p.all {
		if d.ImagePath == "" || !p.seen[d.ImagePath] {
			out = append(out, d)
		}
	}
	return out
}

// tableSet holds the tables still available for insertion. Claiming a table
// removes it.
type tableSet struct {
	m map[string]types.Table
}

func newTableSet(tables map[string]types.Table) *tableSet {
	m := make(map[string]types.Table, len(tables))
	for k, t := range tables {
		m[k] = t
	}
	return &tableSet{m: m}
}

// claim removes and returns the table keyed by heading. An exact key match
// is preferred; otherwise the first key in sorted order that equals heading
// ignoring case is used.
func (s *tableSet) claim(heading string) (types.Table, bool) {
	if t, ok := s.m[heading]; ok {
		delete(s.m, heading)
		return t, true
	}
	for _, k := range s.keys() {
		if strings.EqualFold(k, heading) {
			t := s.m[k]
			delete(s.m, k)
			return t, true
		}
	}
	return types.Table{}, false
}

// keys returns the remaining table keys, sorted.
func (s *tableSet) keys() []string {
	if len(s.m) == 0 {
		return nil
	}
	out := make([]string, 0, len(s.m))
	for k := range s.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
