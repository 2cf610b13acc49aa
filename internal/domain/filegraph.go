package domain

import (
	"net/url"
	"strings"
)

// EdgeKind names how one configuration source references another.
type EdgeKind string

const (
	EdgeParent  EdgeKind = "parent"
	EdgeChild   EdgeKind = "child"
	EdgeSibling EdgeKind = "sibling"
	EdgeNested  EdgeKind = "nested"
)

const ruleNodePrefix = "rule:"

// FileGraphEdge is one reference between configuration sources.
type FileGraphEdge struct {
	From string
	To   string
	Kind EdgeKind
}

// FileGraph records the configuration sources that produced a
// configuration. Node identities are absolute paths, URLs or rule:<id>.
type FileGraph struct {
	Root  string
	Nodes []string
	Edges []FileGraphEdge
}

// Contains reports whether id took part in the resolution.
func (g *FileGraph) Contains(id string) bool {
	if g == nil {
		return false
	}

	for _, n := range g.Nodes {
		if n == id {
			return true
		}
	}

	return false
}

func (g *FileGraph) addNode(id string) {
	if !g.Contains(id) {
		g.Nodes = append(g.Nodes, id)
	}
}

func (g *FileGraph) addEdge(from, to string, kind EdgeKind) {
	g.Edges = append(g.Edges, FileGraphEdge{From: from, To: to, Kind: kind})
}

func (g *FileGraph) merge(o *FileGraph) *FileGraph {
	if g == nil {
		return o
	}

	if o == nil {
		return g
	}

	out := &FileGraph{
		Root:  g.Root,
		Nodes: append([]string(nil), g.Nodes...),
		Edges: append([]FileGraphEdge(nil), g.Edges...),
	}

	for _, n := range o.Nodes {
		out.addNode(n)
	}

	out.Edges = append(out.Edges, o.Edges...)

	return out
}

func isRemote(id string) bool {
	u, err := url.Parse(id)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func isRuleNode(id string) bool {
	return strings.HasPrefix(id, ruleNodePrefix)
}

func (g *FileGraph) rootOr(def string) string {
	if g == nil || g.Root == "" {
		return def
	}

	return g.Root
}
