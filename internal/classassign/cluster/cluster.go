// Package cluster builds the undirected preference graph and partitions
// it into communities (spec.md §4.5, B1).
//
// The spec treats community detection as an external, modularity-
// maximizing service and fixes only its contract: given an undirected
// graph, return a total node -> non-negative integer label mapping. No
// community-detection library exists anywhere in the retrieved example
// pack, so this package stands in for that service with connected
// components, in the BFS-over-adjacency-lists idiom the teacher uses for
// its own graph traversal (pkg/domain/bfs.go) rather than a from-scratch
// modularity optimizer.
package cluster

import "github.com/Print-In-Progress/edconnect-algorithms/pkg/domain"

// Graph is an undirected adjacency-list graph over student ids.
type Graph struct {
	nodes map[string]struct{}
	adj   map[string]map[string]struct{}
}

// NewGraph returns an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes: make(map[string]struct{}),
		adj:   make(map[string]map[string]struct{}),
	}
}

// AddNode registers node if not already present.
func (g *Graph) AddNode(node string) {
	if _, ok := g.nodes[node]; ok {
		return
	}
	g.nodes[node] = struct{}{}
	g.adj[node] = make(map[string]struct{})
}

// AddEdge adds an undirected edge between a and b. Both endpoints are
// registered as nodes if not already present. Self-loops (a preference
// naming oneself) are ignored.
func (g *Graph) AddEdge(a, b string) {
	if a == b {
		return
	}
	g.AddNode(a)
	g.AddNode(b)
	g.adj[a][b] = struct{}{}
	g.adj[b][a] = struct{}{}
}

// Nodes returns every registered node id, sorted for deterministic
// iteration (spec.md §5).
func (g *Graph) Nodes() []string {
	return domain.SortedKeys(g.nodes)
}

// BuildPreferenceGraph adds an undirected edge for every student
// preference naming another known student, per spec.md §4.5. A student
// appears in the graph even with no edges (an isolated node), so it ends
// up its own singleton cluster.
func BuildPreferenceGraph(students map[string][]string) *Graph {
	g := NewGraph()
	for s := range students {
		g.AddNode(s)
	}
	for s, prefs := range students {
		for _, other := range prefs {
			if _, known := students[other]; !known {
				continue // unreachable preference, spec.md §7
			}
			g.AddEdge(s, other)
		}
	}
	return g
}

// Clusters maps each student id to its non-negative integer cluster
// label (spec.md §4.5's contract with the external community-detection
// routine).
type Clusters map[string]int

// Detect partitions g into connected components, labeling each component
// by a deterministic integer assigned in sorted-node-visit order so the
// same graph always yields the same labels (spec.md §5).
func Detect(g *Graph) Clusters {
	clusters := make(Clusters, len(g.nodes))
	visited := make(map[string]bool, len(g.nodes))
	label := 0

	for _, root := range g.Nodes() {
		if visited[root] {
			continue
		}

		queue := []string{root}
		visited[root] = true
		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			clusters[node] = label

			for _, neighbor := range domain.SortedKeys(g.adj[node]) {
				if visited[neighbor] {
					continue
				}
				visited[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
		label++
	}

	return clusters
}

// SameCluster reports whether a and b share a cluster label.
func (c Clusters) SameCluster(a, b string) bool {
	la, ok := c[a]
	if !ok {
		return false
	}
	lb, ok := c[b]
	if !ok {
		return false
	}
	return la == lb
}
