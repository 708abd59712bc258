// Package graph answers reachability questions over a project's dependency
// edges. It never touches storage; callers load the edge set and pass it in.
package graph

import (
	"sort"

	"github.com/hearthapp/hearth/internal/domain"
)

// Graph is an adjacency view of dependency edges, directed from the
// blocking task to the task it blocks.
type Graph struct {
	next  map[string][]string
	nodes map[string]struct{}
}

// New builds a Graph from edges. Duplicate edges are tolerated.
func New(edges []*domain.DependencyEdge) *Graph {
	g := &Graph{
		next:  make(map[string][]string),
		nodes: make(map[string]struct{}),
	}
	for _, e := range edges {
		if e == nil {
			continue
		}
		g.next[e.BlockingTaskID] = append(g.next[e.BlockingTaskID], e.DependentTaskID)
		g.nodes[e.BlockingTaskID] = struct{}{}
		g.nodes[e.DependentTaskID] = struct{}{}
	}
	return g
}

// Path returns the tasks visited going from `from` to `to` along existing
// edges, both ends included, or nil when `to` is unreachable.
func (g *Graph) Path(from, to string) []string {
	if from == to {
		return []string{from}
	}

	visited := map[string]bool{from: true}
	cameFrom := make(map[string]string)
	queue := []string{from}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, n := range g.next[current] {
			if visited[n] {
				continue
			}
			visited[n] = true
			cameFrom[n] = current
			if n == to {
				return reconstruct(cameFrom, from, to)
			}
			queue = append(queue, n)
		}
	}
	return nil
}

func reconstruct(cameFrom map[string]string, from, to string) []string {
	path := []string{to}
	for node := to; node != from; {
		node = cameFrom[node]
		path = append(path, node)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// WouldCreateCycle reports whether adding "dependentID depends on
// blockingID" closes a cycle: true iff blockingID is already reachable from
// dependentID.
func (g *Graph) WouldCreateCycle(dependentID, blockingID string) bool {
	return g.Path(dependentID, blockingID) != nil
}

// HasCycle reports whether the graph already contains a cycle.
func (g *Graph) HasCycle() bool {
	indegree := make(map[string]int, len(g.nodes))
	for n := range g.nodes {
		indegree[n] = 0
	}
	for _, targets := range g.next {
		for _, t := range targets {
			indegree[t]++
		}
	}

	var ready []string
	for n, d := range indegree {
		if d == 0 {
			ready = append(ready, n)
		}
	}

	removed := 0
	for len(ready) > 0 {
		n := ready[len(ready)-1]
		ready = ready[:len(ready)-1]
		removed++
		for _, t := range g.next[n] {
			indegree[t]--
			if indegree[t] == 0 {
				ready = append(ready, t)
			}
		}
	}
	return removed != len(g.nodes)
}

// Nodes returns the ids of every task touched by an edge, sorted.
func (g *Graph) Nodes() []string {
	out := make([]string, 0, len(g.nodes))
	for n := range g.nodes {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// WouldCreateCycle is a convenience wrapper over New(edges).WouldCreateCycle.
func WouldCreateCycle(edges []*domain.DependencyEdge, dependentID, blockingID string) bool {
	return New(edges).WouldCreateCycle(dependentID, blockingID)
}
