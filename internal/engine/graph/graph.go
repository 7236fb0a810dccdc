// # internal/engine/graph/graph.go
package graph

import (
	"sort"
	"strings"
	"sync"

	"spreadscope/internal/core/errors"
	"spreadscope/internal/shared/observability"
)

// DefaultWeight is used when a record carries no weight token.
const DefaultWeight = 1

// Graph is a directed weighted interaction graph. At most one edge is kept
// per ordered pair; re-adding a pair overwrites its weight.
type Graph struct {
	mu sync.RWMutex

	ids   []string       // index -> node id, first-seen order
	index map[string]int // node id -> index

	// Relationships
	out   []map[int]int // source -> target -> weight
	in    []map[int]int // target -> source -> weight
	edges int

	adjacency *Adjacency // cached snapshot, reset on mutation
}

type Edge struct {
	From   string
	To     string
	Weight int
}

func New() *Graph {
	return NewWithCapacity(0)
}

func NewWithCapacity(capacity int) *Graph {
	return &Graph{
		ids:   make([]string, 0, capacity),
		index: make(map[string]int, capacity),
		out:   make([]map[int]int, 0, capacity),
		in:    make([]map[int]int, 0, capacity),
	}
}

// AddNode registers id without edges. It is a no-op for known nodes.
func (g *Graph) AddNode(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New(errors.CodeValidationError, "node id must not be empty")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.ensureNodeLocked(id)
	return nil
}

// AddEdge inserts the ordered pair (u, v) or overwrites its weight.
func (g *Graph) AddEdge(u, v string, weight int) error {
	if strings.TrimSpace(u) == "" || strings.TrimSpace(v) == "" {
		return errors.New(errors.CodeValidationError, "edge endpoints must not be empty")
	}
	if weight <= 0 {
		return errors.Newf(errors.CodeValidationError, "edge weight must be a positive integer, got %d", weight)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	from := g.ensureNodeLocked(u)
	to := g.ensureNodeLocked(v)
	if _, exists := g.out[from][to]; !exists {
		g.edges++
	}
	g.out[from][to] = weight
	g.in[to][from] = weight
	g.adjacency = nil
	return nil
}

// RemoveEdge deletes the ordered pair (u, v). Both endpoints stay in the graph.
func (g *Graph) RemoveEdge(u, v string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	from, ok := g.index[u]
	if !ok {
		return false
	}
	to, ok := g.index[v]
	if !ok {
		return false
	}
	if _, exists := g.out[from][to]; !exists {
		return false
	}
	delete(g.out[from], to)
	delete(g.in[to], from)
	g.edges--
	g.adjacency = nil
	return true
}

func (g *Graph) ensureNodeLocked(id string) int {
	if idx, ok := g.index[id]; ok {
		return idx
	}
	idx := len(g.ids)
	g.ids = append(g.ids, id)
	g.index[id] = idx
	g.out = append(g.out, make(map[int]int))
	g.in = append(g.in, make(map[int]int))
	g.adjacency = nil
	return idx
}

func (g *Graph) NodeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.ids)
}

func (g *Graph) EdgeCount() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.edges
}

// Nodes returns node ids in first-seen order.
func (g *Graph) Nodes() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return append([]string(nil), g.ids...)
}

func (g *Graph) HasNode(id string) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	_, ok := g.index[id]
	return ok
}

func (g *Graph) HasEdge(u, v string) bool {
	_, ok := g.Weight(u, v)
	return ok
}

func (g *Graph) Weight(u, v string) (int, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	from, ok := g.index[u]
	if !ok {
		return 0, false
	}
	to, ok := g.index[v]
	if !ok {
		return 0, false
	}
	w, ok := g.out[from][to]
	return w, ok
}

// OutNeighbors lists targets of id's outgoing edges in first-seen order.
func (g *Graph) OutNeighbors(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	idx, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.namesLocked(g.out[idx])
}

// InNeighbors lists sources of id's incoming edges in first-seen order.
func (g *Graph) InNeighbors(id string) []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	idx, ok := g.index[id]
	if !ok {
		return nil
	}
	return g.namesLocked(g.in[idx])
}

func (g *Graph) namesLocked(set map[int]int) []string {
	keys := sortedKeys(set)
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = g.ids[k]
	}
	return names
}

func (g *Graph) OutDegree(id string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	idx, ok := g.index[id]
	if !ok {
		return 0
	}
	return len(g.out[idx])
}

func (g *Graph) InDegree(id string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	idx, ok := g.index[id]
	if !ok {
		return 0
	}
	return len(g.in[idx])
}

// Degree is |out| + |in|; a self-loop counts on both sides.
func (g *Graph) Degree(id string) int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	idx, ok := g.index[id]
	if !ok {
		return 0
	}
	return len(g.out[idx]) + len(g.in[idx])
}

// Edges returns every edge ordered by source then target first-seen position.
func (g *Graph) Edges() []Edge {
	g.mu.RLock()
	defer g.mu.RUnlock()
	edges := make([]Edge, 0, g.edges)
	for from := range g.ids {
		for _, to := range sortedKeys(g.out[from]) {
			edges = append(edges, Edge{From: g.ids[from], To: g.ids[to], Weight: g.out[from][to]})
		}
	}
	return edges
}

// Clone returns an independent copy preserving node order and weights.
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	c := NewWithCapacity(len(g.ids))
	for _, id := range g.ids {
		c.ensureNodeLocked(id)
	}
	for from := range g.ids {
		for to, w := range g.out[from] {
			c.out[from][to] = w
			c.in[to][from] = w
		}
	}
	c.edges = g.edges
	return c
}

// Subgraph returns the induced subgraph on ids: the selected nodes plus
// exactly the edges with both endpoints selected. Unknown ids are ignored
// and node order follows the source graph.
func (g *Graph) Subgraph(ids []string) *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	selected := make([]int, 0, len(ids))
	seen := make(map[int]bool, len(ids))
	for _, id := range ids {
		idx, ok := g.index[id]
		if !ok || seen[idx] {
			continue
		}
		seen[idx] = true
		selected = append(selected, idx)
	}
	sort.Ints(selected)

	sub := NewWithCapacity(len(selected))
	remap := make(map[int]int, len(selected))
	for _, idx := range selected {
		remap[idx] = sub.ensureNodeLocked(g.ids[idx])
	}
	for _, idx := range selected {
		from := remap[idx]
		for to, w := range g.out[idx] {
			target, ok := remap[to]
			if !ok {
				continue
			}
			sub.out[from][target] = w
			sub.in[target][from] = w
			sub.edges++
		}
	}
	return sub
}

// ToUndirected collapses (u,v) and (v,u) into one undirected edge. When both
// directions exist the undirected edge carries the larger of the two weights.
func (g *Graph) ToUndirected() *Undirected {
	g.mu.RLock()
	defer g.mu.RUnlock()

	u := NewUndirectedWithCapacity(len(g.ids))
	for _, id := range g.ids {
		u.ensureNode(id)
	}
	for from := range g.ids {
		for to, w := range g.out[from] {
			u.mergeMax(from, to, w)
		}
	}
	return u
}

// PublishSize reports node and edge counts to the graph gauges.
func (g *Graph) PublishSize() {
	g.mu.RLock()
	defer g.mu.RUnlock()
	observability.GraphNodes.Set(float64(len(g.ids)))
	observability.GraphEdges.Set(float64(g.edges))
}

func sortedKeys(set map[int]int) []int {
	keys := make([]int, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}
