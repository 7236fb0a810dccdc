package graph

import (
	"strings"

	"spreadscope/internal/core/errors"
)

// Undirected is the undirected graph kind used for community detection and
// the undirected statistics. It is a derived value owned by its caller and
// is not safe for concurrent mutation.
type Undirected struct {
	ids   []string
	index map[string]int
	adj   []map[int]int
	edges int
}

func NewUndirected() *Undirected {
	return NewUndirectedWithCapacity(0)
}

func NewUndirectedWithCapacity(capacity int) *Undirected {
	return &Undirected{
		ids:   make([]string, 0, capacity),
		index: make(map[string]int, capacity),
		adj:   make([]map[int]int, 0, capacity),
	}
}

func (u *Undirected) AddNode(id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New(errors.CodeValidationError, "node id must not be empty")
	}
	u.ensureNode(id)
	return nil
}

// AddEdge inserts {a, b} or overwrites its weight.
func (u *Undirected) AddEdge(a, b string, weight int) error {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return errors.New(errors.CodeValidationError, "edge endpoints must not be empty")
	}
	if weight <= 0 {
		return errors.Newf(errors.CodeValidationError, "edge weight must be a positive integer, got %d", weight)
	}
	i := u.ensureNode(a)
	j := u.ensureNode(b)
	if _, exists := u.adj[i][j]; !exists {
		u.edges++
	}
	u.adj[i][j] = weight
	u.adj[j][i] = weight
	return nil
}

func (u *Undirected) mergeMax(i, j, weight int) {
	current, exists := u.adj[i][j]
	if !exists {
		u.edges++
	}
	if !exists || weight > current {
		u.adj[i][j] = weight
		u.adj[j][i] = weight
	}
}

func (u *Undirected) ensureNode(id string) int {
	if idx, ok := u.index[id]; ok {
		return idx
	}
	idx := len(u.ids)
	u.ids = append(u.ids, id)
	u.index[id] = idx
	u.adj = append(u.adj, make(map[int]int))
	return idx
}

func (u *Undirected) NodeCount() int { return len(u.ids) }

func (u *Undirected) EdgeCount() int { return u.edges }

func (u *Undirected) Nodes() []string { return append([]string(nil), u.ids...) }

func (u *Undirected) HasEdge(a, b string) bool {
	_, ok := u.Weight(a, b)
	return ok
}

func (u *Undirected) Weight(a, b string) (int, bool) {
	i, ok := u.index[a]
	if !ok {
		return 0, false
	}
	j, ok := u.index[b]
	if !ok {
		return 0, false
	}
	w, ok := u.adj[i][j]
	return w, ok
}

// Neighbors lists the nodes adjacent to id in first-seen order.
func (u *Undirected) Neighbors(id string) []string {
	idx, ok := u.index[id]
	if !ok {
		return nil
	}
	keys := sortedKeys(u.adj[idx])
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = u.ids[k]
	}
	return names
}

// Degree counts incident edges; a self-loop contributes two.
func (u *Undirected) Degree(id string) int {
	idx, ok := u.index[id]
	if !ok {
		return 0
	}
	d := len(u.adj[idx])
	if _, loop := u.adj[idx][idx]; loop {
		d++
	}
	return d
}

func (u *Undirected) Adjacency() *UndirectedAdjacency {
	n := len(u.ids)
	adj := &UndirectedAdjacency{
		IDs:       append([]string(nil), u.ids...),
		Index:     make(map[string]int, n),
		Neighbors: make([][]Arc, n),
	}
	for i, id := range u.ids {
		adj.Index[id] = i
		adj.Neighbors[i] = arcs(u.adj[i])
	}
	return adj
}
