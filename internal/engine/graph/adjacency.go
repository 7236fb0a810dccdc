package graph

// Arc is one entry of an index-based adjacency list.
type Arc struct {
	To     int
	Weight int
}

// Adjacency is a frozen index-based view of a directed Graph. Node indices
// follow first-seen order and every arc list is sorted by target index, so
// algorithms iterating it are deterministic. It must not be modified.
type Adjacency struct {
	IDs   []string
	Index map[string]int
	Out   [][]Arc
	In    [][]Arc
}

func (a *Adjacency) Len() int {
	if a == nil {
		return 0
	}
	return len(a.IDs)
}

// Degree is len(Out[i]) + len(In[i]).
func (a *Adjacency) Degree(i int) int {
	return len(a.Out[i]) + len(a.In[i])
}

// OutWeight sums the weights of node i's outgoing arcs.
func (a *Adjacency) OutWeight(i int) int {
	total := 0
	for _, arc := range a.Out[i] {
		total += arc.Weight
	}
	return total
}

// Adjacency returns the cached snapshot, rebuilding it after mutations.
func (g *Graph) Adjacency() *Adjacency {
	g.mu.RLock()
	if cached := g.adjacency; cached != nil {
		g.mu.RUnlock()
		return cached
	}
	g.mu.RUnlock()

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.adjacency != nil {
		return g.adjacency
	}

	n := len(g.ids)
	adj := &Adjacency{
		IDs:   append([]string(nil), g.ids...),
		Index: make(map[string]int, n),
		Out:   make([][]Arc, n),
		In:    make([][]Arc, n),
	}
	for i, id := range g.ids {
		adj.Index[id] = i
		adj.Out[i] = arcs(g.out[i])
		adj.In[i] = arcs(g.in[i])
	}
	g.adjacency = adj
	return adj
}

// UndirectedAdjacency is the frozen view of an Undirected graph. A self-loop
// appears once in its node's list.
type UndirectedAdjacency struct {
	IDs       []string
	Index     map[string]int
	Neighbors [][]Arc
}

func (a *UndirectedAdjacency) Len() int {
	if a == nil {
		return 0
	}
	return len(a.IDs)
}

// Degree counts incident edges; a self-loop contributes two.
func (a *UndirectedAdjacency) Degree(i int) int {
	d := len(a.Neighbors[i])
	for _, arc := range a.Neighbors[i] {
		if arc.To == i {
			d++
		}
	}
	return d
}

func arcs(set map[int]int) []Arc {
	keys := sortedKeys(set)
	list := make([]Arc, len(keys))
	for i, k := range keys {
		list[i] = Arc{To: k, Weight: set[k]}
	}
	return list
}
