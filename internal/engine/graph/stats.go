package graph

import "sort"

// DefaultDiameterCap bounds the largest component size for which the
// diameter is computed.
const DefaultDiameterCap = 1000

// Stats holds the summary figures printed by the console report.
type Stats struct {
	Nodes         int
	Edges         int
	Density       float64
	AverageDegree float64

	WeakComponents         int
	WeakComponentSizes     []int // descending
	StrongComponents       int
	LargestStrongComponent int

	Reciprocity       float64
	AverageClustering float64

	LargestWeakComponent int
	Diameter             int
	DiameterComputed     bool
	DiameterNote         string
}

// LargestStrongShare is the fraction of nodes inside the largest SCC.
func (s Stats) LargestStrongShare() float64 {
	if s.Nodes == 0 {
		return 0
	}
	return float64(s.LargestStrongComponent) / float64(s.Nodes)
}

// ComputeStats derives the summary statistics for g. The diameter is only
// computed when the largest weak component has more than one node and fewer
// than diameterCap nodes.
func ComputeStats(g *Graph, diameterCap int) Stats {
	if diameterCap <= 0 {
		diameterCap = DefaultDiameterCap
	}

	adj := g.Adjacency()
	n := adj.Len()
	s := Stats{Nodes: n, Edges: g.EdgeCount()}
	if n == 0 {
		s.DiameterNote = "empty graph"
		return s
	}

	if n > 1 {
		s.Density = float64(s.Edges) / float64(n*(n-1))
	}
	totalDegree := 0
	for i := 0; i < n; i++ {
		totalDegree += adj.Degree(i)
	}
	s.AverageDegree = float64(totalDegree) / float64(n)

	weak := WeakComponents(adj)
	s.WeakComponents = len(weak)
	s.WeakComponentSizes = make([]int, len(weak))
	largest := 0
	for i, comp := range weak {
		s.WeakComponentSizes[i] = len(comp)
		if len(comp) > len(weak[largest]) {
			largest = i
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(s.WeakComponentSizes)))

	strong := StrongComponents(adj)
	s.StrongComponents = len(strong)
	for _, comp := range strong {
		if len(comp) > s.LargestStrongComponent {
			s.LargestStrongComponent = len(comp)
		}
	}

	s.Reciprocity = reciprocity(adj, s.Edges)

	und := g.ToUndirected()
	s.AverageClustering = averageClustering(und)

	s.LargestWeakComponent = len(weak[largest])
	switch {
	case s.LargestWeakComponent <= 1:
		s.DiameterNote = "no component larger than one node"
	case s.LargestWeakComponent >= diameterCap:
		s.DiameterNote = "largest component exceeds diameter cap"
	default:
		s.Diameter = diameter(und.Adjacency(), weak[largest])
		s.DiameterComputed = true
	}
	return s
}

// WeakComponents groups node indices connected when direction is ignored.
// Components are ordered by their smallest index; members are sorted.
func WeakComponents(adj *Adjacency) [][]int {
	n := adj.Len()
	seen := make([]bool, n)
	var components [][]int
	for start := 0; start < n; start++ {
		if seen[start] {
			continue
		}
		seen[start] = true
		queue := []int{start}
		comp := []int{}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			comp = append(comp, v)
			for _, list := range [][]Arc{adj.Out[v], adj.In[v]} {
				for _, arc := range list {
					if !seen[arc.To] {
						seen[arc.To] = true
						queue = append(queue, arc.To)
					}
				}
			}
		}
		sort.Ints(comp)
		components = append(components, comp)
	}
	return components
}

// IsWeaklyConnected reports whether adj forms a single weak component.
// The empty graph is not connected.
func IsWeaklyConnected(adj *Adjacency) bool {
	return adj.Len() > 0 && len(WeakComponents(adj)) == 1
}

// StrongComponents runs Tarjan's algorithm over the directed arcs.
func StrongComponents(adj *Adjacency) [][]int {
	n := adj.Len()
	index := 0
	stack := make([]int, 0, n)
	onStack := make([]bool, n)
	indexOf := make([]int, n)
	lowLink := make([]int, n)
	for i := range indexOf {
		indexOf[i] = -1
	}
	components := make([][]int, 0)

	var strongConnect func(int)
	strongConnect = func(v int) {
		indexOf[v] = index
		lowLink[v] = index
		index++

		stack = append(stack, v)
		onStack[v] = true

		for _, arc := range adj.Out[v] {
			w := arc.To
			if indexOf[w] < 0 {
				strongConnect(w)
				if lowLink[w] < lowLink[v] {
					lowLink[v] = lowLink[w]
				}
			} else if onStack[w] && indexOf[w] < lowLink[v] {
				lowLink[v] = indexOf[w]
			}
		}

		if lowLink[v] != indexOf[v] {
			return
		}

		component := make([]int, 0)
		for {
			last := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[last] = false
			component = append(component, last)
			if last == v {
				break
			}
		}
		sort.Ints(component)
		components = append(components, component)
	}

	for v := 0; v < n; v++ {
		if indexOf[v] < 0 {
			strongConnect(v)
		}
	}
	return components
}

// reciprocity is the share of non-loop edges whose reverse edge also exists.
func reciprocity(adj *Adjacency, edges int) float64 {
	if edges == 0 {
		return 0
	}
	mutual := 0
	for v := range adj.Out {
		for _, arc := range adj.Out[v] {
			if arc.To == v {
				continue
			}
			if hasArc(adj.Out[arc.To], v) {
				mutual++
			}
		}
	}
	return float64(mutual) / float64(edges)
}

func hasArc(list []Arc, target int) bool {
	i := sort.Search(len(list), func(i int) bool { return list[i].To >= target })
	return i < len(list) && list[i].To == target
}

// averageClustering averages local clustering coefficients; self-loops are
// ignored and nodes with fewer than two neighbors count as zero.
func averageClustering(u *Undirected) float64 {
	n := u.NodeCount()
	if n == 0 {
		return 0
	}
	total := 0.0
	for v := 0; v < n; v++ {
		neighbors := make([]int, 0, len(u.adj[v]))
		for w := range u.adj[v] {
			if w != v {
				neighbors = append(neighbors, w)
			}
		}
		k := len(neighbors)
		if k < 2 {
			continue
		}
		links := 0
		for i := 0; i < k; i++ {
			for j := i + 1; j < k; j++ {
				if _, ok := u.adj[neighbors[i]][neighbors[j]]; ok {
					links++
				}
			}
		}
		total += 2 * float64(links) / float64(k*(k-1))
	}
	return total / float64(n)
}

// diameter is the largest hop eccentricity among members of one connected
// component of the undirected view.
func diameter(adj *UndirectedAdjacency, members []int) int {
	best := 0
	dist := make([]int, adj.Len())
	for _, source := range members {
		for i := range dist {
			dist[i] = -1
		}
		dist[source] = 0
		queue := []int{source}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			if dist[v] > best {
				best = dist[v]
			}
			for _, arc := range adj.Neighbors[v] {
				if dist[arc.To] < 0 {
					dist[arc.To] = dist[v] + 1
					queue = append(queue, arc.To)
				}
			}
		}
	}
	return best
}
