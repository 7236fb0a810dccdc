package community

import (
	"container/heap"
	"context"
	"sort"

	"spreadscope/internal/engine/graph"
)

// pair is a candidate merge of communities lo < hi with gain dq.
type pair struct {
	dq     float64
	lo, hi int
}

// pairHeap pops the largest gain first; equal gains pop the lowest (lo, hi).
type pairHeap []pair

func (h pairHeap) Len() int { return len(h) }
func (h pairHeap) Less(i, j int) bool {
	if h[i].dq != h[j].dq {
		return h[i].dq > h[j].dq
	}
	if h[i].lo != h[j].lo {
		return h[i].lo < h[j].lo
	}
	return h[i].hi < h[j].hi
}
func (h pairHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *pairHeap) Push(x any)   { *h = append(*h, x.(pair)) }
func (h *pairHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	*h = old[:n-1]
	return it
}

func ordered(a, b int) (int, int) {
	if a < b {
		return a, b
	}
	return b, a
}

// GreedyModularity partitions u with the Clauset-Newman-Moore heuristic,
// ignoring edge weights. Every node starts alone and the pair of adjacent
// communities with the largest modularity gain is merged until no merge
// improves modularity. Merged communities keep the smaller id. The stale
// heap entries left behind by merges are discarded when popped.
func GreedyModularity(ctx context.Context, u *graph.Undirected) (*Partition, error) {
	adj := u.Adjacency()
	n := adj.Len()
	if n == 0 {
		return &Partition{Assignment: map[string]int{}}, nil
	}

	members := make([][]int, n)
	for i := range members {
		members[i] = []int{i}
	}

	m := float64(u.EdgeCount())
	merges := 0
	if m > 0 {
		a := make([]float64, n)
		dq := make([]map[int]float64, n)
		h := &pairHeap{}
		for i := 0; i < n; i++ {
			a[i] = float64(adj.Degree(i)) / (2 * m)
			dq[i] = make(map[int]float64, len(adj.Neighbors[i]))
		}
		for i := 0; i < n; i++ {
			for _, arc := range adj.Neighbors[i] {
				j := arc.To
				if j == i {
					continue
				}
				dq[i][j] = 2 * (1/(2*m) - a[i]*a[j])
				if i < j {
					*h = append(*h, pair{dq: dq[i][j], lo: i, hi: j})
				}
			}
		}
		heap.Init(h)

		for h.Len() > 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			top := heap.Pop(h).(pair)
			cur, ok := dq[top.lo][top.hi]
			if !ok || cur != top.dq {
				continue
			}
			if top.dq <= 0 {
				break
			}
			i, j := top.lo, top.hi

			for k, dqjk := range dq[j] {
				if k == i {
					continue
				}
				next := dqjk - 2*a[i]*a[k]
				if dqik, both := dq[i][k]; both {
					next = dqik + dqjk
				}
				dq[i][k] = next
				dq[k][i] = next
				delete(dq[k], j)
				lo, hi := ordered(i, k)
				heap.Push(h, pair{dq: next, lo: lo, hi: hi})
			}
			for k, dqik := range dq[i] {
				if k == j {
					continue
				}
				if _, seen := dq[j][k]; seen {
					continue
				}
				next := dqik - 2*a[j]*a[k]
				dq[i][k] = next
				dq[k][i] = next
				lo, hi := ordered(i, k)
				heap.Push(h, pair{dq: next, lo: lo, hi: hi})
			}
			delete(dq[i], j)
			dq[j] = nil
			a[i] += a[j]
			a[j] = 0
			members[i] = append(members[i], members[j]...)
			members[j] = nil
			merges++
		}
	}

	var groups [][]int
	for _, ms := range members {
		if len(ms) == 0 {
			continue
		}
		sort.Ints(ms)
		groups = append(groups, ms)
	}
	sort.Slice(groups, func(x, y int) bool { return groups[x][0] < groups[y][0] })

	p := &Partition{
		Communities: make([]Community, len(groups)),
		Assignment:  make(map[string]int, n),
		Merges:      merges,
	}
	for id, ms := range groups {
		names := make([]string, len(ms))
		for k, idx := range ms {
			names[k] = adj.IDs[idx]
			p.Assignment[names[k]] = id
		}
		p.Communities[id] = Community{ID: id, Members: names}
	}
	p.Modularity = Modularity(u, p.Communities)
	return p, nil
}
