// Package rank combines centrality scores into a spreader ranking.
package rank

import (
	"sort"

	"spreadscope/internal/engine/centrality"
	"spreadscope/internal/engine/community"
)

// Entry is one ranked node.
type Entry struct {
	Node  string
	Score float64
}

// Combine averages, per node, the metrics that contain it. Maps missing a
// node do not count toward its mean; a node present in none scores 0.
func Combine(maps []centrality.Scores, nodes []string) centrality.Scores {
	out := make(centrality.Scores, len(nodes))
	for _, id := range nodes {
		sum, count := 0.0, 0
		for _, m := range maps {
			if v, ok := m[id]; ok {
				sum += v
				count++
			}
		}
		if count > 0 {
			out[id] = sum / float64(count)
		} else {
			out[id] = 0
		}
	}
	return out
}

// TopN returns the n highest scores, ties broken by node id ascending.
func TopN(scores centrality.Scores, n int) []Entry {
	entries := make([]Entry, 0, len(scores))
	for id, s := range scores {
		entries = append(entries, Entry{Node: id, Score: s})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Node < entries[j].Node
	})
	if n < 0 {
		n = 0
	}
	if n < len(entries) {
		entries = entries[:n]
	}
	return entries
}

// Share is the number of top-ranked nodes falling in one community.
type Share struct {
	Community int
	Count     int
	Percent   float64
}

// CommunityDistribution counts how the top list spreads over communities.
// Communities holding no top node are left out; the rest are ordered by
// count descending, then id.
func CommunityDistribution(top []Entry, p *community.Partition) []Share {
	counts := map[int]int{}
	for _, e := range top {
		if c, ok := p.Of(e.Node); ok {
			counts[c]++
		}
	}
	out := make([]Share, 0, len(counts))
	for c, n := range counts {
		pct := 0.0
		if len(top) > 0 {
			pct = 100 * float64(n) / float64(len(top))
		}
		out = append(out, Share{Community: c, Count: n, Percent: pct})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Community < out[j].Community
	})
	return out
}

// BySize orders communities for presentation: size descending, id ascending.
func BySize(p *community.Partition) []community.Community {
	return p.Largest(-1)
}
