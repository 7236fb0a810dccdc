package graph

import (
	"math"
	"reflect"
	"testing"
)

func TestComputeStats_Triangle(t *testing.T) {
	g, _ := Build([]Record{{"A", "B", "3"}, {"B", "C"}, {"A", "C", "2"}, {"C", "A", "4"}})

	s := ComputeStats(g, DefaultDiameterCap)
	if s.Nodes != 3 || s.Edges != 4 {
		t.Fatalf("Unexpected size %d/%d", s.Nodes, s.Edges)
	}
	if math.Abs(s.Density-4.0/6.0) > 1e-12 {
		t.Errorf("Expected density 4/6, got %f", s.Density)
	}
	if math.Abs(s.AverageDegree-8.0/3.0) > 1e-12 {
		t.Errorf("Expected average degree 8/3, got %f", s.AverageDegree)
	}
	if s.WeakComponents != 1 {
		t.Errorf("Expected 1 weak component, got %d", s.WeakComponents)
	}
	if s.StrongComponents != 1 || s.LargestStrongComponent != 3 {
		t.Errorf("Expected single SCC of 3, got %d/%d", s.StrongComponents, s.LargestStrongComponent)
	}
	// A->C and C->A are the only mutual pair.
	if math.Abs(s.Reciprocity-0.5) > 1e-12 {
		t.Errorf("Expected reciprocity 0.5, got %f", s.Reciprocity)
	}
	if math.Abs(s.AverageClustering-1.0) > 1e-12 {
		t.Errorf("Expected clustering 1.0, got %f", s.AverageClustering)
	}
	if !s.DiameterComputed || s.Diameter != 1 {
		t.Errorf("Expected diameter 1, got %d (computed=%v)", s.Diameter, s.DiameterComputed)
	}
}

func TestComputeStats_ComponentsAndDiameterCap(t *testing.T) {
	g, _ := Build([]Record{{"A", "B"}, {"B", "C"}, {"C", "D"}, {"X", "Y"}})
	_ = g.AddNode("Z")

	s := ComputeStats(g, DefaultDiameterCap)
	if s.WeakComponents != 3 {
		t.Errorf("Expected 3 weak components, got %d", s.WeakComponents)
	}
	if !reflect.DeepEqual(s.WeakComponentSizes, []int{4, 2, 1}) {
		t.Errorf("Unexpected component sizes %v", s.WeakComponentSizes)
	}
	if s.StrongComponents != 7 {
		t.Errorf("Expected every node to be its own SCC in a DAG, got %d", s.StrongComponents)
	}
	if s.Diameter != 3 {
		t.Errorf("Expected path diameter 3, got %d", s.Diameter)
	}

	capped := ComputeStats(g, 4)
	if capped.DiameterComputed {
		t.Error("Expected diameter to be skipped at the cap")
	}
	if capped.DiameterNote == "" {
		t.Error("Expected a note explaining the skipped diameter")
	}
}

func TestComputeStats_Empty(t *testing.T) {
	s := ComputeStats(New(), 0)
	if s.Nodes != 0 || s.DiameterComputed {
		t.Errorf("Unexpected stats for empty graph: %+v", s)
	}
	if s.LargestStrongShare() != 0 {
		t.Error("Expected zero share for empty graph")
	}
}

func TestIsWeaklyConnected(t *testing.T) {
	g, _ := Build([]Record{{"A", "B"}, {"C", "B"}})
	if !IsWeaklyConnected(g.Adjacency()) {
		t.Error("Expected A->B<-C to be weakly connected")
	}
	_ = g.AddNode("D")
	if IsWeaklyConnected(g.Adjacency()) {
		t.Error("Expected isolated D to break weak connectivity")
	}
	if IsWeaklyConnected(New().Adjacency()) {
		t.Error("Empty graph must not count as connected")
	}
}

func TestStrongComponents_Cycle(t *testing.T) {
	g, _ := Build([]Record{{"A", "B"}, {"B", "C"}, {"C", "A"}, {"C", "D"}})
	comps := StrongComponents(g.Adjacency())
	if len(comps) != 2 {
		t.Fatalf("Expected 2 SCCs, got %v", comps)
	}
	sizes := map[int]bool{len(comps[0]): true, len(comps[1]): true}
	if !sizes[3] || !sizes[1] {
		t.Errorf("Expected SCC sizes 3 and 1, got %v", comps)
	}
}
