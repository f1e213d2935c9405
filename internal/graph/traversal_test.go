package graph

import (
	"reflect"
	"testing"
)

func TestSubtreeBreadthFirstOrder(t *testing.T) {
	g := buildFamily(t)

	got := g.Subtree("founder", -1, false)
	want := []Visit{
		{ID: "founder", Depth: 0},
		{ID: "childA", Depth: 1},
		{ID: "childB", Depth: 1},
		{ID: "grandchild", Depth: 2},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Subtree() = %v, want %v", got, want)
	}
}

func TestSubtreeDepthBound(t *testing.T) {
	g := buildFamily(t)

	got := g.Subtree("founder", 1, false)
	want := []Visit{
		{ID: "founder", Depth: 0},
		{ID: "childA", Depth: 1},
		{ID: "childB", Depth: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Subtree(depth=1) = %v, want %v", got, want)
	}
}

func TestSubtreeIncludesSpousesWithoutTraversingThem(t *testing.T) {
	g := buildFamily(t)
	// Give the spouse a child from a previous marriage: it must stay out of
	// the founder's subtree because spouses are terminal.
	g.link("spouse", "stepchild")

	visits := g.Subtree("founder", -1, true)
	depths := make(map[string]int, len(visits))
	for _, v := range visits {
		depths[v.ID] = v.Depth
	}

	if d, ok := depths["spouse"]; !ok || d != 0 {
		t.Errorf("spouse depth = %d (present %t), want 0", d, ok)
	}
	if _, ok := depths["stepchild"]; ok {
		t.Error("stepchild reached through a spouse edge; spouses must be terminal")
	}
	if _, ok := depths["grandchild"]; !ok {
		t.Error("grandchild missing from subtree")
	}
}

func TestSubtreeIDsCoverRootChildrenAndSpouses(t *testing.T) {
	g := buildFamily(t)

	ids := g.SubtreeIDs("founder")
	want := map[string]bool{
		"founder": true, "spouse": true, "childA": true, "childB": true, "grandchild": true,
	}
	if len(ids) != len(want) {
		t.Fatalf("SubtreeIDs(founder) = %v, want %d ids", ids, len(want))
	}
	for _, id := range ids {
		if !want[id] {
			t.Errorf("unexpected id %s in subtree", id)
		}
	}
}

func TestWalkIsLazyAndNonRestartable(t *testing.T) {
	g := buildFamily(t)

	walk := g.Walk("founder", -1, false)
	first, ok := walk.Next()
	if !ok || first.ID != "founder" {
		t.Fatalf("first visit = %v (%t), want founder", first, ok)
	}

	// Drain the rest; the walk must terminate and never repeat a member
	seen := map[string]bool{first.ID: true}
	for {
		v, ok := walk.Next()
		if !ok {
			break
		}
		if seen[v.ID] {
			t.Errorf("member %s visited twice", v.ID)
		}
		seen[v.ID] = true
	}

	// Exhausted walks stay exhausted
	if _, ok := walk.Next(); ok {
		t.Error("exhausted traversal yielded another visit")
	}
}

func TestWalkUnknownRoot(t *testing.T) {
	g := buildFamily(t)
	if got := g.Subtree("nobody", -1, true); len(got) != 0 {
		t.Errorf("Subtree(nobody) = %v, want empty", got)
	}
}
