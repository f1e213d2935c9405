package graph

import (
	"errors"
	"fmt"

	"lineagehub/internal/models"
)

var (
	ErrCycleDetected     = errors.New("relationship would create a cycle in the family tree")
	ErrSelfRelationship  = errors.New("cannot create a relationship with the same member")
	ErrDuplicateEdge     = errors.New("relationship already exists")
	ErrTooManyParents    = errors.New("a member can have at most 2 parents")
	ErrGenerationInvalid = errors.New("generation does not match parent generation")
)

// MaxParents is the number of recorded parent edges a member may have
const MaxParents = 2

// maxTraversalDepth bounds every walk so malformed data can't loop forever
const maxTraversalDepth = 100

type node struct {
	parentIDs []string
	spouseIDs []string
	childIDs  []string
}

// Graph is an explicit adjacency structure over family members, built from
// served relationship data. It answers subtree and ancestry questions locally
// and validates proposed edges before they are submitted.
type Graph struct {
	nodes map[string]*node
}

// New creates an empty graph
func New() *Graph {
	return &Graph{nodes: make(map[string]*node)}
}

// FromTreeData builds a graph from a served tree's edge list
func FromTreeData(tree models.TreeData) (*Graph, error) {
	g := New()
	for _, n := range tree.Nodes {
		g.ensure(n.ID)
	}
	for _, e := range tree.Edges {
		var err error
		switch e.Type {
		case models.RelationshipParentChild:
			err = g.AddParentChild(e.Source, e.Target)
		case models.RelationshipSpouse:
			err = g.AddSpouse(e.Source, e.Target)
		default:
			err = fmt.Errorf("unknown edge type %q", e.Type)
		}
		if err != nil && !errors.Is(err, ErrDuplicateEdge) {
			return nil, fmt.Errorf("edge %s -> %s: %w", e.Source, e.Target, err)
		}
	}
	return g, nil
}

// FromRelationships builds a one-member neighborhood graph from a member's
// relationship listing
func FromRelationships(rels models.MemberRelationships) *Graph {
	g := New()
	g.ensure(rels.MemberID)
	for _, p := range rels.Parents {
		g.link(p.MemberID, rels.MemberID)
	}
	for _, c := range rels.Children {
		g.link(rels.MemberID, c.MemberID)
	}
	for _, s := range rels.Spouses {
		g.marry(rels.MemberID, s.MemberID)
	}
	return g
}

func (g *Graph) ensure(id string) *node {
	n, ok := g.nodes[id]
	if !ok {
		n = &node{}
		g.nodes[id] = n
	}
	return n
}

// link records a parent-child edge without validation
func (g *Graph) link(parentID, childID string) {
	g.ensure(parentID).childIDs = append(g.nodes[parentID].childIDs, childID)
	g.ensure(childID).parentIDs = append(g.nodes[childID].parentIDs, parentID)
}

// marry records a spouse edge without validation
func (g *Graph) marry(a, b string) {
	g.ensure(a).spouseIDs = append(g.nodes[a].spouseIDs, b)
	g.ensure(b).spouseIDs = append(g.nodes[b].spouseIDs, a)
}

// AddParentChild validates and records a parent-child edge
func (g *Graph) AddParentChild(parentID, childID string) error {
	if err := g.ValidateParentChild(parentID, childID); err != nil {
		return err
	}
	g.link(parentID, childID)
	return nil
}

// AddSpouse validates and records a symmetric spouse edge
func (g *Graph) AddSpouse(a, b string) error {
	if err := g.ValidateSpouse(a, b); err != nil {
		return err
	}
	g.marry(a, b)
	return nil
}

// ValidateParentChild checks a proposed parent-child edge without recording
// it. It rejects self-edges, duplicates, a third parent, and any edge whose
// child is already an ancestor of the parent.
func (g *Graph) ValidateParentChild(parentID, childID string) error {
	if parentID == childID {
		return ErrSelfRelationship
	}
	if contains(g.childrenOf(parentID), childID) {
		return ErrDuplicateEdge
	}
	// Walk downward from the prospective child: reaching the prospective
	// parent means the child is an ancestor of the parent.
	if g.reachesDescendant(childID, parentID) {
		return ErrCycleDetected
	}
	if len(g.parentsOf(childID)) >= MaxParents {
		return ErrTooManyParents
	}
	return nil
}

// ValidateSpouse checks a proposed spouse pair without recording it
func (g *Graph) ValidateSpouse(a, b string) error {
	if a == b {
		return ErrSelfRelationship
	}
	if contains(g.spousesOf(a), b) {
		return ErrDuplicateEdge
	}
	return nil
}

// Parents returns the recorded parent ids of a member
func (g *Graph) Parents(id string) []string { return clone(g.parentsOf(id)) }

// Children returns the recorded child ids of a member
func (g *Graph) Children(id string) []string { return clone(g.childrenOf(id)) }

// Spouses returns the recorded spouse ids of a member
func (g *Graph) Spouses(id string) []string { return clone(g.spousesOf(id)) }

// Ancestors walks the parent chain upward from a member, breadth-first,
// bounded against malformed loops
func (g *Graph) Ancestors(id string) []string {
	var out []string
	seen := map[string]bool{id: true}
	frontier := clone(g.parentsOf(id))
	for depth := 0; depth < maxTraversalDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, p := range frontier {
			if seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, p)
			next = append(next, g.parentsOf(p)...)
		}
		frontier = next
	}
	return out
}

// IsAncestor reports whether ancestorID lies on some parent chain above memberID
func (g *Graph) IsAncestor(ancestorID, memberID string) bool {
	return contains(g.Ancestors(memberID), ancestorID)
}

// SubtreeIDs returns every member id in the subtree rooted at rootID,
// including the root and attached spouses. Spouses are included but never
// traversed through, matching server scope semantics. Satisfies
// permissions.SubtreeResolver.
func (g *Graph) SubtreeIDs(rootID string) []string {
	var ids []string
	walk := g.Walk(rootID, -1, true)
	for {
		v, ok := walk.Next()
		if !ok {
			break
		}
		ids = append(ids, v.ID)
	}
	return ids
}

// PreviewGeneration computes the generation a new member would receive.
// Parents dominate: one past the deepest parent. Otherwise a spouse's
// generation is inherited, otherwise an explicit value, otherwise 0 for a
// founder.
func PreviewGeneration(parents []models.Member, spouses []models.Member, explicit *int) int {
	if len(parents) > 0 {
		maxGen := parents[0].Generation
		for _, p := range parents[1:] {
			if p.Generation > maxGen {
				maxGen = p.Generation
			}
		}
		return maxGen + 1
	}
	if len(spouses) > 0 {
		return spouses[0].Generation
	}
	if explicit != nil {
		return *explicit
	}
	return 0
}

// CheckGenerations verifies that every parent-child edge of a served tree is
// exactly one generation apart
func CheckGenerations(tree models.TreeData) error {
	gens := make(map[string]int, len(tree.Nodes))
	for _, n := range tree.Nodes {
		gens[n.ID] = n.Generation
	}
	for _, e := range tree.Edges {
		if e.Type != models.RelationshipParentChild {
			continue
		}
		pg, ok := gens[e.Source]
		cg, ok2 := gens[e.Target]
		if !ok || !ok2 {
			return fmt.Errorf("edge %s references a node missing from the tree", e.ID)
		}
		if cg != pg+1 {
			return fmt.Errorf("edge %s -> %s: child generation %d, parent generation %d: %w",
				e.Source, e.Target, cg, pg, ErrGenerationInvalid)
		}
	}
	return nil
}

// reachesDescendant reports whether targetID is reachable from startID by
// following child edges, bounded by maxTraversalDepth
func (g *Graph) reachesDescendant(startID, targetID string) bool {
	seen := map[string]bool{}
	frontier := []string{startID}
	for depth := 0; depth <= maxTraversalDepth && len(frontier) > 0; depth++ {
		var next []string
		for _, id := range frontier {
			if seen[id] {
				continue
			}
			seen[id] = true
			if id == targetID {
				return true
			}
			next = append(next, g.childrenOf(id)...)
		}
		frontier = next
	}
	return false
}

func (g *Graph) parentsOf(id string) []string {
	if n, ok := g.nodes[id]; ok {
		return n.parentIDs
	}
	return nil
}

func (g *Graph) childrenOf(id string) []string {
	if n, ok := g.nodes[id]; ok {
		return n.childIDs
	}
	return nil
}

func (g *Graph) spousesOf(id string) []string {
	if n, ok := g.nodes[id]; ok {
		return n.spouseIDs
	}
	return nil
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func clone(ids []string) []string {
	if ids == nil {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
