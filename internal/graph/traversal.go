package graph

// Visit is one step of a subtree traversal: a member id and its depth from
// the traversal root
type Visit struct {
	ID    string
	Depth int
}

type queueItem struct {
	Visit
	spouse bool
}

// Traversal is a lazy, finite, non-restartable breadth-first walk over a
// subtree. Members at the same depth are yielded in edge insertion order
// before any deeper member, mirroring the server's node ordering so pages of
// results can be diffed position by position.
type Traversal struct {
	g             *Graph
	maxDepth      int
	includeSpouse bool
	queue         []queueItem
	seen          map[string]bool
}

// Walk starts a subtree traversal at rootID. maxDepth bounds how deep the
// walk descends; a negative maxDepth walks the whole subtree (still capped
// against malformed loops). When includeSpouses is set, a visited member's
// spouses are yielded at the member's depth but never traversed through:
// a spouse's own ancestry belongs to a different lineage.
func (g *Graph) Walk(rootID string, maxDepth int, includeSpouses bool) *Traversal {
	if maxDepth < 0 || maxDepth > maxTraversalDepth {
		maxDepth = maxTraversalDepth
	}
	t := &Traversal{
		g:             g,
		maxDepth:      maxDepth,
		includeSpouse: includeSpouses,
		seen:          make(map[string]bool),
	}
	if _, ok := g.nodes[rootID]; ok {
		t.queue = []queueItem{{Visit: Visit{ID: rootID, Depth: 0}}}
	}
	return t
}

// Next yields the next member of the subtree. The second return is false once
// the walk is exhausted.
func (t *Traversal) Next() (Visit, bool) {
	for len(t.queue) > 0 {
		item := t.queue[0]
		t.queue = t.queue[1:]
		if t.seen[item.ID] {
			continue
		}
		t.seen[item.ID] = true

		if !item.spouse {
			if t.includeSpouse {
				for _, s := range t.g.spousesOf(item.ID) {
					if !t.seen[s] {
						t.queue = append(t.queue, queueItem{Visit: Visit{ID: s, Depth: item.Depth}, spouse: true})
					}
				}
			}
			if item.Depth < t.maxDepth {
				for _, c := range t.g.childrenOf(item.ID) {
					if !t.seen[c] {
						t.queue = append(t.queue, queueItem{Visit: Visit{ID: c, Depth: item.Depth + 1}})
					}
				}
			}
		}
		return item.Visit, true
	}
	return Visit{}, false
}

// Subtree collects a bounded traversal into a slice
func (g *Graph) Subtree(rootID string, maxDepth int, includeSpouses bool) []Visit {
	var out []Visit
	walk := g.Walk(rootID, maxDepth, includeSpouses)
	for {
		v, ok := walk.Next()
		if !ok {
			return out
		}
		out = append(out, v)
	}
}
