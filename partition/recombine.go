package partition

import (
	"math/rand"

	"github.com/openmander/redistrict-core/internal/rng"
)

// spanningTree is a rooted tree over a part's induced subgraph, recorded
// both as a parent pointer array and as an Euler preorder traversal with
// per-node (entryIndex, subtreeSize) so contiguous ranges of order
// correspond exactly to subtrees.
type spanningTree struct {
	root       int
	parent     map[int]int
	order      []int
	entryIndex map[int]int
	subtreeSiz map[int]int
}

// randomSpanningTree builds a uniformly random spanning tree of the
// subgraph induced by part (rooted at a uniformly chosen node) using
// Wilson's loop-erased random walk algorithm: repeatedly perform a
// loop-erased random walk from an untreed node until it hits the tree,
// then splice the erased path in as new tree edges.
func (p *Partition) randomSpanningTree(part int, r *rand.Rand) *spanningTree {
	nodes := append([]int{}, p.parts.Get(part)...)
	if len(nodes) == 0 {
		panic("partition: randomSpanningTree: part is empty")
	}
	rng.ShuffleInts(nodes, r)

	root := nodes[0]
	inTree := map[int]bool{root: true}
	parent := map[int]int{root: -1}

	walkStart := map[int]int{}
	walkPosition := map[int]int{}

	for _, start := range nodes {
		if inTree[start] {
			continue
		}

		walk := []int{start}
		walkStart[start] = 0
		walkPosition[start] = 0

		cur := start
		for !inTree[cur] {
			next, ok := p.RandomSamePartEdge(cur, r)
			if !ok {
				panic("partition: randomSpanningTree: node has no same-part neighbor; part is not contiguous")
			}

			if pos, seen := walkPosition[next]; seen {
				// Loop detected: erase everything after pos.
				for i := pos + 1; i < len(walk); i++ {
					delete(walkPosition, walk[i])
				}
				walk = walk[:pos+1]
				cur = next
				continue
			}

			walkPosition[next] = len(walk)
			walk = append(walk, next)
			cur = next
		}

		for i := 0; i < len(walk)-1; i++ {
			parent[walk[i]] = walk[i+1]
			inTree[walk[i]] = true
		}
		inTree[walk[len(walk)-1]] = true

		for _, w := range walk {
			delete(walkPosition, w)
		}
	}

	return buildEulerPreorder(root, parent)
}

// buildEulerPreorder runs an iterative DFS preorder over the tree encoded
// by parent (mapping node -> parent, root -> -1), producing order,
// entryIndex (order position of the first visit), and subtreeSiz (size of
// the subtree rooted at each node).
func buildEulerPreorder(root int, parent map[int]int) *spanningTree {
	children := map[int][]int{}
	for node, par := range parent {
		if par != -1 {
			children[par] = append(children[par], node)
		}
	}

	var order []int
	entryIndex := map[int]int{}
	subtreeSiz := map[int]int{}

	type frame struct {
		node    int
		childAt int
	}
	stack := []frame{{node: root, childAt: 0}}
	entryIndex[root] = 0
	order = append(order, root)
	subtreeSiz[root] = 1

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		kids := children[top.node]
		if top.childAt >= len(kids) {
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				parentFrame := &stack[len(stack)-1]
				subtreeSiz[parentFrame.node] += subtreeSiz[top.node]
			}
			continue
		}
		child := kids[top.childAt]
		top.childAt++
		entryIndex[child] = len(order)
		order = append(order, child)
		subtreeSiz[child] = 1
		stack = append(stack, frame{node: child, childAt: 0})
	}

	return &spanningTree{root: root, parent: parent, order: order, entryIndex: entryIndex, subtreeSiz: subtreeSiz}
}

// balancedCut picks the non-root node u in tree whose subtree weight (under
// series) is closest to half of the tree's total weight, returning the
// contiguous slice of order spanning that subtree.
func (p *Partition) balancedCut(tree *spanningTree, series string) []int {
	n := len(tree.order)
	prefix := make([]float64, n+1)
	for i, node := range tree.order {
		prefix[i+1] = prefix[i] + p.g.NodeWeights().MustGetAsF64(series, node)
	}
	total := prefix[n]
	target := total / 2

	bestIdx := -1
	bestDiff := -1.0
	for i, node := range tree.order {
		if node == tree.root {
			continue
		}
		entry := tree.entryIndex[node]
		size := tree.subtreeSiz[node]
		subtreeWeight := prefix[entry+size] - prefix[entry]
		diff := subtreeWeight - target
		if diff < 0 {
			diff = -diff
		}
		if bestIdx == -1 || diff < bestDiff {
			bestDiff = diff
			bestIdx = i
		}
	}

	if bestIdx == -1 {
		return nil
	}
	node := tree.order[bestIdx]
	entry := tree.entryIndex[node]
	size := tree.subtreeSiz[node]
	return append([]int{}, tree.order[entry:entry+size]...)
}

// RecombineParts implements ReCom: merge parts a and b, build a random
// spanning tree of the merged region via Wilson's algorithm, find the
// subtree whose series-weighted size is closest to half the merged total,
// and move that subtree back out to reconstitute two balanced, contiguous
// parts. series is the balance series (typically total population), passed
// explicitly rather than hard-coded. It is a no-op if a and b are not
// adjacent.
func (p *Partition) RecombineParts(a, b int, series string, r *rand.Rand) {
	emptied, ok := p.MergeParts(a, b, true)
	if !ok {
		return
	}
	merged, other := a, b
	if emptied == a {
		merged, other = b, a
	}

	tree := p.randomSpanningTree(merged, r)
	cut := p.balancedCut(tree, series)
	if len(cut) == 0 {
		return
	}
	p.MoveSubgraph(cut, other, false)
}
