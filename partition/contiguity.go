package partition

// CheckNodeContiguity reports whether moving node u into part dst would
// preserve contiguity of u's current part. u must already have at least
// one same-part neighbor in dst if dst is nonempty, and removing u from its
// current part must not split that part.
func (p *Partition) CheckNodeContiguity(u, dst int) bool {
	if len(p.parts.Get(dst)) > 0 {
		hasDstNeighbor := false
		for _, v := range p.g.Edges(u) {
			if p.parts.Of(v) == dst {
				hasDstNeighbor = true
				break
			}
		}
		if !hasDstNeighbor {
			return false
		}
	}

	prev := p.parts.Of(u)
	if prev == 0 {
		return true
	}

	var nPrev []int
	for _, v := range p.g.Edges(u) {
		if p.parts.Of(v) == prev {
			nPrev = append(nPrev, v)
		}
	}
	if len(nPrev) <= 1 {
		return true
	}

	targets := make(map[int]bool, len(nPrev))
	for _, v := range nPrev {
		targets[v] = true
	}
	remaining := len(targets)

	visited := map[int]bool{u: true} // forbid traversing through u
	queue := []int{nPrev[0]}
	visited[nPrev[0]] = true
	if targets[nPrev[0]] {
		remaining--
	}

	for len(queue) > 0 && remaining > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range p.g.Edges(cur) {
			if visited[nb] || p.parts.Of(nb) != prev {
				continue
			}
			visited[nb] = true
			if targets[nb] {
				remaining--
			}
			queue = append(queue, nb)
		}
	}

	return remaining == 0
}

// CheckSubgraphContiguity reports whether moving the node set S (all
// currently in the same source part) into dst preserves contiguity: S must
// be internally connected, must border dst (or dst must be empty), and its
// removal must not split any source part's remaining nodes.
func (p *Partition) CheckSubgraphContiguity(S []int, dst int) bool {
	if len(S) == 0 {
		return true
	}

	inS := make(map[int]bool, len(S))
	for _, u := range S {
		if inS[u] {
			panic("partition: CheckSubgraphContiguity: S contains a duplicate node")
		}
		inS[u] = true
	}

	if !p.isInternallyConnected(S, inS) {
		return false
	}

	if len(p.parts.Get(dst)) > 0 {
		bordersDst := false
		for _, u := range S {
			for _, v := range p.g.Edges(u) {
				if !inS[v] && p.parts.Of(v) == dst {
					bordersDst = true
					break
				}
			}
			if bordersDst {
				break
			}
		}
		if !bordersDst {
			return false
		}
	}

	prev := p.parts.Of(S[0])
	if prev == 0 {
		return true
	}

	boundary := make(map[int]bool)
	for _, u := range S {
		for _, v := range p.g.Edges(u) {
			if !inS[v] && p.parts.Of(v) == prev {
				boundary[v] = true
			}
		}
	}
	if len(boundary) <= 1 {
		return true
	}

	targets := boundary
	remaining := len(targets)
	var seed int
	for v := range boundary {
		seed = v
		break
	}

	visited := map[int]bool{}
	for u := range inS {
		visited[u] = true // forbid traversing through S
	}
	queue := []int{seed}
	visited[seed] = true
	if targets[seed] {
		remaining--
	}

	for len(queue) > 0 && remaining > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range p.g.Edges(cur) {
			if visited[nb] || p.parts.Of(nb) != prev {
				continue
			}
			visited[nb] = true
			if targets[nb] {
				remaining--
			}
			queue = append(queue, nb)
		}
	}

	return remaining == 0
}

// isInternallyConnected reports whether S induces a connected subgraph.
func (p *Partition) isInternallyConnected(S []int, inS map[int]bool) bool {
	visited := map[int]bool{S[0]: true}
	queue := []int{S[0]}
	count := 1
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, nb := range p.g.Edges(cur) {
			if inS[nb] && !visited[nb] {
				visited[nb] = true
				count++
				queue = append(queue, nb)
			}
		}
	}
	return count == len(S)
}

// FindComponents enumerates the connected components of the subgraph
// induced by {u : assignment(u) == part}, returning one node-id slice per
// component.
func (p *Partition) FindComponents(part int) [][]int {
	var components [][]int
	visited := map[int]bool{}
	for _, u := range p.parts.Get(part) {
		if visited[u] {
			continue
		}
		var comp []int
		queue := []int{u}
		visited[u] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)
			for _, nb := range p.g.Edges(cur) {
				if p.parts.Of(nb) == part && !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		components = append(components, comp)
	}
	return components
}

// EnsureContiguity repairs I5 for every real part: for each part with more
// than one component, the largest component is kept and every smaller
// component is relocated, either to part 0 (if it borders any unassigned
// node) or to the neighboring part with the greatest total boundary edge
// weight. It returns true iff any relocation was performed.
func (p *Partition) EnsureContiguity() bool {
	moved := false
	for part := 1; part <= p.k; part++ {
		components := p.FindComponents(part)
		if len(components) <= 1 {
			continue
		}

		largest := 0
		for i, c := range components {
			if len(c) > len(components[largest]) {
				largest = i
			}
			_ = i
		}

		for i, comp := range components {
			if i == largest {
				continue
			}
			p.relocateComponent(comp, part)
			moved = true
		}
	}
	return moved
}

// relocateComponent moves comp (currently in part) to part 0 if it borders
// any unassigned node, otherwise to the neighboring part with the greatest
// summed boundary edge weight.
func (p *Partition) relocateComponent(comp []int, part int) {
	inComp := make(map[int]bool, len(comp))
	for _, u := range comp {
		inComp[u] = true
	}

	scores := map[int]float64{}
	bordersUnassigned := false
	for _, u := range comp {
		neighbors, weights := p.g.EdgesWithWeights(u)
		for i, v := range neighbors {
			if inComp[v] {
				continue
			}
			pv := p.parts.Of(v)
			if pv == 0 {
				bordersUnassigned = true
			}
			scores[pv] += weights[i]
		}
	}

	var dst int
	if bordersUnassigned {
		dst = 0
	} else {
		best := -1.0
		for candidate, score := range scores {
			if candidate == part {
				continue
			}
			if score > best {
				best = score
				dst = candidate
			}
		}
	}

	p.MoveSubgraph(comp, dst, false)
}

// CutSubgraphWithinPart determines the smallest additional set of nodes
// that must move alongside u for u's current part to remain contiguous
// after u is removed ("the dangling bundle"). It returns an empty slice if
// u is unassigned or is not an articulation point of its part.
func (p *Partition) CutSubgraphWithinPart(u int) []int {
	prev := p.parts.Of(u)
	if prev == 0 {
		return nil
	}

	var nPrev []int
	for _, v := range p.g.Edges(u) {
		if p.parts.Of(v) == prev {
			nPrev = append(nPrev, v)
		}
	}
	if len(nPrev) <= 1 {
		return nil
	}

	visited := map[int]bool{u: true}
	var components [][]int
	for _, seed := range nPrev {
		if visited[seed] {
			continue
		}
		var comp []int
		queue := []int{seed}
		visited[seed] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			comp = append(comp, cur)
			for _, nb := range p.g.Edges(cur) {
				if nb != u && p.parts.Of(nb) == prev && !visited[nb] {
					visited[nb] = true
					queue = append(queue, nb)
				}
			}
		}
		components = append(components, comp)
	}

	if len(components) <= 1 {
		return nil
	}

	largest := 0
	for i, c := range components {
		if len(c) > len(components[largest]) {
			largest = i
		}
	}

	var bundle []int
	for i, c := range components {
		if i == largest {
			continue
		}
		bundle = append(bundle, c...)
	}
	return bundle
}
