// Package ordering lays out the elements of one component as a chain, a loop or a best-effort
// path through a branching graph
package ordering

import (
	"sort"

	"github.com/notargets/gojoint/mesh"
)

type Kind uint8

const (
	Chain Kind = iota
	Loop
	General
)

func (k Kind) String() string {
	switch k {
	case Chain:
		return "Chain"
	case Loop:
		return "Loop"
	default:
		return "General"
	}
}

type Result struct {
	Kind     Kind
	Elements []int // Every element of the component exactly once
	Inserted int   // Elements the walk missed, attached afterward
}

// Order visits every element of a connected component under adj. Elements the primary walk
// misses are attached next to a placed neighbor, so the result always covers the component.
func Order(elements []int, adj *mesh.Adjacency) (res Result) {
	if len(elements) == 0 {
		return
	}
	var (
		within = mesh.MemberSet(elements)
		sorted = append([]int(nil), elements...)
		ends   []int
		ring   = true
	)
	sort.Ints(sorted)
	for _, e := range sorted {
		switch len(adj.NeighborsWithin(e, within)) {
		case 1:
			ends = append(ends, e)
		case 2:
		default:
			ring = false
		}
	}

	var path []int
	switch {
	case len(ends) > 0:
		res.Kind = Chain
		path = walk(ends[0], adj, within, len(sorted))
	case ring:
		res.Kind = Loop
		path = walk(sorted[0], adj, within, len(sorted))
	default:
		res.Kind = General
		path = longestPath(sorted[0], adj, within)
	}
	res.Elements, res.Inserted = attach(path, elements, adj)
	return
}

// walk advances to the lowest unvisited neighbor until none remains. The previous element is
// always visited, so a loop walk stops when it returns next to its start.
func walk(start int, adj *mesh.Adjacency, within map[int]bool, limit int) (path []int) {
	visited := map[int]bool{start: true}
	path = []int{start}
	cur := start
	for len(path) < limit {
		next, found := 0, false
		for _, n := range adj.NeighborsWithin(cur, within) {
			if !visited[n] {
				next, found = n, true
				break
			}
		}
		if !found {
			break
		}
		visited[next] = true
		path = append(path, next)
		cur = next
	}
	return
}

// longestPath approximates the longest path with two breadth-first searches, exact on trees
func longestPath(start int, adj *mesh.Adjacency, within map[int]bool) (path []int) {
	far1 := farthest(mesh.Distances(start, adj, within))
	dist, parent, order := mesh.Distances(far1, adj, within)
	far2 := farthest(dist, parent, order)
	for e := far2; ; e = parent[e] {
		path = append(path, e)
		if e == far1 {
			break
		}
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return
}

// farthest returns the first element in visiting order at the maximum distance
func farthest(dist, _ map[int]int, order []int) (far int) {
	far = order[0]
	for _, e := range order {
		if dist[e] > dist[far] {
			far = e
		}
	}
	return
}

// attach inserts each unplaced element right after the first element of the order adjacent to
// it, repeating for at most len(elements) passes, then appends whatever is left in input order
func attach(path, elements []int, adj *mesh.Adjacency) (order []int, inserted int) {
	order = path
	placed := mesh.MemberSet(path)
	for pass := 0; pass < len(elements) && len(placed) < len(elements); pass++ {
		var progress bool
		for _, e := range elements {
			if placed[e] {
				continue
			}
			for i, o := range order {
				if adj.Adjacent(o, e) {
					order = append(order[:i+1], append([]int{e}, order[i+1:]...)...)
					placed[e] = true
					inserted++
					progress = true
					break
				}
			}
		}
		if !progress {
			break
		}
	}
	for _, e := range elements {
		if !placed[e] {
			order = append(order, e)
			placed[e] = true
			inserted++
		}
	}
	return
}
