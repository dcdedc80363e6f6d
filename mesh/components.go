package mesh

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// Components partitions elements into connected components of adj restricted to the element set.
// Input order decides where each component starts and so the order components are returned in;
// each component lists its elements in breadth-first discovery order.
func Components(elements []int, adj *Adjacency) (components [][]int) {
	within := MemberSet(elements)
	visited := make(map[int]bool, len(elements))
	for _, start := range elements {
		if visited[start] {
			continue
		}
		components = append(components, BreadthFirst(start, adj, within, visited))
	}
	return
}

// BreadthFirst returns the elements reachable from start inside within, marking them in visited
func BreadthFirst(start int, adj *Adjacency, within, visited map[int]bool) (reached []int) {
	q := linkedlistqueue.New()
	visited[start] = true
	q.Enqueue(start)
	for !q.Empty() {
		v, _ := q.Dequeue()
		e := v.(int)
		reached = append(reached, e)
		for _, n := range adj.NeighborsWithin(e, within) {
			if !visited[n] {
				visited[n] = true
				q.Enqueue(n)
			}
		}
	}
	return
}

// Distances returns the breadth-first hop count from start to every reachable element of the set,
// together with the BFS parent of each element and the visiting order
func Distances(start int, adj *Adjacency, within map[int]bool) (dist, parent map[int]int, order []int) {
	dist = map[int]int{start: 0}
	parent = map[int]int{start: start}
	q := linkedlistqueue.New()
	q.Enqueue(start)
	for !q.Empty() {
		v, _ := q.Dequeue()
		e := v.(int)
		order = append(order, e)
		for _, n := range adj.NeighborsWithin(e, within) {
			if _, seen := dist[n]; !seen {
				dist[n] = dist[e] + 1
				parent[n] = e
				q.Enqueue(n)
			}
		}
	}
	return
}
