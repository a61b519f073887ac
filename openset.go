package main

import "container/heap"

// node holds the search-scoped state of one discovered cell.
type node struct {
	index     int     // flat grid index
	g         float64 // cost from start to this node
	f         float64 // g + heuristic
	parent    int     // index of the predecessor, -1 for the start
	closed    bool
	heapIndex int // position in the open set, -1 once extracted
}

// openSet implements heap.Interface ordered by f, then by lowest index, so
// extraction is deterministic among equal f values.
type openSet []*node

func (pq openSet) Len() int { return len(pq) }

func (pq openSet) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].index < pq[j].index
}

func (pq openSet) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].heapIndex = i
	pq[j].heapIndex = j
}

func (pq *openSet) Push(x interface{}) {
	n := len(*pq)
	nd := x.(*node)
	nd.heapIndex = n
	*pq = append(*pq, nd)
}

func (pq *openSet) Pop() interface{} {
	old := *pq
	n := len(old)
	nd := old[n-1]
	old[n-1] = nil
	nd.heapIndex = -1
	*pq = old[0 : n-1]
	return nd
}

// insert adds nd to the open set.
func (pq *openSet) insert(nd *node) { heap.Push(pq, nd) }

// extractMin removes and returns the node with the lowest f.
func (pq *openSet) extractMin() *node { return heap.Pop(pq).(*node) }

// decreaseKey restores heap order after nd.f was lowered.
func (pq *openSet) decreaseKey(nd *node) { heap.Fix(pq, nd.heapIndex) }
