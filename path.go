package main

// reconstructPath follows parent links from goal back to start and returns
// the indices in start-to-goal order, both endpoints included once.
func reconstructPath(nodes map[int]*node, start, goal int) []int {
	path := []int{goal}
	for current := goal; current != start; {
		nd, ok := nodes[current]
		if !ok || nd.parent < 0 {
			break
		}
		current = nd.parent
		path = append(path, current)
	}

	// reverse path
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
