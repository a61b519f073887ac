package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSetOrder(t *testing.T) {
	var pq openSet
	for _, nd := range []*node{
		{index: 4, f: 3},
		{index: 9, f: 1},
		{index: 2, f: 3},
		{index: 7, f: 2},
	} {
		pq.insert(nd)
	}

	var got []int
	for pq.Len() > 0 {
		nd := pq.extractMin()
		assert.Equal(t, -1, nd.heapIndex)
		got = append(got, nd.index)
	}
	// Equal f values come out lowest index first.
	assert.Equal(t, []int{9, 7, 2, 4}, got)
}

func TestOpenSetDecreaseKey(t *testing.T) {
	var pq openSet
	a := &node{index: 1, f: 5}
	b := &node{index: 2, f: 4}
	c := &node{index: 3, f: 6}
	pq.insert(a)
	pq.insert(b)
	pq.insert(c)

	c.f = 1
	pq.decreaseKey(c)
	require.Equal(t, c, pq.extractMin())

	a.f = 4
	pq.decreaseKey(a)
	require.Equal(t, a, pq.extractMin(), "tie on f goes to the lower index")
	require.Equal(t, b, pq.extractMin())
	require.Zero(t, pq.Len())
}
