package main

// Observer is notified at the two observable points of a search. It is
// purely observational: nothing it does can change the search outcome.
type Observer interface {
	// NodeClosed is called when a node is moved to the closed set.
	NodeClosed(index int)
	// NodeDiscovered is called when a node is first added to the open set.
	NodeDiscovered(index int)
}

type noopObserver struct{}

func (noopObserver) NodeClosed(int)     {}
func (noopObserver) NodeDiscovered(int) {}

// multiObserver fans events out to several observers in order.
type multiObserver []Observer

func (m multiObserver) NodeClosed(index int) {
	for _, o := range m {
		o.NodeClosed(index)
	}
}

func (m multiObserver) NodeDiscovered(index int) {
	for _, o := range m {
		o.NodeDiscovered(index)
	}
}

// observers combines the non-nil observers into one.
func observers(obs ...Observer) Observer {
	out := make(multiObserver, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	switch len(out) {
	case 0:
		return noopObserver{}
	case 1:
		return out[0]
	}
	return out
}

// TraceEvent is one recorded search event.
type TraceEvent struct {
	Index int    `json:"index"`
	Kind  string `json:"kind"`
}

// Trace event kinds. Closed cells were drawn pale yellow and frontier cells
// orange by the grid visualiser.
const (
	TraceClosed   = "closed"
	TraceFrontier = "frontier"
)

// SearchTrace records search events in the order they happen. A SearchTrace
// belongs to a single search and is not safe for concurrent use.
type SearchTrace struct {
	Events []TraceEvent
}

func (t *SearchTrace) NodeClosed(index int) {
	t.Events = append(t.Events, TraceEvent{Index: index, Kind: TraceClosed})
}

func (t *SearchTrace) NodeDiscovered(index int) {
	t.Events = append(t.Events, TraceEvent{Index: index, Kind: TraceFrontier})
}

// Cells returns the last event kind recorded for each cell, which is the
// colour the cell ends up with in a grid view.
func (t *SearchTrace) Cells() map[int]string {
	cells := make(map[int]string, len(t.Events))
	for _, e := range t.Events {
		cells[e.Index] = e.Kind
	}
	return cells
}
