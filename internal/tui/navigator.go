package tui

import (
	"sync"

	"github.com/colonyops/acknowlist/internal/core/ack"
)

// Navigator receives selections from the presenter and hands them to the
// model as pending screen transitions. Pass Show as the presenter's
// OnSelect callback.
type Navigator struct {
	mu      sync.Mutex
	pending []ack.Detail
}

// NewNavigator creates an empty navigator.
func NewNavigator() *Navigator {
	return &Navigator{}
}

// Show queues a detail screen for d.
func (n *Navigator) Show(d ack.Detail) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = append(n.pending, d)
}

// Next pops the oldest pending detail.
func (n *Navigator) Next() (ack.Detail, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.pending) == 0 {
		return ack.Detail{}, false
	}
	d := n.pending[0]
	n.pending = n.pending[1:]
	return d, true
}
