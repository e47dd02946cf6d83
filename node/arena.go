package node

// Arena is a free list of cleared nodes. It is not safe for
// concurrent use; each extractor owns its own Arena.
type Arena struct {
	free []*Node
	// Allocs counts nodes allocated because the free list was empty
	Allocs int
}

// Get returns an empty node named name, reusing a released node when
// one is available.
func (a *Arena) Get(name string) *Node {
	if n := len(a.free); n > 0 {
		it := a.free[n-1]
		a.free[n-1] = nil
		a.free = a.free[:n-1]
		it.Name = name
		return it
	}
	a.Allocs++
	return New(name)
}

// Free returns the number of nodes available for reuse
func (a *Arena) Free() int { return len(a.free) }

func (a *Arena) put(n *Node) { a.free = append(a.free, n) }
