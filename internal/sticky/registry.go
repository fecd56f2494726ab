package sticky

import "sync"

// Registry is the set of windows currently registered for sticking. It is
// shared by every Window created against it and iterates in registration
// order, which makes snap tie-breaks deterministic.
//
// Gesture processing happens on a single event thread; the lock only
// protects readers on other goroutines (status queries).
type Registry struct {
	mu    sync.RWMutex
	order []*Window
	byID  map[Handle]*Window
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[Handle]*Window)}
}

// Add registers w. Re-adding a member is a no-op; the result reports
// whether the registry changed.
func (r *Registry) Add(w *Window) bool {
	if w == nil {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id := w.Handle()
	if _, ok := r.byID[id]; ok {
		return false
	}
	r.byID[id] = w
	r.order = append(r.order, w)
	return true
}

// Remove unregisters w and clears every anchor reference to it. Removing
// an absent window is a no-op.
func (r *Registry) Remove(w *Window) bool {
	if w == nil {
		return false
	}
	id := w.Handle()

	r.mu.Lock()
	if existing, ok := r.byID[id]; !ok || existing != w {
		r.mu.Unlock()
		return false
	}
	delete(r.byID, id)
	for i, m := range r.order {
		if m == w {
			r.order = append(r.order[:i:i], r.order[i+1:]...)
			break
		}
	}
	members := append([]*Window(nil), r.order...)
	r.mu.Unlock()

	w.clearAnchor()
	for _, m := range members {
		if m.anchoredTo(id) {
			m.clearAnchor()
		}
	}
	return true
}

// Lookup returns the member registered under id.
func (r *Registry) Lookup(id Handle) (*Window, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.byID[id]
	return w, ok
}

// Contains reports whether w is a member.
func (r *Registry) Contains(w *Window) bool {
	if w == nil {
		return false
	}
	found, ok := r.Lookup(w.Handle())
	return ok && found == w
}

// Members returns a snapshot of the members in registration order.
func (r *Registry) Members() []*Window {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Window(nil), r.order...)
}

// Len returns the number of members.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
