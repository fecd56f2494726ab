package sticky

// Stick re-evaluates which anchor the window is attached to from its
// current bounds, without moving it. Only seeking windows with StickToOther
// enabled attach. Among anchor-capable members the closest snap wins; ties
// keep the earlier registered member. A member whose own anchor is this
// window is skipped so two windows never anchor each other.
func (w *Window) Stick() bool {
	caps := w.windowType.Capabilities()
	if !caps.SeeksAttachments || !w.settings.StickToOther || !w.registry.Contains(w) {
		w.clearAnchor()
		return false
	}

	bounds := w.host.Bounds()
	self := w.Handle()
	var best *Window
	bestDist := 0

	for _, m := range w.registry.Members() {
		if m == w || m.hidden || !m.windowType.Capabilities().AcceptsAttachments || m.anchoredTo(self) {
			continue
		}
		s := NewMoveSnapper(w.policy())
		s.Against(bounds, Target{Rect: m.host.Bounds()})
		d, ok := s.Distance()
		if !ok {
			continue
		}
		if best == nil || d < bestDist {
			best, bestDist = m, d
		}
	}

	w.setAnchor(best)
	return best != nil
}

// Dependents returns the windows carried by w, directly or through a chain
// of anchor-capable dependents, in discovery order.
func (w *Window) Dependents() []*Window {
	return w.dependents(w.registry.Members())
}

// dependents walks the attachment chains rooted at w with an explicit
// stack. The visited set stops malformed cycles.
func (w *Window) dependents(members []*Window) []*Window {
	visited := map[Handle]bool{w.Handle(): true}
	stack := []*Window{w}
	var out []*Window

	for len(stack) > 0 {
		anchor := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		id := anchor.Handle()

		for _, m := range members {
			if visited[m.Handle()] || !m.anchoredTo(id) {
				continue
			}
			caps := m.windowType.Capabilities()
			if !caps.Carried {
				continue
			}
			visited[m.Handle()] = true
			out = append(out, m)
			if caps.AcceptsAttachments {
				stack = append(stack, m)
			}
		}
	}
	return out
}

// carryDependents moves every window carried by w by (dx, dy), bypassing
// snap evaluation.
func (w *Window) carryDependents(dx, dy int) int {
	if dx == 0 && dy == 0 {
		return 0
	}
	deps := w.dependents(w.registry.Members())
	for _, d := range deps {
		d.host.SetBounds(d.host.Bounds().Offset(dx, dy))
	}
	if len(deps) > 0 {
		w.logger.Debug("carried dependents", "count", len(deps), "dx", dx, "dy", dy)
	}
	return len(deps)
}

// detachDependents clears the anchor of every member attached to w.
func (w *Window) detachDependents() int {
	id := w.Handle()
	n := 0
	for _, m := range w.registry.Members() {
		if m != w && m.anchoredTo(id) {
			m.clearAnchor()
			n++
		}
	}
	return n
}
