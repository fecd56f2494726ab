package sticky

import "testing"

func TestRegistry_AddRemoveIdempotent(t *testing.T) {
	h := newHarness()
	w, _ := h.window(TypeSticky, Rect{Width: 10, Height: 10})

	if h.reg.Add(w) {
		t.Fatalf("re-adding a member should report no change")
	}
	if h.reg.Len() != 1 {
		t.Fatalf("len = %d, want 1", h.reg.Len())
	}
	if !h.reg.Remove(w) {
		t.Fatalf("expected first remove to change the registry")
	}
	if h.reg.Remove(w) {
		t.Fatalf("second remove should be a no-op")
	}
	if h.reg.Contains(w) {
		t.Fatalf("window still registered")
	}
	if h.reg.Add(nil) || h.reg.Remove(nil) {
		t.Fatalf("nil windows are ignored")
	}
}

func TestRegistry_MembersInRegistrationOrder(t *testing.T) {
	h := newHarness()
	a, _ := h.window(TypeAnchor, Rect{Width: 10, Height: 10})
	b, _ := h.window(TypeSticky, Rect{Width: 10, Height: 10})
	c, _ := h.window(TypeGrabby, Rect{Width: 10, Height: 10})

	h.reg.Remove(b)
	h.reg.Add(b)

	got := h.reg.Members()
	want := []*Window{a, c, b}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("member %d = %v, want %v", i, got[i].Handle(), want[i].Handle())
		}
	}

	// The snapshot is detached from later changes.
	h.reg.Remove(a)
	if len(got) != 3 || got[0] != a {
		t.Fatalf("snapshot mutated by Remove")
	}
}

func TestRegistry_LookupByHandle(t *testing.T) {
	h := newHarness()
	w, host := h.window(TypeCohesive, Rect{Width: 10, Height: 10})

	got, ok := h.reg.Lookup(host.id)
	if !ok || got != w {
		t.Fatalf("lookup failed")
	}
	if _, ok := h.reg.Lookup(host.id + 100); ok {
		t.Fatalf("unexpected hit for unknown handle")
	}
}

func TestAnchor_WeakReference(t *testing.T) {
	h := newHarness()
	a, _ := h.window(TypeAnchor, Rect{X: 0, Y: 0, Width: 100, Height: 100})
	s, _ := h.window(TypeSticky, Rect{X: 100, Y: 0, Width: 50, Height: 50})
	s.Stick()

	h.reg.Remove(a)
	if _, ok := s.Anchor(); ok {
		t.Fatalf("anchor outlived its registration")
	}
}
