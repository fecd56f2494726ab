package sticky

import "testing"

func TestWindowTypeCapabilities(t *testing.T) {
	tests := []struct {
		typ  WindowType
		want Capabilities
	}{
		{TypeNone, Capabilities{}},
		{TypeAnchor, Capabilities{AcceptsAttachments: true}},
		{TypeGrabby, Capabilities{SeeksAttachments: true}},
		{TypeSticky, Capabilities{SeeksAttachments: true, Carried: true}},
		{TypeCohesive, Capabilities{AcceptsAttachments: true, SeeksAttachments: true, Carried: true}},
		{WindowType(42), Capabilities{}},
	}
	for _, tt := range tests {
		if got := tt.typ.Capabilities(); got != tt.want {
			t.Errorf("%s: capabilities = %+v, want %+v", tt.typ, got, tt.want)
		}
	}
}

func TestParseWindowType(t *testing.T) {
	for _, typ := range []WindowType{TypeNone, TypeAnchor, TypeGrabby, TypeSticky, TypeCohesive} {
		got, err := ParseWindowType(typ.String())
		if err != nil {
			t.Fatalf("parse %q: %v", typ.String(), err)
		}
		if got != typ {
			t.Fatalf("parse %q = %v", typ.String(), got)
		}
	}

	if got, err := ParseWindowType("  Cohesive "); err != nil || got != TypeCohesive {
		t.Fatalf("expected case-insensitive parse, got %v err=%v", got, err)
	}
	if _, err := ParseWindowType("magnetic"); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestParseModifierKey(t *testing.T) {
	tests := []struct {
		in      string
		want    ModifierKey
		wantErr bool
	}{
		{in: "", want: ModNone},
		{in: "none", want: ModNone},
		{in: "mod4", want: ModSuper},
		{in: "Super", want: ModSuper},
		{in: "ctrl+alt", want: ModControl | ModAlt},
		{in: "shift + mod1", want: ModShift | ModAlt},
		{in: "hyper", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseModifierKey(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestModifierKeyStringRoundTrip(t *testing.T) {
	m := ModShift | ModSuper
	if m.String() != "shift+mod4" {
		t.Fatalf("String() = %q", m.String())
	}
	got, err := ParseModifierKey(m.String())
	if err != nil || got != m {
		t.Fatalf("round trip = %v err=%v", got, err)
	}
}

func TestHitTestEdges(t *testing.T) {
	if HitCaption.Edges() != 0 || HitClient.Edges() != 0 {
		t.Fatalf("move regions must not report edges")
	}
	if HitBottomRight.Edges() != EdgeBottom|EdgeRight {
		t.Fatalf("bottom-right edges = %v", HitBottomRight.Edges())
	}
	if HitTopLeft.Edges() != EdgeTop|EdgeLeft {
		t.Fatalf("top-left edges = %v", HitTopLeft.Edges())
	}
}
