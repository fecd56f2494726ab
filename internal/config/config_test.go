package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/1broseidon/stickywin/internal/sticky"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	want := sticky.DefaultSettings()
	want.ClientAreaMoveKey = sticky.ModSuper
	if got := cfg.Settings(); got != want {
		t.Fatalf("settings = %+v, want %+v", got, want)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Gravity != sticky.DefaultGravity {
		t.Fatalf("gravity = %d, want %d", res.Config.Gravity, sticky.DefaultGravity)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.DefaultType != "none" {
		t.Fatalf("default_type = %q, want none", res.Config.DefaultType)
	}
}

func TestLoadFromPath_OverridesAndRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"gravity: 12",
		"stick_to_corners: false",
		"client_area_move_key: shift+mod1",
		"default_type: Sticky",
		"log_level: warn",
		"stick_hotkey: \" Mod4-s \"",
		"rules:",
		"  - class: XTerm",
		"    type: anchor",
		"  - title_contains: scratch",
		"    type: cohesive",
		"    gravity: 40",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Gravity != 12 || cfg.StickToCorners {
		t.Fatalf("unexpected overrides: gravity=%d corners=%v", cfg.Gravity, cfg.StickToCorners)
	}
	if cfg.Modifier() != sticky.ModShift|sticky.ModAlt {
		t.Fatalf("modifier = %v", cfg.Modifier())
	}
	if cfg.LogLevel != "warning" {
		t.Fatalf("log_level = %q, want warning", cfg.LogLevel)
	}
	if cfg.StickHotkey != "Mod4-s" {
		t.Fatalf("stick_hotkey = %q, want Mod4-s", cfg.StickHotkey)
	}

	tests := []struct {
		class, title string
		wantType     sticky.WindowType
		wantGravity  int
	}{
		{class: "xterm", title: "bash", wantType: sticky.TypeAnchor, wantGravity: 12},
		{class: "Firefox", title: "My Scratch Pad", wantType: sticky.TypeCohesive, wantGravity: 40},
		{class: "Firefox", title: "mail", wantType: sticky.TypeSticky, wantGravity: 12},
	}
	for _, tt := range tests {
		typ, settings := cfg.Resolve(tt.class, tt.title)
		if typ != tt.wantType {
			t.Errorf("%s/%s: type = %v, want %v", tt.class, tt.title, typ, tt.wantType)
		}
		if settings.Gravity != tt.wantGravity {
			t.Errorf("%s/%s: gravity = %d, want %d", tt.class, tt.title, settings.Gravity, tt.wantGravity)
		}
		if settings.StickToCorners {
			t.Errorf("%s/%s: stick_to_corners should follow config", tt.class, tt.title)
		}
	}
}

func TestLoadFromPath_UnknownKeyRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "gravityy: 10\n")

	if _, err := LoadFromPath(path); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestLoadFromPath_ValidationErrorHasSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "stick_on_move: true\ngravity: -3\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Path != "gravity" {
		t.Fatalf("path = %q, want gravity", verr.Path)
	}
	if verr.Source.Kind != SourceFile || verr.Source.Line != 2 {
		t.Fatalf("source = %+v, want line 2 of file", verr.Source)
	}
	if !strings.Contains(err.Error(), ":2:") {
		t.Fatalf("error should carry position: %v", err)
	}
}

func TestValidate(t *testing.T) {
	neg := -1
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantPath string
	}{
		{name: "negative gravity", mutate: func(c *Config) { c.Gravity = -1 }, wantPath: "gravity"},
		{name: "unknown modifier", mutate: func(c *Config) { c.ClientAreaMoveKey = "hyper" }, wantPath: "client_area_move_key"},
		{name: "no modifier", mutate: func(c *Config) { c.ClientAreaMoveKey = "none" }, wantPath: "client_area_move_key"},
		{name: "button out of range", mutate: func(c *Config) { c.MoveButton = 9 }, wantPath: "move_button"},
		{name: "same buttons", mutate: func(c *Config) { c.ResizeButton = c.MoveButton }, wantPath: "resize_button"},
		{name: "alternate taxonomy", mutate: func(c *Config) { c.DefaultType = "stickyanchor" }, wantPath: "default_type"},
		{name: "rule without matcher", mutate: func(c *Config) { c.Rules = []Rule{{Type: "sticky"}} }, wantPath: "rules"},
		{name: "rule bad type", mutate: func(c *Config) { c.Rules = []Rule{{Class: "x", Type: "magnet"}} }, wantPath: "rules"},
		{name: "rule negative gravity", mutate: func(c *Config) { c.Rules = []Rule{{Class: "x", Type: "sticky", Gravity: &neg}} }, wantPath: "rules"},
		{name: "log level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantPath: "log_level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if verr.Path != tt.wantPath {
				t.Fatalf("path = %q, want %q", verr.Path, tt.wantPath)
			}
		})
	}
}

func TestLoadFromPath_IncludesMergeInOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "conf.d", "10-base.yaml"), strings.Join([]string{
		"gravity: 5",
		"stick_to_outside: false",
		"rules:",
		"  - class: Base",
		"    type: anchor",
		"",
	}, "\n"))
	writeFile(t, filepath.Join(dir, "conf.d", "20-more.yaml"), "gravity: 7\n")
	main := filepath.Join(dir, "config.yaml")
	writeFile(t, main, strings.Join([]string{
		"include: conf.d",
		"gravity: 9",
		"rules:",
		"  - class: Base",
		"    type: grabby",
		"",
	}, "\n"))

	res, err := LoadFromPath(main)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Gravity != 9 {
		t.Fatalf("gravity = %d, want 9 from including file", res.Config.Gravity)
	}
	if res.Config.StickToOutside {
		t.Fatalf("expected stick_to_outside from include")
	}
	if len(res.Files) != 3 {
		t.Fatalf("files = %v, want 3", res.Files)
	}
	if typ, _ := res.Config.Resolve("Base", ""); typ != sticky.TypeGrabby {
		t.Fatalf("including file's rule should win, got %v", typ)
	}
	if len(res.Config.Rules) != 2 {
		t.Fatalf("rules = %d, want 2", len(res.Config.Rules))
	}

	_, src, err := Explain(res, "stick_to_outside")
	if err != nil {
		t.Fatalf("explain: %v", err)
	}
	if !strings.HasSuffix(src.File, "10-base.yaml") {
		t.Fatalf("source = %+v, want 10-base.yaml", src)
	}
	_, src, _ = Explain(res, "resize_button")
	if src.Kind != SourceDefault {
		t.Fatalf("resize_button source = %+v, want default", src)
	}
}

func TestLoadFromPath_IncludeCycle(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.yaml"), "include: b.yaml\n")
	writeFile(t, filepath.Join(dir, "b.yaml"), "include: a.yaml\n")

	_, err := LoadFromPath(filepath.Join(dir, "a.yaml"))
	if err == nil || !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected include cycle error, got %v", err)
	}
}

func TestDefaultConfigPath_EnvOverride(t *testing.T) {
	t.Setenv(EnvConfigPath, "/tmp/custom-stickywin.yaml")
	got, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("path: %v", err)
	}
	if got != "/tmp/custom-stickywin.yaml" {
		t.Fatalf("path = %q", got)
	}
}

func TestExplain_UnknownKey(t *testing.T) {
	res := &LoadResult{Config: DefaultConfig()}
	if _, _, err := Explain(res, "layouts"); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}
