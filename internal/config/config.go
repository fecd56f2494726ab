package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/1broseidon/stickywin/internal/sticky"
)

// EnvConfigPath overrides the default config file location.
const EnvConfigPath = "STICKYWIN_CONFIG"

// Config is the effective daemon configuration.
type Config struct {
	Gravity        int  `yaml:"gravity"`
	StickOnMove    bool `yaml:"stick_on_move"`
	StickOnResize  bool `yaml:"stick_on_resize"`
	StickToScreen  bool `yaml:"stick_to_screen"`
	StickToOther   bool `yaml:"stick_to_other"`
	StickToInside  bool `yaml:"stick_to_inside"`
	StickToOutside bool `yaml:"stick_to_outside"`
	StickToCorners bool `yaml:"stick_to_corners"`

	// ClientAreaMoveKey is the modifier combination held to drag or resize
	// a window from anywhere inside it, e.g. "mod4" or "shift+mod1".
	ClientAreaMoveKey string `yaml:"client_area_move_key"`
	MoveButton        int    `yaml:"move_button"`
	ResizeButton      int    `yaml:"resize_button"`

	// StickHotkey re-evaluates the focused window's attachment, e.g.
	// "Mod4-s". Empty disables it.
	StickHotkey string `yaml:"stick_hotkey"`

	// DefaultType applies to windows no rule matches. "none" leaves them
	// unmanaged.
	DefaultType string `yaml:"default_type"`
	Rules       []Rule `yaml:"rules"`

	LogLevel string `yaml:"log_level"`
}

// Rule assigns a window type, and optionally a gravity, to matching
// windows. The first matching rule wins.
type Rule struct {
	// Class matches WM_CLASS class, case-insensitively. Empty matches any.
	Class string `yaml:"class,omitempty"`
	// TitleContains matches a title substring, case-insensitively.
	TitleContains string `yaml:"title_contains,omitempty"`
	Type          string `yaml:"type"`
	Gravity       *int   `yaml:"gravity,omitempty"`
}

// Matches reports whether the rule applies to a window.
func (r Rule) Matches(class, title string) bool {
	if r.Class != "" && !strings.EqualFold(r.Class, class) {
		return false
	}
	if r.TitleContains != "" && !strings.Contains(strings.ToLower(title), strings.ToLower(r.TitleContains)) {
		return false
	}
	return true
}

func DefaultConfig() *Config {
	return &Config{
		Gravity:           sticky.DefaultGravity,
		StickOnMove:       true,
		StickOnResize:     true,
		StickToScreen:     true,
		StickToOther:      true,
		StickToInside:     true,
		StickToOutside:    true,
		StickToCorners:    true,
		ClientAreaMoveKey: "mod4",
		MoveButton:        1,
		ResizeButton:      3,
		DefaultType:       "none",
		Rules:             []Rule{},
		LogLevel:          "info",
	}
}

func DefaultConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "stickywin", "config.yaml"), nil
}

// Modifier returns the parsed client-area move key. The config must have
// been validated.
func (c *Config) Modifier() sticky.ModifierKey {
	m, _ := sticky.ParseModifierKey(c.ClientAreaMoveKey)
	return m
}

// Settings returns the per-window settings the config describes.
func (c *Config) Settings() sticky.Settings {
	return sticky.Settings{
		Gravity:           c.Gravity,
		StickOnMove:       c.StickOnMove,
		StickOnResize:     c.StickOnResize,
		StickToScreen:     c.StickToScreen,
		StickToOther:      c.StickToOther,
		StickToInside:     c.StickToInside,
		StickToOutside:    c.StickToOutside,
		StickToCorners:    c.StickToCorners,
		ClientAreaMoveKey: c.Modifier(),
	}
}

// Resolve returns the type and settings for a window with the given class
// and title.
func (c *Config) Resolve(class, title string) (sticky.WindowType, sticky.Settings) {
	settings := c.Settings()
	for _, r := range c.Rules {
		if !r.Matches(class, title) {
			continue
		}
		t, _ := sticky.ParseWindowType(r.Type)
		if r.Gravity != nil {
			settings.Gravity = *r.Gravity
		}
		return t, settings
	}
	t, _ := sticky.ParseWindowType(c.DefaultType)
	return t, settings
}

func (c *Config) Validate() error {
	if c.Gravity < 0 {
		return &ValidationError{Path: "gravity", Err: fmt.Errorf("gravity must be >= 0")}
	}
	mod, err := sticky.ParseModifierKey(c.ClientAreaMoveKey)
	if err != nil {
		return &ValidationError{Path: "client_area_move_key", Err: err}
	}
	// Gestures start from a global modifier+button grab; a bare button
	// would swallow every click.
	if mod == sticky.ModNone {
		return &ValidationError{Path: "client_area_move_key", Err: fmt.Errorf("client_area_move_key must name at least one modifier")}
	}
	if err := validateButton(c.MoveButton); err != nil {
		return &ValidationError{Path: "move_button", Err: err}
	}
	if err := validateButton(c.ResizeButton); err != nil {
		return &ValidationError{Path: "resize_button", Err: err}
	}
	if c.MoveButton == c.ResizeButton {
		return &ValidationError{Path: "resize_button", Err: fmt.Errorf("resize_button must differ from move_button")}
	}
	if _, err := sticky.ParseWindowType(c.DefaultType); err != nil {
		return &ValidationError{Path: "default_type", Err: err}
	}
	for i, r := range c.Rules {
		if strings.TrimSpace(r.Class) == "" && strings.TrimSpace(r.TitleContains) == "" {
			return &ValidationError{Path: "rules", Err: fmt.Errorf("rule %d: class or title_contains is required", i)}
		}
		if _, err := sticky.ParseWindowType(r.Type); err != nil {
			return &ValidationError{Path: "rules", Err: fmt.Errorf("rule %d: %w", i, err)}
		}
		if r.Gravity != nil && *r.Gravity < 0 {
			return &ValidationError{Path: "rules", Err: fmt.Errorf("rule %d: gravity must be >= 0", i)}
		}
	}
	switch c.LogLevel {
	case "debug", "info", "warning", "error":
	default:
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	return nil
}

func validateButton(b int) error {
	if b < 1 || b > 5 {
		return fmt.Errorf("button must be between 1 and 5, got %d", b)
	}
	return nil
}
