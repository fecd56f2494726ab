package config

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error { return e.Err }

// BuildEffectiveConfig applies a merged raw config on top of the defaults.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	applyInt(&cfg.Gravity, raw.Gravity)
	applyBool(&cfg.StickOnMove, raw.StickOnMove)
	applyBool(&cfg.StickOnResize, raw.StickOnResize)
	applyBool(&cfg.StickToScreen, raw.StickToScreen)
	applyBool(&cfg.StickToOther, raw.StickToOther)
	applyBool(&cfg.StickToInside, raw.StickToInside)
	applyBool(&cfg.StickToOutside, raw.StickToOutside)
	applyBool(&cfg.StickToCorners, raw.StickToCorners)

	if raw.ClientAreaMoveKey != nil {
		cfg.ClientAreaMoveKey = strings.TrimSpace(*raw.ClientAreaMoveKey)
	}
	applyInt(&cfg.MoveButton, raw.MoveButton)
	applyInt(&cfg.ResizeButton, raw.ResizeButton)
	if raw.StickHotkey != nil {
		cfg.StickHotkey = strings.TrimSpace(*raw.StickHotkey)
	}

	if raw.DefaultType != nil {
		cfg.DefaultType = strings.ToLower(strings.TrimSpace(*raw.DefaultType))
	}
	if raw.Rules != nil {
		cfg.Rules = append([]Rule(nil), raw.Rules...)
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*raw.LogLevel))
		// Accept the slog spelling too.
		if cfg.LogLevel == "warn" {
			cfg.LogLevel = "warning"
		}
	}

	return cfg
}

func applyInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func applyBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
