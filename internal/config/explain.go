package config

import (
	"fmt"
	"strings"
)

// ExplainKeys lists the keys Explain understands, in file order.
var ExplainKeys = []string{
	"gravity",
	"stick_on_move",
	"stick_on_resize",
	"stick_to_screen",
	"stick_to_other",
	"stick_to_inside",
	"stick_to_outside",
	"stick_to_corners",
	"client_area_move_key",
	"move_button",
	"resize_button",
	"stick_hotkey",
	"default_type",
	"rules",
	"log_level",
}

// Explain returns the effective value of a top-level key and where it was
// set.
func Explain(res *LoadResult, key string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, Source{}, fmt.Errorf("key is empty")
	}

	value, err := lookupValue(res.Config, key)
	if err != nil {
		return nil, Source{}, err
	}
	if src, ok := res.Sources[key]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault}, nil
}

func lookupValue(cfg *Config, key string) (any, error) {
	switch key {
	case "gravity":
		return cfg.Gravity, nil
	case "stick_on_move":
		return cfg.StickOnMove, nil
	case "stick_on_resize":
		return cfg.StickOnResize, nil
	case "stick_to_screen":
		return cfg.StickToScreen, nil
	case "stick_to_other":
		return cfg.StickToOther, nil
	case "stick_to_inside":
		return cfg.StickToInside, nil
	case "stick_to_outside":
		return cfg.StickToOutside, nil
	case "stick_to_corners":
		return cfg.StickToCorners, nil
	case "client_area_move_key":
		return cfg.ClientAreaMoveKey, nil
	case "move_button":
		return cfg.MoveButton, nil
	case "resize_button":
		return cfg.ResizeButton, nil
	case "stick_hotkey":
		return cfg.StickHotkey, nil
	case "default_type":
		return cfg.DefaultType, nil
	case "rules":
		return cfg.Rules, nil
	case "log_level":
		return cfg.LogLevel, nil
	}
	return nil, fmt.Errorf("unknown config key %q (known: %s)", key, strings.Join(ExplainKeys, ", "))
}
