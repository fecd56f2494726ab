package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// RawConfig is one config file as written. Nil fields were not set and
// fall through to includes or defaults.
type RawConfig struct {
	Include IncludeList `yaml:"include"`

	Gravity        *int  `yaml:"gravity"`
	StickOnMove    *bool `yaml:"stick_on_move"`
	StickOnResize  *bool `yaml:"stick_on_resize"`
	StickToScreen  *bool `yaml:"stick_to_screen"`
	StickToOther   *bool `yaml:"stick_to_other"`
	StickToInside  *bool `yaml:"stick_to_inside"`
	StickToOutside *bool `yaml:"stick_to_outside"`
	StickToCorners *bool `yaml:"stick_to_corners"`

	ClientAreaMoveKey *string `yaml:"client_area_move_key"`
	MoveButton        *int    `yaml:"move_button"`
	ResizeButton      *int    `yaml:"resize_button"`
	StickHotkey       *string `yaml:"stick_hotkey"`

	DefaultType *string `yaml:"default_type"`
	Rules       []Rule  `yaml:"rules"`

	LogLevel *string `yaml:"log_level"`
}

// merge overlays o onto r. Rules from a later file are prepended so they
// take precedence while earlier rules still apply as fallbacks.
func (r RawConfig) merge(o RawConfig) RawConfig {
	out := r
	out.Include = nil

	setInt(&out.Gravity, o.Gravity)
	setBool(&out.StickOnMove, o.StickOnMove)
	setBool(&out.StickOnResize, o.StickOnResize)
	setBool(&out.StickToScreen, o.StickToScreen)
	setBool(&out.StickToOther, o.StickToOther)
	setBool(&out.StickToInside, o.StickToInside)
	setBool(&out.StickToOutside, o.StickToOutside)
	setBool(&out.StickToCorners, o.StickToCorners)
	setString(&out.ClientAreaMoveKey, o.ClientAreaMoveKey)
	setInt(&out.MoveButton, o.MoveButton)
	setInt(&out.ResizeButton, o.ResizeButton)
	setString(&out.StickHotkey, o.StickHotkey)
	setString(&out.DefaultType, o.DefaultType)
	setString(&out.LogLevel, o.LogLevel)

	if len(o.Rules) > 0 {
		rules := make([]Rule, 0, len(o.Rules)+len(r.Rules))
		rules = append(rules, o.Rules...)
		rules = append(rules, r.Rules...)
		out.Rules = rules
	}
	return out
}

func setInt(dst **int, v *int) {
	if v != nil {
		*dst = v
	}
}

func setBool(dst **bool, v *bool) {
	if v != nil {
		*dst = v
	}
}

func setString(dst **string, v *string) {
	if v != nil {
		*dst = v
	}
}
