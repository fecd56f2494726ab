package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type SourceKind string

const (
	SourceDefault SourceKind = "default"
	SourceFile    SourceKind = "file"
)

type Source struct {
	Kind   SourceKind
	File   string
	Line   int
	Column int
}

func (s Source) String() string {
	if s.Kind == SourceFile && s.File != "" {
		return fmt.Sprintf("%s:%d:%d", s.File, s.Line, s.Column)
	}
	return string(SourceDefault)
}

type LoadResult struct {
	Config  *Config
	Path    string            // requested top-level path
	Sources map[string]Source // YAML key -> last writer
	Files   []string          // loaded files, in load order
}

// Load reads the configuration from the default location.
func Load() (*Config, error) {
	res, err := LoadWithSources()
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadWithSources loads the default config and keeps per-key sources.
func LoadWithSources() (*LoadResult, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath loads path and its includes. A missing file yields the
// defaults.
func LoadFromPath(path string) (*LoadResult, error) {
	raw := RawConfig{}
	sources := map[string]Source{}
	var files []string

	exists, err := pathExists(path)
	if err != nil {
		return nil, err
	}
	if exists {
		merged, mergedSources, mergedFiles, err := loadRawMerged(path, map[string]struct{}{}, nil)
		if err != nil {
			return nil, err
		}
		raw = merged
		sources = mergedSources
		files = mergedFiles
	}

	cfg := BuildEffectiveConfig(raw)
	if err := cfg.Validate(); err != nil {
		return nil, attachSourceContext(err, sources)
	}

	return &LoadResult{
		Config:  cfg,
		Path:    path,
		Sources: sources,
		Files:   files,
	}, nil
}

type includeRef struct {
	Value  string
	Source Source
}

// loadRawMerged loads one file with its includes applied first, so the
// including file wins. stack detects include cycles; seen skips files
// already merged through another path.
func loadRawMerged(path string, seen map[string]struct{}, stack []string) (RawConfig, map[string]Source, []string, error) {
	canon, err := canonicalPath(path)
	if err != nil {
		return RawConfig{}, nil, nil, err
	}
	for _, open := range stack {
		if open == canon {
			return RawConfig{}, nil, nil, fmt.Errorf("include cycle detected: %s -> %s", strings.Join(stack, " -> "), canon)
		}
	}
	if _, ok := seen[canon]; ok {
		return RawConfig{}, map[string]Source{}, nil, nil
	}
	seen[canon] = struct{}{}

	data, err := os.ReadFile(canon)
	if err != nil {
		return RawConfig{}, nil, nil, fmt.Errorf("%s: failed to read: %w", canon, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return RawConfig{}, nil, nil, fmt.Errorf("%s: failed to parse yaml: %w", canon, err)
	}
	var raw RawConfig
	if err := decodeStrictYAML(data, &raw); err != nil {
		return RawConfig{}, nil, nil, fmt.Errorf("%s: %w", canon, err)
	}

	merged := RawConfig{}
	sources := map[string]Source{}
	var files []string

	for _, ref := range collectIncludeRefs(&doc, canon) {
		paths, err := expandInclude(canon, ref.Value)
		if err != nil {
			return RawConfig{}, nil, nil, fmt.Errorf("%s: include %q: %w", ref.Source, ref.Value, err)
		}
		for _, p := range paths {
			incRaw, incSources, incFiles, err := loadRawMerged(p, seen, append(stack, canon))
			if err != nil {
				return RawConfig{}, nil, nil, err
			}
			merged = merged.merge(incRaw)
			for k, src := range incSources {
				sources[k] = src
			}
			files = append(files, incFiles...)
		}
	}

	merged = merged.merge(raw)
	for k, src := range collectSources(&doc, canon) {
		sources[k] = src
	}
	files = append(files, canon)

	return merged, sources, files, nil
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", path, err)
	}
	if real, err := filepath.EvalSymlinks(abs); err == nil {
		return real, nil
	}
	return abs, nil
}

// expandInclude resolves an include relative to the including file. A
// directory expands to its *.yaml/*.yml files in name order.
func expandInclude(baseFile string, include string) ([]string, error) {
	path, err := resolvePathRelativeToFile(baseFile, include)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, ent := range entries {
		if ent.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(ent.Name())) {
		case ".yaml", ".yml":
			files = append(files, filepath.Join(path, ent.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func resolvePathRelativeToFile(baseFile string, include string) (string, error) {
	if include == "" {
		return "", fmt.Errorf("path is empty")
	}
	if include == "~" || strings.HasPrefix(include, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		include = filepath.Join(home, strings.TrimPrefix(include, "~"))
	}
	if filepath.IsAbs(include) {
		return include, nil
	}
	return filepath.Join(filepath.Dir(baseFile), include), nil
}

func pathExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func rootMapping(doc *yaml.Node) *yaml.Node {
	if doc == nil {
		return nil
	}
	node := doc
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	return node
}

// collectSources records the position of every top-level key's value.
func collectSources(doc *yaml.Node, file string) map[string]Source {
	out := make(map[string]Source)
	node := rootMapping(doc)
	if node == nil {
		return out
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		out[key.Value] = Source{Kind: SourceFile, File: file, Line: val.Line, Column: val.Column}
	}
	return out
}

func collectIncludeRefs(doc *yaml.Node, file string) []includeRef {
	node := rootMapping(doc)
	if node == nil {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, val := node.Content[i], node.Content[i+1]
		if key.Value != "include" {
			continue
		}
		ref := func(n *yaml.Node) includeRef {
			return includeRef{
				Value:  n.Value,
				Source: Source{Kind: SourceFile, File: file, Line: n.Line, Column: n.Column},
			}
		}
		switch val.Kind {
		case yaml.ScalarNode:
			return []includeRef{ref(val)}
		case yaml.SequenceNode:
			refs := make([]includeRef, 0, len(val.Content))
			for _, item := range val.Content {
				if item.Kind == yaml.ScalarNode {
					refs = append(refs, ref(item))
				}
			}
			return refs
		}
		return nil
	}
	return nil
}

func attachSourceContext(err error, sources map[string]Source) error {
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Path == "" {
		return err
	}
	if src, ok := sources[verr.Path]; ok {
		verr.Source = src
	}
	return verr
}
