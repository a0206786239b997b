// Package parser loads alias tables that map canonical curve names to the
// alternative names found in the wild. Tables are read from YAML or JSON and
// keep their document order, which decides which canonical name wins when
// two entries list the same alias.
package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"brb/internal/errors"

	"gopkg.in/yaml.v3"
)

// Format names accepted by LoadAliasTable.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// AliasEntry is one canonical name and the aliases that map to it.
type AliasEntry struct {
	Canonical string
	Aliases   []string
}

// AliasTable holds alias entries in document order.
type AliasTable struct {
	entries []AliasEntry
	index   map[string]int
}

// NewAliasTable builds a table from entries. A canonical name given twice
// keeps its first position but takes the aliases of the later entry.
func NewAliasTable(entries []AliasEntry) *AliasTable {
	at := &AliasTable{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		if i, ok := at.index[e.Canonical]; ok {
			at.entries[i].Aliases = e.Aliases
			continue
		}
		at.index[e.Canonical] = len(at.entries)
		at.entries = append(at.entries, e)
	}
	return at
}

// Size returns the number of canonical names.
func (at *AliasTable) Size() int {
	return len(at.entries)
}

// Canonical reports whether name is a canonical key of the table.
func (at *AliasTable) Canonical(name string) bool {
	_, ok := at.index[name]
	return ok
}

// Reverse flattens the table into alias -> canonical. Entries are visited in
// document order, so an alias listed under several canonical names resolves
// to the last of them.
func (at *AliasTable) Reverse() map[string]string {
	reverse := make(map[string]string)
	for _, e := range at.entries {
		for _, alias := range e.Aliases {
			reverse[alias] = e.Canonical
		}
	}
	return reverse
}

// FormatFromPath picks the table format from the file extension.
func FormatFromPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported alias table extension %q", filepath.Ext(path))
	}
}

// LoadAliasTable reads an alias table from disk.
func LoadAliasTable(path string) (*AliasTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.NewConfigLoadError(path, "could not read config file", err)
	}
	defer file.Close()

	return decode(file, path)
}

// LoadAliasTableFS reads an alias table from fsys, typically the embedded
// default table.
func LoadAliasTableFS(fsys fs.FS, name string) (*AliasTable, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, errors.NewConfigLoadError(name, "could not read config file", err)
	}
	defer file.Close()

	return decode(file, name)
}

func decode(r io.Reader, path string) (*AliasTable, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, errors.NewConfigLoadError(path, "unknown format", err)
	}

	switch format {
	case FormatJSON:
		return parseJSONAliases(r, path)
	default:
		return parseYAMLAliases(r, path)
	}
}

func parseYAMLAliases(r io.Reader, path string) (*AliasTable, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, errors.NewConfigLoadError(path, "config file is empty", nil)
		}
		return nil, errors.NewConfigLoadError(path, "failed to parse YAML", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, errors.NewConfigLoadError(path, fmt.Sprintf("line %d: expected a mapping of canonical names to aliases", root.Line), nil)
	}

	entries := make([]AliasEntry, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode || strings.TrimSpace(key.Value) == "" {
			return nil, errors.NewConfigLoadError(path, fmt.Sprintf("line %d: canonical name must be a non-empty string", key.Line), nil)
		}

		aliases, err := yamlAliases(value)
		if err != nil {
			return nil, errors.NewConfigLoadError(path, fmt.Sprintf("line %d: %s: %v", value.Line, key.Value, err), nil)
		}
		entries = append(entries, AliasEntry{
			Canonical: strings.TrimSpace(key.Value),
			Aliases:   aliases,
		})
	}

	return NewAliasTable(entries), nil
}

func yamlAliases(node *yaml.Node) ([]string, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return nil, nil
		}
		return []string{strings.TrimSpace(node.Value)}, nil
	case yaml.SequenceNode:
		aliases := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("aliases must be strings")
			}
			if alias := strings.TrimSpace(item.Value); alias != "" {
				aliases = append(aliases, alias)
			}
		}
		return aliases, nil
	default:
		return nil, fmt.Errorf("aliases must be a string or a list of strings")
	}
}

// parseJSONAliases walks the object token by token so key order survives.
func parseJSONAliases(r io.Reader, path string) (*AliasTable, error) {
	dec := json.NewDecoder(r)

	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, errors.NewConfigLoadError(path, "config file is empty", nil)
		}
		return nil, errors.NewConfigLoadError(path, "failed to parse JSON", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.NewConfigLoadError(path, "expected a JSON object of canonical names to aliases", nil)
	}

	var entries []AliasEntry
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.NewConfigLoadError(path, "failed to parse JSON", err)
		}
		canonical, _ := tok.(string)
		if strings.TrimSpace(canonical) == "" {
			return nil, errors.NewConfigLoadError(path, "canonical name must be a non-empty string", nil)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.NewConfigLoadError(path, "failed to parse JSON", err)
		}
		aliases, err := jsonAliases(raw)
		if err != nil {
			return nil, errors.NewConfigLoadError(path, fmt.Sprintf("%s: %v", canonical, err), nil)
		}
		entries = append(entries, AliasEntry{Canonical: strings.TrimSpace(canonical), Aliases: aliases})
	}

	if _, err := dec.Token(); err != nil {
		return nil, errors.NewConfigLoadError(path, "failed to parse JSON", err)
	}

	return NewAliasTable(entries), nil
}

func jsonAliases(raw json.RawMessage) ([]string, error) {
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		aliases := make([]string, 0, len(list))
		for _, alias := range list {
			if alias = strings.TrimSpace(alias); alias != "" {
				aliases = append(aliases, alias)
			}
		}
		return aliases, nil
	}

	var single *string
	if err := json.Unmarshal(raw, &single); err != nil {
		return nil, fmt.Errorf("aliases must be a string or a list of strings")
	}
	if single == nil {
		return nil, nil
	}
	return []string{strings.TrimSpace(*single)}, nil
}
