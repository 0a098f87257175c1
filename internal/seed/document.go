// Package seed reads fixture documents from files, SQL state tables or blob
// stores and hydrates in-memory repositories from them. Sources are
// read-only: nothing in this package writes repository state back.
package seed

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"

	"uamtta/internal/infra/persistence/memory"
)

// Format names the encoding of a seed document.
type Format string

// Supported formats. FormatAuto sniffs JSON and falls back to YAML.
const (
	FormatAuto Format = ""
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// ErrNoDocument is returned (wrapped) when a source holds no document.
var ErrNoDocument = errors.New("seed: no document")

// Document is a raw seed payload plus the name it was read from.
type Document struct {
	Name   string
	Format Format
	Data   []byte
}

// FormatFor derives a format from a file name or key extension.
func FormatFor(name string) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatAuto
	}
}

// Decode parses doc into a snapshot. A document is either a list of records
// or a mapping {next_id, records}. An empty document decodes to an empty
// snapshot; null records are rejected.
func Decode[T any](doc Document) (memory.Snapshot[T], error) {
	data := bytes.TrimSpace(doc.Data)
	if len(data) == 0 {
		return memory.Snapshot[T]{}, nil
	}
	format := doc.Format
	if format == FormatAuto {
		format = FormatYAML
		if json.Valid(data) {
			format = FormatJSON
		}
	}

	var (
		snap memory.Snapshot[T]
		err  error
	)
	switch format {
	case FormatJSON:
		snap, err = decodeJSON[T](data)
	case FormatYAML:
		snap, err = decodeYAML[T](data)
	default:
		return memory.Snapshot[T]{}, fmt.Errorf("decode %s: unsupported format %q", doc.Name, format)
	}
	if err != nil {
		return memory.Snapshot[T]{}, fmt.Errorf("decode %s: %w", doc.Name, err)
	}
	for i, e := range snap.Entities {
		if isNil(e) {
			return memory.Snapshot[T]{}, fmt.Errorf("decode %s: record %d is null", doc.Name, i)
		}
	}
	return snap, nil
}

func decodeJSON[T any](data []byte) (memory.Snapshot[T], error) {
	var snap memory.Snapshot[T]
	if data[0] == '[' {
		if err := json.Unmarshal(data, &snap.Entities); err != nil {
			return snap, err
		}
		return snap, nil
	}
	if err := json.Unmarshal(data, &snap); err != nil {
		return snap, err
	}
	return snap, nil
}

func decodeYAML[T any](data []byte) (memory.Snapshot[T], error) {
	var snap memory.Snapshot[T]
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return snap, err
	}
	if len(root.Content) == 0 {
		return snap, nil
	}
	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		err := node.Decode(&snap.Entities)
		return snap, err
	case yaml.MappingNode:
		err := node.Decode(&snap)
		return snap, err
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return snap, nil
		}
	}
	return snap, fmt.Errorf("line %d: expected a record list or a {next_id, records} mapping", node.Line)
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Interface, reflect.Slice:
		return rv.IsNil()
	}
	return false
}
