package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/driftguard/driftguard/internal/domain"
)

// Loader implements domain.ConfigLoader for YAML and JSON documents.
type Loader struct{}

// New creates a Loader.
func New() *Loader { return &Loader{} }

// Load reads and parses a document. A missing file is *NotFoundError,
// malformed content is *ParseError; the two are never conflated and an
// empty document is never substituted for a broken one.
func (l *Loader) Load(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &domain.NotFoundError{Path: path}
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return l.Decode(path, data)
}

// Decode parses document text. Only a .json extension selects the JSON
// parser (for its error positions); everything else goes through the YAML
// parser, which accepts JSON documents and YAML flow mappings alike.
func (l *Loader) Decode(path string, data []byte) (map[string]any, error) {
	if isJSON(path) {
		var doc map[string]any
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, &domain.ParseError{Path: path, Err: err}
		}
		return doc, nil
	}

	var root any
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &domain.ParseError{Path: path, Err: err}
	}
	doc, ok := root.(map[string]any)
	if !ok {
		return nil, &domain.ParseError{
			Path: path,
			Err:  fmt.Errorf("document root must be a mapping, got %T", root),
		}
	}
	return doc, nil
}

func isJSON(path string) bool {
	return filepath.Ext(path) == ".json"
}
