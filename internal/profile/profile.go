// Package profile loads named key/value profile documents (JSON, YAML or
// TOML, dispatched by file extension) and flattens them into the ordered
// entry list the patch core consumes. The core never sees the document
// structure, only the resolved entries.
package profile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	yaml "gopkg.in/yaml.v3"

	"linepatch/internal/patch"
)

// ErrNotFound reports a profile name absent from the loaded document.
var ErrNotFound = errors.New("profile not found")

// Sections is one named profile: globally-shared entries plus
// profile-specific ones. Entry order within each list is preserved.
type Sections struct {
	Global  []patch.Entry `json:"global" yaml:"global" toml:"global"`
	Profile []patch.Entry `json:"profile" yaml:"profile" toml:"profile"`
}

// Document maps profile name to its sections.
type Document map[string]Sections

// Load reads and decodes the document at path. The decoder is chosen by
// extension: .yaml/.yml, .toml, anything else JSON. A missing file keeps
// its os.ErrNotExist identity; malformed content is a parse failure wrapped
// with the path.
func Load(path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read profiles %s: %w", path, err)
	}
	var doc Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &doc)
	case ".toml":
		err = toml.Unmarshal(b, &doc)
	default:
		err = json.Unmarshal(b, &doc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse profiles %s: %w", path, err)
	}
	return doc, nil
}

// Resolve flattens the named profile into one ordered entry list: global
// entries first, then profile entries. includeGlobal=false suppresses the
// global section. Entries with empty keys are dropped.
func Resolve(doc Document, name string, includeGlobal bool) ([]patch.Entry, error) {
	sec, ok := doc[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	var out []patch.Entry
	if includeGlobal {
		out = appendValid(out, sec.Global)
	}
	out = appendValid(out, sec.Profile)
	return out, nil
}

func appendValid(dst []patch.Entry, src []patch.Entry) []patch.Entry {
	for _, e := range src {
		if strings.TrimSpace(e.Key) == "" {
			continue
		}
		dst = append(dst, e)
	}
	return dst
}
