package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"sexpr/internal/lexer"
)

// ManifestName is the per-project configuration file looked up from the
// working directory upward.
const ManifestName = "sexpr.toml"

// DialectConfig is the [dialect] section of sexpr.toml. Absent keys mean
// the feature is off; plain () grouping needs no key.
type DialectConfig struct {
	LineComments  bool `toml:"line_comments"`
	ByteStrings   bool `toml:"byte_strings"`
	BraceGroups   bool `toml:"brace_groups"`
	BracketGroups bool `toml:"bracket_groups"`
}

// Manifest is a parsed sexpr.toml.
type Manifest struct {
	Path string // absolute path of the manifest file

	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	DialectSection DialectConfig `toml:"dialect"`

	// hasDialect records whether [dialect] appeared at all; without it the
	// permissive profile applies.
	hasDialect bool
}

// Dialect returns the lexical feature set the manifest selects. A manifest
// without a [dialect] section selects the permissive profile.
func (m *Manifest) Dialect() lexer.Dialect {
	if m == nil || !m.hasDialect {
		return lexer.DefaultDialect()
	}
	return lexer.Dialect{
		LineComments:  m.DialectSection.LineComments,
		ByteStrings:   m.DialectSection.ByteStrings,
		BraceGroups:   m.DialectSection.BraceGroups,
		BracketGroups: m.DialectSection.BracketGroups,
	}
}

// LoadManifest parses a sexpr.toml file.
func LoadManifest(path string) (*Manifest, error) {
	var m Manifest
	meta, err := toml.DecodeFile(path, &m)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undec := meta.Undecoded(); len(undec) > 0 {
		keys := make([]string, len(undec))
		for i, k := range undec {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	m.Path = path
	m.hasDialect = meta.IsDefined("dialect")
	return &m, nil
}

// FindManifest walks up from startDir to locate sexpr.toml.
func FindManifest(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ManifestName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// FindProjectRoot returns the directory containing sexpr.toml, if any.
func FindProjectRoot(startDir string) (root string, ok bool, err error) {
	manifestPath, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return "", ok, err
	}
	return filepath.Dir(manifestPath), true, nil
}

// LoadNearestManifest finds and parses the manifest governing startDir.
// ok is false when no manifest exists anywhere above startDir.
func LoadNearestManifest(startDir string) (*Manifest, bool, error) {
	path, ok, err := FindManifest(startDir)
	if err != nil || !ok {
		return nil, ok, err
	}
	m, err := LoadManifest(path)
	if err != nil {
		return nil, true, err
	}
	return m, true, nil
}

// DialectFingerprint hashes the feature set for cache keying: two runs over
// the same bytes but different dialects must not share cache entries.
func DialectFingerprint(d lexer.Dialect) Digest {
	var b [4]byte
	if d.LineComments {
		b[0] = 1
	}
	if d.ByteStrings {
		b[1] = 1
	}
	if d.BraceGroups {
		b[2] = 1
	}
	if d.BracketGroups {
		b[3] = 1
	}
	var content Digest
	copy(content[:], b[:])
	return Combine(content)
}
