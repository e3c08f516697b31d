// Package manifest handles vtab.toml configuration for the demo driver.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the configuration file looked for by Load and FindAndLoad.
const FileName = "vtab.toml"

// Dispatch strategies, in the order the driver runs them by default.
const (
	StrategyGenerated = "generated" // per-object table, released after use
	StrategyAssembled = "assembled" // caller-built table from public entry points
	StrategyStatic    = "static"    // the class's process-lifetime table
	StrategyResolved  = "resolved"  // found at run time by interface lookup
)

// DefaultStrategies lists every strategy.
var DefaultStrategies = []string{StrategyGenerated, StrategyAssembled, StrategyStatic, StrategyResolved}

// Manifest represents a vtab.toml configuration.
type Manifest struct {
	Project Project `toml:"project"`
	Log     Log     `toml:"log"`
	Demo    Demo    `toml:"demo"`
	Output  Output  `toml:"output"`

	// Dir is the directory containing the vtab.toml file (set at load time).
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Log configures commonlog.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"` // empty logs to stderr
}

// Demo selects what the driver exercises.
type Demo struct {
	Values     []int    `toml:"values"`
	Strategies []string `toml:"strategies"`
}

// Output configures where results go.
type Output struct {
	Path     string `toml:"path"`     // empty writes to stdout
	Snapshot string `toml:"snapshot"` // CBOR registry snapshot, empty to skip
}

// Default returns the configuration used when no vtab.toml exists.
func Default() *Manifest {
	m := &Manifest{}
	m.applyDefaults()
	return m
}

// Load parses a vtab.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

// FindAndLoad walks up from startDir to find a vtab.toml file,
// then loads and returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

func (m *Manifest) applyDefaults() {
	if m.Project.Name == "" {
		m.Project.Name = "vtab-demo"
	}
	if len(m.Demo.Values) == 0 {
		m.Demo.Values = []int{3}
	}
	if len(m.Demo.Strategies) == 0 {
		m.Demo.Strategies = append([]string(nil), DefaultStrategies...)
	}
}

// Validate rejects unknown strategies and negative verbosity.
func (m *Manifest) Validate() error {
	for _, s := range m.Demo.Strategies {
		if !IsStrategy(s) {
			return fmt.Errorf("unknown strategy %q", s)
		}
	}
	if m.Log.Verbosity < 0 {
		return fmt.Errorf("log verbosity %d is negative", m.Log.Verbosity)
	}
	return nil
}

// IsStrategy reports whether s names a dispatch strategy.
func IsStrategy(s string) bool {
	for _, known := range DefaultStrategies {
		if s == known {
			return true
		}
	}
	return false
}

// resolve makes p absolute relative to the manifest directory.
func (m *Manifest) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || m.Dir == "" {
		return p
	}
	return filepath.Join(m.Dir, p)
}

// LogPath returns the absolute log file path, or "" for stderr.
func (m *Manifest) LogPath() string {
	return m.resolve(m.Log.File)
}

// OutputPath returns the absolute output path, or "" for stdout.
func (m *Manifest) OutputPath() string {
	return m.resolve(m.Output.Path)
}

// SnapshotPath returns the absolute snapshot path, or "" when disabled.
func (m *Manifest) SnapshotPath() string {
	return m.resolve(m.Output.Snapshot)
}
