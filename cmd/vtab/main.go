// vtab CLI - prints numbers through every dispatch strategy of the object runtime
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/chazu/vtab/manifest"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	verbosity := flag.Int("v", -1, "Log verbosity (overrides vtab.toml)")
	configDir := flag.String("c", ".", "Directory to search upward for vtab.toml")
	values := flag.String("values", "", "Comma-separated numbers to print (overrides vtab.toml)")
	strategies := flag.String("strategies", "", "Comma-separated dispatch strategies (overrides vtab.toml)")
	snapshot := flag.String("snapshot", "", "Write a CBOR registry snapshot to this path")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vtab [options]\n\n")
		fmt.Fprintf(os.Stderr, "Constructs number objects and prints each one through the selected dispatch strategies.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nStrategies: %s\n", strings.Join(manifest.DefaultStrategies, ", "))
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  vtab                          # print 3 four ways\n")
		fmt.Fprintf(os.Stderr, "  vtab -values 3,0 -strategies static,resolved\n")
		fmt.Fprintf(os.Stderr, "  vtab -snapshot registry.cbor  # also dump the registry\n")
	}
	flag.Parse()

	m, err := loadManifest(*configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := applyFlags(m, *verbosity, *values, *strategies, *snapshot); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if path := m.LogPath(); path != "" {
		commonlog.Configure(m.Log.Verbosity, &path)
	} else {
		commonlog.Configure(m.Log.Verbosity, nil)
	}

	var out io.Writer = os.Stdout
	if path := m.OutputPath(); path != "" {
		f, err := os.Create(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}

	if err := run(m, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadManifest finds vtab.toml above dir, falling back to defaults.
func loadManifest(dir string) (*manifest.Manifest, error) {
	m, err := manifest.FindAndLoad(dir)
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = manifest.Default()
	}
	return m, nil
}

// applyFlags overrides manifest settings with non-empty flag values.
func applyFlags(m *manifest.Manifest, verbosity int, values, strategies, snapshot string) error {
	if verbosity >= 0 {
		m.Log.Verbosity = verbosity
	}
	if values != "" {
		parsed, err := parseValues(values)
		if err != nil {
			return err
		}
		m.Demo.Values = parsed
	}
	if strategies != "" {
		m.Demo.Strategies = splitList(strategies)
	}
	if snapshot != "" {
		// Flag paths are relative to the working directory, not to vtab.toml.
		abs, err := filepath.Abs(snapshot)
		if err != nil {
			return fmt.Errorf("cannot resolve snapshot path %s: %w", snapshot, err)
		}
		m.Output.Snapshot = abs
	}
	return m.Validate()
}

func parseValues(s string) ([]int, error) {
	var result []int
	for _, field := range splitList(s) {
		v, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", field, err)
		}
		result = append(result, v)
	}
	return result, nil
}

func splitList(s string) []string {
	var result []string
	for _, field := range strings.Split(s, ",") {
		if field = strings.TrimSpace(field); field != "" {
			result = append(result, field)
		}
	}
	return result
}
