package radarcatalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/walkthru-earth/radarcast/internal/geo"
	"github.com/walkthru-earth/radarcast/internal/rcerrors"
)

// fileOverrides is the on-disk shape of an optional stations.yaml:
// range/priority overrides and an omit list layered over the built-in
// defaults. Builder's only programmatic counterpart is WithOmit; range
// and priority overrides can only be set through this file.
type fileOverrides struct {
	Omit    []string           `yaml:"omit"`
	Range   map[string]float64 `yaml:"range_km"`
	Priority map[string]int    `yaml:"priority"`
}

// LoadOverridesFile reads a stations.yaml override file. A missing
// file is not an error: overrides are optional.
func LoadOverridesFile(path string) (*fileOverrides, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &fileOverrides{}, nil
	}
	if err != nil {
		return nil, &rcerrors.ConfigError{Context: "reading " + path, Cause: err}
	}

	var f fileOverrides
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, &rcerrors.ConfigError{Context: fmt.Sprintf("parsing %s", path), Cause: err}
	}
	return &f, nil
}

func (f *fileOverrides) rangeFor(code string) (geo.Distance, bool) {
	if f == nil {
		return geo.Distance{}, false
	}
	km, ok := f.Range[code]
	if !ok {
		return geo.Distance{}, false
	}
	return geo.KM(km), true
}

func (f *fileOverrides) priorityFor(code string) (int, bool) {
	if f == nil {
		return 0, false
	}
	p, ok := f.Priority[code]
	return p, ok
}

func (f *fileOverrides) isOmitted(code string) bool {
	if f == nil {
		return false
	}
	for _, c := range f.Omit {
		if c == code {
			return true
		}
	}
	return false
}
