// Package catalog serves precomputed daily boards with their optimal
// solutions. A catalog is a date-keyed map stored as YAML or JSON.
package catalog

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/kuzu-maze/internal/maze"
	"github.com/vovakirdan/kuzu-maze/internal/scoring"
)

// Entry is the catalog record for one date.
//
// Two shapes are accepted on input: a bare grid of tile values, or a
// mapping with board and optional optimal keys.
type Entry struct {
	Board   [][]int          `json:"board" yaml:"board,flow"`
	Optimal *scoring.Optimal `json:"optimal,omitempty" yaml:"optimal,omitempty,flow"`
}

// UnmarshalYAML accepts both the bare grid and the mapping form.
func (e *Entry) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		*e = Entry{}
		return value.Decode(&e.Board)
	case yaml.MappingNode:
		type plain Entry
		var p plain
		if err := value.Decode(&p); err != nil {
			return err
		}
		*e = Entry(p)
		return nil
	default:
		return fmt.Errorf("catalog: line %d: entry must be a grid or a mapping", value.Line)
	}
}

// ToBoard validates the grid and converts it to a board.
func (e Entry) ToBoard() (maze.Board, error) {
	b, err := maze.BoardFromGrid(e.Board)
	if err != nil {
		return maze.Board{}, fmt.Errorf("catalog: invalid board: %w", err)
	}
	return b, nil
}

// Catalog maps ISO dates to entries.
type Catalog map[string]Entry

// Parse decodes a catalog document. JSON input is accepted as YAML.
func Parse(data []byte) (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("catalog: cannot parse: %w", err)
	}
	if c == nil {
		c = Catalog{}
	}
	return c, nil
}

// Encode renders c as JSON when path ends in .json, YAML otherwise.
func (c Catalog) Encode(path string) ([]byte, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.MarshalIndent(c, "", "  ")
	}
	return yaml.Marshal(c)
}

// Dates returns the catalog's dates in ascending order.
func (c Catalog) Dates() []string {
	dates := make([]string, 0, len(c))
	for d := range c {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}
