package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

//go:embed menu.json
var defaultMenu []byte

// Source provides the full menu snapshot, read once at application startup
// before ingestion runs.
type Source interface {
	Snapshot() ([]Item, error)
}

// FileSource reads the menu from a JSON file. An empty Path falls back to
// the embedded default menu.
type FileSource struct {
	Path string
}

// Snapshot loads and parses the menu file.
func (s FileSource) Snapshot() ([]Item, error) {
	data := defaultMenu
	if s.Path != "" {
		b, err := os.ReadFile(s.Path)
		if err != nil {
			return nil, fmt.Errorf("reading menu file: %w", err)
		}
		data = b
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing menu JSON: %w", err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("menu is empty")
	}
	return items, nil
}
