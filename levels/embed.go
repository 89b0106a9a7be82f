package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Dir is checked before the embedded levels so edited files are picked up
// without a rebuild.
const Dir = "levels"

//go:embed *.json sequence.yaml
var LevelsFS embed.FS

// Level is a tile grid plus the entities placed on it. Layers hold one tile
// value per cell, row-major, where zero means empty.
type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool   `json:"physics"`
	Color   string `json:"color,omitempty"`
}

// Entity positions are in tile cells.
type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// Tile returns the value at cell (x, y) of layer, or 0 when out of range.
func (l *Level) Tile(layer, x, y int) int {
	if l == nil || layer < 0 || layer >= len(l.Layers) {
		return 0
	}
	if x < 0 || y < 0 || x >= l.Width || y >= l.Height {
		return 0
	}
	idx := y*l.Width + x
	if idx >= len(l.Layers[layer]) {
		return 0
	}
	return l.Layers[layer][idx]
}

// IsPhysicsLayer reports whether tiles on layer block movement.
func (l *Level) IsPhysicsLayer(layer int) bool {
	if l == nil || layer < 0 || layer >= len(l.LayerMeta) {
		return false
	}
	return l.LayerMeta[layer].Physics
}

func (l *Level) validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("invalid size %dx%d", l.Width, l.Height)
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("layer %d has %d cells, want %d", i, len(layer), l.Width*l.Height)
		}
	}
	return nil
}

func LoadLevelFromFS(name string) (*Level, error) {
	name = withExt(name)
	data, err := os.ReadFile(filepath.Join(Dir, name))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, name)
	}
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", name, err)
	}
	return ParseLevel(data)
}

func ParseLevel(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if err := lvl.validate(); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	return &lvl, nil
}

func withExt(name string) string {
	if strings.HasSuffix(name, ".json") {
		return name
	}
	return name + ".json"
}
