package rampart

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// layoutEntry is one control's saved rectangle, in local coordinates.
type layoutEntry struct {
	X      float64 `toml:"x"`
	Y      float64 `toml:"y"`
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// layoutFile is the TOML document: one table per control name.
type layoutFile struct {
	Controls map[string]layoutEntry `toml:"controls"`
}

// SaveLayout writes every registered control's local rectangle, keyed by
// name, as a TOML file. Children are saved too, under their own names;
// names are assumed unique across the tree. Pair with the layout editor:
// drag controls into place, then persist.
func (m *Manager) SaveLayout(path string) error {
	doc := layoutFile{Controls: make(map[string]layoutEntry)}
	for _, c := range m.controls {
		collectLayout(c, doc.Controls)
	}
	data, err := toml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write layout %s: %w", path, err)
	}
	return nil
}

func collectLayout(c Control, out map[string]layoutEntry) {
	b := c.UI()
	out[b.Name()] = layoutEntry{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
	for _, child := range b.Children() {
		collectLayout(child, out)
	}
}

// LoadLayout reads a TOML layout file and applies every entry whose name
// matches a control in the tree. Entries without a matching control are
// ignored; controls without an entry keep their current rectangle.
func (m *Manager) LoadLayout(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read layout %s: %w", path, err)
	}
	var doc layoutFile
	if err := toml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse layout %s: %w", path, err)
	}
	for _, c := range m.controls {
		applyLayout(c, doc.Controls)
	}
	return nil
}

func applyLayout(c Control, in map[string]layoutEntry) {
	b := c.UI()
	if e, ok := in[b.Name()]; ok {
		b.X, b.Y, b.Width, b.Height = e.X, e.Y, e.Width, e.Height
	}
	for _, child := range b.Children() {
		applyLayout(child, in)
	}
}
