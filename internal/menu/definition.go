package menu

import (
	"fmt"
	"os"
	"strings"

	"github.com/atomicstack/popup-menu/internal/theme"
	"gopkg.in/yaml.v2"
)

// Definition is the declarative form of a menu tree, as read from YAML:
//
//	theme:
//	  mode: system
//	items:
//	  - {id: copy, label: Copy, accelerator: Ctrl+C}
//	  - {type: separator}
//	  - id: theme
//	    label: Theme
//	    items:
//	      - {id: light, type: radio, group: theme, label: Light, checked: true}
//	      - {id: dark, type: radio, group: theme, label: Dark}
type Definition struct {
	Theme theme.Config     `yaml:"theme"`
	Items []ItemDefinition `yaml:"items"`
}

// ItemDefinition declares one item. Type defaults to "text", or "submenu"
// when nested items are present.
type ItemDefinition struct {
	ID          string           `yaml:"id"`
	Type        string           `yaml:"type"`
	Label       string           `yaml:"label"`
	Icon        string           `yaml:"icon"`
	Accelerator string           `yaml:"accelerator"`
	Group       string           `yaml:"group"`
	Value       string           `yaml:"value"`
	Checked     bool             `yaml:"checked"`
	Disabled    bool             `yaml:"disabled"`
	Hidden      bool             `yaml:"hidden"`
	Items       []ItemDefinition `yaml:"items"`
}

// LoadDefinition reads and builds the menu stored at path.
func LoadDefinition(path string) (*Menu, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read menu definition: %w", err)
	}
	return ParseDefinition(data)
}

// ParseDefinition builds a menu from YAML bytes.
func ParseDefinition(data []byte) (*Menu, error) {
	var def Definition
	if err := yaml.UnmarshalStrict(data, &def); err != nil {
		return nil, fmt.Errorf("parse menu definition: %w", err)
	}
	b, err := def.Builder()
	if err != nil {
		return nil, err
	}
	return b.Build()
}

// Builder converts the definition into builder calls.
func (d Definition) Builder() (*Builder, error) {
	b := NewBuilder().Theme(d.Theme)
	if err := declareAll(b, d.Items); err != nil {
		return nil, err
	}
	return b, nil
}

func declareAll(b *Builder, defs []ItemDefinition) error {
	for _, def := range defs {
		if err := declare(b, def); err != nil {
			return err
		}
	}
	return nil
}

func declare(b *Builder, def ItemDefinition) error {
	opts := []ItemOption{WithIcon(def.Icon), WithAccelerator(def.Accelerator), WithValue(def.Value)}
	if def.Disabled {
		opts = append(opts, Disabled())
	}
	if def.Hidden {
		opts = append(opts, Hidden())
	}
	kind := strings.ToLower(strings.TrimSpace(def.Type))
	if kind == "" && len(def.Items) > 0 {
		kind = "submenu"
	}
	switch kind {
	case "", "text":
		b.Text(def.ID, def.Label, opts...)
	case "check", "checkbox":
		b.Check(def.ID, def.Label, def.Checked, opts...)
	case "radio":
		b.Radio(def.ID, def.Label, def.Group, def.Checked, opts...)
	case "separator":
		b.Separator()
	case "submenu":
		sub := NewBuilder()
		if err := declareAll(sub, def.Items); err != nil {
			return err
		}
		b.Submenu(def.ID, def.Label, sub, opts...)
	default:
		return fmt.Errorf("item %q: unknown type %q", def.ID, def.Type)
	}
	return nil
}
