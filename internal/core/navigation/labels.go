package navigation

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Label is the presentation of one entry.
type Label struct {
	Label string `yaml:"label"`
	Icon  string `yaml:"icon"`
}

// LabelSet maps entry keys to their presentation.
type LabelSet map[string]Label

const (
	LabelSetWorkspace = "workspace"
	LabelSetClassic   = "classic"
)

var builtinLabelSets = map[string]LabelSet{
	LabelSetWorkspace: {
		KeyHome:      {Label: "Home", Icon: "home"},
		KeyInventory: {Label: "Inventory", Icon: "package"},
		KeySales:     {Label: "Sales", Icon: "shopping-cart"},
		KeyAnalytics: {Label: "Analytics", Icon: "bar-chart"},
		KeyTeam:      {Label: "Team", Icon: "users"},
		KeySettings:  {Label: "Settings", Icon: "settings"},
	},
	LabelSetClassic: {
		KeyHome:      {Label: "Dashboard", Icon: "layout-dashboard"},
		KeyInventory: {Label: "Products", Icon: "package"},
		KeySales:     {Label: "Sales", Icon: "shopping-cart"},
		KeyAnalytics: {Label: "Reports", Icon: "bar-chart"},
		KeyTeam:      {Label: "Users", Icon: "users"},
		KeySettings:  {Label: "Settings", Icon: "settings"},
	},
}

// BuiltinLabels returns a copy of a named label set.
func BuiltinLabels(name string) (LabelSet, error) {
	set, ok := builtinLabelSets[name]
	if !ok {
		return nil, fmt.Errorf("navigation: unknown label set %q", name)
	}
	out := make(LabelSet, len(set))
	for k, v := range set {
		out[k] = v
	}
	return out, nil
}

// overrideFile is the on-disk shape of a label override file:
//
//	labels:
//	  inventory: { label: Stock, icon: boxes }
type overrideFile struct {
	Labels map[string]Label `yaml:"labels"`
}

// LoadLabels starts from the named built-in set and, when path is not
// empty, applies the per-key overrides found in the YAML file at path.
// Empty fields in an override keep the built-in value.
func LoadLabels(name, path string) (LabelSet, error) {
	set, err := BuiltinLabels(name)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return set, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("navigation: read labels: %w", err)
	}
	var f overrideFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("navigation: parse labels: %w", err)
	}

	for key, o := range f.Labels {
		if !knownKey(key) {
			return nil, fmt.Errorf("navigation: unknown entry key %q", key)
		}
		cur := set[key]
		if o.Label != "" {
			cur.Label = o.Label
		}
		if o.Icon != "" {
			cur.Icon = o.Icon
		}
		set[key] = cur
	}
	return set, nil
}

func knownKey(key string) bool {
	for _, me := range master {
		if me.key == key {
			return true
		}
	}
	return false
}
