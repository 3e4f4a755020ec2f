package prefabs

import "gopkg.in/yaml.v3"

type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Z     float64 `yaml:"z"`
	Scale float64 `yaml:"scale"`
}

type MeshComponentSpec struct {
	Shape  string  `yaml:"shape"`
	Facing string  `yaml:"facing"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Radius float64 `yaml:"radius"`
	Corner float64 `yaml:"corner"`
	Color  string  `yaml:"color"`
	Shaded bool    `yaml:"shaded"`
	Shadow bool    `yaml:"shadow"`
}

type ButtonComponentSpec struct {
	Shape  string  `yaml:"shape"`
	Radius float64 `yaml:"radius"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type LabelComponentSpec struct {
	Text   string  `yaml:"text"`
	Size   float64 `yaml:"size"`
	Wrap   float64 `yaml:"wrap"`
	Color  string  `yaml:"color"`
	Offset float64 `yaml:"offset"`
	Center bool    `yaml:"center"`
}

type ImageComponentSpec struct {
	Key    string  `yaml:"key"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Round  bool    `yaml:"round"`
}

type ScopeComponentSpec struct {
	Kind  string `yaml:"kind"`
	Label string `yaml:"label"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type ContactInputComponentSpec struct {
	Field string `yaml:"field"`
}
