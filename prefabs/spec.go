package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type Vec3Spec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// SceneSpec is scene.yaml: camera, scroller, light and chrome layout, plus
// free-standing entities built through the component registry.
type SceneSpec struct {
	Camera   CameraSpec        `yaml:"camera"`
	Scroll   ScrollSpec        `yaml:"scroll"`
	Light    LightSpec         `yaml:"light"`
	Layout   LayoutSpec        `yaml:"layout"`
	Entities []EntityBuildSpec `yaml:"entities"`
}

type CameraSpec struct {
	Position    Vec3Spec      `yaml:"position"`
	LookAt      Vec3Spec      `yaml:"look_at"`
	FOV         float64       `yaml:"fov"`
	MaxOffset   float64       `yaml:"max_offset"`
	Ease        float64       `yaml:"ease"`
	ResetEase   float64       `yaml:"reset_ease"`
	RotateSpeed float64       `yaml:"rotate_speed"`
	PhiMargin   float64       `yaml:"phi_margin"`
	IdleDelay   time.Duration `yaml:"idle_delay"`
	Epsilon     float64       `yaml:"epsilon"`
}

type ScrollSpec struct {
	Sensitivity    float64       `yaml:"sensitivity"`
	Friction       float64       `yaml:"friction"`
	MaxMomentum    float64       `yaml:"max_momentum"`
	Spacing        float64       `yaml:"spacing"`
	DepthOffset    float64       `yaml:"depth_offset"`
	WheelSnapDelay time.Duration `yaml:"wheel_snap_delay"`
	CoastSnapDelay time.Duration `yaml:"coast_snap_delay"`
}

type LightSpec struct {
	Position Vec3Spec   `yaml:"position"`
	Target   Vec3Spec   `yaml:"target"`
	Ambient  float64    `yaml:"ambient"`
	Color    *YAMLColor `yaml:"color"`
}

type LayoutSpec struct {
	PanelCenter      Vec3Spec `yaml:"panel_center"`
	PanelWidth       float64  `yaml:"panel_width"`
	PanelHeight      float64  `yaml:"panel_height"`
	GridOrigin       Vec3Spec `yaml:"grid_origin"`
	TogglePos        Vec3Spec `yaml:"toggle_pos"`
	ToggleStackedPos Vec3Spec `yaml:"toggle_stacked_pos"`
	IndicatorPos     Vec3Spec `yaml:"indicator_pos"`
}

func LoadSceneSpec() (*SceneSpec, error) {
	spec, err := LoadSpec[SceneSpec]("scene.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// IconsSpec is icons.yaml.
type IconsSpec struct {
	Icons []IconSpec `yaml:"icons"`
}

type IconSpec struct {
	Label    string     `yaml:"label"`
	Kind     string     `yaml:"kind"`
	Position Vec3Spec   `yaml:"position"`
	Color    *YAMLColor `yaml:"color"`
	Radius   float64    `yaml:"radius"`
	// Disc icons sit on a white disc; standalone icons do not.
	Disc bool `yaml:"disc"`
	// Action is inline tengo source; Script names a file under scripts/.
	Action string `yaml:"action"`
	Script string `yaml:"script"`
}

// Source returns the tengo source for the icon's click action.
func (s IconSpec) Source() (string, error) {
	if strings.TrimSpace(s.Action) != "" {
		return s.Action, nil
	}
	if s.Script == "" {
		return "", nil
	}
	b, err := LoadScript(s.Script)
	if err != nil {
		return "", fmt.Errorf("prefabs: icon %q: load script %s: %w", s.Label, s.Script, err)
	}
	return string(b), nil
}

func LoadIconsSpec() (*IconsSpec, error) {
	spec, err := LoadSpec[IconsSpec]("icons.yaml")
	if err != nil {
		return nil, err
	}
	// A half-written file parses as an empty spec.
	if len(spec.Icons) == 0 {
		return nil, fmt.Errorf("prefabs: icons.yaml: no icons")
	}
	return &spec, nil
}

// PanelsSpec is panels.yaml.
type PanelsSpec struct {
	Home   HomeSpec    `yaml:"home"`
	Panels []PanelSpec `yaml:"panels"`
}

type HomeSpec struct {
	Name  string       `yaml:"name"`
	Image string       `yaml:"image"`
	Text  string       `yaml:"text"`
	Links []SocialSpec `yaml:"links"`
}

type SocialSpec struct {
	Label string `yaml:"label"`
	URL   string `yaml:"url"`
}

type PanelSpec struct {
	Label string          `yaml:"label"`
	Kind  string          `yaml:"kind"`
	Text  string          `yaml:"text"`
	Items []PanelItemSpec `yaml:"items"`
}

type PanelItemSpec struct {
	Title       string `yaml:"title"`
	Role        string `yaml:"role"`
	Company     string `yaml:"company"`
	Date        string `yaml:"date"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
}

func LoadPanelsSpec() (*PanelsSpec, error) {
	spec, err := LoadSpec[PanelsSpec]("panels.yaml")
	if err != nil {
		return nil, err
	}
	if len(spec.Panels) == 0 {
		return nil, fmt.Errorf("prefabs: panels.yaml: no panels")
	}
	for i, p := range spec.Panels {
		switch p.Kind {
		case "", "text", "stacked", "contact":
		default:
			return nil, fmt.Errorf("prefabs: panels.yaml: panel %d (%s): unknown kind %q", i, p.Label, p.Kind)
		}
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

// NRGBA returns the color, or fallback when unset.
func (c *YAMLColor) NRGBA(fallback color.NRGBA) color.NRGBA {
	if c == nil || c.Color == nil {
		return fallback
	}
	return color.NRGBAModel.Convert(c.Color).(color.NRGBA)
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
