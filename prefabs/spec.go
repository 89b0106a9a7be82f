package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/coinpath/waypoint"
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

// AgentSpec is agent.yaml: the waypoint follower and how it is drawn.
type AgentSpec struct {
	Name         string       `yaml:"name"`
	Speed        float64      `yaml:"speed"`
	TurnRate     float64      `yaml:"turn_rate"`
	Tag          string       `yaml:"tag"`
	AlignDegrees float64      `yaml:"align_degrees"`
	Script       string       `yaml:"script"`
	Collider     ColliderSpec `yaml:"collider"`
	Sprite       ShapeSpec    `yaml:"sprite"`
	Path         PathSpec     `yaml:"path"`
}

func LoadAgentSpec() (*AgentSpec, error) {
	const filename = "agent.yaml"
	data, err := Load(filename)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	spec, err := ParseAgentSpec(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// ParseAgentSpec decodes agent.yaml on top of the waypoint defaults. Keys
// missing from data keep their default, an explicit 0 is kept as 0.
func ParseAgentSpec(data []byte) (*AgentSpec, error) {
	def := waypoint.DefaultConfig()
	spec := AgentSpec{
		Speed:        def.Speed,
		TurnRate:     def.TurnRate,
		Tag:          def.Tag,
		AlignDegrees: def.AlignDegrees,
	}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	return &spec, nil
}

// CoinSpec is coin.yaml: a collectible waypoint.
type CoinSpec struct {
	Name     string       `yaml:"name"`
	Tag      string       `yaml:"tag"`
	Collider ColliderSpec `yaml:"collider"`
	Sprite   ShapeSpec    `yaml:"sprite"`
}

func LoadCoinSpec() (*CoinSpec, error) {
	spec, err := LoadSpec[CoinSpec]("coin.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type ColliderSpec struct {
	Radius     float64 `yaml:"radius"`
	Mass       float64 `yaml:"mass"`
	Friction   float64 `yaml:"friction"`
	Elasticity float64 `yaml:"elasticity"`
}

// ShapeSpec describes a procedurally drawn circle sprite.
type ShapeSpec struct {
	Radius      float64    `yaml:"radius"`
	Color       *YAMLColor `yaml:"color"`
	Outline     *YAMLColor `yaml:"outline"`
	RenderLayer int        `yaml:"render_layer"`
}

type PathSpec struct {
	Width     float32    `yaml:"width"`
	Color     *YAMLColor `yaml:"color"`
	AntiAlias bool       `yaml:"anti_alias"`
}

type YAMLColor struct {
	color.Color
}

// Or returns c, or fallback when c was not set.
func (c *YAMLColor) Or(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}
	parsed, err := ParseHexColor(value.Value)
	if err != nil {
		return err
	}
	c.Color = parsed
	return nil
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(v string) (color.NRGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(v), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.NRGBA{}, fmt.Errorf("invalid color format: %s", v)
	}

	parse := func(start int) (uint8, error) {
		n, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(n), err
	}

	var out [4]uint8
	out[3] = 255
	for i := 0; i < len(s)/2; i++ {
		b, err := parse(i * 2)
		if err != nil {
			return color.NRGBA{}, fmt.Errorf("invalid color format: %s", v)
		}
		out[i] = b
	}
	return color.NRGBA{R: out[0], G: out[1], B: out[2], A: out[3]}, nil
}
