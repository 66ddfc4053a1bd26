package pipeline

import (
	"fmt"
	"strings"

	"github.com/ironsheep/raster-kernels/internal/imaging"
)

// StageConfig is the declarative form of a Stage, as found in config files
// and tool arguments.
//
// Type selects the stage:
//   - "grayscale": uses Policy ("average", "luminance", "lightness")
//   - "box_blur": uses Size (default 3) and Value (default 1.0)
//   - "convolve": uses Weights, which must form a square odd-sided kernel
//   - "edge_detect": uses Threshold, Highlight and Margin, each defaulting to
//     imaging.DefaultEdgeParams
type StageConfig struct {
	Type      string      `json:"type" mapstructure:"type"`
	Policy    string      `json:"policy,omitempty" mapstructure:"policy"`
	Size      int         `json:"size,omitempty" mapstructure:"size"`
	Value     *float64    `json:"value,omitempty" mapstructure:"value"`
	Weights   [][]float64 `json:"weights,omitempty" mapstructure:"weights"`
	Threshold *float64    `json:"threshold,omitempty" mapstructure:"threshold"`
	Highlight *int        `json:"highlight,omitempty" mapstructure:"highlight"`
	Margin    *int        `json:"margin,omitempty" mapstructure:"margin"`
}

// Build converts the config into a Stage.
func (c StageConfig) Build() (Stage, error) {
	switch strings.ToLower(strings.TrimSpace(c.Type)) {
	case "grayscale", "gray":
		policy, err := imaging.ParseGrayPolicy(c.Policy)
		if err != nil {
			return Stage{}, err
		}
		return GrayscaleStage(policy), nil

	case "box_blur", "blur":
		size := c.Size
		if size == 0 {
			size = 3
		}
		value := 1.0
		if c.Value != nil {
			value = *c.Value
		}
		return BoxBlurStage(value, size)

	case "convolve":
		k, err := imaging.NewKernel(c.Weights)
		if err != nil {
			return Stage{}, err
		}
		return ConvolveStage(k)

	case "edge_detect", "edges":
		p := imaging.DefaultEdgeParams()
		if c.Threshold != nil {
			p.Threshold = *c.Threshold
		}
		if c.Highlight != nil {
			if *c.Highlight < 0 || *c.Highlight > 255 {
				return Stage{}, fmt.Errorf("highlight %d outside 0-255", *c.Highlight)
			}
			p.Highlight = uint8(*c.Highlight)
		}
		if c.Margin != nil {
			if *c.Margin < 0 {
				return Stage{}, fmt.Errorf("margin %d is negative", *c.Margin)
			}
			p.Margin = *c.Margin
		}
		return EdgeStage(p), nil

	default:
		return Stage{}, fmt.Errorf("%w: %q", ErrUnknownStage, c.Type)
	}
}

// BuildStages converts every config, reporting the index of the first
// failure.
func BuildStages(configs []StageConfig) ([]Stage, error) {
	stages := make([]Stage, 0, len(configs))
	for i, c := range configs {
		s, err := c.Build()
		if err != nil {
			return nil, fmt.Errorf("stage %d: %w", i, err)
		}
		stages = append(stages, s)
	}
	return stages, nil
}

// VariantConfig is the declarative form of a Variant.
type VariantConfig struct {
	Name   string        `json:"name" mapstructure:"name"`
	Output string        `json:"output,omitempty" mapstructure:"output"`
	Stages []StageConfig `json:"stages" mapstructure:"stages"`
}

// Build converts the config into a Variant. Output defaults to Name + ".png"
// and is normalized by CleanOutput.
func (c VariantConfig) Build() (Variant, error) {
	if c.Name == "" {
		return Variant{}, fmt.Errorf("variant name is required")
	}

	stages, err := BuildStages(c.Stages)
	if err != nil {
		return Variant{}, fmt.Errorf("variant %s: %w", c.Name, err)
	}

	output := c.Output
	if output == "" {
		output = c.Name + ".png"
	}
	output, err = CleanOutput(output)
	if err != nil {
		return Variant{}, fmt.Errorf("variant %s: %w", c.Name, err)
	}
	return Variant{Name: c.Name, Output: output, Stages: stages}, nil
}

// BuildVariants converts every config. Outputs that clean to the same name
// are rejected since they would overwrite each other.
func BuildVariants(configs []VariantConfig) ([]Variant, error) {
	variants := make([]Variant, 0, len(configs))
	seen := make(map[string]string, len(configs))

	for _, c := range configs {
		v, err := c.Build()
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[v.Output]; ok {
			return nil, fmt.Errorf("variants %s and %s both write %s", prev, v.Name, v.Output)
		}
		seen[v.Output] = v.Name
		variants = append(variants, v)
	}
	return variants, nil
}
