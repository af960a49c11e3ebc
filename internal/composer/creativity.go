package composer

import (
	"fmt"
	"strings"

	"github.com/davidbz/quill/internal/domain"
)

// CreativityLevel trades focus for variety in generated text.
type CreativityLevel int

// Creativity levels, in slider order.
const (
	Focused CreativityLevel = iota
	Balanced
	Creative
)

// Settings returns the (temperature, topP) pair for the level.
// Unknown levels fall back to Balanced.
func (c CreativityLevel) Settings() (temperature, topP float64) {
	switch c {
	case Focused:
		return 0.2, 0.8
	case Creative:
		return 1.0, 0.95
	case Balanced:
		return 0.7, 0.9
	default:
		return 0.7, 0.9
	}
}

// Config returns the level as generation parameters.
func (c CreativityLevel) Config() domain.GenerationConfig {
	temperature, topP := c.Settings()
	return domain.GenerationConfig{
		domain.ConfigTemperature: temperature,
		domain.ConfigTopP:        topP,
	}
}

func (c CreativityLevel) String() string {
	switch c {
	case Focused:
		return "focused"
	case Balanced:
		return "balanced"
	case Creative:
		return "creative"
	default:
		return fmt.Sprintf("CreativityLevel(%d)", int(c))
	}
}

// ParseCreativity accepts a level name in any case or a slider position 0-2.
func ParseCreativity(s string) (CreativityLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "focused", "0":
		return Focused, nil
	case "balanced", "1", "":
		return Balanced, nil
	case "creative", "2":
		return Creative, nil
	default:
		return Balanced, fmt.Errorf("unknown creativity level %q", s)
	}
}
