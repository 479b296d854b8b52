package fractal

import (
	"encoding/json"
	"fmt"
	"math"
)

// plainConfig drops Config's JSON methods so wireConfig can embed it.
type plainConfig Config

type wireVariation struct {
	Kind VariationKind `json:"kind"`
	VariationParams
}

type wireConfig struct {
	plainConfig
	Variation wireVariation `json:"Variation"`
}

// MarshalJSON encodes the variation as its kind plus flat parameters.
func (c Config) MarshalJSON() ([]byte, error) {
	if c.Variation == nil {
		return nil, invalid("variation", "not set")
	}
	return json.Marshal(wireConfig{
		plainConfig: plainConfig(c),
		Variation: wireVariation{
			Kind:            c.Variation.Kind(),
			VariationParams: ParamsOf(c.Variation),
		},
	})
}

// UnmarshalJSON decodes a Config written by MarshalJSON. Unknown variation
// kinds fail with ErrUnknownVariation.
func (c *Config) UnmarshalJSON(b []byte) error {
	var w wireConfig
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	v, err := NewVariation(w.Variation.Kind, w.Variation.VariationParams)
	if err != nil {
		return err
	}
	*c = Config(w.plainConfig)
	c.Variation = v
	return nil
}

// wireLineTrap carries a vertical line as a flag, JSON has no infinities.
type wireLineTrap struct {
	Active   bool
	X, Y     float64
	Slope    float64
	Vertical bool `json:",omitempty"`
}

// MarshalJSON encodes an infinite slope (of either sign) as Vertical.
func (t LineTrap) MarshalJSON() ([]byte, error) {
	w := wireLineTrap{Active: t.Active, X: t.X, Y: t.Y, Slope: t.Slope}
	if math.IsInf(t.Slope, 0) {
		w.Slope, w.Vertical = 0, true
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes a vertical line back to a +Inf slope.
func (t *LineTrap) UnmarshalJSON(b []byte) error {
	var w wireLineTrap
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("decode line trap: %w", err)
	}
	*t = LineTrap{Active: w.Active, X: w.X, Y: w.Y, Slope: w.Slope}
	if w.Vertical {
		t.Slope = math.Inf(1)
	}
	return nil
}
