package model

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// wire shapes shared by the YAML and JSON codecs. Style and config decode in
// a second pass once the variant tag is known; that keeps the tagged union
// closed at a single decode site.

type elementHeader struct {
	ID       string   `yaml:"id" json:"id"`
	Variant  Variant  `yaml:"variant" json:"variant"`
	Position Position `yaml:"position" json:"position"`
	Size     Size     `yaml:"size" json:"size"`
	ZIndex   int      `yaml:"z_index" json:"zIndex"`
	Slot     string   `yaml:"slot,omitempty" json:"slot,omitempty"`
	Bind     BindSpec `yaml:"bind,omitempty" json:"bind,omitempty"`
}

type elementWire struct {
	elementHeader `yaml:",inline"`
	Style         interface{} `yaml:"style,omitempty" json:"style,omitempty"`
	Config        interface{} `yaml:"config,omitempty" json:"config,omitempty"`
}

func (e Element) header() elementHeader {
	return elementHeader{
		ID:       e.ID,
		Variant:  e.Variant,
		Position: e.Position,
		Size:     e.Size,
		ZIndex:   e.ZIndex,
		Slot:     e.Slot,
		Bind:     e.Bind,
	}
}

func (e Element) styleConfig() (interface{}, interface{}, error) {
	switch e.Variant {
	case VariantText:
		if e.Text == nil {
			return nil, nil, fmt.Errorf("text element %s has no text spec", e.ID)
		}
		return e.Text.Style, e.Text.Config, nil
	case VariantImage:
		if e.Image == nil {
			return nil, nil, fmt.Errorf("image element %s has no image spec", e.ID)
		}
		return e.Image.Style, e.Image.Config, nil
	case VariantShape:
		if e.Shape == nil {
			return nil, nil, fmt.Errorf("shape element %s has no shape spec", e.ID)
		}
		return e.Shape.Style, e.Shape.Config, nil
	case VariantData:
		if e.Data == nil {
			return nil, nil, fmt.Errorf("data element %s has no data spec", e.ID)
		}
		return e.Data.Style, e.Data.Config, nil
	default:
		return nil, nil, fmt.Errorf("unknown element variant %q", e.Variant)
	}
}

// MarshalYAML encodes the element with the active variant's style and config.
func (e Element) MarshalYAML() (interface{}, error) {
	style, config, err := e.styleConfig()
	if err != nil {
		return nil, err
	}
	return elementWire{elementHeader: e.header(), Style: style, Config: config}, nil
}

// UnmarshalYAML decodes the element header, then decodes style and config
// according to the variant tag.
func (e *Element) UnmarshalYAML(value *yaml.Node) error {
	type body struct {
		Style  yaml.Node `yaml:"style"`
		Config yaml.Node `yaml:"config"`
	}

	var head elementHeader
	if err := value.Decode(&head); err != nil {
		return err
	}
	var b body
	if err := value.Decode(&b); err != nil {
		return err
	}

	*e = Element{
		ID:       head.ID,
		Variant:  head.Variant,
		Position: head.Position,
		Size:     head.Size,
		ZIndex:   head.ZIndex,
		Slot:     head.Slot,
		Bind:     head.Bind,
	}

	decode := func(node yaml.Node, out interface{}) error {
		if node.Kind == 0 {
			return nil
		}
		return node.Decode(out)
	}

	switch head.Variant {
	case VariantText:
		var spec TextSpec
		if err := decode(b.Style, &spec.Style); err != nil {
			return err
		}
		if err := decode(b.Config, &spec.Config); err != nil {
			return err
		}
		e.Text = &spec
	case VariantImage:
		var spec ImageSpec
		if err := decode(b.Style, &spec.Style); err != nil {
			return err
		}
		if err := decode(b.Config, &spec.Config); err != nil {
			return err
		}
		e.Image = &spec
	case VariantShape:
		var spec ShapeSpec
		if err := decode(b.Style, &spec.Style); err != nil {
			return err
		}
		if err := decode(b.Config, &spec.Config); err != nil {
			return err
		}
		e.Shape = &spec
	case VariantData:
		var spec DataSpec
		if err := decode(b.Style, &spec.Style); err != nil {
			return err
		}
		if err := decode(b.Config, &spec.Config); err != nil {
			return err
		}
		e.Data = &spec
	default:
		return fmt.Errorf("unknown element variant %q", head.Variant)
	}

	return nil
}

// MarshalJSON encodes the element with the active variant's style and config.
func (e Element) MarshalJSON() ([]byte, error) {
	style, config, err := e.styleConfig()
	if err != nil {
		return nil, err
	}
	return json.Marshal(elementWire{elementHeader: e.header(), Style: style, Config: config})
}

// UnmarshalJSON decodes the element header, then decodes style and config
// according to the variant tag.
func (e *Element) UnmarshalJSON(data []byte) error {
	type body struct {
		Style  json.RawMessage `json:"style"`
		Config json.RawMessage `json:"config"`
	}

	var head elementHeader
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	var b body
	if err := json.Unmarshal(data, &b); err != nil {
		return err
	}

	*e = Element{
		ID:       head.ID,
		Variant:  head.Variant,
		Position: head.Position,
		Size:     head.Size,
		ZIndex:   head.ZIndex,
		Slot:     head.Slot,
		Bind:     head.Bind,
	}

	decode := func(raw json.RawMessage, out interface{}) error {
		if len(raw) == 0 {
			return nil
		}
		return json.Unmarshal(raw, out)
	}

	switch head.Variant {
	case VariantText:
		var spec TextSpec
		if err := decode(b.Style, &spec.Style); err != nil {
			return err
		}
		if err := decode(b.Config, &spec.Config); err != nil {
			return err
		}
		e.Text = &spec
	case VariantImage:
		var spec ImageSpec
		if err := decode(b.Style, &spec.Style); err != nil {
			return err
		}
		if err := decode(b.Config, &spec.Config); err != nil {
			return err
		}
		e.Image = &spec
	case VariantShape:
		var spec ShapeSpec
		if err := decode(b.Style, &spec.Style); err != nil {
			return err
		}
		if err := decode(b.Config, &spec.Config); err != nil {
			return err
		}
		e.Shape = &spec
	case VariantData:
		var spec DataSpec
		if err := decode(b.Style, &spec.Style); err != nil {
			return err
		}
		if err := decode(b.Config, &spec.Config); err != nil {
			return err
		}
		e.Data = &spec
	default:
		return fmt.Errorf("unknown element variant %q", head.Variant)
	}

	return nil
}
