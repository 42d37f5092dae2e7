package version

import "gopkg.in/yaml.v3"

// MarshalYAML implements yaml.Marshaler for Part.
func (p Part) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Part.
func (p *Part) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParsePart(s)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
