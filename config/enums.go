package config

import yaml "gopkg.in/yaml.v3"

// Specification of requested document erase behavior.
// ENUM(auto, always, never)
type EraseMode int

// Resolve maps the automatic mode to a concrete one: a presentation created
// this run starts with a single default slide which should not survive,
// while an existing presentation is appended to.
func (m EraseMode) Resolve(fresh bool) EraseMode {
	if m != EraseModeAuto {
		return m
	}
	if fresh {
		return EraseModeAlways
	}
	return EraseModeNever
}

// MarshalYAML keeps the mode textual in dumped configurations.
func (m EraseMode) MarshalYAML() (any, error) {
	return m.String(), nil
}

// UnmarshalYAML accepts the textual mode names; yaml never consults
// encoding.TextUnmarshaler on its own.
func (m *EraseMode) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := ParseEraseMode(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}
