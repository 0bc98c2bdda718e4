package config

import (
	"fmt"
	"time"

	yaml "gopkg.in/yaml.v3"
)

// Duration makes human readable durations ("200ms", "1s") usable in
// configuration files, yaml has no native notion of them.
type Duration time.Duration

// Value returns the duration in its usual form.
func (d Duration) Value() time.Duration {
	return time.Duration(d)
}

func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalYAML keeps durations textual in dumped configurations.
func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// UnmarshalYAML parses textual durations; yaml never consults
// encoding.TextUnmarshaler on its own.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}
	*d = Duration(v)
	return nil
}
