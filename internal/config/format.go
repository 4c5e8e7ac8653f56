package config

import "fmt"

type OutputFormat int

const (
	TEXT OutputFormat = iota
	YAML
	JSON
)

func (f OutputFormat) String() string {
	switch f {
	case TEXT:
		return "text"
	case YAML:
		return "yaml"
	case JSON:
		return "json"
	}
	return "unknown"
}

func ParseFormat(s string) (OutputFormat, error) {
	switch s {
	case "text", "":
		return TEXT, nil
	case "yaml", "yml":
		return YAML, nil
	case "json":
		return JSON, nil
	}
	return TEXT, fmt.Errorf("unknown output format '%s', expected text, yaml or json", s)
}

type ColorMode int

const (
	COLOR_AUTO ColorMode = iota
	COLOR_ALWAYS
	COLOR_NEVER
)

func (c ColorMode) String() string {
	switch c {
	case COLOR_AUTO:
		return "auto"
	case COLOR_ALWAYS:
		return "always"
	case COLOR_NEVER:
		return "never"
	}
	return "unknown"
}

func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return COLOR_AUTO, nil
	case "always":
		return COLOR_ALWAYS, nil
	case "never":
		return COLOR_NEVER, nil
	}
	return COLOR_AUTO, fmt.Errorf("unknown color mode '%s', expected auto, always or never", s)
}
