package merkdown

import (
	"fmt"
	"io/ioutil"
	"os"
	"strings"

	"github.com/samber/oops"
	"gopkg.in/yaml.v2"
)

// DefaultConfigFile is picked up from the working directory when no config
// path is given.
const DefaultConfigFile = "merkdown.yml"

type Format string

const (
	FormatPPTX Format = "pptx"
	FormatODP  Format = "odp"
	FormatTeX  Format = "tex"
)

// Formats lists every supported output format in emission order.
var Formats = []Format{FormatPPTX, FormatODP, FormatTeX}

// Aspects lists the supported slide aspect ratios.
var Aspects = []string{"4:3", "16:9", "16:10"}

// ParseFormats validates names against Formats. Comma separated entries are
// split, duplicates dropped.
func ParseFormats(names []string) ([]Format, error) {
	seen := map[Format]bool{}
	var formats []Format
	for _, name := range names {
		for _, part := range strings.Split(name, ",") {
			f := Format(strings.ToLower(strings.TrimSpace(part)))
			if f == "" {
				continue
			}
			if !f.Valid() {
				return nil, fmt.Errorf("unknown format %q, expected one of %s", part, joinFormats(Formats))
			}
			if !seen[f] {
				seen[f] = true
				formats = append(formats, f)
			}
		}
	}
	return formats, nil
}

// Valid reports whether f is one of Formats.
func (f Format) Valid() bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}

func joinFormats(formats []Format) string {
	names := make([]string, len(formats))
	for i, f := range formats {
		names[i] = string(f)
	}
	return strings.Join(names, ", ")
}

// ValidAspect reports whether aspect is one of Aspects.
func ValidAspect(aspect string) bool {
	for _, a := range Aspects {
		if a == aspect {
			return true
		}
	}
	return false
}

// Config holds conversion defaults. Command line flags override it.
type Config struct {
	Out      string   `yaml:"out"`
	Formats  []string `yaml:"formats"`
	Aspect   string   `yaml:"aspect"`
	Template string   `yaml:"template"`
}

func DefaultConfig() *Config {
	return &Config{
		Out:     "out",
		Formats: []string{string(FormatTeX)},
		Aspect:  "4:3",
	}
}

// LoadConfig reads path on top of DefaultConfig. An empty path tries
// DefaultConfigFile and falls back to the defaults if it does not exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	buf, err := ioutil.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, oops.
			Code("CONFIG_INVALID").
			With("path", path).
			Wrapf(err, "reading config %q", path)
	}
	if err := yaml.UnmarshalStrict(buf, cfg); err != nil {
		return nil, oops.
			Code("CONFIG_INVALID").
			With("path", path).
			Hint("Allowed keys are out, formats, aspect and template").
			Wrapf(err, "decoding config %q", path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, oops.Code("CONFIG_INVALID").With("path", path).Wrap(err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Out == "" {
		return fmt.Errorf("out must not be empty")
	}
	if !ValidAspect(c.Aspect) {
		return fmt.Errorf("unknown aspect %q, expected one of %s", c.Aspect, strings.Join(Aspects, ", "))
	}
	formats, err := ParseFormats(c.Formats)
	if err != nil {
		return err
	}
	if len(formats) == 0 {
		return fmt.Errorf("at least one format is required")
	}
	return nil
}
