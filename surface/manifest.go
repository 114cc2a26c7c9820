package surface

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported manifest format")
	ErrInvalidManifest   = errors.New("invalid manifest")
)

// Manifest declares a command surface in a file
//
//	name: mytool
//	options: [--quiet]
//	commands:
//	  - name: run
//	    args: [verbose]
//	  - name: stop
type Manifest struct {
	Name     string   `yaml:"name" toml:"name"`
	Shell    string   `yaml:"shell,omitempty" toml:"shell,omitempty"`
	Depth    *int     `yaml:"depth,omitempty" toml:"depth,omitempty"`
	Options  []string `yaml:"options,omitempty" toml:"options,omitempty"`
	Args     []string `yaml:"args,omitempty" toml:"args,omitempty"`
	KwOnly   []string `yaml:"kwonly,omitempty" toml:"kwonly,omitempty"`
	Commands []*Node  `yaml:"commands,omitempty" toml:"commands,omitempty"`
	Source   string   `yaml:"-" toml:"-"`
}

// Root returns the manifest as the root node of its surface
func (m *Manifest) Root() *Node {
	return &Node{
		Name:     m.Name,
		Args:     m.Args,
		KwOnly:   m.KwOnly,
		Commands: m.Commands,
	}
}

// LoadManifest reads a .yaml, .yml or .toml manifest. A missing name defaults to the file's base name.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	m, err := ParseManifest(data, ext)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if m.Name == "" {
		m.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	m.Source = path

	return m, nil
}

// ParseManifest decodes manifest data. format is a file extension such as ".yaml" or ".toml".
// Unknown keys are rejected.
func ParseManifest(data []byte, format string) (*Manifest, error) {
	m := &Manifest{}
	switch strings.TrimPrefix(strings.ToLower(format), ".") {
	case "yaml", "yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
		}
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(m); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	if err := validate(m.Commands, m.Name); err != nil {
		return nil, err
	}

	return m, nil
}

func validate(nodes []*Node, parent string) error {
	for i, n := range nodes {
		if n == nil || n.Name == "" {
			return fmt.Errorf("%w: command %d under %q has no name", ErrInvalidManifest, i, parent)
		}
		if err := validate(n.Commands, n.Name); err != nil {
			return err
		}
	}

	return nil
}
