package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var embedded []byte

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default parses the embedded catalog. The embedded document is validated by
// the package tests, so a failure here is a build defect.
func Default() *Catalog {
	c, err := Parse(embedded)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog: %v", err))
	}
	return c
}

// Embedded returns the raw embedded document.
func Embedded() []byte {
	return bytes.Clone(embedded)
}

// Load reads and validates a catalog file from fs.
func Load(fs afero.Fs, path string) (*Catalog, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes and validates a catalog document. Unknown fields are
// rejected.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks field constraints and that every connection joins two
// nodes of its own path.
func (c *Catalog) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("%w: %s failed on %q", ErrInvalid, verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	paths := make(map[string]bool, len(c.Paths))
	for i := range c.Paths {
		p := &c.Paths[i]
		if paths[p.ID] {
			return fmt.Errorf("%w: duplicate path %q", ErrInvalid, p.ID)
		}
		paths[p.ID] = true

		nodes := make(map[string]bool, len(p.Nodes))
		for _, n := range p.Nodes {
			if nodes[n.ID] {
				return fmt.Errorf("%w: path %q: duplicate node %q", ErrInvalid, p.ID, n.ID)
			}
			nodes[n.ID] = true
		}
		for _, conn := range p.Connections {
			if !nodes[conn.From] || !nodes[conn.To] {
				return fmt.Errorf("%w: path %q: connection %s references an unknown node", ErrInvalid, p.ID, conn.Key())
			}
			if conn.From == conn.To {
				return fmt.Errorf("%w: path %q: connection %s joins a node to itself", ErrInvalid, p.ID, conn.Key())
			}
		}
	}
	return nil
}
