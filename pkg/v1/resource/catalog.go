package resource

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParamSpec is the attribute definition for a collection. The builders never
// inspect it; it is handed to the controller and extension factories as-is.
type ParamSpec map[string]any

// CatalogEntry is one collection in a Catalog.
type CatalogEntry struct {
	// Collection is the plural collection name (e.g., "routers").
	Collection string

	// Params is the attribute definition for the collection.
	Params ParamSpec
}

// Catalog is an ordered set of collections belonging to one service.
// Iteration follows insertion order so registration output is reproducible.
// The zero value is an empty catalog ready to use.
type Catalog struct {
	entries []CatalogEntry
	index   map[string]int
}

// NewCatalog creates a Catalog from the given entries, in order.
func NewCatalog(entries ...CatalogEntry) *Catalog {
	c := &Catalog{}
	for _, e := range entries {
		c.Add(e.Collection, e.Params)
	}
	return c
}

// Add appends a collection. Adding an existing collection replaces its params
// and keeps its original position.
func (c *Catalog) Add(collection string, params ParamSpec) {
	if c.index == nil {
		c.index = make(map[string]int)
	}
	if i, ok := c.index[collection]; ok {
		c.entries[i].Params = params
		return
	}
	c.index[collection] = len(c.entries)
	c.entries = append(c.entries, CatalogEntry{Collection: collection, Params: params})
}

// Get returns the params for a collection.
func (c *Catalog) Get(collection string) (ParamSpec, bool) {
	if c == nil {
		return nil, false
	}
	i, ok := c.index[collection]
	if !ok {
		return nil, false
	}
	return c.entries[i].Params, true
}

// Len returns the number of collections.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Collections returns the collection names in catalog order.
func (c *Catalog) Collections() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.entries))
	for i, e := range c.entries {
		names[i] = e.Collection
	}
	return names
}

// Entries returns a copy of the catalog entries in order.
func (c *Catalog) Entries() []CatalogEntry {
	if c == nil {
		return nil
	}
	out := make([]CatalogEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// UnmarshalYAML decodes a YAML mapping of collection -> attribute map,
// keeping document order.
func (c *Catalog) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*c = Catalog{}
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: catalog must be a mapping of collection names", node.Line)
	}

	decoded := Catalog{}
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]

		var collection string
		if err := keyNode.Decode(&collection); err != nil {
			return fmt.Errorf("line %d: invalid collection name: %w", keyNode.Line, err)
		}
		if _, dup := decoded.index[collection]; dup {
			return fmt.Errorf("line %d: duplicate collection %q", keyNode.Line, collection)
		}

		// Decoding into ParamSpec directly would make yaml.v3 type nested
		// mappings as ParamSpec too.
		var raw map[string]any
		if err := valueNode.Decode(&raw); err != nil {
			return fmt.Errorf("line %d: invalid params for %q: %w", valueNode.Line, collection, err)
		}
		decoded.Add(collection, ParamSpec(raw))
	}
	*c = decoded
	return nil
}

// MarshalYAML encodes the catalog as an ordered YAML mapping.
func (c Catalog) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, e := range c.entries {
		value := &yaml.Node{}
		if err := value.Encode(e.Params); err != nil {
			return nil, fmt.Errorf("failed to encode params for %q: %w", e.Collection, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: e.Collection},
			value,
		)
	}
	return node, nil
}
