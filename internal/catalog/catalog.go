// Package catalog loads and serves the immutable table of layout
// descriptors. The catalog is loaded once from a JSON metadata document and
// never mutated afterwards, so any number of callers may read it
// concurrently without synchronization.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"sort"

	json "github.com/goccy/go-json"

	"github.com/slideforge/layout-engine/internal/domain"
)

// metadataDocument mirrors the on-disk catalog format. The reserved
// content_to_layout_mapping section belongs to the document writer and is
// ignored here.
type metadataDocument struct {
	Layouts map[string]domain.LayoutDescriptor `json:"layouts"`
}

// Catalog is an immutable, in-memory table of layout descriptors keyed by id.
type Catalog struct {
	layouts map[string]domain.LayoutDescriptor
	ids     []string
}

// Load reads and validates a catalog metadata document from path.
// Any failure is a domain.ConfigurationError: no partial catalog is ever
// exposed, and a dependent service must treat the error as fatal at startup.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.ConfigurationError{Source: path, Err: err}
	}

	cat, err := Parse(data)
	if err != nil {
		var cfgErr *domain.ConfigurationError
		if errors.As(err, &cfgErr) {
			cfgErr.Source = path
			return nil, cfgErr
		}
		return nil, &domain.ConfigurationError{Source: path, Err: err}
	}
	return cat, nil
}

// Parse decodes and validates a catalog metadata document.
func Parse(data []byte) (*Catalog, error) {
	var doc metadataDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &domain.ConfigurationError{Source: "inline", Err: fmt.Errorf("parse metadata: %w", err)}
	}

	if len(doc.Layouts) == 0 {
		return nil, &domain.ConfigurationError{Source: "inline", Err: errors.New("metadata document has no layouts")}
	}

	layouts := make(map[string]domain.LayoutDescriptor, len(doc.Layouts))
	ids := make([]string, 0, len(doc.Layouts))

	for id, layout := range doc.Layouts {
		if id == "" {
			return nil, &domain.ConfigurationError{Source: "inline", Err: errors.New("layout with empty id")}
		}
		// An inline id field, when present, must agree with the mapping key.
		if layout.ID != "" && layout.ID != id {
			return nil, &domain.ConfigurationError{
				Source: "inline",
				Err:    fmt.Errorf("layout %q declares conflicting id %q", id, layout.ID),
			}
		}
		layout.ID = id

		for key, p := range layout.Placeholders {
			if key == "" {
				return nil, &domain.ConfigurationError{Source: "inline", Err: fmt.Errorf("layout %q has a placeholder with an empty key", id)}
			}
			if p.Type == "" {
				return nil, &domain.ConfigurationError{Source: "inline", Err: fmt.Errorf("layout %q placeholder %q has no type", id, key)}
			}
		}

		layouts[id] = layout
		ids = append(ids, id)
	}

	sort.Strings(ids)
	return &Catalog{layouts: layouts, ids: ids}, nil
}

// Len returns the number of layouts in the catalog.
func (c *Catalog) Len() int { return len(c.ids) }

// IDs returns all layout ids in ascending order.
func (c *Catalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Get returns the descriptor for id, or a domain.NotFoundError.
func (c *Catalog) Get(id string) (domain.LayoutDescriptor, error) {
	layout, ok := c.layouts[id]
	if !ok {
		return domain.LayoutDescriptor{}, &domain.NotFoundError{LayoutID: id}
	}
	return layout, nil
}

// Summarize aggregates the placeholders of layout id by type and column.
// Placeholders without a column tag are counted under the "none" bucket.
func (c *Catalog) Summarize(id string) (domain.PlaceholderSummary, error) {
	layout, err := c.Get(id)
	if err != nil {
		return domain.PlaceholderSummary{}, err
	}

	summary := domain.PlaceholderSummary{
		TotalCount: len(layout.Placeholders),
		ByType:     make(map[string]int),
		ByColumn:   make(map[string]int),
	}

	for _, p := range layout.Placeholders {
		summary.ByType[p.Type]++

		column := p.Column
		if column == "" {
			column = domain.ColumnNone
		}
		summary.ByColumn[column]++

		if p.Required {
			summary.RequiredCount++
		}
	}

	return summary, nil
}
