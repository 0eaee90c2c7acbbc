package domain

import (
	"bytes"
	"fmt"
	"sort"

	json "github.com/goccy/go-json"
)

// BundleKind discriminates the three representable bundle value shapes.
type BundleKind int

const (
	KindText BundleKind = iota
	KindSequence
	KindMapping
)

// Bundle is a caller-supplied content value: a text leaf, an ordered
// sequence of bundles, or a mapping from string keys to bundles.
// The zero value is the empty text bundle. Key names carry structural
// hints only by convention; the analyzer never requires particular keys.
type Bundle struct {
	kind    BundleKind
	text    string
	seq     []Bundle
	mapping map[string]Bundle
}

// Text creates a text bundle.
func Text(s string) Bundle {
	return Bundle{kind: KindText, text: s}
}

// Sequence creates a sequence bundle.
func Sequence(items ...Bundle) Bundle {
	return Bundle{kind: KindSequence, seq: items}
}

// Mapping creates a mapping bundle. A nil map is a valid empty mapping.
func Mapping(m map[string]Bundle) Bundle {
	if m == nil {
		m = map[string]Bundle{}
	}
	return Bundle{kind: KindMapping, mapping: m}
}

// Kind returns the bundle's shape discriminator.
func (b Bundle) Kind() BundleKind { return b.kind }

// TextValue returns the text leaf. Valid only for KindText.
func (b Bundle) TextValue() string { return b.text }

// Items returns the sequence elements. Valid only for KindSequence.
func (b Bundle) Items() []Bundle { return b.seq }

// Value returns the mapping value for key. Valid only for KindMapping.
func (b Bundle) Value(key string) (Bundle, bool) {
	v, ok := b.mapping[key]
	return v, ok
}

// Keys returns the mapping keys in ascending order so traversal is
// deterministic regardless of decode order. Empty for non-mappings.
func (b Bundle) Keys() []string {
	if b.kind != KindMapping {
		return nil
	}
	keys := make([]string, 0, len(b.mapping))
	for k := range b.mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// UnmarshalJSON decodes a bundle from its natural JSON encoding: a string,
// an array, or an object. Any other JSON value is an InvalidArgumentError.
func (b *Bundle) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return &InvalidArgumentError{Reason: "empty bundle value"}
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return &InvalidArgumentError{Reason: fmt.Sprintf("invalid text value: %v", err)}
		}
		*b = Text(s)
		return nil

	case '[':
		var items []Bundle
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*b = Sequence(items...)
		return nil

	case '{':
		var m map[string]Bundle
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		*b = Mapping(m)
		return nil

	default:
		return &InvalidArgumentError{
			Reason: fmt.Sprintf("bundle values must be strings, sequences, or mappings, got %q", previewValue(trimmed)),
		}
	}
}

// MarshalJSON encodes the bundle back to its natural JSON shape.
func (b Bundle) MarshalJSON() ([]byte, error) {
	switch b.kind {
	case KindSequence:
		if b.seq == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(b.seq)
	case KindMapping:
		if b.mapping == nil {
			return []byte("{}"), nil
		}
		return json.Marshal(b.mapping)
	default:
		return json.Marshal(b.text)
	}
}

const previewLimit = 20

func previewValue(data []byte) string {
	if len(data) > previewLimit {
		return string(data[:previewLimit]) + "..."
	}
	return string(data)
}
