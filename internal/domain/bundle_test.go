package domain

import (
	"errors"
	"reflect"
	"testing"

	json "github.com/goccy/go-json"
)

func TestBundleUnmarshal_Shapes(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind BundleKind
	}{
		{"text", `"hello"`, KindText},
		{"sequence", `["a", "b"]`, KindSequence},
		{"mapping", `{"title": "x"}`, KindMapping},
		{"nested", `{"rows": [{"left": "a"}, "b"]}`, KindMapping},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var b Bundle
			if err := json.Unmarshal([]byte(tt.data), &b); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if b.Kind() != tt.kind {
				t.Errorf("expected kind %d, got %d", tt.kind, b.Kind())
			}
		})
	}
}

func TestBundleUnmarshal_RejectsOtherValues(t *testing.T) {
	for _, data := range []string{`42`, `3.14`, `true`, `null`} {
		var b Bundle
		err := json.Unmarshal([]byte(data), &b)
		if err == nil {
			t.Errorf("%s: expected error", data)
			continue
		}
		var invalid *InvalidArgumentError
		if !errors.As(err, &invalid) {
			t.Errorf("%s: expected InvalidArgumentError, got %T", data, err)
		}
	}
}

func TestBundleUnmarshal_RejectsNestedBadValue(t *testing.T) {
	var b Bundle
	err := json.Unmarshal([]byte(`{"title": "ok", "count": 42}`), &b)
	if err == nil {
		t.Fatal("expected error for nested numeric value")
	}
	var invalid *InvalidArgumentError
	if !errors.As(err, &invalid) {
		t.Errorf("expected InvalidArgumentError, got %T", err)
	}
}

func TestBundleMarshal_RoundTrip(t *testing.T) {
	original := Mapping(map[string]Bundle{
		"title": Text("Q3"),
		"rows":  Sequence(Text("a"), Text("b")),
	})

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded Bundle
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if !reflect.DeepEqual(decoded.Keys(), original.Keys()) {
		t.Errorf("keys changed: %v vs %v", decoded.Keys(), original.Keys())
	}
	title, ok := decoded.Value("title")
	if !ok || title.TextValue() != "Q3" {
		t.Errorf("title lost in round trip: %+v", title)
	}
	rows, _ := decoded.Value("rows")
	if rows.Kind() != KindSequence || len(rows.Items()) != 2 {
		t.Errorf("rows lost in round trip: %+v", rows)
	}
}

func TestBundleKeys_Sorted(t *testing.T) {
	b := Mapping(map[string]Bundle{
		"zebra": Text(""),
		"alpha": Text(""),
		"manta": Text(""),
	})

	want := []string{"alpha", "manta", "zebra"}
	if got := b.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if keys := Text("x").Keys(); keys != nil {
		t.Errorf("expected nil keys for text bundle, got %v", keys)
	}
}

func TestBundleZeroValue_IsEmptyText(t *testing.T) {
	var b Bundle
	if b.Kind() != KindText || b.TextValue() != "" {
		t.Errorf("zero bundle should be empty text, got kind=%d text=%q", b.Kind(), b.TextValue())
	}
}
