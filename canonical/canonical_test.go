package canonical

import (
	"errors"
	"math"
	"testing"
)

func mustSerialize(t *testing.T, v any) string {
	t.Helper()
	out, err := Serialize(v)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	return out
}

func TestSerializePrimitives(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "null"},
		{"true", true, "true"},
		{"false", false, "false"},
		{"int", 60, "60"},
		{"negative int", -5, "-5"},
		{"float", 1.5, "1.5"},
		{"whole float", float64(60), "60"},
		{"string", "hi", `"hi"`},
		{"string escaping", "a\"b", `"a\"b"`},
		{"nan", math.NaN(), "null"},
		{"positive inf", math.Inf(1), "null"},
		{"negative inf", math.Inf(-1), "null"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := mustSerialize(t, tc.in); got != tc.want {
				t.Errorf("Serialize(%v) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestSerializeObjectKeyOrder(t *testing.T) {
	// Case-insensitive collation: "A" sorts with "a", before "b".
	got := mustSerialize(t, map[string]any{"b": 1, "A": 2})
	if got != `{"A":2,"b":1}` {
		t.Errorf("expected collated key order, got %q", got)
	}

	got = mustSerialize(t, map[string]any{"B": 2, "a": 1})
	if got != `{"a":1,"B":2}` {
		t.Errorf("expected collated key order, got %q", got)
	}
}

func TestSerializeDeterminism(t *testing.T) {
	// Two structurally equal payloads built in different insertion order
	// must serialize identically.
	build := func(reversed bool) map[string]any {
		m := make(map[string]any)
		keys := []string{"sessionId", "finalScore", "events", "durationMs", "foods"}
		values := map[string]any{
			"sessionId":  "abc-123",
			"finalScore": 60,
			"events":     []any{map[string]any{"t": 0, "direction": "UP"}},
			"durationMs": 3000,
			"foods":      []any{},
		}
		if reversed {
			for i := len(keys) - 1; i >= 0; i-- {
				m[keys[i]] = values[keys[i]]
			}
		} else {
			for _, k := range keys {
				m[k] = values[k]
			}
		}
		return m
	}

	a := mustSerialize(t, build(false))
	b := mustSerialize(t, build(true))
	if a != b {
		t.Errorf("insertion order leaked into output:\n%s\n%s", a, b)
	}

	// Repeated runs over the same map must not vary either.
	for i := 0; i < 20; i++ {
		if got := mustSerialize(t, build(false)); got != a {
			t.Fatalf("run %d produced different output: %q", i, got)
		}
	}
}

func TestSerializeArrayOrderPreserved(t *testing.T) {
	got := mustSerialize(t, []any{2, 1, 3})
	if got != "[2,1,3]" {
		t.Errorf("array order not preserved: %q", got)
	}
}

func TestSerializeUnrepresentableValues(t *testing.T) {
	t.Run("null inside arrays", func(t *testing.T) {
		got := mustSerialize(t, []any{func() {}, 1})
		if got != "[null,1]" {
			t.Errorf("expected func element to become null, got %q", got)
		}
	})

	t.Run("omitted as object properties", func(t *testing.T) {
		got := mustSerialize(t, map[string]any{"f": func() {}, "x": 1})
		if got != `{"x":1}` {
			t.Errorf("expected func property to be omitted, got %q", got)
		}
	})

	t.Run("channel", func(t *testing.T) {
		got := mustSerialize(t, []any{make(chan int)})
		if got != "[null]" {
			t.Errorf("expected chan element to become null, got %q", got)
		}
	})
}

func TestSerializeStructTags(t *testing.T) {
	type move struct {
		T         int64  `json:"t"`
		Direction string `json:"direction"`
		Secret    string `json:"-"`
		hidden    int
	}

	_ = move{hidden: 1}

	got := mustSerialize(t, move{T: 120, Direction: "DOWN", Secret: "nope"})
	if got != `{"direction":"DOWN","t":120}` {
		t.Errorf("unexpected struct serialization: %q", got)
	}
}

func TestSerializeUnorderedContainers(t *testing.T) {
	// Non-string keys: pairs sorted by their serialized form.
	a := mustSerialize(t, map[int]string{2: "b", 1: "a", 3: "c"})
	b := mustSerialize(t, map[int]string{3: "c", 1: "a", 2: "b"})
	if a != b {
		t.Errorf("member-equal maps diverged: %q vs %q", a, b)
	}
	if a != `{1:"a",2:"b",3:"c"}` {
		t.Errorf("unexpected pair ordering: %q", a)
	}

	// Set-like container.
	set := map[string]struct{}{"z": {}, "a": {}}
	if got := mustSerialize(t, set); got != `{"a":{},"z":{}}` {
		t.Errorf("unexpected set serialization: %q", got)
	}
}

func TestSerializeCircularStructure(t *testing.T) {
	t.Run("map cycle", func(t *testing.T) {
		m := map[string]any{}
		m["self"] = m
		if _, err := Serialize(m); !errors.Is(err, ErrCircularStructure) {
			t.Errorf("expected ErrCircularStructure, got %v", err)
		}
	})

	t.Run("slice cycle", func(t *testing.T) {
		s := make([]any, 1)
		s[0] = s
		if _, err := Serialize(s); !errors.Is(err, ErrCircularStructure) {
			t.Errorf("expected ErrCircularStructure, got %v", err)
		}
	})

	t.Run("shared but acyclic values pass", func(t *testing.T) {
		inner := map[string]any{"x": 1}
		out, err := Serialize(map[string]any{"a": inner, "b": inner})
		if err != nil {
			t.Fatalf("acyclic sharing rejected: %v", err)
		}
		if out != `{"a":{"x":1},"b":{"x":1}}` {
			t.Errorf("unexpected output: %q", out)
		}
	})
}

func TestSerializeNestedSortStability(t *testing.T) {
	v := map[string]any{
		"outer": map[string]any{
			"Zeta":  []any{1, 2},
			"alpha": map[string]any{"b": nil, "A": true},
		},
	}
	want := `{"outer":{"alpha":{"A":true,"b":null},"Zeta":[1,2]}}`
	if got := mustSerialize(t, v); got != want {
		t.Errorf("nested serialization = %q, want %q", got, want)
	}
}
